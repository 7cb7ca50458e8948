package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/AlexZinkM/ton-gamefi/internal/metrics"
	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

// LedgerClient client for the off-chain purchase and reward ledger
type LedgerClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewLedgerClient creates a new ledger client
func NewLedgerClient(baseURL string, logger *zap.Logger) *LedgerClient {
	return &LedgerClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// Played reports a finished round and returns the reward
func (c *LedgerClient) Played(ctx context.Context, played model.PlayedRequest) (resp *model.PlayedResponse, err error) {
	defer func() { metrics.LedgerRequests.WithLabelValues("played", metrics.Result(err)).Inc() }()

	body, err := json.Marshal(played)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal played request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/played", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrLedgerUnreachable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var playedResp model.PlayedResponse
	if err := c.do(req, &playedResp); err != nil {
		return nil, err
	}
	if !playedResp.OK {
		return nil, fmt.Errorf("%w: played: unsuccessful", model.ErrLedgerUnreachable)
	}
	return &playedResp, nil
}

// Purchases gets the player's purchase list. initData is the raw Telegram init data.
func (c *LedgerClient) Purchases(ctx context.Context, initData string) (records []model.PurchaseRecord, err error) {
	defer func() { metrics.LedgerRequests.WithLabelValues("purchases", metrics.Result(err)).Inc() }()

	endpoint := fmt.Sprintf("%s/purchases?auth=%s", c.baseURL, url.QueryEscape(initData))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrLedgerUnreachable, err)
	}

	var purchasesResp model.PurchasesResponse
	if err := c.do(req, &purchasesResp); err != nil {
		return nil, err
	}
	if !purchasesResp.OK {
		return nil, fmt.Errorf("%w: purchases: unsuccessful", model.ErrLedgerUnreachable)
	}
	if purchasesResp.Purchases == nil {
		purchasesResp.Purchases = []model.PurchaseRecord{}
	}
	return purchasesResp.Purchases, nil
}

func (c *LedgerClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("ledger request failed", zap.String("path", req.URL.Path), zap.Error(err))
		return fmt.Errorf("%w: %w", model.ErrLedgerUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("ledger request failed", zap.String("path", req.URL.Path), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: status %d", model.ErrLedgerUnreachable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", model.ErrLedgerUnreachable, err)
	}
	return nil
}
