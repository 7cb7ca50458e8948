package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// bridgeMessageTTL is how long the bridge keeps an undelivered message, seconds
const bridgeMessageTTL = 300

// ErrStreamClosed is returned by Listen when the bridge ends the event stream
var ErrStreamClosed = errors.New("bridge stream closed")

// BridgeEvent is one message delivered by the TON Connect HTTP bridge.
// Message is still encrypted: base64 of nonce || box.
type BridgeEvent struct {
	ID      string
	From    string
	Message string
}

// BridgeClient talks to a TON Connect HTTP bridge
type BridgeClient struct {
	baseURL string
	client  *http.Client
	stream  *http.Client
	logger  *zap.Logger
}

// NewBridgeClient creates a new bridge client
func NewBridgeClient(baseURL string, logger *zap.Logger) *BridgeClient {
	return &BridgeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		// the event stream stays open, only ctx ends it
		stream: &http.Client{},
		logger: logger,
	}
}

// Listen opens the event stream for clientID and calls handle for every message.
// It blocks until ctx is done or the stream breaks.
func (c *BridgeClient) Listen(ctx context.Context, clientID, lastEventID string, handle func(BridgeEvent)) error {
	q := url.Values{}
	q.Set("client_id", clientID)
	if lastEventID != "" {
		q.Set("last_event_id", lastEventID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create events request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.stream.Do(req)
	if err != nil {
		return fmt.Errorf("failed to open event stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to open event stream: status %d", resp.StatusCode)
	}

	err = readEvents(resp.Body, func(id, event, data string) {
		if event != "" && event != "message" {
			return
		}
		var msg struct {
			From    string `json:"from"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(data), &msg); err != nil {
			c.logger.Warn("skipping malformed bridge event", zap.String("id", id), zap.Error(err))
			return
		}
		handle(BridgeEvent{ID: id, From: msg.From, Message: msg.Message})
	})
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("failed to read event stream: %w", err)
	}
	return ErrStreamClosed
}

// Send posts an encrypted message (base64 of nonce || box) from clientID to the peer to
func (c *BridgeClient) Send(ctx context.Context, clientID, to, message, topic string) error {
	q := url.Values{}
	q.Set("client_id", clientID)
	q.Set("to", to)
	q.Set("ttl", fmt.Sprint(bridgeMessageTTL))
	if topic != "" {
		q.Set("topic", topic)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/message?"+q.Encode(), strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("failed to create message request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post message: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to post message: status %d", resp.StatusCode)
	}
	return nil
}

// readEvents parses a text/event-stream body. Comment lines and unknown fields are ignored.
func readEvents(r io.Reader, emit func(id, event, data string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	var id, event string
	var data []string
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			if len(data) > 0 {
				emit(id, event, strings.Join(data, "\n"))
			}
			id, event, data = "", "", nil
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}
		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")
		switch field {
		case "id":
			id = value
		case "event":
			event = value
		case "data":
			data = append(data, value)
		}
	}
	return sc.Err()
}
