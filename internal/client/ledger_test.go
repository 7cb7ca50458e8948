package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

const testInitData = `query_id=AAH&user={"id":123456789,"first_name":"Ann"}&hash=abc`

func TestLedgerClient_Played(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/played", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body model.PlayedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, model.PlayedRequest{TgData: testInitData, Wallet: "0:abc", Score: 7}, body)

		w.Write([]byte(`{"ok":true,"reward":50,"achievements":["first-time"]}`))
	}))
	defer srv.Close()

	c := NewLedgerClient(srv.URL+"/", zap.NewNop())
	resp, err := c.Played(context.Background(), model.PlayedRequest{TgData: testInitData, Wallet: "0:abc", Score: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(50), resp.Reward)
	assert.Equal(t, []string{"first-time"}, resp.Achievements)
}

func TestLedgerClient_PlayedNotOK(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":false}`))
	}))
	defer srv.Close()

	_, err := NewLedgerClient(srv.URL, zap.NewNop()).Played(context.Background(), model.PlayedRequest{})
	assert.ErrorIs(t, err, model.ErrLedgerUnreachable)
}

func TestLedgerClient_Purchases(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/purchases", r.URL.Path)
		assert.Equal(t, testInitData, r.URL.Query().Get("auth"))

		w.Write([]byte(`{"ok":true,"purchases":[{"systemName":"pipe-red"}]}`))
	}))
	defer srv.Close()

	records, err := NewLedgerClient(srv.URL, zap.NewNop()).Purchases(context.Background(), testInitData)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "pipe-red", records[0].SystemName)
}

func TestLedgerClient_PurchasesFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
		},
		{
			name: "not ok",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"ok":false}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"ok":`))
			},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewLedgerClient(srv.URL, zap.NewNop()).Purchases(context.Background(), testInitData)
			assert.ErrorIs(t, err, model.ErrLedgerUnreachable)
		})
	}
}

func TestLedgerClient_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewLedgerClient(url, zap.NewNop()).Purchases(context.Background(), testInitData)
	assert.ErrorIs(t, err, model.ErrLedgerUnreachable)
}
