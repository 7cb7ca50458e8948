package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/skip2/go-qrcode"

	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

// Handshake is a connection attempt waiting for the wallet's approval
type Handshake struct {
	Link model.ConnectLink

	once    sync.Once
	done    chan struct{}
	account *model.Account
	err     error
}

func newHandshake(link model.ConnectLink) *Handshake {
	return &Handshake{Link: link, done: make(chan struct{})}
}

func completedHandshake(account *model.Account) *Handshake {
	h := newHandshake(model.ConnectLink{})
	h.finish(account, nil)
	return h
}

// Wait blocks until the wallet answers, the handshake times out or ctx is done.
// Leaving on ctx does not cancel the handshake.
func (h *Handshake) Wait(ctx context.Context) (*model.Account, error) {
	select {
	case <-h.done:
		if h.err != nil {
			return nil, h.err
		}
		acc := *h.account
		return &acc, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Done is closed when the handshake is over
func (h *Handshake) Done() <-chan struct{} {
	return h.done
}

func (h *Handshake) finish(account *model.Account, err error) {
	h.once.Do(func() {
		h.account = account
		h.err = err
		close(h.done)
	})
}

// generateQR renders the connect link as a base64 PNG
func generateQR(link string) (string, error) {
	qr, err := qrcode.New(link, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
