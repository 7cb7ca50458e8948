package storage

import (
	"context"
	"errors"
)

// Keys of persisted client state
const (
	KeySession    = "tonconnect-session"
	KeyChosenItem = "chosen-pipe"
)

// ErrNotFound is returned by Get for a missing key
var ErrNotFound = errors.New("key not found")

// Store is a small key-value store for client state that must survive restarts
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
