package model

import (
	"errors"
	"fmt"
)

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Error kinds. Callers match them with errors.Is.
var (
	ErrConnectionRejected  = errors.New("connection rejected")
	ErrWalletNotConnected  = errors.New("wallet not connected")
	ErrConnectionLost      = errors.New("connection lost")
	ErrChainQueryFailed    = errors.New("chain query failed")
	ErrTransactionRejected = errors.New("transaction rejected")
	ErrTransactionExpired  = errors.New("transaction expired")
	ErrLedgerUnreachable   = errors.New("ledger unreachable")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUnknownItem         = errors.New("unknown item")
	ErrItemNotOwned        = errors.New("item not owned")
)

// Wallet error codes of the TON Connect protocol
const (
	WalletCodeUnknown          = 0
	WalletCodeBadRequest       = 1
	WalletCodeManifestNotFound = 2
	WalletCodeManifestInvalid  = 3
	WalletCodeUnknownApp       = 100
	WalletCodeUserRejected     = 300
	WalletCodeMethodNotSupport = 400
)

// WalletError is an error answered by the wallet
type WalletError struct {
	Kind    error
	Code    int
	Message string
}

func (e *WalletError) Error() string {
	return fmt.Sprintf("%v: wallet code %d: %s", e.Kind, e.Code, e.Message)
}

func (e *WalletError) Unwrap() error {
	return e.Kind
}

// ErrorCode returns the API code for a known error kind
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrConnectionRejected):
		return "CONNECTION_REJECTED"
	case errors.Is(err, ErrWalletNotConnected):
		return "WALLET_NOT_CONNECTED"
	case errors.Is(err, ErrConnectionLost):
		return "CONNECTION_LOST"
	case errors.Is(err, ErrChainQueryFailed):
		return "CHAIN_QUERY_FAILED"
	case errors.Is(err, ErrTransactionRejected):
		return "TRANSACTION_REJECTED"
	case errors.Is(err, ErrTransactionExpired):
		return "TRANSACTION_EXPIRED"
	case errors.Is(err, ErrLedgerUnreachable):
		return "LEDGER_UNREACHABLE"
	case errors.Is(err, ErrInsufficientBalance):
		return "INSUFFICIENT_BALANCE"
	case errors.Is(err, ErrUnknownItem):
		return "UNKNOWN_ITEM"
	case errors.Is(err, ErrItemNotOwned):
		return "ITEM_NOT_OWNED"
	}
	return ""
}
