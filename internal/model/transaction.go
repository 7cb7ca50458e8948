package model

import (
	"fmt"
	"math/big"
	"time"
)

// Message is one outgoing internal message of a transaction request.
// Amount is a decimal string of nanotons, never a fractional value.
type Message struct {
	Address   string `json:"address"`
	Amount    string `json:"amount"`
	Payload   string `json:"payload,omitempty"`   // base64 BOC
	StateInit string `json:"stateInit,omitempty"` // base64 BOC
}

// TransactionRequest is handed to the wallet for signing and broadcast
type TransactionRequest struct {
	ValidUntil int64     `json:"valid_until"`
	Network    string    `json:"network,omitempty"`
	From       string    `json:"from,omitempty"`
	Messages   []Message `json:"messages"`
}

// Validate checks the request is still submittable at now
func (r *TransactionRequest) Validate(now time.Time) error {
	if len(r.Messages) == 0 {
		return fmt.Errorf("transaction has no messages")
	}
	if r.ValidUntil <= now.Unix() {
		return fmt.Errorf("transaction expired at %d", r.ValidUntil)
	}
	for i, m := range r.Messages {
		if m.Address == "" {
			return fmt.Errorf("message %d: empty destination", i)
		}
		amount, ok := new(big.Int).SetString(m.Amount, 10)
		if !ok || amount.Sign() < 0 {
			return fmt.Errorf("message %d: amount %q is not a non-negative integer", i, m.Amount)
		}
	}
	return nil
}

// Expiry returns ValidUntil as time
func (r *TransactionRequest) Expiry() time.Time {
	return time.Unix(r.ValidUntil, 0)
}

// PayRequest represents request for POST /wallet/pay
type PayRequest struct {
	ToAddress string `json:"toAddress" binding:"required"`
	Amount    string `json:"amount" binding:"required"` // TON, e.g. "1.5"
}

// NftTransferRequest represents request for POST /wallet/nft/transfer
type NftTransferRequest struct {
	NftAddress string `json:"nftAddress" binding:"required"`
	ToAddress  string `json:"toAddress" binding:"required"`
}

// SendResponse is returned after the wallet accepted a request
type SendResponse struct {
	BOC string `json:"boc"`
}
