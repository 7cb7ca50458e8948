package model

import "time"

// Status is the wallet connection status
type Status string

const (
	StatusDisconnected Status = "DISCONNECTED"
	StatusConnecting   Status = "CONNECTING"
	StatusConnected    Status = "CONNECTED"
)

// Account is the wallet account reported by the wallet on connect
type Account struct {
	Address         string `json:"address"`         // raw form, e.g. "0:83df..."
	Chain           string `json:"chain"`           // "-239" mainnet, "-3" testnet
	PublicKey       string `json:"publicKey,omitempty"`
	WalletStateInit string `json:"walletStateInit,omitempty"`
}

// WalletSession is the single wallet session of the running service
type WalletSession struct {
	Status  Status   `json:"status"`
	Account *Account `json:"account"`
}

// Clone returns a deep copy that callers may keep
func (s WalletSession) Clone() WalletSession {
	out := WalletSession{Status: s.Status}
	if s.Account != nil {
		acc := *s.Account
		out.Account = &acc
	}
	return out
}

// StatusEvent describes one status transition
type StatusEvent struct {
	From    Status    `json:"from"`
	To      Status    `json:"to"`
	Account *Account  `json:"account,omitempty"`
	At      time.Time `json:"at"`
}

// ConnectLink is what the user opens (or scans) to approve a connection
type ConnectLink struct {
	UniversalLink string `json:"universalLink"`
	QR            string `json:"QR"` // base64 PNG
}

// SessionResponse represents response for GET /wallet/session
type SessionResponse struct {
	Session WalletSession `json:"session"`
	View    View          `json:"view"`
}

// ConnectResponse represents response for POST /wallet/connect.
// Link is empty when the wallet is already connected.
type ConnectResponse struct {
	Status  Status       `json:"status"`
	Link    *ConnectLink `json:"link,omitempty"`
	Account *Account     `json:"account,omitempty"`
}

// StatusMessage is pushed over the status WebSocket
type StatusMessage struct {
	Event StatusEvent `json:"event"`
	View  View        `json:"view"`
}
