package session

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

const protocolVersion = "2"

type connectItem struct {
	Name string `json:"name"`
}

type connectRequest struct {
	ManifestURL string        `json:"manifestUrl"`
	Items       []connectItem `json:"items"`
}

// universalLink builds the link a wallet opens to approve the connection
func universalLink(base, clientID, manifestURL, returnStrategy string) (string, error) {
	r, err := json.Marshal(connectRequest{
		ManifestURL: manifestURL,
		Items:       []connectItem{{Name: "ton_addr"}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal connect request: %w", err)
	}

	q := url.Values{}
	q.Set("v", protocolVersion)
	q.Set("id", clientID)
	q.Set("r", string(r))
	if returnStrategy != "" {
		q.Set("ret", returnStrategy)
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + q.Encode(), nil
}

// messageID accepts both the numeric ids of wallet events and the string ids of responses
type messageID string

func (id *messageID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = messageID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid message id %s", b)
	}
	*id = messageID(n.String())
	return nil
}

type walletErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// walletMessage is anything the wallet sends: an event or a response to a request
type walletMessage struct {
	Event   string           `json:"event,omitempty"`
	ID      messageID        `json:"id"`
	Payload json.RawMessage  `json:"payload,omitempty"`
	Result  json.RawMessage  `json:"result,omitempty"`
	Error   *walletErrorBody `json:"error,omitempty"`
}

type connectPayload struct {
	Items []struct {
		Name            string `json:"name"`
		Address         string `json:"address"`
		Network         string `json:"network"`
		PublicKey       string `json:"publicKey"`
		WalletStateInit string `json:"walletStateInit"`
	} `json:"items"`
}

func (p connectPayload) account() (*model.Account, error) {
	for _, item := range p.Items {
		if item.Name != "ton_addr" {
			continue
		}
		if item.Address == "" {
			return nil, fmt.Errorf("ton_addr item has no address")
		}
		return &model.Account{
			Address:         item.Address,
			Chain:           item.Network,
			PublicKey:       item.PublicKey,
			WalletStateInit: item.WalletStateInit,
		}, nil
	}
	return nil, fmt.Errorf("connect payload has no ton_addr item")
}

// appRequest is an RPC call from the app to the wallet
type appRequest struct {
	Method string   `json:"method"`
	Params []string `json:"params"`
	ID     string   `json:"id"`
}

func newAppRequest(method string, id uint64, params ...string) appRequest {
	if params == nil {
		params = []string{}
	}
	return appRequest{Method: method, Params: params, ID: strconv.FormatUint(id, 10)}
}

// walletError maps a wallet error answer to an error kind
func walletError(kind error, body *walletErrorBody) *model.WalletError {
	return &model.WalletError{Kind: kind, Code: body.Code, Message: body.Message}
}
