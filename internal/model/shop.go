package model

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/url"
	"time"
)

// ShopItem is a priced cosmetic item. Index 0 is the free default item.
type ShopItem struct {
	Index      int      `json:"index"`
	SystemName string   `json:"systemName"`
	Price      *big.Int `json:"price"` // jetton base units
}

// PurchaseRecord is one entry of the ledger's purchase list
type PurchaseRecord struct {
	SystemName string   `json:"systemName"`
	Price      *big.Int `json:"price,omitempty"`
}

// CorrelationTag lets the ledger match an on-chain transfer to a purchase attempt
type CorrelationTag struct {
	UserID int64 `json:"userId"`
	ItemID int   `json:"itemId"`
}

// String is the wire text of the tag, "<userId>:<itemId>"
func (t CorrelationTag) String() string {
	return fmt.Sprintf("%d:%d", t.UserID, t.ItemID)
}

// TelegramUser is the user object inside Telegram WebApp init data
type TelegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// ParseInitData extracts the user from raw Telegram WebApp init data.
// The signature is not checked here, the ledger does that.
func ParseInitData(raw string) (*TelegramUser, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse init data: %w", err)
	}
	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, fmt.Errorf("init data has no user")
	}
	var user TelegramUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal init data user: %w", err)
	}
	if user.ID == 0 {
		return nil, fmt.Errorf("init data user has no id")
	}
	return &user, nil
}

// PlayedResult is the outcome of a round-end submission: Reward or Failure
type PlayedResult interface {
	isPlayedResult()
}

// Reward is a successful round-end submission
type Reward struct {
	Amount       int64    `json:"reward"`
	Achievements []string `json:"achievements"`
}

// Failure carries a user-facing reason
type Failure struct {
	Reason string `json:"error"`
}

func (Reward) isPlayedResult()  {}
func (Failure) isPlayedResult() {}

// PlayedRequest is the body of the ledger's POST /played
type PlayedRequest struct {
	TgData string `json:"tg_data"`
	Wallet string `json:"wallet"`
	Score  int    `json:"score"`
}

// PlayedResponse is the ledger's answer to POST /played
type PlayedResponse struct {
	OK           bool     `json:"ok"`
	Reward       int64    `json:"reward"`
	Achievements []string `json:"achievements"`
}

// PurchasesResponse is the ledger's answer to GET /purchases
type PurchasesResponse struct {
	OK        bool             `json:"ok"`
	Purchases []PurchaseRecord `json:"purchases"`
}

// PurchasesView is what the shop shows
type PurchasesView struct {
	Items     []ShopItem       `json:"items"`
	Purchases []PurchaseRecord `json:"purchases"`
	Equipped  int              `json:"equipped"`
	FetchedAt time.Time        `json:"fetchedAt"`
	Stale     bool             `json:"stale"`
}

// BuyRequest represents request for POST /shop/buy
type BuyRequest struct {
	InitData string `json:"initData" binding:"required"`
	ItemID   int    `json:"itemId"`
}

// EquipRequest represents request for POST /shop/equip
type EquipRequest struct {
	ItemID int `json:"itemId"`
}

// ShopOpenRequest represents request for POST /shop/open
type ShopOpenRequest struct {
	InitData string `json:"initData" binding:"required"`
}

// PlayedSubmitRequest represents request for POST /game/played
type PlayedSubmitRequest struct {
	InitData string `json:"initData" binding:"required"`
	Score    int    `json:"score"`
}

// PlayedSubmitResponse flattens PlayedResult for JSON
type PlayedSubmitResponse struct {
	OK           bool     `json:"ok"`
	Reward       int64    `json:"reward,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// Placement of the connect control
type Placement string

const (
	PlacementCenter Placement = "center"
	PlacementCorner Placement = "corner"
)

// View is the UI layout derived from the session status
type View struct {
	GameMode       bool      `json:"gameMode"`
	BalanceVisible bool      `json:"balanceVisible"`
	ShopVisible    bool      `json:"shopVisible"`
	ConnectControl Placement `json:"connectControl"`
}
