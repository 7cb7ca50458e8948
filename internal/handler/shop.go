package handler

import (
	"context"
	"math/big"
	"net/http"

	"go.uber.org/zap"

	"github.com/AlexZinkM/ton-gamefi/internal/common"
	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

// ShopService is the purchase coordinator as seen by handlers
type ShopService interface {
	GetBalance(ctx context.Context) *big.Int
	ShowBalance(ctx context.Context) *big.Int
	HideBalance()
	Buy(ctx context.Context, user model.TelegramUser, itemIndex int) (string, error)
	OpenShop(ctx context.Context, initData string) (model.PurchasesView, error)
	CloseShop()
	Purchases() model.PurchasesView
	Equip(ctx context.Context, itemIndex int) error
	SubmitPlayed(ctx context.Context, initData string, score int) model.PlayedResult
}

// ShopHandler serves balance, shop and round-end endpoints
type ShopHandler struct {
	shop     ShopService
	sessions SessionService
	decimals int32
	logger   *zap.Logger
}

// NewShopHandler creates a new ShopHandler. decimals is the token's decimals used for display.
func NewShopHandler(shop ShopService, sessions SessionService, decimals int32, logger *zap.Logger) *ShopHandler {
	return &ShopHandler{
		shop:     shop,
		sessions: sessions,
		decimals: decimals,
		logger:   logger,
	}
}

func (h *ShopHandler) balanceResponse(balance *big.Int) model.BalanceResponse {
	var addr string
	if s := h.sessions.Session(); s.Account != nil {
		addr = s.Account.Address
	}
	return model.BalanceResponse{
		Address: addr,
		Balance: common.FromBaseUnits(balance, h.decimals),
		Raw:     balance.String(),
	}
}

// Balance handles GET /balance
// @Summary      Get token balance
// @Description  Gets the connected wallet's game token balance. Reads as zero when unavailable.
// @Tags         balance
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Router       /balance [get]
func (h *ShopHandler) Balance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.balanceResponse(h.shop.GetBalance(r.Context())))
}

// ShowBalance handles POST /balance/show
// @Summary      Show balance
// @Description  Returns the balance and keeps refreshing it in the background until hidden
// @Tags         balance
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Router       /balance/show [post]
func (h *ShopHandler) ShowBalance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.balanceResponse(h.shop.ShowBalance(r.Context())))
}

// HideBalance handles POST /balance/hide
// @Summary      Hide balance
// @Description  Stops the background balance refresh
// @Tags         balance
// @Success      204
// @Router       /balance/hide [post]
func (h *ShopHandler) HideBalance(w http.ResponseWriter, r *http.Request) {
	h.shop.HideBalance()
	w.WriteHeader(http.StatusNoContent)
}

// OpenShop handles POST /shop/open
// @Summary      Open shop
// @Description  Loads the player's purchases and keeps refreshing them while the shop is open
// @Tags         shop
// @Accept       json
// @Produce      json
// @Param        request  body      model.ShopOpenRequest  true  "Telegram init data"
// @Success      200      {object}  model.PurchasesView
// @Failure      502      {object}  model.ErrorResponse
// @Router       /shop/open [post]
func (h *ShopHandler) OpenShop(w http.ResponseWriter, r *http.Request) {
	var req model.ShopOpenRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := h.shop.OpenShop(r.Context(), req.InitData)
	if err != nil {
		writeKnownError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// CloseShop handles POST /shop/close
// @Summary      Close shop
// @Tags         shop
// @Success      204
// @Router       /shop/close [post]
func (h *ShopHandler) CloseShop(w http.ResponseWriter, r *http.Request) {
	h.shop.CloseShop()
	w.WriteHeader(http.StatusNoContent)
}

// Shop handles GET /shop
// @Summary      Get shop
// @Description  Returns the catalogue, the last fetched purchases and the equipped item
// @Tags         shop
// @Produce      json
// @Success      200  {object}  model.PurchasesView
// @Router       /shop [get]
func (h *ShopHandler) Shop(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.shop.Purchases())
}

// Buy handles POST /shop/buy
// @Summary      Buy item
// @Description  Pays for an item with a token transfer signed in the connected wallet
// @Tags         shop
// @Accept       json
// @Produce      json
// @Param        request  body      model.BuyRequest  true  "Purchase data"
// @Success      200      {object}  model.SendResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      402      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ErrorResponse
// @Router       /shop/buy [post]
func (h *ShopHandler) Buy(w http.ResponseWriter, r *http.Request) {
	var req model.BuyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, err := model.ParseInitData(req.InitData)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	boc, err := h.shop.Buy(r.Context(), *user, req.ItemID)
	if err != nil {
		writeKnownError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SendResponse{BOC: boc})
}

// Equip handles POST /shop/equip
// @Summary      Equip item
// @Description  Chooses a free or purchased item
// @Tags         shop
// @Accept       json
// @Produce      json
// @Param        request  body      model.EquipRequest  true  "Item"
// @Success      200      {object}  model.PurchasesView
// @Failure      403      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /shop/equip [post]
func (h *ShopHandler) Equip(w http.ResponseWriter, r *http.Request) {
	var req model.EquipRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.shop.Equip(r.Context(), req.ItemID); err != nil {
		writeKnownError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.shop.Purchases())
}

// Played handles POST /game/played
// @Summary      Submit round
// @Description  Reports a finished round and returns the reward with new achievements
// @Tags         game
// @Accept       json
// @Produce      json
// @Param        request  body      model.PlayedSubmitRequest  true  "Round result"
// @Success      200      {object}  model.PlayedSubmitResponse
// @Router       /game/played [post]
func (h *ShopHandler) Played(w http.ResponseWriter, r *http.Request) {
	var req model.PlayedSubmitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	switch res := h.shop.SubmitPlayed(r.Context(), req.InitData, req.Score).(type) {
	case model.Reward:
		writeJSON(w, http.StatusOK, model.PlayedSubmitResponse{OK: true, Reward: res.Amount, Achievements: res.Achievements})
	case model.Failure:
		writeJSON(w, http.StatusOK, model.PlayedSubmitResponse{Error: res.Reason})
	}
}
