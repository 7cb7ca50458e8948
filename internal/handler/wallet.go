package handler

import (
	"context"
	"errors"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AlexZinkM/ton-gamefi/gamefi"
	"github.com/AlexZinkM/ton-gamefi/internal/common"
	"github.com/AlexZinkM/ton-gamefi/internal/model"
	"github.com/AlexZinkM/ton-gamefi/internal/session"
	"github.com/AlexZinkM/ton-gamefi/ton"
)

var errInvalidAddress = errors.New("invalid TON address")

// SessionService is the wallet session as seen by handlers
type SessionService interface {
	Session() model.WalletSession
	Connect(ctx context.Context) (*session.Handshake, error)
	RestoreConnection(ctx context.Context) (model.WalletSession, error)
	Disconnect(ctx context.Context) error
	SendTransaction(ctx context.Context, req model.TransactionRequest) (string, error)
	Subscribe(buffer int) (<-chan model.StatusEvent, func())
}

// RequestBuilder builds payment and NFT transfer requests
type RequestBuilder interface {
	BuildPayment(destination, amount string) (*model.TransactionRequest, error)
	BuildNftTransfer(nftAddress, to, responseDestination string) (*model.TransactionRequest, error)
}

// ContractReader reads NFT contract state
type ContractReader interface {
	GetNftItemData(ctx context.Context, address string) (*model.NftItemRecord, error)
	GetNftCollectionData(ctx context.Context, address string) (*model.NftCollectionRecord, error)
	GetNftAddressByIndex(ctx context.Context, collection string, index *big.Int) (string, error)
}

// WalletHandler serves the wallet session, payments and NFT reads
type WalletHandler struct {
	sessions  SessionService
	builder   RequestBuilder
	contracts ContractReader
	logger    *zap.Logger
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(sessions SessionService, builder RequestBuilder, contracts ContractReader, logger *zap.Logger) *WalletHandler {
	return &WalletHandler{
		sessions:  sessions,
		builder:   builder,
		contracts: contracts,
		logger:    logger,
	}
}

// Session handles GET /wallet/session
// @Summary      Get wallet session
// @Description  Returns the wallet connection status, the connected account and the UI layout for it
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /wallet/session [get]
func (h *WalletHandler) Session(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Session()
	writeJSON(w, http.StatusOK, model.SessionResponse{Session: s, View: gamefi.View(s)})
}

// Connect handles POST /wallet/connect
// @Summary      Connect wallet
// @Description  Starts a TON Connect handshake and returns the universal link with its QR code. With wait=true the call returns once the wallet answered.
// @Tags         wallet
// @Produce      json
// @Param        wait  query     bool  false  "Wait for the wallet's answer"
// @Success      200   {object}  model.ConnectResponse
// @Failure      422   {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	hs, err := h.sessions.Connect(r.Context())
	if err != nil {
		h.logger.Error("failed to start handshake", zap.Error(err))
		writeKnownError(w, err)
		return
	}

	select {
	case <-hs.Done():
		account, err := hs.Wait(r.Context())
		if err != nil {
			writeKnownError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, model.ConnectResponse{Status: model.StatusConnected, Account: account})
		return
	default:
	}

	if r.URL.Query().Get("wait") == "true" {
		account, err := hs.Wait(r.Context())
		if err != nil {
			writeKnownError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, model.ConnectResponse{Status: model.StatusConnected, Account: account})
		return
	}

	link := hs.Link
	writeJSON(w, http.StatusOK, model.ConnectResponse{Status: model.StatusConnecting, Link: &link})
}

// Restore handles POST /wallet/restore
// @Summary      Restore wallet session
// @Description  Resumes the persisted wallet session without user interaction
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /wallet/restore [post]
func (h *WalletHandler) Restore(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.RestoreConnection(r.Context())
	if err != nil {
		h.logger.Error("failed to restore session", zap.Error(err))
		writeKnownError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.SessionResponse{Session: s, View: gamefi.View(s)})
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.SessionResponse
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Disconnect(r.Context()); err != nil {
		h.logger.Error("failed to disconnect", zap.Error(err))
		writeKnownError(w, err)
		return
	}
	s := h.sessions.Session()
	writeJSON(w, http.StatusOK, model.SessionResponse{Session: s, View: gamefi.View(s)})
}

// Pay handles POST /wallet/pay
// @Summary      Send TON
// @Description  Asks the connected wallet to send TON to the specified address
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.PayRequest  true  "Payment data"
// @Success      200      {object}  model.SendResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ErrorResponse
// @Router       /wallet/pay [post]
func (h *WalletHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req model.PayRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tx, err := h.builder.BuildPayment(req.ToAddress, req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if !h.send(w, r, tx) {
		return
	}

	msg := tx.Messages[0]
	if nano, ok := new(big.Int).SetString(msg.Amount, 10); ok {
		h.logger.Info("payment sent", zap.String("to", msg.Address), zap.String("amount", common.NanoToTON(nano)))
	}
}

// TransferNft handles POST /wallet/nft/transfer
// @Summary      Transfer NFT
// @Description  Asks the connected wallet to transfer an NFT it owns. Excess fees return to the wallet.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.NftTransferRequest  true  "Transfer data"
// @Success      200      {object}  model.SendResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Failure      422      {object}  model.ErrorResponse
// @Router       /wallet/nft/transfer [post]
func (h *WalletHandler) TransferNft(w http.ResponseWriter, r *http.Request) {
	var req model.NftTransferRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s := h.sessions.Session()
	if s.Status != model.StatusConnected {
		writeKnownError(w, model.ErrWalletNotConnected)
		return
	}

	tx, err := h.builder.BuildNftTransfer(req.NftAddress, req.ToAddress, s.Account.Address)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.send(w, r, tx)
}

// send reports whether the wallet signed the request
func (h *WalletHandler) send(w http.ResponseWriter, r *http.Request, tx *model.TransactionRequest) bool {
	boc, err := h.sessions.SendTransaction(r.Context(), *tx)
	if err != nil {
		if !errors.Is(err, model.ErrTransactionRejected) {
			h.logger.Warn("transaction not sent", zap.Error(err))
		}
		writeKnownError(w, err)
		return false
	}
	writeJSON(w, http.StatusOK, model.SendResponse{BOC: boc})
	return true
}

// addressParam reads the {address} path param, answering 400 when it does not parse
func addressParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	addr := chi.URLParam(r, "address")
	if !ton.IsValidAddress(addr) {
		writeError(w, http.StatusBadRequest, errInvalidAddress)
		return "", false
	}
	return addr, true
}

// NftItem handles GET /nft/item/{address}
// @Summary      Get NFT item
// @Description  Reads the NFT item contract's get_nft_data
// @Tags         nft
// @Produce      json
// @Param        address  path      string  true  "NFT item address"
// @Success      200      {object}  model.NftItemRecord
// @Failure      400      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /nft/item/{address} [get]
func (h *WalletHandler) NftItem(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r)
	if !ok {
		return
	}

	item, err := h.contracts.GetNftItemData(r.Context(), addr)
	if err != nil {
		writeKnownError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// NftCollection handles GET /nft/collection/{address}
// @Summary      Get NFT collection
// @Description  Reads the NFT collection contract's get_collection_data
// @Tags         nft
// @Produce      json
// @Param        address  path      string  true  "NFT collection address"
// @Success      200      {object}  model.NftCollectionRecord
// @Failure      400      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /nft/collection/{address} [get]
func (h *WalletHandler) NftCollection(w http.ResponseWriter, r *http.Request) {
	addr, ok := addressParam(w, r)
	if !ok {
		return
	}

	collection, err := h.contracts.GetNftCollectionData(r.Context(), addr)
	if err != nil {
		writeKnownError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, collection)
}

// NftAddressByIndex handles GET /nft/collection/{address}/items/{index}
// @Summary      Get NFT item address by index
// @Tags         nft
// @Produce      json
// @Param        address  path      string  true  "NFT collection address"
// @Param        index    path      string  true  "Item index"
// @Success      200      {object}  model.NftAddressResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /nft/collection/{address}/items/{index} [get]
func (h *WalletHandler) NftAddressByIndex(w http.ResponseWriter, r *http.Request) {
	collection, ok := addressParam(w, r)
	if !ok {
		return
	}
	index, ok := new(big.Int).SetString(chi.URLParam(r, "index"), 10)
	if !ok || index.Sign() < 0 {
		writeError(w, http.StatusBadRequest, errors.New("index must be a non-negative integer"))
		return
	}

	addr, err := h.contracts.GetNftAddressByIndex(r.Context(), collection, index)
	if err != nil {
		writeKnownError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.NftAddressResponse{Address: addr})
}
