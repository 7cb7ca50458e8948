package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AlexZinkM/ton-gamefi/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: model.ErrorCode(err)})
}

// writeKnownError picks the status from the error kind
func writeKnownError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrWalletNotConnected):
		return http.StatusConflict
	case errors.Is(err, model.ErrConnectionRejected),
		errors.Is(err, model.ErrTransactionRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, model.ErrUnknownItem):
		return http.StatusNotFound
	case errors.Is(err, model.ErrItemNotOwned):
		return http.StatusForbidden
	case errors.Is(err, model.ErrTransactionExpired):
		return http.StatusGatewayTimeout
	case errors.Is(err, model.ErrChainQueryFailed),
		errors.Is(err, model.ErrLedgerUnreachable),
		errors.Is(err, model.ErrConnectionLost):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}
