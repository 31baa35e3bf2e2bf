package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/jwt"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
)

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`

	// Exceeded limit window, set on 422 responses
	LimitKind models.LimitKind `json:"limit_kind,omitempty"`

	// Correlation id of a transfer that failed after its debit
	CorrelationID string `json:"correlation_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// errorResponse maps a ledger error onto an HTTP status and body.
func errorResponse(err error) (int, ErrorResponse) {
	var limitErr *models.SpendingLimitError
	switch {
	case errors.As(err, &limitErr):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: limitErr.Error(), LimitKind: limitErr.Kind}
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidTransfer):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error()}
	case errors.Is(err, models.ErrWalletNotFound):
		return http.StatusNotFound, ErrorResponse{Error: "Wallet not found"}
	case errors.Is(err, models.ErrInsufficientFunds):
		return http.StatusConflict, ErrorResponse{Error: "Insufficient funds"}
	case errors.Is(err, models.ErrLedgerBusy), errors.Is(err, models.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{Error: "Service temporarily unavailable"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"}
	}
}

func writeLedgerError(w http.ResponseWriter, err error) {
	status, resp := errorResponse(err)
	writeJSON(w, status, resp)
}

// requireClaims returns the claims AuthMiddleware stored, or writes 401.
func requireClaims(w http.ResponseWriter, r *http.Request) (*jwt.Claims, bool) {
	claims, ok := jwt.ClaimsFromContext(r.Context())
	if !ok {
		logger.Log.Error("unauthorized request: no token claims")
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	return claims, true
}

// targetUser resolves the wallet a request acts on. Only admins may name a
// wallet other than their own.
func targetUser(w http.ResponseWriter, claims *jwt.Claims, raw string) (uuid.UUID, bool) {
	if raw == "" {
		return claims.UserID, true
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user_id")
		return uuid.Nil, false
	}
	if userID != claims.UserID && !claims.IsAdmin() {
		logger.Log.Warnw("non-admin acting on another wallet", "userID", claims.UserID, "target", userID)
		writeError(w, http.StatusForbidden, "Forbidden")
		return uuid.Nil, false
	}
	return userID, true
}
