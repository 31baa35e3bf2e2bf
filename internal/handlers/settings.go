package handlers

//go:generate mockgen -source=settings.go -destination=settings_mock.go -package=handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/logger"
	"github.com/sbilibin2017/gw-wallet-ledger/internal/models"
)

// AutoTopUpChecker evaluates auto top-up eligibility.
type AutoTopUpChecker interface {
	CheckAutoTopUp(ctx context.Context, userID uuid.UUID) (*models.AutoTopUpAdvice, error)
}

// SettingsManager reads and updates wallet settings.
type SettingsManager interface {
	GetSettings(ctx context.Context, userID uuid.UUID) (*models.WalletSettings, error)
	UpdateSettings(ctx context.Context, userID uuid.UUID, delta models.SettingsUpdate) (*models.WalletSettings, error)
}

// NewAutoTopUpHandler returns an HTTP handler advising whether the wallet needs a top-up.
// @Summary Check auto top-up
// @Description Reports whether the balance is under the configured threshold. Never charges anything.
// @Tags settings
// @Produce json
// @Success 200 {object} models.AutoTopUpAdvice "Advice"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /wallet/auto-top-up [get]
// @Security BearerAuth
func NewAutoTopUpHandler(checker AutoTopUpChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		advice, err := checker.CheckAutoTopUp(r.Context(), claims.UserID)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, advice)
	}
}

// NewGetSettingsHandler returns an HTTP handler returning the caller's effective settings.
// @Summary Get wallet settings
// @Tags settings
// @Produce json
// @Success 200 {object} models.WalletSettings "Settings"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /wallet/settings [get]
// @Security BearerAuth
func NewGetSettingsHandler(manager SettingsManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}

		settings, err := manager.GetSettings(r.Context(), claims.UserID)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, settings)
	}
}

// NewUpdateSettingsHandler returns an HTTP handler applying a partial settings update.
// Updates are approved by an admin acting on the wallet named by user_id.
// @Summary Update wallet settings
// @Tags settings
// @Accept json
// @Produce json
// @Param user_id query string true "Wallet owner"
// @Param request body models.SettingsUpdate true "Fields to change"
// @Success 200 {object} models.WalletSettings "Updated settings"
// @Failure 400 {object} handlers.ErrorResponse "Validation error"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.ErrorResponse "Forbidden"
// @Router /wallet/settings [patch]
// @Security BearerAuth
func NewUpdateSettingsHandler(manager SettingsManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := requireClaims(w, r)
		if !ok {
			return
		}
		if !claims.IsAdmin() {
			logger.Log.Warnw("settings update without admin role", "userID", claims.UserID)
			writeError(w, http.StatusForbidden, "Settings updates require the admin role")
			return
		}

		raw := r.URL.Query().Get("user_id")
		if raw == "" {
			writeError(w, http.StatusBadRequest, "user_id is required")
			return
		}
		userID, ok := targetUser(w, claims, raw)
		if !ok {
			return
		}

		var delta models.SettingsUpdate
		if err := json.NewDecoder(r.Body).Decode(&delta); err != nil {
			logger.Log.Errorw("failed to decode settings update", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		settings, err := manager.UpdateSettings(ctx, userID, delta)
		if err != nil {
			writeLedgerError(w, err)
			return
		}

		logger.Log.Infow("wallet settings updated", "userID", userID, "by", claims.Actor())
		writeJSON(w, http.StatusOK, settings)
	}
}
