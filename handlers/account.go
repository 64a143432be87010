// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/pollroom/cliparse"
	"github.com/danielhkuo/pollroom/middleware"
	"github.com/danielhkuo/pollroom/models"
)

type AccountHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAccountHandler(db *sql.DB, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{db: db, cfg: cfg}
}

// GetMe handles GET /account/me
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	acct := requireAccount(h.db, h.cfg, w, r)
	if acct == nil {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AccountResponse{
		AccountID:   acct.ID,
		Email:       acct.Email,
		DisplayName: acct.DisplayName,
	})
}

// UpdateMe handles PATCH /account/me
//
// Changing the display name does not transfer room ownership; rooms
// reference the account id, and existing votes keep the name they were
// cast under.
func (h *AccountHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	acct := requireAccount(h.db, h.cfg, w, r)
	if acct == nil {
		return
	}

	var req models.UpdateAccountRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "display_name is required")
		return
	}
	if len(displayName) > 100 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "display_name must be at most 100 characters")
		return
	}

	_, err := h.db.Exec(`
		UPDATE account SET display_name = $1 WHERE id = $2
	`, displayName, acct.ID)

	if err != nil {
		slog.Error("failed to update account", "error", err, "account_id", acct.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to update account")
		return
	}

	slog.Info("display name updated", "account_id", acct.ID)

	middleware.JSONResponse(w, http.StatusOK, models.AccountResponse{
		AccountID:   acct.ID,
		Email:       acct.Email,
		DisplayName: displayName,
	})
}
