// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/pollroom/access"
	"github.com/danielhkuo/pollroom/auth"
	"github.com/danielhkuo/pollroom/cliparse"
	"github.com/danielhkuo/pollroom/identity"
	"github.com/danielhkuo/pollroom/ledger"
	"github.com/danielhkuo/pollroom/middleware"
	"github.com/danielhkuo/pollroom/models"
)

// currentAccount resolves the bearer credential to an account row.
// Returns (nil, nil) when no credential was supplied - the caller may
// proceed as a guest. A present-but-bad credential is an error; it is
// never silently downgraded to guest access.
func currentAccount(db *sql.DB, cfg cliparse.Config, r *http.Request) (*models.Account, error) {
	token, err := auth.BearerToken(r)
	if errors.Is(err, auth.ErrNoCredential) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	accountID, err := auth.ParseAccountToken(token, cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	var acct models.Account
	err = db.QueryRow(`
		SELECT id, email, username, display_name, created_at
		FROM account WHERE id = $1
	`, accountID).Scan(&acct.ID, &acct.Email, &acct.Username, &acct.DisplayName, &acct.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, auth.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query account: %w", err)
	}
	return &acct, nil
}

// requireAccount is currentAccount for endpoints where guests are not
// allowed; it writes the 401 itself and returns nil on failure.
func requireAccount(db *sql.DB, cfg cliparse.Config, w http.ResponseWriter, r *http.Request) *models.Account {
	acct, err := currentAccount(db, cfg, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "Invalid credential")
		return nil
	}
	if acct == nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "Authentication required")
		return nil
	}
	return acct
}

func loadRoomBySlug(db *sql.DB, slug string) (models.Room, error) {
	var room models.Room
	err := db.QueryRow(`
		SELECT id, slug, title, description, creator_account_id, creator_name, created_at
		FROM room WHERE slug = $1
	`, slug).Scan(&room.ID, &room.Slug, &room.Title, &room.Description,
		&room.CreatorAccountID, &room.CreatorName, &room.CreatedAt)
	return room, err
}

func loadRoomByID(db *sql.DB, id string) (models.Room, error) {
	var room models.Room
	err := db.QueryRow(`
		SELECT id, slug, title, description, creator_account_id, creator_name, created_at
		FROM room WHERE id = $1
	`, id).Scan(&room.ID, &room.Slug, &room.Title, &room.Description,
		&room.CreatorAccountID, &room.CreatorName, &room.CreatedAt)
	return room, err
}

func loadBans(db *sql.DB, roomID string) ([]string, error) {
	rows, err := db.Query(`
		SELECT banned_identifier FROM room_ban WHERE room_id = $1
	`, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bans: %w", err)
	}
	defer rows.Close()

	var bans []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("failed to scan ban: %w", err)
		}
		bans = append(bans, b)
	}
	return bans, rows.Err()
}

func loadQuestion(db *sql.DB, id string) (models.Question, error) {
	var q models.Question
	err := db.QueryRow(`
		SELECT id, room_id, text, is_active, show_results
		FROM question WHERE id = $1
	`, id).Scan(&q.ID, &q.RoomID, &q.Text, &q.IsActive, &q.ShowResults)
	return q, err
}

// writeDomainError maps the error taxonomy onto the wire contract. Any
// error outside the taxonomy is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrNoIdentity):
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeNoIdentity,
			"supply guest_nickname or set a display name on your profile")
	case errors.Is(err, access.ErrBanned):
		middleware.ErrorResponse(w, http.StatusForbidden, models.CodeBanned,
			"you are banned from this room")
	case errors.Is(err, access.ErrNotCreator):
		middleware.ErrorResponse(w, http.StatusForbidden, models.CodeNotCreator,
			"only the room creator can do this")
	case errors.Is(err, access.ErrQuestionClosed):
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeQuestionClosed,
			"question is not accepting votes")
	case errors.Is(err, ledger.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeAlreadyVoted,
			"you already voted on this question")
	case errors.Is(err, ledger.ErrChoiceNotInQuestion):
		middleware.ErrorResponse(w, http.StatusBadRequest, models.CodeChoiceNotInQuestion,
			"choice does not belong to this question")
	default:
		slog.Error("unexpected error", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Internal error")
	}
}

// isUniqueViolation matches the unique-constraint error text of both
// supported drivers (modernc sqlite and lib/pq).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
