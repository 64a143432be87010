// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollroom/access"
	"github.com/danielhkuo/pollroom/cliparse"
	"github.com/danielhkuo/pollroom/identity"
	"github.com/danielhkuo/pollroom/ledger"
	"github.com/danielhkuo/pollroom/middleware"
	"github.com/danielhkuo/pollroom/models"
)

type VoteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg}
}

// CastVote handles POST /votes
//
// Identity comes from the bearer credential when present, otherwise from
// guest_nickname in the body; an authenticated request ignores the
// nickname. The ledger's unique constraint makes the duplicate check and
// the insert one atomic step, so a double-click cannot yield two votes.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	acct, err := currentAccount(h.db, h.cfg, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "Invalid credential")
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.ChoiceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "choice_id is required")
		return
	}

	voter, err := identity.Resolve(acct, req.GuestNickname)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var choice models.Choice
	err = h.db.QueryRow(`
		SELECT id, question_id, text FROM choice WHERE id = $1
	`, req.ChoiceID).Scan(&choice.ID, &choice.QuestionID, &choice.Text)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Choice not found")
		return
	}
	if err != nil {
		slog.Error("failed to query choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	question, err := loadQuestion(h.db, choice.QuestionID)
	if err != nil {
		slog.Error("failed to query question", "error", err, "question_id", choice.QuestionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	bans, err := loadBans(h.db, question.RoomID)
	if err != nil {
		slog.Error("failed to query bans", "error", err, "room_id", question.RoomID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if err := access.CheckVote(voter, bans, question); err != nil {
		writeDomainError(w, err)
		return
	}

	vote, err := ledger.CastVote(h.db, question, choice, voter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	slog.Info("vote cast", "question_id", question.ID, "choice_id", choice.ID, "voter", vote.VoterName)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID: vote.ID,
		CastAt: vote.CastAt,
	})
}
