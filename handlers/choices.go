// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollroom/access"
	"github.com/danielhkuo/pollroom/cliparse"
	"github.com/danielhkuo/pollroom/identity"
	"github.com/danielhkuo/pollroom/middleware"
	"github.com/danielhkuo/pollroom/models"
)

type ChoiceHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewChoiceHandler(db *sql.DB, cfg cliparse.Config) *ChoiceHandler {
	return &ChoiceHandler{db: db, cfg: cfg}
}

// CreateChoice handles POST /choices
func (h *ChoiceHandler) CreateChoice(w http.ResponseWriter, r *http.Request) {
	acct := requireAccount(h.db, h.cfg, w, r)
	if acct == nil {
		return
	}

	var req models.CreateChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.QuestionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "question_id is required")
		return
	}
	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "text is required")
		return
	}

	question, err := loadQuestion(h.db, req.QuestionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	room, err := loadRoomByID(h.db, question.RoomID)
	if err != nil {
		slog.Error("failed to query room", "error", err, "room_id", question.RoomID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	id, _ := identity.Resolve(acct, "")
	if err := access.CheckCreator(id, room); err != nil {
		writeDomainError(w, err)
		return
	}

	choice := models.Choice{
		ID:         uuid.NewString(),
		QuestionID: question.ID,
		Text:       req.Text,
	}

	_, err = h.db.Exec(`
		INSERT INTO choice (id, question_id, text, created_at)
		VALUES ($1, $2, $3, $4)
	`, choice.ID, choice.QuestionID, choice.Text, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert choice", "error", err, "question_id", question.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to create choice")
		return
	}

	slog.Info("choice created", "question_id", question.ID, "choice_id", choice.ID)

	middleware.JSONResponse(w, http.StatusCreated, choice)
}
