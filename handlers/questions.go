// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollroom/access"
	"github.com/danielhkuo/pollroom/cliparse"
	"github.com/danielhkuo/pollroom/identity"
	"github.com/danielhkuo/pollroom/middleware"
	"github.com/danielhkuo/pollroom/models"
)

type QuestionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewQuestionHandler(db *sql.DB, cfg cliparse.Config) *QuestionHandler {
	return &QuestionHandler{db: db, cfg: cfg}
}

// CreateQuestion handles POST /questions
// New questions accept votes immediately and keep results hidden.
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	acct := requireAccount(h.db, h.cfg, w, r)
	if acct == nil {
		return
	}

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.RoomID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "room_id is required")
		return
	}
	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "text is required")
		return
	}

	room, err := loadRoomByID(h.db, req.RoomID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Room not found")
		return
	}
	if err != nil {
		slog.Error("failed to query room", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	id, _ := identity.Resolve(acct, "")
	if err := access.CheckCreator(id, room); err != nil {
		writeDomainError(w, err)
		return
	}

	question := models.Question{
		ID:          uuid.NewString(),
		RoomID:      room.ID,
		Text:        req.Text,
		IsActive:    true,
		ShowResults: false,
	}

	_, err = h.db.Exec(`
		INSERT INTO question (id, room_id, text, is_active, show_results, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, question.ID, question.RoomID, question.Text, question.IsActive, question.ShowResults, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert question", "error", err, "room_id", room.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to create question")
		return
	}

	slog.Info("question created", "room_id", room.ID, "question_id", question.ID)

	middleware.JSONResponse(w, http.StatusCreated, question)
}

// PatchQuestion handles PATCH /questions/{id}
//
// Toggles is_active and/or show_results. The two flags are independent,
// order-commutative writes; absent fields are left untouched.
func (h *QuestionHandler) PatchQuestion(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")

	acct := requireAccount(h.db, h.cfg, w, r)
	if acct == nil {
		return
	}

	var req models.PatchQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.IsActive == nil && req.ShowResults == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "nothing to update")
		return
	}

	question, err := loadQuestion(h.db, questionID)
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

	// Each supplied flag writes only its own column, so two concurrent
	// patches touching different flags both land instead of the later
	// one restoring a stale value for the other column.
	var sets []string
	var args []interface{}
	if req.IsActive != nil {
		args = append(args, *req.IsActive)
		sets = append(sets, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if req.ShowResults != nil {
		args = append(args, *req.ShowResults)
		sets = append(sets, fmt.Sprintf("show_results = $%d", len(args)))
	}
	args = append(args, question.ID)

	_, err = h.db.Exec(
		fmt.Sprintf("UPDATE question SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args)),
		args...)

	if err != nil {
		slog.Error("failed to update question", "error", err, "question_id", question.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to update question")
		return
	}

	updated, err := loadQuestion(h.db, question.ID)
	if err != nil {
		slog.Error("failed to reload question", "error", err, "question_id", question.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	slog.Info("question updated", "question_id", updated.ID,
		"is_active", updated.IsActive, "show_results", updated.ShowResults)

	middleware.JSONResponse(w, http.StatusOK, updated)
}
