// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollroom/access"
	"github.com/danielhkuo/pollroom/cliparse"
	"github.com/danielhkuo/pollroom/identity"
	"github.com/danielhkuo/pollroom/middleware"
	"github.com/danielhkuo/pollroom/models"
	"github.com/danielhkuo/pollroom/visibility"
)

type RoomHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewRoomHandler(db *sql.DB, cfg cliparse.Config) *RoomHandler {
	return &RoomHandler{db: db, cfg: cfg}
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ListRooms handles GET /rooms
func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, slug, title, creator_name, created_at
		FROM room
		ORDER BY created_at DESC
	`)
	if err != nil {
		slog.Error("failed to query rooms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}
	defer rows.Close()

	summaries := []models.RoomSummary{}
	for rows.Next() {
		var s models.RoomSummary
		if err := rows.Scan(&s.ID, &s.Slug, &s.Title, &s.Creator, &s.CreatedAt); err != nil {
			slog.Error("failed to scan room", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
			return
		}
		summaries = append(summaries, s)
	}

	middleware.JSONResponse(w, http.StatusOK, summaries)
}

// CreateRoom handles POST /rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	acct := requireAccount(h.db, h.cfg, w, r)
	if acct == nil {
		return
	}

	// A room needs a creator name to display; accounts without one must
	// fill in their profile first.
	if acct.DisplayName == "" {
		writeDomainError(w, identity.ErrNoIdentity)
		return
	}

	var req models.CreateRoomRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "title is required")
		return
	}
	if !slugPattern.MatchString(req.Slug) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "slug must be lowercase letters, digits and hyphens")
		return
	}

	room := models.Room{
		ID:               uuid.NewString(),
		Slug:             req.Slug,
		Title:            req.Title,
		Description:      req.Description,
		CreatorAccountID: acct.ID,
		CreatorName:      acct.DisplayName,
		CreatedAt:        time.Now().UTC(),
	}

	_, err := h.db.Exec(`
		INSERT INTO room (id, slug, title, description, creator_account_id, creator_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, room.ID, room.Slug, room.Title, room.Description, room.CreatorAccountID, room.CreatorName, room.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "", "slug already taken")
			return
		}
		slog.Error("failed to insert room", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to create room")
		return
	}

	slog.Info("room created", "room_id", room.ID, "slug", room.Slug, "creator", acct.ID)

	middleware.JSONResponse(w, http.StatusCreated, room)
}

// DeleteRoom handles DELETE /rooms/{slug}
func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	acct := requireAccount(h.db, h.cfg, w, r)
	if acct == nil {
		return
	}

	room, err := loadRoomBySlug(h.db, slug)
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

	// ON DELETE CASCADE takes questions, choices, votes and bans with it.
	if _, err := h.db.Exec(`DELETE FROM room WHERE id = $1`, room.ID); err != nil {
		slog.Error("failed to delete room", "error", err, "room_id", room.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to delete room")
		return
	}

	slog.Info("room deleted", "room_id", room.ID, "slug", room.Slug)

	w.WriteHeader(http.StatusNoContent)
}

// GetRoomSnapshot handles GET /rooms/{slug}
//
// This is the endpoint the Sync Loop polls. The response is the full
// room state, visibility-filtered for this viewer. Banned identities are
// rejected before any state is read.
func (h *RoomHandler) GetRoomSnapshot(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	acct, err := currentAccount(h.db, h.cfg, r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "", "Invalid credential")
		return
	}

	// An anonymous viewer without a nickname may still look at the room;
	// identity only matters for the ban check and the own-vote marker.
	viewer, _ := identity.Resolve(acct, r.URL.Query().Get("guest_nickname"))

	room, err := loadRoomBySlug(h.db, slug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, models.CodeNotFound, "Room not found")
		return
	}
	if err != nil {
		slog.Error("failed to query room", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	bans, err := loadBans(h.db, room.ID)
	if err != nil {
		slog.Error("failed to query bans", "error", err, "room_id", room.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	if err := access.CheckEntry(viewer, bans); err != nil {
		writeDomainError(w, err)
		return
	}

	isCreator := access.IsCreator(viewer, room)

	questions, choicesByQuestion, votesByQuestion, err := h.loadRoomContent(room.ID)
	if err != nil {
		slog.Error("failed to load room content", "error", err, "room_id", room.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Database error")
		return
	}

	view := models.RoomView{
		ID:          room.ID,
		Slug:        room.Slug,
		Title:       room.Title,
		Description: room.Description,
		Creator:     room.CreatorName,
		IsCreator:   isCreator,
		CreatedAt:   room.CreatedAt,
		Questions:   make([]models.QuestionView, 0, len(questions)),
	}
	for _, q := range questions {
		view.Questions = append(view.Questions,
			visibility.ProjectQuestion(q, choicesByQuestion[q.ID], votesByQuestion[q.ID], viewer, isCreator))
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// loadRoomContent fetches questions, choices and votes for a room in
// three queries, grouped by question.
func (h *RoomHandler) loadRoomContent(roomID string) ([]models.Question, map[string][]models.Choice, map[string][]models.Vote, error) {
	qRows, err := h.db.Query(`
		SELECT id, room_id, text, is_active, show_results
		FROM question
		WHERE room_id = $1
		ORDER BY created_at, id
	`, roomID)
	if err != nil {
		return nil, nil, nil, err
	}
	defer qRows.Close()

	questions := []models.Question{}
	for qRows.Next() {
		var q models.Question
		if err := qRows.Scan(&q.ID, &q.RoomID, &q.Text, &q.IsActive, &q.ShowResults); err != nil {
			return nil, nil, nil, err
		}
		questions = append(questions, q)
	}
	if err := qRows.Err(); err != nil {
		return nil, nil, nil, err
	}

	cRows, err := h.db.Query(`
		SELECT c.id, c.question_id, c.text
		FROM choice c
		JOIN question q ON c.question_id = q.id
		WHERE q.room_id = $1
		ORDER BY c.created_at, c.id
	`, roomID)
	if err != nil {
		return nil, nil, nil, err
	}
	defer cRows.Close()

	choices := map[string][]models.Choice{}
	for cRows.Next() {
		var c models.Choice
		if err := cRows.Scan(&c.ID, &c.QuestionID, &c.Text); err != nil {
			return nil, nil, nil, err
		}
		choices[c.QuestionID] = append(choices[c.QuestionID], c)
	}
	if err := cRows.Err(); err != nil {
		return nil, nil, nil, err
	}

	vRows, err := h.db.Query(`
		SELECT v.id, v.question_id, v.choice_id, v.voter_key, v.voter_name, v.cast_at
		FROM vote v
		JOIN question q ON v.question_id = q.id
		WHERE q.room_id = $1
	`, roomID)
	if err != nil {
		return nil, nil, nil, err
	}
	defer vRows.Close()

	votes := map[string][]models.Vote{}
	for vRows.Next() {
		var v models.Vote
		if err := vRows.Scan(&v.ID, &v.QuestionID, &v.ChoiceID, &v.VoterKey, &v.VoterName, &v.CastAt); err != nil {
			return nil, nil, nil, err
		}
		votes[v.QuestionID] = append(votes[v.QuestionID], v)
	}
	return questions, choices, votes, vRows.Err()
}

// BanIdentity handles POST /rooms/{slug}/ban
func (h *RoomHandler) BanIdentity(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	acct := requireAccount(h.db, h.cfg, w, r)
	if acct == nil {
		return
	}

	room, err := loadRoomBySlug(h.db, slug)
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

	var req models.BanRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	nickname := strings.TrimSpace(req.Nickname)
	if nickname == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "nickname is required")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO room_ban (room_id, banned_identifier, created_at)
		VALUES ($1, $2, $3)
	`, room.ID, nickname, time.Now().UTC())

	// Banning the same name twice is a no-op, not a conflict.
	if err != nil && !isUniqueViolation(err) {
		slog.Error("failed to insert ban", "error", err, "room_id", room.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "", "Failed to ban")
		return
	}

	slog.Info("identity banned", "room_id", room.ID, "nickname", nickname)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"banned": nickname})
}
