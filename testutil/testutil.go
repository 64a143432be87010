// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollroom/auth"
	"github.com/danielhkuo/pollroom/cliparse"
	"github.com/danielhkuo/pollroom/db"
	"github.com/danielhkuo/pollroom/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema, opened through db.Open the same way main does. Each test gets
// its own database, named after the test so parallel tests never share
// state. The pool is capped at one connection: that keeps the in-memory
// database alive for the whole test and serializes writers the way a
// single Postgres row lock would.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared"

	conn, err := db.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3322,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		JWTSecret:    "test-secret",
	}
}

// CreateTestAccount inserts an account row and returns it
func CreateTestAccount(t *testing.T, conn *sql.DB, email, displayName string) models.Account {
	t.Helper()

	acct := models.Account{
		ID:          uuid.NewString(),
		Email:       email,
		Username:    strings.SplitN(email, "@", 2)[0],
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := conn.Exec(`
		INSERT INTO account (id, email, username, display_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, acct.ID, acct.Email, acct.Username, acct.DisplayName, acct.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return acct
}

// TokenFor signs a bearer credential for the given account
func TokenFor(t *testing.T, cfg cliparse.Config, accountID string) string {
	t.Helper()

	token, err := auth.SignAccountToken(accountID, cfg.JWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return token
}

// AuthHeader builds the header map for an authenticated request
func AuthHeader(t *testing.T, cfg cliparse.Config, accountID string) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + TokenFor(t, cfg, accountID)}
}

// CreateTestRoom inserts a room owned by the given account
func CreateTestRoom(t *testing.T, conn *sql.DB, creator models.Account, slug string) models.Room {
	t.Helper()

	room := models.Room{
		ID:               uuid.NewString(),
		Slug:             slug,
		Title:            "Test Room",
		Description:      "A test room",
		CreatorAccountID: creator.ID,
		CreatorName:      creator.DisplayName,
		CreatedAt:        time.Now().UTC(),
	}
	_, err := conn.Exec(`
		INSERT INTO room (id, slug, title, description, creator_account_id, creator_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, room.ID, room.Slug, room.Title, room.Description,
		room.CreatorAccountID, room.CreatorName, room.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test room: %v", err)
	}

	return room
}

// AddTestQuestion inserts a question and returns it
func AddTestQuestion(t *testing.T, conn *sql.DB, roomID, text string, isActive, showResults bool) models.Question {
	t.Helper()

	q := models.Question{
		ID:          uuid.NewString(),
		RoomID:      roomID,
		Text:        text,
		IsActive:    isActive,
		ShowResults: showResults,
	}
	_, err := conn.Exec(`
		INSERT INTO question (id, room_id, text, is_active, show_results)
		VALUES ($1, $2, $3, $4, $5)
	`, q.ID, q.RoomID, q.Text, q.IsActive, q.ShowResults)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return q
}

// AddTestChoice inserts a choice and returns its ID
func AddTestChoice(t *testing.T, conn *sql.DB, questionID, text string) string {
	t.Helper()

	choiceID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO choice (id, question_id, text)
		VALUES ($1, $2, $3)
	`, choiceID, questionID, text)
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return choiceID
}

// CastTestVote inserts a vote row directly, bypassing the handlers
func CastTestVote(t *testing.T, conn *sql.DB, questionID, choiceID, voterKey, voterName string) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO vote (id, question_id, choice_id, voter_key, voter_name, cast_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, voteID, questionID, choiceID, voterKey, voterName, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// BanTestIdentifier adds a nickname or display name to a room's ban list
func BanTestIdentifier(t *testing.T, conn *sql.DB, roomID, identifier string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO room_ban (room_id, banned_identifier)
		VALUES ($1, $2)
	`, roomID, identifier)
	if err != nil {
		t.Fatalf("Failed to create test ban: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertErrorCode checks that the response body carries the given
// machine-readable error code
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, code string) {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(bytes.NewReader(w.Body.Bytes())).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if resp.Code != code {
		t.Errorf("Expected error code %q, got %q. Body: %s", code, resp.Code, w.Body.String())
	}
}
