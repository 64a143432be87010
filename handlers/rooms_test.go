// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/pollroom/models"
	"github.com/danielhkuo/pollroom/testutil"
)

func TestCreateRoom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewRoomHandler(db, cfg)

	alice := testutil.CreateTestAccount(t, db, "alice@example.com", "Alice")
	incomplete := testutil.CreateTestAccount(t, db, "new@example.com", "")

	tests := []struct {
		name           string
		headers        map[string]string
		requestBody    interface{}
		expectedStatus int
		expectedCode   string
	}{
		{
			name:    "valid room creation",
			headers: testutil.AuthHeader(t, cfg, alice.ID),
			requestBody: models.CreateRoomRequest{
				Title: "Team Retro",
				Slug:  "team-retro",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "no credential",
			requestBody:    models.CreateRoomRequest{Title: "Sneaky", Slug: "sneaky"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "incomplete profile",
			headers:        testutil.AuthHeader(t, cfg, incomplete.ID),
			requestBody:    models.CreateRoomRequest{Title: "No Name", Slug: "no-name"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   models.CodeNoIdentity,
		},
		{
			name:           "missing title",
			headers:        testutil.AuthHeader(t, cfg, alice.ID),
			requestBody:    models.CreateRoomRequest{Slug: "untitled"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad slug",
			headers:        testutil.AuthHeader(t, cfg, alice.ID),
			requestBody:    models.CreateRoomRequest{Title: "Bad Slug", Slug: "Not A Slug!"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "duplicate slug",
			headers:        testutil.AuthHeader(t, cfg, alice.ID),
			requestBody:    models.CreateRoomRequest{Title: "Again", Slug: "team-retro"},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/rooms", tt.requestBody, tt.headers)
			w := httptest.NewRecorder()

			handler.CreateRoom(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedCode != "" {
				testutil.AssertErrorCode(t, w, tt.expectedCode)
			}

			if tt.expectedStatus == http.StatusCreated {
				var room models.Room
				testutil.AssertJSON(t, w, &room)
				if room.ID == "" {
					t.Error("Expected non-empty room id")
				}
				if room.CreatorName != "Alice" {
					t.Errorf("Expected creator Alice, got %q", room.CreatorName)
				}

				var creatorID string
				err := db.QueryRow("SELECT creator_account_id FROM room WHERE id = $1", room.ID).Scan(&creatorID)
				if err != nil {
					t.Fatalf("Failed to query room: %v", err)
				}
				if creatorID != alice.ID {
					t.Errorf("Expected creator_account_id %s, got %s", alice.ID, creatorID)
				}
			}
		})
	}
}

func TestListRooms(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewRoomHandler(db, cfg)

	req := testutil.MakeRequest("GET", "/rooms", nil, nil)
	w := httptest.NewRecorder()
	handler.ListRooms(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var rooms []models.RoomSummary
	testutil.AssertJSON(t, w, &rooms)
	if len(rooms) != 0 {
		t.Errorf("Expected empty list, got %d rooms", len(rooms))
	}

	alice := testutil.CreateTestAccount(t, db, "alice@example.com", "Alice")
	testutil.CreateTestRoom(t, db, alice, "first")
	testutil.CreateTestRoom(t, db, alice, "second")

	w = httptest.NewRecorder()
	handler.ListRooms(w, testutil.MakeRequest("GET", "/rooms", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, &rooms)
	if len(rooms) != 2 {
		t.Fatalf("Expected 2 rooms, got %d", len(rooms))
	}
	for _, room := range rooms {
		if room.Creator != "Alice" {
			t.Errorf("Expected creator Alice, got %q", room.Creator)
		}
	}
}

func TestDeleteRoom(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewRoomHandler(db, cfg)

	alice := testutil.CreateTestAccount(t, db, "alice@example.com", "Alice")
	mallory := testutil.CreateTestAccount(t, db, "mallory@example.com", "Mallory")
	room := testutil.CreateTestRoom(t, db, alice, "team-retro")
	question := testutil.AddTestQuestion(t, db, room.ID, "Q?", true, false)
	choiceID := testutil.AddTestChoice(t, db, question.ID, "A")
	testutil.CastTestVote(t, db, question.ID, choiceID, "guest:zoe", "zoe")

	// Not the creator
	req := testutil.MakeRequest("DELETE", "/rooms/team-retro", nil, testutil.AuthHeader(t, cfg, mallory.ID))
	req.SetPathValue("slug", "team-retro")
	w := httptest.NewRecorder()
	handler.DeleteRoom(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)
	testutil.AssertErrorCode(t, w, models.CodeNotCreator)

	// Creator deletes; the cascade takes the votes too
	req = testutil.MakeRequest("DELETE", "/rooms/team-retro", nil, testutil.AuthHeader(t, cfg, alice.ID))
	req.SetPathValue("slug", "team-retro")
	w = httptest.NewRecorder()
	handler.DeleteRoom(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	var votes int
	if err := db.QueryRow("SELECT COUNT(*) FROM vote").Scan(&votes); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	if votes != 0 {
		t.Errorf("Expected votes cascaded away, found %d", votes)
	}

	// Already gone
	req = testutil.MakeRequest("DELETE", "/rooms/team-retro", nil, testutil.AuthHeader(t, cfg, alice.ID))
	req.SetPathValue("slug", "team-retro")
	w = httptest.NewRecorder()
	handler.DeleteRoom(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGetRoomSnapshot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewRoomHandler(db, cfg)

	alice := testutil.CreateTestAccount(t, db, "alice@example.com", "Alice")
	room := testutil.CreateTestRoom(t, db, alice, "team-retro")
	question := testutil.AddTestQuestion(t, db, room.ID, "Lunch?", true, false)
	choiceID := testutil.AddTestChoice(t, db, question.ID, "Tacos")
	testutil.CastTestVote(t, db, question.ID, choiceID, "guest:zoe", "zoe")
	testutil.BanTestIdentifier(t, db, room.ID, "troll")

	tests := []struct {
		name           string
		query          string
		headers        map[string]string
		expectedStatus int
		expectedCode   string
		check          func(t *testing.T, view *models.RoomView)
	}{
		{
			name:           "anonymous viewer",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, view *models.RoomView) {
				if view.IsCreator {
					t.Error("Anonymous viewer must not be creator")
				}
				if len(view.Questions) != 1 {
					t.Fatalf("Expected 1 question, got %d", len(view.Questions))
				}
				// show_results is off and viewer is not the creator
				for _, c := range view.Questions[0].Choices {
					if c.VotesCount != nil {
						t.Error("Expected hidden tallies for anonymous viewer")
					}
				}
			},
		},
		{
			name:           "guest sees own vote marker",
			query:          "?guest_nickname=zoe",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, view *models.RoomView) {
				if view.Questions[0].UserVotedChoice != choiceID {
					t.Errorf("Expected user_voted_choice %s, got %q", choiceID, view.Questions[0].UserVotedChoice)
				}
			},
		},
		{
			name:           "creator sees tallies",
			headers:        testutil.AuthHeader(t, cfg, alice.ID),
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, view *models.RoomView) {
				if !view.IsCreator {
					t.Error("Expected is_creator for Alice")
				}
				c := view.Questions[0].Choices[0]
				if c.VotesCount == nil || *c.VotesCount != 1 {
					t.Errorf("Expected creator to see 1 vote, got %v", c.VotesCount)
				}
				if c.Voters == nil || len(*c.Voters) != 1 || (*c.Voters)[0] != "zoe" {
					t.Errorf("Expected voter roster [zoe], got %v", c.Voters)
				}
			},
		},
		{
			name:           "banned guest rejected",
			query:          "?guest_nickname=troll",
			expectedStatus: http.StatusForbidden,
			expectedCode:   models.CodeBanned,
		},
		{
			name:           "bad credential",
			headers:        map[string]string{"Authorization": "Bearer not-a-token"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/rooms/team-retro"+tt.query, nil, tt.headers)
			req.SetPathValue("slug", "team-retro")
			w := httptest.NewRecorder()

			handler.GetRoomSnapshot(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedCode != "" {
				testutil.AssertErrorCode(t, w, tt.expectedCode)
			}
			if tt.check != nil && w.Code == http.StatusOK {
				var view models.RoomView
				testutil.AssertJSON(t, w, &view)
				tt.check(t, &view)
			}
		})
	}

	t.Run("room not found", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/rooms/nope", nil, nil)
		req.SetPathValue("slug", "nope")
		w := httptest.NewRecorder()
		handler.GetRoomSnapshot(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
		testutil.AssertErrorCode(t, w, models.CodeNotFound)
	})
}

func TestBanIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewRoomHandler(db, cfg)

	alice := testutil.CreateTestAccount(t, db, "alice@example.com", "Alice")
	mallory := testutil.CreateTestAccount(t, db, "mallory@example.com", "Mallory")
	testutil.CreateTestRoom(t, db, alice, "team-retro")

	ban := func(headers map[string]string, nickname string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/rooms/team-retro/ban",
			models.BanRequest{Nickname: nickname}, headers)
		req.SetPathValue("slug", "team-retro")
		w := httptest.NewRecorder()
		handler.BanIdentity(w, req)
		return w
	}

	// Non-creator cannot ban
	w := ban(testutil.AuthHeader(t, cfg, mallory.ID), "zoe")
	testutil.AssertStatus(t, w, http.StatusForbidden)
	testutil.AssertErrorCode(t, w, models.CodeNotCreator)

	// Creator bans
	w = ban(testutil.AuthHeader(t, cfg, alice.ID), "zoe")
	testutil.AssertStatus(t, w, http.StatusOK)

	// Banning again is a no-op, not an error
	w = ban(testutil.AuthHeader(t, cfg, alice.ID), "zoe")
	testutil.AssertStatus(t, w, http.StatusOK)

	// Empty nickname rejected
	w = ban(testutil.AuthHeader(t, cfg, alice.ID), "   ")
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM room_ban").Scan(&count); err != nil {
		t.Fatalf("Failed to count bans: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 ban row, got %d", count)
	}
}
