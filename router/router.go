// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/pollroom/cliparse"
	"github.com/danielhkuo/pollroom/handlers"
	"github.com/danielhkuo/pollroom/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	roomHandler := handlers.NewRoomHandler(db, cfg)
	questionHandler := handlers.NewQuestionHandler(db, cfg)
	choiceHandler := handlers.NewChoiceHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	accountHandler := handlers.NewAccountHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Rooms
	mux.HandleFunc("GET /rooms", middleware.WithLogging(roomHandler.ListRooms))
	mux.HandleFunc("POST /rooms", middleware.WithLogging(roomHandler.CreateRoom))
	mux.HandleFunc("GET /rooms/{slug}", middleware.WithLogging(roomHandler.GetRoomSnapshot))
	mux.HandleFunc("DELETE /rooms/{slug}", middleware.WithLogging(roomHandler.DeleteRoom))
	mux.HandleFunc("POST /rooms/{slug}/ban", middleware.WithLogging(roomHandler.BanIdentity))

	// Questions and choices (creator only)
	mux.HandleFunc("POST /questions", middleware.WithLogging(questionHandler.CreateQuestion))
	mux.HandleFunc("PATCH /questions/{id}", middleware.WithLogging(questionHandler.PatchQuestion))
	mux.HandleFunc("POST /choices", middleware.WithLogging(choiceHandler.CreateChoice))

	// Voting
	mux.HandleFunc("POST /votes", middleware.WithLogging(voteHandler.CastVote))

	// Account
	mux.HandleFunc("GET /account/me", middleware.WithLogging(accountHandler.GetMe))
	mux.HandleFunc("PATCH /account/me", middleware.WithLogging(accountHandler.UpdateMe))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollroom API v1"))
	})

	return mux
}
