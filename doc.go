// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollroom API server.

pollroom is a live room-voting service: a creator opens a room, posts
questions with choices, and an audience of authenticated users and
nickname-only guests votes - at most once per question per identity.
Clients keep up by polling the room snapshot endpoint.

# Starting the Server

The server reads configuration from a .env file, environment variables,
or CLI flags:

	DATABASE_URL=pollroom.db JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3322 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): HMAC secret shared with the auth service

Optional settings:

  - PORT (-p): Server port (default: 3322)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (rooms, questions, choices, votes)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types and domain entities
  - auth: Bearer credential verification
  - identity: Guest/account identity resolution
  - access: Ban, creator, and question-state checks
  - ledger: The vote ledger and its at-most-once guarantee
  - visibility: Per-viewer snapshot projection
  - client: Polling client with the sync loop
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
