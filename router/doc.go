// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the room voting API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Rooms:

	GET    /rooms            - List room summaries
	POST   /rooms            - Create room (authenticated, complete profile)
	GET    /rooms/{slug}     - Visibility-filtered snapshot (the polling endpoint)
	DELETE /rooms/{slug}     - Delete room (creator only)
	POST   /rooms/{slug}/ban - Ban a nickname (creator only)

Questions and choices (creator only):

	POST  /questions      - Create question (active, results hidden)
	PATCH /questions/{id} - Toggle is_active / show_results
	POST  /choices        - Create choice

Voting:

	POST /votes - Cast a vote (credential or guest_nickname)

Account:

	GET   /account/me - Current account
	PATCH /account/me - Update display name

# Handler Initialization

The router creates handler instances with dependency injection; all
handlers receive the database connection and configuration.
*/
package router
