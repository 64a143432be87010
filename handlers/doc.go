// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the room voting API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - RoomHandler: room lifecycle, snapshot fetch, bans
  - QuestionHandler: question creation and flag toggles
  - ChoiceHandler: choice creation
  - VoteHandler: vote casting
  - AccountHandler: the caller's own account

Handlers are created via constructor functions that accept *sql.DB and Config:

	roomHandler := handlers.NewRoomHandler(db, cfg)

# Request Flow

Every room-scoped request passes the same pipeline: resolve the caller's
identity (bearer credential or guest_nickname), enforce the room's ban
list, check creator privilege where required, then touch the store. The
ban check runs before any state is returned - a banned identity cannot
even fetch the snapshot.

# The Snapshot

GET /rooms/{slug} is the polling endpoint. It returns the whole room with
nested questions and choices, filtered through the visibility package for
this specific viewer, plus a per-question user_voted_choice marker so a
client can rebuild its local voting state from the server's truth.

# Authorization

Creator-only operations (create question/choice, toggle flags, ban,
delete room) compare the caller's account id against the id captured at
room creation. There is no separate admin credential; creator-ness
follows the account.
*/
package handlers
