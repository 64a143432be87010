// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL sticks to the PostgreSQL/SQLite common dialect so dev and test can
run on sqlite while production runs on postgres.

# Tables

The schema includes:

  - account: Authenticated users (provisioned externally)
  - room: Poll rooms with slug addressing
  - room_ban: Room-scoped banned nicknames
  - question: Questions with is_active / show_results flags
  - choice: Choices per question
  - vote: One vote per (question, voter_key)

# Relationships

	account 1──* room (creator)
	room 1──* room_ban
	room 1──* question
	question 1──* choice
	question 1──* vote
	choice 1──* vote

All ownership foreign keys use ON DELETE CASCADE, so deleting a room
invalidates its questions, choices, and votes in one statement.

# The Vote Constraint

	UNIQUE (question_id, voter_key)

This is the at-most-one-vote invariant. Tallies are never stored; they are
recomputed from vote rows at read time, so they cannot drift from the
constraint.
*/
package db
