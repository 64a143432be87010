// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateRoomRequest: title, description, slug
  - BanRequest: nickname
  - CreateQuestionRequest: room_id, text
  - PatchQuestionRequest: is_active / show_results (pointers; absent = unchanged)
  - CreateChoiceRequest: question_id, text
  - CastVoteRequest: choice_id, guest_nickname
  - UpdateAccountRequest: display_name

# Response Types

  - CastVoteResponse: vote_id, cast_at
  - AccountResponse: account_id, email, display_name
  - ErrorResponse: error, code, message

ErrorResponse.Code carries one of the Code* constants (no_identity, banned,
not_creator, question_closed, already_voted, choice_not_in_question,
not_found) so clients branch on a stable token rather than prose.

# Domain Types

  - Account, Room, Question, Choice, Vote

Vote.VoterKey is the identity key the uniqueness constraint is built on and
is never serialized.

# View Types

RoomView / QuestionView / ChoiceView are the visibility-filtered projections
sent to viewers. ChoiceView.VotesCount is a *int and Voters a slice so that
hidden tallies are absent from the JSON entirely rather than zeroed.
*/
package models
