// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Request types

type CreateRoomRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
}

type BanRequest struct {
	Nickname string `json:"nickname"`
}

type CreateQuestionRequest struct {
	RoomID string `json:"room_id"`
	Text   string `json:"text"`
}

// PatchQuestionRequest toggles one or both question flags. Absent fields
// are left unchanged.
type PatchQuestionRequest struct {
	IsActive    *bool `json:"is_active,omitempty"`
	ShowResults *bool `json:"show_results,omitempty"`
}

type CreateChoiceRequest struct {
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

type CastVoteRequest struct {
	ChoiceID string `json:"choice_id"`
	// Only consulted for unauthenticated callers; an authenticated
	// request ignores it.
	GuestNickname string `json:"guest_nickname,omitempty"`
}

type UpdateAccountRequest struct {
	DisplayName string `json:"display_name"`
}

// Response types

type CastVoteResponse struct {
	VoteID string    `json:"vote_id"`
	CastAt time.Time `json:"cast_at"`
}

type AccountResponse struct {
	AccountID   string `json:"account_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// ErrorResponse carries a machine-readable code alongside the HTTP status
// text so polling clients can branch without string matching.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// Error codes used in ErrorResponse.Code
const (
	CodeNoIdentity          = "no_identity"
	CodeBanned              = "banned"
	CodeNotCreator          = "not_creator"
	CodeQuestionClosed      = "question_closed"
	CodeAlreadyVoted        = "already_voted"
	CodeChoiceNotInQuestion = "choice_not_in_question"
	CodeNotFound            = "not_found"
)

// Domain types

type Account struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type Room struct {
	ID               string    `json:"id"`
	Slug             string    `json:"slug"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	CreatorAccountID string    `json:"-"`
	CreatorName      string    `json:"creator"`
	CreatedAt        time.Time `json:"created_at"`
}

type Question struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	Text        string `json:"text"`
	IsActive    bool   `json:"is_active"`
	ShowResults bool   `json:"show_results"`
}

type Choice struct {
	ID         string `json:"id"`
	QuestionID string `json:"question_id"`
	Text       string `json:"text"`
}

type Vote struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	ChoiceID   string    `json:"choice_id"`
	VoterKey   string    `json:"-"` // Never expose in JSON
	VoterName  string    `json:"voter_name"`
	CastAt     time.Time `json:"cast_at"`
}

// View types - visibility-filtered projections sent to viewers.
// Hidden tallies are absent fields, not zeroes: the filtering is an
// authorization boundary, not a UI hint.

type ChoiceView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	// Both nil when results are hidden. When visible, a choice nobody
	// picked carries votes_count 0 and an empty (not absent) roster.
	VotesCount *int      `json:"votes_count,omitempty"`
	Voters     *[]string `json:"voters,omitempty"`
}

type QuestionView struct {
	ID              string       `json:"id"`
	Text            string       `json:"text"`
	IsActive        bool         `json:"is_active"`
	ShowResults     bool         `json:"show_results"`
	Choices         []ChoiceView `json:"choices"`
	UserVotedChoice string       `json:"user_voted_choice,omitempty"`
}

type RoomView struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Creator     string         `json:"creator"`
	IsCreator   bool           `json:"is_creator"`
	CreatedAt   time.Time      `json:"created_at"`
	Questions   []QuestionView `json:"questions"`
}

// RoomSummary is the list-endpoint shape; no questions, no tallies.
type RoomSummary struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Creator   string    `json:"creator"`
	CreatedAt time.Time `json:"created_at"`
}
