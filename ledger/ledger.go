// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollroom/access"
	"github.com/danielhkuo/pollroom/identity"
	"github.com/danielhkuo/pollroom/models"
)

var (
	// ErrAlreadyVoted means a vote for this (question, identity) pair
	// already exists. Votes are immutable: re-submission is rejected,
	// never treated as an update.
	ErrAlreadyVoted = errors.New("already voted on this question")

	ErrChoiceNotInQuestion = errors.New("choice does not belong to this question")
)

// CastVote records a vote. The existence check and the insert are a single
// atomic step: the vote table's UNIQUE (question_id, voter_key) constraint
// serializes concurrent duplicates, so of two racing submissions from the
// same identity exactly one lands and the other observes ErrAlreadyVoted.
//
// The caller is expected to have run access.CheckVote already; the
// question-closed and choice-ownership preconditions are re-checked here
// because they are part of the ledger contract, not handler courtesy.
func CastVote(db *sql.DB, question models.Question, choice models.Choice, id identity.Identity) (models.Vote, error) {
	if choice.QuestionID != question.ID {
		return models.Vote{}, ErrChoiceNotInQuestion
	}
	if !question.IsActive {
		return models.Vote{}, access.ErrQuestionClosed
	}

	vote := models.Vote{
		ID:         uuid.NewString(),
		QuestionID: question.ID,
		ChoiceID:   choice.ID,
		VoterKey:   id.Key(),
		VoterName:  id.Name(),
		CastAt:     time.Now().UTC(),
	}

	_, err := db.Exec(`
		INSERT INTO vote (id, question_id, choice_id, voter_key, voter_name, cast_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, vote.ID, vote.QuestionID, vote.ChoiceID, vote.VoterKey, vote.VoterName, vote.CastAt)

	if err != nil {
		if isUniqueViolation(err) {
			return models.Vote{}, ErrAlreadyVoted
		}
		return models.Vote{}, fmt.Errorf("failed to insert vote: %w", err)
	}

	return vote, nil
}

// isUniqueViolation matches the unique-constraint error text of both
// supported drivers (modernc sqlite and lib/pq).
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
