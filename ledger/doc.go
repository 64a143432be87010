// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger enforces the at-most-one-vote invariant.

CastVote is the only write path for votes. It leans on the store's
UNIQUE (question_id, voter_key) constraint for atomicity instead of a
check-then-insert race:

	vote, err := ledger.CastVote(db, question, choice, id)

Failure modes map one-to-one onto the wire contract:

  - ErrAlreadyVoted: a vote for (question, identity) already exists
  - ErrChoiceNotInQuestion: mismatched choice/question pair
  - access.ErrQuestionClosed: question has is_active = false

Tallies and rosters are read-side derivations over the vote rows
(see the visibility package); the ledger maintains no counters.
*/
package ledger
