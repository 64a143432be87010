// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package visibility

import (
	"github.com/samber/lo"

	"github.com/danielhkuo/pollroom/identity"
	"github.com/danielhkuo/pollroom/models"
)

// ProjectQuestion computes the view of a question one viewer is allowed
// to see. The creator sees counts and voter rosters unconditionally;
// everyone else sees them only while show_results is on. A hidden tally
// is an absent field, not a zero - this runs before transmission and is
// the authorization boundary.
//
// The viewer's own vote is always included (it drives idempotent UI
// disabling) and is re-derived from the vote rows, not client memory.
func ProjectQuestion(q models.Question, choices []models.Choice, votes []models.Vote, viewer identity.Identity, isCreator bool) models.QuestionView {
	view := models.QuestionView{
		ID:          q.ID,
		Text:        q.Text,
		IsActive:    q.IsActive,
		ShowResults: q.ShowResults,
		Choices:     make([]models.ChoiceView, 0, len(choices)),
	}

	if !viewer.IsZero() {
		key := viewer.Key()
		for _, v := range votes {
			if v.VoterKey == key {
				view.UserVotedChoice = v.ChoiceID
				break
			}
		}
	}

	resultsVisible := isCreator || q.ShowResults
	byChoice := lo.GroupBy(votes, func(v models.Vote) string { return v.ChoiceID })

	for _, c := range choices {
		cv := models.ChoiceView{ID: c.ID, Text: c.Text}
		if resultsVisible {
			choiceVotes := byChoice[c.ID]
			count := len(choiceVotes)
			cv.VotesCount = &count
			voters := lo.Map(choiceVotes, func(v models.Vote, _ int) string {
				return v.VoterName
			})
			cv.Voters = &voters
		}
		view.Choices = append(view.Choices, cv)
	}

	return view
}
