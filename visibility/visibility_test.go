// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package visibility

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/pollroom/identity"
	"github.com/danielhkuo/pollroom/models"
)

func fixture() (models.Question, []models.Choice, []models.Vote) {
	q := models.Question{ID: "q1", Text: "Pizza or sushi?", IsActive: true, ShowResults: false}
	choices := []models.Choice{
		{ID: "cA", QuestionID: "q1", Text: "Pizza"},
		{ID: "cB", QuestionID: "q1", Text: "Sushi"},
	}
	votes := []models.Vote{
		{ID: "v1", QuestionID: "q1", ChoiceID: "cA", VoterKey: "guest:alice", VoterName: "alice"},
		{ID: "v2", QuestionID: "q1", ChoiceID: "cA", VoterKey: "account:acct-1", VoterName: "Bob"},
	}
	return q, choices, votes
}

func TestProjectQuestion_HiddenForNonCreator(t *testing.T) {
	q, choices, votes := fixture()

	view := ProjectQuestion(q, choices, votes, identity.Identity{Kind: identity.KindGuest, Nickname: "carol"}, false)

	require.Len(t, view.Choices, 2)
	for _, cv := range view.Choices {
		assert.Nil(t, cv.VotesCount)
		assert.Nil(t, cv.Voters)
	}
	assert.Empty(t, view.UserVotedChoice, "carol has not voted")
}

// The serialized form must carry no tally information at all for a
// non-creator while show_results is off.
func TestProjectQuestion_NoLeakInJSON(t *testing.T) {
	q, choices, votes := fixture()

	view := ProjectQuestion(q, choices, votes, identity.Identity{}, false)
	raw, err := json.Marshal(view)
	require.NoError(t, err)

	body := string(raw)
	assert.False(t, strings.Contains(body, "votes_count"), "body: %s", body)
	assert.False(t, strings.Contains(body, "voters"), "body: %s", body)
	assert.False(t, strings.Contains(body, "alice"), "body: %s", body)
}

func TestProjectQuestion_CreatorOverride(t *testing.T) {
	q, choices, votes := fixture()

	view := ProjectQuestion(q, choices, votes, identity.Identity{Kind: identity.KindAccount, AccountID: "acct-9"}, true)

	require.Len(t, view.Choices, 2)
	require.NotNil(t, view.Choices[0].VotesCount)
	assert.Equal(t, 2, *view.Choices[0].VotesCount)
	require.NotNil(t, view.Choices[0].Voters)
	assert.ElementsMatch(t, []string{"alice", "Bob"}, *view.Choices[0].Voters)
	require.NotNil(t, view.Choices[1].VotesCount)
	assert.Equal(t, 0, *view.Choices[1].VotesCount)
	require.NotNil(t, view.Choices[1].Voters, "a visible roster is present even with zero votes")
	assert.Empty(t, *view.Choices[1].Voters)
}

// A visible choice nobody picked must serialize an empty roster, not
// drop the field: votes_count and voters agree about presence.
func TestProjectQuestion_EmptyRosterSerializes(t *testing.T) {
	q, choices, votes := fixture()
	q.ShowResults = true

	view := ProjectQuestion(q, choices, votes, identity.Identity{}, false)
	raw, err := json.Marshal(view)
	require.NoError(t, err)

	assert.Contains(t, string(raw), `"voters":[]`, "zero-vote choice must carry an empty roster")
}

func TestProjectQuestion_ShowResultsForEveryone(t *testing.T) {
	q, choices, votes := fixture()
	q.ShowResults = true

	view := ProjectQuestion(q, choices, votes, identity.Identity{Kind: identity.KindGuest, Nickname: "carol"}, false)

	require.NotNil(t, view.Choices[0].VotesCount)
	assert.Equal(t, 2, *view.Choices[0].VotesCount)
	require.NotNil(t, view.Choices[0].Voters)
	assert.ElementsMatch(t, []string{"alice", "Bob"}, *view.Choices[0].Voters)
}

func TestProjectQuestion_OwnVoteAlwaysVisible(t *testing.T) {
	q, choices, votes := fixture()

	view := ProjectQuestion(q, choices, votes, identity.Identity{Kind: identity.KindGuest, Nickname: "alice"}, false)

	assert.Equal(t, "cA", view.UserVotedChoice)
	// but still no tallies
	assert.Nil(t, view.Choices[0].VotesCount)
}

func TestProjectQuestion_SameViewCreatorVsGuest(t *testing.T) {
	q, choices, votes := fixture()

	creator := ProjectQuestion(q, choices, votes, identity.Identity{Kind: identity.KindAccount, AccountID: "acct-9"}, true)
	guest := ProjectQuestion(q, choices, votes, identity.Identity{Kind: identity.KindGuest, Nickname: "carol"}, false)

	// Same question, same instant, different projections.
	assert.NotNil(t, creator.Choices[0].VotesCount)
	assert.Nil(t, guest.Choices[0].VotesCount)
}
