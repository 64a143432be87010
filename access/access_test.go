// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/pollroom/identity"
	"github.com/danielhkuo/pollroom/models"
)

func accountID(id, name string) identity.Identity {
	return identity.Identity{Kind: identity.KindAccount, AccountID: id, DisplayName: name}
}

func guest(nick string) identity.Identity {
	return identity.Identity{Kind: identity.KindGuest, Nickname: nick}
}

func TestIsCreator(t *testing.T) {
	room := models.Room{ID: "r1", CreatorAccountID: "acct-1", CreatorName: "Owner"}

	assert.True(t, IsCreator(accountID("acct-1", "Owner"), room))
	assert.True(t, IsCreator(accountID("acct-1", "Renamed"), room),
		"creator check follows the account id, not the display name")
	assert.False(t, IsCreator(accountID("acct-2", "Owner"), room))
	assert.False(t, IsCreator(guest("Owner"), room),
		"a guest claiming the creator's name is not the creator")
	assert.False(t, IsCreator(identity.Identity{}, room))
}

func TestCheckCreator(t *testing.T) {
	room := models.Room{ID: "r1", CreatorAccountID: "acct-1"}

	assert.NoError(t, CheckCreator(accountID("acct-1", ""), room))
	assert.ErrorIs(t, CheckCreator(guest("anyone"), room), ErrNotCreator)
}

func TestIsBanned(t *testing.T) {
	bans := []string{"alice", "TrollGuest"}

	assert.True(t, IsBanned(guest("alice"), bans))
	assert.True(t, IsBanned(accountID("acct-9", "TrollGuest"), bans),
		"an authenticated display name matching a ban entry is banned")
	assert.False(t, IsBanned(guest("Alice"), bans), "ban matching is case-sensitive")
	assert.False(t, IsBanned(guest("bob"), bans))
	assert.False(t, IsBanned(identity.Identity{}, bans), "anonymous viewers carry no name to match")
	assert.False(t, IsBanned(accountID("acct-1", ""), bans))
}

func TestCheckEntry(t *testing.T) {
	bans := []string{"alice"}

	assert.ErrorIs(t, CheckEntry(guest("alice"), bans), ErrBanned)
	assert.NoError(t, CheckEntry(guest("bob"), bans))
	assert.NoError(t, CheckEntry(identity.Identity{}, bans))
}

func TestCheckVote(t *testing.T) {
	open := models.Question{ID: "q1", IsActive: true}
	closed := models.Question{ID: "q2", IsActive: false}
	bans := []string{"alice"}

	assert.NoError(t, CheckVote(guest("bob"), bans, open))
	assert.ErrorIs(t, CheckVote(identity.Identity{}, bans, open), identity.ErrNoIdentity)
	assert.ErrorIs(t, CheckVote(accountID("acct-1", ""), bans, open), identity.ErrNoIdentity,
		"an account without a display name has no name to vote under")
	assert.ErrorIs(t, CheckVote(guest("alice"), bans, open), ErrBanned)
	assert.ErrorIs(t, CheckVote(guest("bob"), bans, closed), ErrQuestionClosed)

	// Ban wins over the closed check: the viewer is out of the room
	// entirely.
	assert.ErrorIs(t, CheckVote(guest("alice"), bans, closed), ErrBanned)
}
