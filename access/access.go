// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package access

import (
	"errors"

	"github.com/danielhkuo/pollroom/identity"
	"github.com/danielhkuo/pollroom/models"
)

var (
	// ErrBanned is room-wide: it blocks the snapshot fetch as well as
	// every write. Terminal for the viewer's session in that room.
	ErrBanned = errors.New("banned from this room")

	ErrNotCreator     = errors.New("not the room creator")
	ErrQuestionClosed = errors.New("question is not accepting votes")
)

// IsCreator reports whether the identity is the room's creator. Creator-ness
// is a stable account reference captured at creation; guests are never
// creators, and display-name changes do not transfer rooms.
func IsCreator(id identity.Identity, room models.Room) bool {
	creator := identity.Identity{Kind: identity.KindAccount, AccountID: room.CreatorAccountID}
	return id.Equal(creator)
}

// CheckCreator returns ErrNotCreator unless the identity created the room.
func CheckCreator(id identity.Identity, room models.Room) error {
	if !IsCreator(id, room) {
		return ErrNotCreator
	}
	return nil
}

// IsBanned reports whether the identity matches any of the room's ban
// entries. A guest matches on nickname, an account on display name;
// comparison is case-sensitive as entered. Anonymous viewers carry no
// name to match.
func IsBanned(id identity.Identity, bans []string) bool {
	if id.IsZero() {
		return false
	}
	name := id.Name()
	if name == "" {
		return false
	}
	for _, banned := range bans {
		if banned == name {
			return true
		}
	}
	return false
}

// CheckEntry gates every room-scoped operation, reads included.
func CheckEntry(id identity.Identity, bans []string) error {
	if IsBanned(id, bans) {
		return ErrBanned
	}
	return nil
}

// CheckVote authorizes a vote on a question. Never mutates state.
//
// An authenticated caller with an unset display name has no name to
// record a vote under and is rejected with ErrNoIdentity, same as an
// anonymous caller without a nickname.
func CheckVote(id identity.Identity, bans []string, question models.Question) error {
	if id.IsZero() || id.Name() == "" {
		return identity.ErrNoIdentity
	}
	if IsBanned(id, bans) {
		return ErrBanned
	}
	if !question.IsActive {
		return ErrQuestionClosed
	}
	return nil
}
