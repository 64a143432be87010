// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"errors"
	"strings"

	"github.com/danielhkuo/pollroom/models"
)

// ErrNoIdentity means the caller supplied neither a credential nor a
// usable guest nickname. Recoverable: prompt for a nickname.
var ErrNoIdentity = errors.New("no voter identity")

// Identity kinds
const (
	KindAccount = "account"
	KindGuest   = "guest"
)

// Identity is the voting identity of a caller: either an authenticated
// account or a self-chosen guest nickname. Guest nicknames are
// unauthenticated and spoofable; that is an accepted scoping decision,
// not an oversight.
type Identity struct {
	Kind        string
	AccountID   string // set when Kind == KindAccount
	DisplayName string // account display name; may be empty
	Nickname    string // set when Kind == KindGuest
}

// Resolve derives the caller's identity. A resolved account wins over a
// supplied nickname; the nickname is ignored entirely in that case. Pure:
// no lookups, no side effects.
func Resolve(account *models.Account, guestNickname string) (Identity, error) {
	if account != nil {
		return Identity{
			Kind:        KindAccount,
			AccountID:   account.ID,
			DisplayName: account.DisplayName,
		}, nil
	}

	nickname := strings.TrimSpace(guestNickname)
	if nickname == "" {
		return Identity{}, ErrNoIdentity
	}
	return Identity{Kind: KindGuest, Nickname: nickname}, nil
}

// Key returns the string the vote uniqueness constraint is keyed on.
// Account IDs and nicknames live in disjoint namespaces.
func (id Identity) Key() string {
	if id.Kind == KindAccount {
		return "account:" + id.AccountID
	}
	return "guest:" + id.Nickname
}

// Name returns the display string a vote is recorded under. May be empty
// for an account with an unset display name; callers that require a name
// must check separately.
func (id Identity) Name() string {
	if id.Kind == KindAccount {
		return id.DisplayName
	}
	return id.Nickname
}

// Equal reports whether two identities are the same principal: same kind
// and same discriminating field. Nicknames compare case-sensitively as
// entered.
func (id Identity) Equal(other Identity) bool {
	if id.Kind != other.Kind {
		return false
	}
	if id.Kind == KindAccount {
		return id.AccountID == other.AccountID
	}
	return id.Nickname == other.Nickname
}

// IsZero reports whether the identity is unset (an anonymous viewer).
func (id Identity) IsZero() bool {
	return id.Kind == ""
}
