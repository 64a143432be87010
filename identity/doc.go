// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package identity resolves a caller's voting identity.

An Identity is a tagged union: an authenticated account or a guest
nickname. Resolve is a pure function of its inputs:

	id, err := identity.Resolve(account, guestNickname)

A present account wins and any supplied nickname is ignored; otherwise a
non-empty trimmed nickname yields a guest identity; otherwise
ErrNoIdentity.

Identity.Key() produces the string the vote table's uniqueness constraint
is built on, with account IDs and nicknames in disjoint namespaces. Guest
nicknames are not globally unique and are spoofable by construction -
guests are unauthenticated principals scoped per room.
*/
package identity
