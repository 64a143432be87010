// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package access decides what a resolved identity may do in a room.

All functions are pure predicates over already-loaded state; the package
grants or denies and never mutates anything.

  - IsCreator / CheckCreator: creator-only actions (create question,
    create choice, toggle flags, ban, delete room)
  - IsBanned / CheckEntry: room-wide ban enforcement, applied to the
    snapshot fetch as well as writes
  - CheckVote: full vote authorization (identity present, not banned,
    question active)

Ban entries are plain strings matched case-sensitively against a guest's
nickname or an account's display name.
*/
package access
