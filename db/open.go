// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured store. databaseType is "sqlite" or
// "postgres" (validated by cliparse).
//
// The sqlite driver leaves foreign-key enforcement off unless the DSN
// asks for it; every ON DELETE CASCADE in the schema depends on it, so
// the pragma is appended here rather than trusted to each caller's DSN.
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	if databaseType == "sqlite" {
		sep := "?"
		if strings.Contains(databaseURL, "?") {
			sep = "&"
		}
		return sql.Open("sqlite", databaseURL+sep+"_pragma=foreign_keys(1)")
	}
	return sql.Open("postgres", databaseURL)
}
