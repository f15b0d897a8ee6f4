// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions.
package util

import (
	"database/sql"
)

// NullStringFromOptional converts an Optional string into sql.NullString.
// A present value is valid even when empty, so it overwrites the column;
// an absent value is NULL and leaves COALESCE'd columns untouched.
func NullStringFromOptional(o Optional[string]) sql.NullString {
	if !o.Set {
		return sql.NullString{}
	}
	return sql.NullString{String: o.Value, Valid: true}
}
