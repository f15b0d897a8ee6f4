// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/olegiv/ciphercorp-site/internal/util"
)

// Field limits, counted in characters.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxContentLength     = 100000
	MaxTagsLength        = 500
	MaxURLLength         = 2048
	MaxNameLength        = 100
	MaxRoleLength        = 100
	MaxBioLength         = 2000
	MaxEmailLength       = 255
)

// fieldRule describes one text field of a record.
type fieldRule struct {
	name     string // JSON name, used as the FieldErrors key
	label    string
	required bool
	max      int
	email    bool
	tags     bool
}

// clean trims v and normalises it, returning the stored form and a
// problem description, or "" when the value is acceptable.
func (f fieldRule) clean(v string) (string, string) {
	v = strings.TrimSpace(v)
	if f.tags {
		v = util.NormalizeTags(v)
	}

	if v == "" {
		if f.required {
			return v, f.label + " is required"
		}
		return v, ""
	}
	if utf8.RuneCountInString(v) > f.max {
		return v, fmt.Sprintf("%s must be at most %d characters", f.label, f.max)
	}
	if f.email && !isEmail(v) {
		return v, f.label + " must be a valid email address"
	}
	return v, ""
}

// check trims v and records a problem for a missing required value, an
// over-long value or a malformed email.
func (f fieldRule) check(v string, errs FieldErrors) string {
	v, problem := f.clean(v)
	if problem != "" {
		errs[f.name] = problem
	}
	return v
}

// checkOptional cleans a value that may be absent. An absent value stays
// absent. A present required field still has to be non-empty.
func (f fieldRule) checkOptional(o util.Optional[string], errs FieldErrors) util.Optional[string] {
	if !o.Set {
		return o
	}
	return util.Some(f.check(o.Value, errs))
}

// isEmail accepts a bare address such as a@b.co, without a display name.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@"):], ".")
}
