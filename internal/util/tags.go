// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "strings"

// SplitTags splits a comma-separated tag string into trimmed, non-empty labels.
func SplitTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// NormalizeTags rewrites a comma-separated tag string in canonical form:
// labels trimmed, empty labels dropped, joined with a bare comma.
func NormalizeTags(s string) string {
	return strings.Join(SplitTags(s), ",")
}
