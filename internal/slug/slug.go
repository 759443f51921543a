// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// nonAlphanumeric matches runs of anything that isn't a letter or digit.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// valid is the canonical slug shape.
	valid = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// IsValid reports whether s is a well-formed slug.
func IsValid(s string) bool {
	return valid.MatchString(s)
}

// EnsureUnique returns candidate unchanged if exists reports it free,
// otherwise candidate with a base-36 timestamp suffix. Two colliding
// titles saved within the same millisecond could still clash; at this
// portal's write volume that has never been observed.
func EnsureUnique(candidate string, exists func(string) bool) string {
	if !exists(candidate) {
		return candidate
	}
	return candidate + "-" + strconv.FormatInt(time.Now().UnixMilli(), 36)
}
