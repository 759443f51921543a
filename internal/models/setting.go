// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Setting is a single configuration key-value pair. Settings are read
// fresh on every request; there is no in-process cache, so a write is
// visible to the next request.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Label     string    `json:"label"`
	Grouping  string    `json:"grouping"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Settings is a convenience map for accessing settings by key.
type Settings map[string]string

// Get returns the value for a key, or the fallback if the key doesn't exist.
func (s Settings) Get(key, fallback string) string {
	if v, ok := s[key]; ok && v != "" {
		return v
	}
	return fallback
}
