// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// defaultSettings are the runtime tunables the portal expects to find.
// Seeded once; afterwards the admin settings page owns them.
var defaultSettings = []struct {
	key, value, label, grouping string
}{
	{"list.page_size", "10", "Items per list page", "lists"},
	{"site.title", "GramSetu", "Site title", "general"},
	{"feature.classified", "true", "Classifieds section enabled", "features"},
	{"feature.job", "true", "Jobs section enabled", "features"},
}

// seedCategories are starter categories per section so the admin isn't
// greeted by empty dropdowns in development.
var seedCategories = []struct {
	kind, name, nameHi, slug string
}{
	{"news", "Health", "स्वास्थ्य", "health"},
	{"news", "Agriculture", "कृषि", "agriculture"},
	{"news", "Education", "शिक्षा", "education"},
	{"event", "Cultural", "सांस्कृतिक", "cultural"},
	{"business", "Shops", "दुकानें", "shops"},
	{"job", "Government", "सरकारी", "government"},
	{"scheme", "Central", "केंद्रीय", "central"},
	{"classified", "For Sale", "बिक्री", "for-sale"},
	{"service", "Repair", "मरम्मत", "repair"},
}

// Seed populates the database with initial development data: default
// settings and starter categories. No-op if settings already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count); err != nil {
		return fmt.Errorf("seed check settings: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	for _, s := range defaultSettings {
		_, err := db.Exec(`
			INSERT INTO settings (key, value, label, grouping)
			VALUES ($1, $2, $3, $4)
		`, s.key, s.value, s.label, s.grouping)
		if err != nil {
			return fmt.Errorf("seed insert setting %s: %w", s.key, err)
		}
	}

	for _, c := range seedCategories {
		_, err := db.Exec(`
			INSERT INTO categories (kind, name, name_hi, slug)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (kind, slug) DO NOTHING
		`, c.kind, c.name, c.nameHi, c.slug)
		if err != nil {
			return fmt.Errorf("seed insert category %s/%s: %w", c.kind, c.slug, err)
		}
	}

	slog.Info("database seeded", "settings", len(defaultSettings), "categories", len(seedCategories))
	return nil
}
