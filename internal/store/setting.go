// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"gramsetu/internal/models"
)

// SettingStore handles runtime settings. Reads hit the database every
// time so a settings change is visible on the next request.
type SettingStore struct {
	db *sql.DB
}

// NewSettingStore creates a new SettingStore with the given database connection.
func NewSettingStore(db *sql.DB) *SettingStore {
	return &SettingStore{db: db}
}

// Get returns the value for a key, or fallback when the key is absent or
// empty.
func (s *SettingStore) Get(key, fallback string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("get setting: %w", err)
	}
	if value == "" {
		return fallback, nil
	}
	return value, nil
}

// GetBool treats a feature toggle as enabled unless its value is exactly
// "false". Absent keys are enabled, so new toggles default on.
func (s *SettingStore) GetBool(key string) (bool, error) {
	value, err := s.Get(key, "")
	if err != nil {
		return true, err
	}
	return value != "false", nil
}

// All returns every setting row, ordered by grouping then key, for the
// admin settings screen.
func (s *SettingStore) All() ([]models.Setting, error) {
	rows, err := s.db.Query(`
		SELECT key, value, label, grouping, updated_at
		FROM settings
		ORDER BY grouping, key
	`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []models.Setting
	for rows.Next() {
		var st models.Setting
		if err := rows.Scan(&st.Key, &st.Value, &st.Label, &st.Grouping, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

// AsMap returns all settings as a key-value map.
func (s *SettingStore) AsMap() (models.Settings, error) {
	all, err := s.All()
	if err != nil {
		return nil, err
	}
	m := make(models.Settings, len(all))
	for _, st := range all {
		m[st.Key] = st.Value
	}
	return m, nil
}

// Set upserts one setting value. Label and grouping are kept when the
// key already exists.
func (s *SettingStore) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("set setting: %w", err)
	}
	return nil
}

// SetMany upserts a batch of settings in one transaction, so a partial
// save never leaves the admin screen half-applied.
func (s *SettingStore) SetMany(values map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("set settings: %w", err)
	}
	defer tx.Rollback()

	for key, value := range values {
		_, err := tx.Exec(`
			INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		`, key, value)
		if err != nil {
			return fmt.Errorf("set setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}
