// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"gramsetu/internal/models"
)

// DirectoryStore handles the small hand-curated directories: helplines
// and bus routes. Both are flat lists ordered by sort_order.
type DirectoryStore struct {
	db *sql.DB
}

// NewDirectoryStore creates a new DirectoryStore with the given database connection.
func NewDirectoryStore(db *sql.DB) *DirectoryStore {
	return &DirectoryStore{db: db}
}

// ListHelplines returns all helplines in display order.
func (s *DirectoryStore) ListHelplines() ([]models.Helpline, error) {
	rows, err := s.db.Query(`
		SELECT id, name, name_hi, phone, category, sort_order, created_at, updated_at
		FROM helplines
		ORDER BY sort_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list helplines: %w", err)
	}
	defer rows.Close()

	var helplines []models.Helpline
	for rows.Next() {
		var h models.Helpline
		if err := rows.Scan(&h.ID, &h.Name, &h.NameHi, &h.Phone, &h.Category,
			&h.SortOrder, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan helpline: %w", err)
		}
		helplines = append(helplines, h)
	}
	return helplines, rows.Err()
}

// CreateHelpline inserts a new helpline and returns it with the generated ID.
func (s *DirectoryStore) CreateHelpline(h *models.Helpline) (*models.Helpline, error) {
	result := &models.Helpline{}
	err := s.db.QueryRow(`
		INSERT INTO helplines (name, name_hi, phone, category, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, name_hi, phone, category, sort_order, created_at, updated_at
	`, h.Name, h.NameHi, h.Phone, h.Category, h.SortOrder).Scan(
		&result.ID, &result.Name, &result.NameHi, &result.Phone, &result.Category,
		&result.SortOrder, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create helpline: %w", err)
	}
	return result, nil
}

// UpdateHelpline modifies an existing helpline.
func (s *DirectoryStore) UpdateHelpline(h *models.Helpline) error {
	_, err := s.db.Exec(`
		UPDATE helplines SET
			name = $1, name_hi = $2, phone = $3, category = $4, sort_order = $5,
			updated_at = NOW()
		WHERE id = $6
	`, h.Name, h.NameHi, h.Phone, h.Category, h.SortOrder, h.ID)
	if err != nil {
		return fmt.Errorf("update helpline: %w", err)
	}
	return nil
}

// DeleteHelpline removes a helpline by ID.
func (s *DirectoryStore) DeleteHelpline(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM helplines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete helpline: %w", err)
	}
	return nil
}

// ListBusRoutes returns all bus routes in display order.
func (s *DirectoryStore) ListBusRoutes() ([]models.BusRoute, error) {
	rows, err := s.db.Query(`
		SELECT id, route, origin, destination, departures, sort_order, created_at, updated_at
		FROM bus_routes
		ORDER BY sort_order, route
	`)
	if err != nil {
		return nil, fmt.Errorf("list bus routes: %w", err)
	}
	defer rows.Close()

	var routes []models.BusRoute
	for rows.Next() {
		var r models.BusRoute
		if err := rows.Scan(&r.ID, &r.Route, &r.Origin, &r.Destination, &r.Departures,
			&r.SortOrder, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan bus route: %w", err)
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

// CreateBusRoute inserts a new bus route and returns it with the generated ID.
func (s *DirectoryStore) CreateBusRoute(r *models.BusRoute) (*models.BusRoute, error) {
	result := &models.BusRoute{}
	err := s.db.QueryRow(`
		INSERT INTO bus_routes (route, origin, destination, departures, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, route, origin, destination, departures, sort_order, created_at, updated_at
	`, r.Route, r.Origin, r.Destination, r.Departures, r.SortOrder).Scan(
		&result.ID, &result.Route, &result.Origin, &result.Destination, &result.Departures,
		&result.SortOrder, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create bus route: %w", err)
	}
	return result, nil
}

// UpdateBusRoute modifies an existing bus route.
func (s *DirectoryStore) UpdateBusRoute(r *models.BusRoute) error {
	_, err := s.db.Exec(`
		UPDATE bus_routes SET
			route = $1, origin = $2, destination = $3, departures = $4, sort_order = $5,
			updated_at = NOW()
		WHERE id = $6
	`, r.Route, r.Origin, r.Destination, r.Departures, r.SortOrder, r.ID)
	if err != nil {
		return fmt.Errorf("update bus route: %w", err)
	}
	return nil
}

// DeleteBusRoute removes a bus route by ID.
func (s *DirectoryStore) DeleteBusRoute(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM bus_routes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bus route: %w", err)
	}
	return nil
}
