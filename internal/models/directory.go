// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Helpline is an emergency or service phone number shown on the portal.
type Helpline struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	NameHi    *string   `json:"name_hi,omitempty"`
	Phone     string    `json:"phone"`
	Category  string    `json:"category"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BusRoute is one bus connection with its departure times. Departures is
// a free-form comma-separated list maintained by hand in the admin.
type BusRoute struct {
	ID          uuid.UUID `json:"id"`
	Route       string    `json:"route"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Departures  string    `json:"departures"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
