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

// CategoryStore handles category database operations. Every lookup is
// scoped by kind; the table serves all sections of the portal.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// ListByKind returns all categories of one kind ordered by name, with
// the published post count per category filled in.
func (s *CategoryStore) ListByKind(kind models.Kind) ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.kind, c.name, c.name_hi, c.slug, c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM content
		        WHERE kind = c.kind AND category = c.name AND status = 'published')
		FROM categories c
		WHERE c.kind = $1
		ORDER BY c.name
	`, kind)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Kind, &c.Name, &c.NameHi, &c.Slug,
			&c.CreatedAt, &c.UpdatedAt, &c.PostCount); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FindByID retrieves a category by kind and ID. Returns nil if not found.
func (s *CategoryStore) FindByID(kind models.Kind, id uuid.UUID) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, kind, name, name_hi, slug, created_at, updated_at
		FROM categories WHERE kind = $1 AND id = $2
	`, kind, id).Scan(&c.ID, &c.Kind, &c.Name, &c.NameHi, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a category by kind and slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(kind models.Kind, slug string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, kind, name, name_hi, slug, created_at, updated_at
		FROM categories WHERE kind = $1 AND slug = $2
	`, kind, slug).Scan(&c.ID, &c.Kind, &c.Name, &c.NameHi, &c.Slug, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it with the generated ID.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	result := &models.Category{}
	err := s.db.QueryRow(`
		INSERT INTO categories (kind, name, name_hi, slug)
		VALUES ($1, $2, $3, $4)
		RETURNING id, kind, name, name_hi, slug, created_at, updated_at
	`, c.Kind, c.Name, c.NameHi, c.Slug).Scan(
		&result.ID, &result.Kind, &result.Name, &result.NameHi, &result.Slug,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update renames a category. Content rows carry the category name
// denormalized, so the rename is applied to them in the same transaction.
func (s *CategoryStore) Update(c *models.Category) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	defer tx.Rollback()

	var oldName string
	err = tx.QueryRow(`SELECT name FROM categories WHERE id = $1`, c.ID).Scan(&oldName)
	if err == sql.ErrNoRows {
		return fmt.Errorf("update category: not found")
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE categories SET name = $1, name_hi = $2, slug = $3, updated_at = NOW()
		WHERE id = $4
	`, c.Name, c.NameHi, c.Slug, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}

	if oldName != c.Name {
		_, err = tx.Exec(`
			UPDATE content SET category = $1, updated_at = NOW()
			WHERE kind = $2 AND category = $3
		`, c.Name, c.Kind, oldName)
		if err != nil {
			return fmt.Errorf("propagate category rename: %w", err)
		}
	}

	return tx.Commit()
}

// Delete removes a category. Content rows keep their denormalized
// category name; they simply stop resolving to a category page.
func (s *CategoryStore) Delete(kind models.Kind, id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM categories WHERE kind = $1 AND id = $2`, kind, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
