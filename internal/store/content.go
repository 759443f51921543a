// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gramsetu/internal/content"
	"gramsetu/internal/models"
)

// contentColumns is the select list shared by every content query.
const contentColumns = `id, kind, title, title_hi, slug, body, body_hi, category, status,
	       image_url, author_id, published_at, first_published_at, created_at, updated_at`

// ContentStore handles all content-related database operations. Every
// section of the portal goes through the unified content table, scoped
// by the kind column.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

func scanContent(row interface{ Scan(...any) error }, c *models.Content) error {
	return row.Scan(
		&c.ID, &c.Kind, &c.Title, &c.TitleHi, &c.Slug, &c.Body, &c.BodyHi,
		&c.Category, &c.Status, &c.ImageURL, &c.AuthorID,
		&c.PublishedAt, &c.FirstPublishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
}

// FindByID retrieves a content item by its UUID. Returns nil if not found.
func (s *ContentStore) FindByID(id uuid.UUID) (*models.Content, error) {
	c := &models.Content{}
	err := scanContent(s.db.QueryRow(`
		SELECT `+contentColumns+`
		FROM content WHERE id = $1
	`, id), c)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a content item by kind and slug, regardless of
// status. Callers serving public routes filter on status themselves.
func (s *ContentStore) FindBySlug(kind models.Kind, slug string) (*models.Content, error) {
	c := &models.Content{}
	err := scanContent(s.db.QueryRow(`
		SELECT `+contentColumns+`
		FROM content WHERE kind = $1 AND slug = $2
	`, kind, slug), c)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by slug: %w", err)
	}
	return c, nil
}

// SlugExists reports whether a slug is already taken within a kind.
func (s *ContentStore) SlugExists(kind models.Kind, slug string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM content WHERE kind = $1 AND slug = $2)
	`, kind, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check slug exists: %w", err)
	}
	return exists, nil
}

// Create inserts a new content item and returns it with the generated ID.
func (s *ContentStore) Create(c *models.Content) (*models.Content, error) {
	result := &models.Content{}
	err := scanContent(s.db.QueryRow(`
		INSERT INTO content (kind, title, title_hi, slug, body, body_hi, category,
		                     status, image_url, author_id, published_at, first_published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+contentColumns+`
	`, c.Kind, c.Title, c.TitleHi, c.Slug, c.Body, c.BodyHi, c.Category,
		c.Status, c.ImageURL, c.AuthorID, c.PublishedAt, c.FirstPublishedAt,
	), result)
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return result, nil
}

// Update modifies an existing content item. The kind column never changes.
func (s *ContentStore) Update(c *models.Content) error {
	_, err := s.db.Exec(`
		UPDATE content SET
			title = $1, title_hi = $2, slug = $3, body = $4, body_hi = $5,
			category = $6, status = $7, image_url = $8,
			published_at = $9, first_published_at = $10,
			updated_at = NOW()
		WHERE id = $11
	`, c.Title, c.TitleHi, c.Slug, c.Body, c.BodyHi,
		c.Category, c.Status, c.ImageURL,
		c.PublishedAt, c.FirstPublishedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	return nil
}

// Delete removes a content item by ID.
func (s *ContentStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM content WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// filterClause renders a content filter as a WHERE clause with numbered
// placeholders, returning the clause and its arguments.
func filterClause(f content.Filter) (string, []any) {
	clauses := []string{"kind = $1"}
	args := []any{f.Kind}

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		if f.SearchBody {
			add("(title ILIKE $%[1]d OR COALESCE(title_hi, '') ILIKE $%[1]d OR body ILIKE $%[1]d)", pattern)
		} else {
			add("(title ILIKE $%[1]d OR COALESCE(title_hi, '') ILIKE $%[1]d)", pattern)
		}
	}
	if !f.From.IsZero() {
		add("published_at >= $%d", f.From)
		add("published_at < $%d", f.Until)
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

// escapeLike neutralizes LIKE metacharacters in user-supplied search text.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// List returns one page of content matching the filter.
func (s *ContentStore) List(f content.Filter, limit, offset int) ([]models.Content, error) {
	where, args := filterClause(f)
	order := " ORDER BY created_at DESC"
	if f.OrderByPublished {
		order = " ORDER BY published_at DESC NULLS LAST"
	}
	args = append(args, limit, offset)
	query := "SELECT " + contentColumns + " FROM content" + where + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		var c models.Content
		if err := scanContent(rows, &c); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Count returns the number of content items matching the filter.
func (s *ContentStore) Count(f content.Filter) (int, error) {
	where, args := filterClause(f)
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM content"+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count content: %w", err)
	}
	return n, nil
}

// SetPublished flips a batch of items of one kind between published and
// draft in a single statement, returning the number of rows affected.
// Publishing restores the original publish timestamp when one exists.
func (s *ContentStore) SetPublished(kind models.Kind, ids []uuid.UUID, publish bool, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	args := []any{kind}
	if publish {
		args = append(args, now)
	}
	placeholders := make([]string, len(ids))
	for i, id := range ids {
		args = append(args, id)
		placeholders[i] = fmt.Sprintf("$%d", len(args))
	}
	in := strings.Join(placeholders, ", ")

	var query string
	if publish {
		query = `
			UPDATE content SET
				status = 'published',
				first_published_at = COALESCE(first_published_at, $2),
				published_at = COALESCE(first_published_at, $2),
				updated_at = NOW()
			WHERE kind = $1 AND id IN (` + in + `)`
	} else {
		query = `
			UPDATE content SET
				status = 'draft',
				published_at = NULL,
				updated_at = NOW()
			WHERE kind = $1 AND id IN (` + in + `)`
	}

	result, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("set published: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("set published rows affected: %w", err)
	}
	return affected, nil
}

// PublishedDates returns the publish timestamps of every published item
// of a kind, for archive aggregation.
func (s *ContentStore) PublishedDates(kind models.Kind) ([]time.Time, error) {
	rows, err := s.db.Query(`
		SELECT published_at FROM content
		WHERE kind = $1 AND status = 'published' AND published_at IS NOT NULL
		ORDER BY published_at DESC
	`, kind)
	if err != nil {
		return nil, fmt.Errorf("list published dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan published date: %w", err)
		}
		dates = append(dates, t)
	}
	return dates, rows.Err()
}

// CategoryCounts returns per-category published counts for a kind,
// joined back to the categories table for the slug.
func (s *ContentStore) CategoryCounts(kind models.Kind) ([]content.CategoryCount, error) {
	rows, err := s.db.Query(`
		SELECT c.category, COALESCE(cat.slug, ''), COUNT(*)
		FROM content c
		LEFT JOIN categories cat ON cat.kind = c.kind AND cat.name = c.category
		WHERE c.kind = $1 AND c.status = 'published' AND c.category <> ''
		GROUP BY c.category, cat.slug
		ORDER BY c.category
	`, kind)
	if err != nil {
		return nil, fmt.Errorf("count content by category: %w", err)
	}
	defer rows.Close()

	var counts []content.CategoryCount
	for rows.Next() {
		var cc content.CategoryCount
		if err := rows.Scan(&cc.Name, &cc.Slug, &cc.Count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts = append(counts, cc)
	}
	return counts, rows.Err()
}
