// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"strconv"

	"gramsetu/internal/models"
)

const (
	// pageSizeKey is the settings key holding the list page size.
	pageSizeKey = "list.page_size"

	// defaultPageSize applies when the setting is absent or malformed.
	defaultPageSize = 10
)

// ListQuery carries the caller's list-view inputs. Public queries are
// restricted to published records; admin queries may filter by any status.
type ListQuery struct {
	Kind         models.Kind
	Search       string
	CategorySlug string
	Year         int
	Month        int
	Page         int
	Public       bool
	Status       models.Status // admin-only filter; ignored when Public
}

// ListResult is one page of records plus the pagination frame.
type ListResult struct {
	Items      []models.Content `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalCount int              `json:"total_count"`
	TotalPages int              `json:"total_pages"`
}

// List translates the query into a content filter, pages it with the
// settings-driven page size, and returns the requested page. The page
// number is clamped into [1, totalPages], so page 999 of a two-page
// result returns page 2 instead of an empty page.
func (s *Service) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	f := Filter{
		Kind:       q.Kind,
		Search:     q.Search,
		SearchBody: q.Kind.SearchesBody(),
	}
	if q.Public {
		f.Status = models.StatusPublished
		f.OrderByPublished = true
	} else {
		f.Status = q.Status
	}

	if q.CategorySlug != "" {
		f.Category = s.categoryName(q.Kind, q.CategorySlug)
	}
	if q.Year != 0 && q.Month >= 1 && q.Month <= 12 {
		f.From, f.Until = MonthWindow(q.Year, q.Month)
	}

	pageSize := s.pageSize()
	total, err := s.repo.Count(f)
	if err != nil {
		return nil, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	items, err := s.repo.List(f, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}, nil
}

// categoryName resolves a category slug to its display name, since the
// content table stores the name, not the slug. An unresolvable slug is
// used literally: it matches no rows, which renders as an empty page
// rather than an error.
func (s *Service) categoryName(kind models.Kind, slug string) string {
	category, err := s.categories.FindBySlug(kind, slug)
	if err != nil || category == nil {
		return slug
	}
	return category.Name
}

// pageSize reads the page size setting, falling back on absence or junk.
func (s *Service) pageSize() int {
	raw, err := s.settings.Get(pageSizeKey, strconv.Itoa(defaultPageSize))
	if err != nil {
		return defaultPageSize
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return defaultPageSize
	}
	return n
}
