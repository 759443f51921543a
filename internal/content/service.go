// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content implements the lifecycle engine shared by every portal
// section: create/update/delete with slug assignment and publish-timestamp
// rules, bulk operations, archive aggregation, and list query composition.
// Handlers stay thin; everything with an invariant lives here.
package content

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"gramsetu/internal/models"
	"gramsetu/internal/slug"
)

// Validation limits for content fields.
const (
	maxTitleLen = 300
	maxSlugLen  = 300
	maxBodyLen  = 100_000
)

// Filter narrows list and count queries against the content table.
// Category matches the denormalized display name; Search is a
// case-insensitive substring over title and title_hi (and body when
// SearchBody is set). Zero From/Until leave the publish window open.
type Filter struct {
	Kind       models.Kind
	Status     models.Status // "" matches any status
	Category   string
	Search     string
	SearchBody bool
	From       time.Time
	Until      time.Time

	// OrderByPublished orders by published_at descending (public lists);
	// otherwise lists order by created_at descending (admin lists).
	OrderByPublished bool
}

// CategoryCount is one bucket of the per-category sidebar aggregation.
type CategoryCount struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Repository abstracts the content table. Missing rows are reported as
// (nil, nil), matching the store layer's convention.
type Repository interface {
	FindByID(id uuid.UUID) (*models.Content, error)
	FindBySlug(kind models.Kind, slug string) (*models.Content, error)
	SlugExists(kind models.Kind, slug string) (bool, error)
	Create(c *models.Content) (*models.Content, error)
	Update(c *models.Content) error
	Delete(id uuid.UUID) error
	List(f Filter, limit, offset int) ([]models.Content, error)
	Count(f Filter) (int, error)
	SetPublished(kind models.Kind, ids []uuid.UUID, publish bool, now time.Time) (int64, error)
	PublishedDates(kind models.Kind) ([]time.Time, error)
	CategoryCounts(kind models.Kind) ([]CategoryCount, error)
}

// CategoryResolver resolves category references, always scoped by kind so
// one section's categories never leak into another.
type CategoryResolver interface {
	FindByID(kind models.Kind, id uuid.UUID) (*models.Category, error)
	FindBySlug(kind models.Kind, slug string) (*models.Category, error)
}

// SettingReader reads a runtime setting, returning fallback when the key
// is absent. Read fresh on every call; last write wins.
type SettingReader interface {
	Get(key, fallback string) (string, error)
}

// Linker coordinates image attachments against the object store.
// Both calls are fire-and-forget; see the media package.
type Linker interface {
	Attach(newURL, previousURL string)
	Detach(url string)
}

// Invalidator receives fire-and-forget staleness notifications for cached
// routes after successful mutations. A trailing "*" marks a prefix.
type Invalidator interface {
	Invalidate(ctx context.Context, routes ...string)
}

// Authorizer answers whether the request carries an authenticated caller.
// Session issuance lives outside this module.
type Authorizer interface {
	Authenticated(ctx context.Context) bool
}

// Service orchestrates the content lifecycle for every kind.
type Service struct {
	repo       Repository
	categories CategoryResolver
	settings   SettingReader
	linker     Linker
	cache      Invalidator
	auth       Authorizer
	now        func() time.Time
}

// Option configures the service at construction time.
type Option func(*Service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.now = clock
	}
}

// NewService constructs the lifecycle service. linker and cache may be
// nil when object storage or Valkey are not configured.
func NewService(repo Repository, categories CategoryResolver, settings SettingReader, linker Linker, cache Invalidator, auth Authorizer, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		categories: categories,
		settings:   settings,
		linker:     linker,
		cache:      cache,
		auth:       auth,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Input carries the caller-supplied fields for create and update. Slug is
// optional on create; when empty it is derived from the title.
type Input struct {
	Title      string        `json:"title"`
	TitleHi    *string       `json:"title_hi"`
	Slug       string        `json:"slug"`
	Body       string        `json:"body"`
	BodyHi     *string       `json:"body_hi"`
	CategoryID uuid.UUID     `json:"category_id"`
	Status     models.Status `json:"status"`
	ImageURL   *string       `json:"image_url"`
	AuthorID   *uuid.UUID    `json:"author_id"`
}

// Create validates, authorizes, and persists a new record of the given
// kind, then signals cache invalidation for the affected routes.
func (s *Service) Create(ctx context.Context, kind models.Kind, in Input) (*models.Content, error) {
	if err := s.validateShape(in); err != nil {
		return nil, err
	}
	if !s.auth.Authenticated(ctx) {
		return nil, ErrUnauthorized
	}

	if err := s.validateStatus(kind, in.Status); err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(kind, in.CategoryID)
	if err != nil {
		return nil, err
	}

	slugValue, err := s.assignSlug(kind, in)
	if err != nil {
		return nil, err
	}

	now := s.now()
	record := &models.Content{
		Kind:     kind,
		Title:    strings.TrimSpace(in.Title),
		TitleHi:  in.TitleHi,
		Slug:     slugValue,
		Body:     in.Body,
		BodyHi:   in.BodyHi,
		Category: category.Name,
		Status:   in.Status,
		ImageURL: in.ImageURL,
		AuthorID: in.AuthorID,
	}
	if record.Status == "" {
		record.Status = models.StatusDraft
	}
	if record.Status == models.StatusPublished {
		record.PublishedAt = &now
		record.FirstPublishedAt = &now
	}

	created, err := s.repo.Create(record)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, adminListRoute(kind), publicListPrefix(kind))
	return created, nil
}

// Update applies caller edits to an existing record. Replacing the image
// schedules a best-effort delete of the previous blob. The publish
// timestamp follows the retention policy: the first-ever publication time
// survives unpublish/republish cycles.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (*models.Content, error) {
	if err := s.validateShape(in); err != nil {
		return nil, err
	}
	if !s.auth.Authenticated(ctx) {
		return nil, ErrUnauthorized
	}

	existing, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &NotFoundError{Resource: "content", Key: id.String()}
	}

	if err := s.validateStatus(existing.Kind, in.Status); err != nil {
		return nil, err
	}
	category, err := s.resolveCategory(existing.Kind, in.CategoryID)
	if err != nil {
		return nil, err
	}

	oldSlug := existing.Slug
	oldImage := ""
	if existing.ImageURL != nil {
		oldImage = *existing.ImageURL
	}
	newImage := ""
	if in.ImageURL != nil {
		newImage = *in.ImageURL
	}

	existing.Title = strings.TrimSpace(in.Title)
	existing.TitleHi = in.TitleHi
	existing.Body = in.Body
	existing.BodyHi = in.BodyHi
	existing.Category = category.Name
	existing.ImageURL = in.ImageURL
	existing.AuthorID = in.AuthorID
	if in.Slug != "" && in.Slug != existing.Slug {
		// An edited slug goes through the same collision resolution as
		// on create, so a clash suffixes instead of hitting the unique
		// constraint.
		newSlug, slugErr := s.assignSlug(existing.Kind, in)
		if slugErr != nil {
			return nil, slugErr
		}
		existing.Slug = newSlug
	}
	s.applyStatus(existing, in.Status)

	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}

	// Primary operation succeeded; old image cleanup is best-effort.
	if s.linker != nil && newImage != oldImage {
		s.linker.Attach(newImage, oldImage)
	}

	s.invalidate(ctx,
		adminListRoute(existing.Kind),
		adminDetailRoute(existing.Kind, existing.ID),
		publicListPrefix(existing.Kind),
		publicDetailRoute(existing.Kind, oldSlug),
		publicDetailRoute(existing.Kind, existing.Slug),
	)
	return existing, nil
}

// Delete removes a record and schedules best-effort cleanup of its image.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.auth.Authenticated(ctx) {
		return ErrUnauthorized
	}

	existing, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return &NotFoundError{Resource: "content", Key: id.String()}
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	if s.linker != nil && existing.ImageURL != nil {
		s.linker.Detach(*existing.ImageURL)
	}

	s.invalidate(ctx,
		adminListRoute(existing.Kind),
		publicListPrefix(existing.Kind),
		publicDetailRoute(existing.Kind, existing.Slug),
	)
	return nil
}

// Get loads one record by id for the admin edit view.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	record, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, &NotFoundError{Resource: "content", Key: id.String()}
	}
	return record, nil
}

// GetPublished loads one published record by kind and slug for public
// detail pages.
func (s *Service) GetPublished(ctx context.Context, kind models.Kind, slugValue string) (*models.Content, error) {
	record, err := s.repo.FindBySlug(kind, slugValue)
	if err != nil {
		return nil, err
	}
	if record == nil || !record.IsPublished() {
		return nil, &NotFoundError{Resource: string(kind), Key: slugValue}
	}
	return record, nil
}

// applyStatus transitions the record and recomputes publish timestamps.
// Entering published with publication history restores the original
// timestamp; without history it stamps now. Entering draft or closed
// clears only the visible timestamp; first_published_at keeps the
// record's publication history either way.
func (s *Service) applyStatus(c *models.Content, next models.Status) {
	if next == "" {
		next = c.Status
	}
	c.Status = next
	switch next {
	case models.StatusPublished:
		if c.FirstPublishedAt != nil {
			c.PublishedAt = c.FirstPublishedAt
		} else {
			now := s.now()
			c.PublishedAt = &now
			c.FirstPublishedAt = &now
		}
	case models.StatusDraft, models.StatusClosed:
		c.PublishedAt = nil
	}
}

// validateShape checks caller-supplied field shape. It runs before
// authorization; business rules (status legality, category kind) run
// after, so the ordering is identical for every mutating operation.
func (s *Service) validateShape(in Input) error {
	errs := ValidationError{}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		errs["title"] = "Title is required."
	} else if utf8.RuneCountInString(title) > maxTitleLen {
		errs["title"] = "Title is too long (max 300 characters)."
	}
	if strings.TrimSpace(in.Body) == "" {
		errs["body"] = "Body is required."
	} else if utf8.RuneCountInString(in.Body) > maxBodyLen {
		errs["body"] = "Body is too long (max 100,000 characters)."
	}
	if in.CategoryID == uuid.Nil {
		errs["category_id"] = "Category is required."
	}
	if in.Slug != "" {
		if utf8.RuneCountInString(in.Slug) > maxSlugLen {
			errs["slug"] = "Slug is too long (max 300 characters)."
		} else if !slug.IsValid(in.Slug) {
			errs["slug"] = "Slug may only contain lowercase letters, digits, and hyphens."
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *Service) validateStatus(kind models.Kind, status models.Status) error {
	if status == "" {
		return nil
	}
	if !status.ValidFor(kind) {
		return ValidationError{"status": "Status " + string(status) + " is not allowed for " + string(kind) + "."}
	}
	return nil
}

// resolveCategory looks up the category by id scoped to kind. A category
// belonging to a different kind is reported as not found rather than
// silently accepted.
func (s *Service) resolveCategory(kind models.Kind, id uuid.UUID) (*models.Category, error) {
	category, err := s.categories.FindByID(kind, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &NotFoundError{Resource: "category", Key: id.String()}
	}
	return category, nil
}

// assignSlug picks the caller's slug or derives one from the title, then
// resolves collisions within the kind.
func (s *Service) assignSlug(kind models.Kind, in Input) (string, error) {
	candidate := in.Slug
	if candidate == "" {
		candidate = slug.Generate(in.Title)
	}

	var lookupErr error
	unique := slug.EnsureUnique(candidate, func(c string) bool {
		exists, err := s.repo.SlugExists(kind, c)
		if err != nil {
			lookupErr = err
		}
		return exists
	})
	if lookupErr != nil {
		return "", lookupErr
	}
	return unique, nil
}

func (s *Service) invalidate(ctx context.Context, routes ...string) {
	if s.cache == nil {
		return
	}
	s.cache.Invalidate(ctx, routes...)
}

func adminListRoute(kind models.Kind) string {
	return "/admin/api/" + string(kind)
}

func adminDetailRoute(kind models.Kind, id uuid.UUID) string {
	return "/admin/api/" + string(kind) + "/" + id.String()
}

// publicListPrefix covers every page/filter permutation of a kind's
// public list; the trailing "*" marks it as a prefix for the invalidator.
func publicListPrefix(kind models.Kind) string {
	return "/api/" + string(kind) + "*"
}

func publicDetailRoute(kind models.Kind, slugValue string) string {
	return "/api/" + string(kind) + "/" + slugValue
}
