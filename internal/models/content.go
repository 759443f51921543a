// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes the content sections sharing the unified content table.
type Kind string

const (
	KindNews       Kind = "news"
	KindEvent      Kind = "event"
	KindBusiness   Kind = "business"
	KindVillage    Kind = "village"
	KindJob        Kind = "job"
	KindScheme     Kind = "scheme"
	KindClassified Kind = "classified"
	KindService    Kind = "service"
)

// Kinds lists every content kind in display order.
var Kinds = []Kind{
	KindNews, KindEvent, KindBusiness, KindVillage,
	KindJob, KindScheme, KindClassified, KindService,
}

// ParseKind returns the Kind for a URL segment, or "" if unknown.
func ParseKind(s string) Kind {
	for _, k := range Kinds {
		if string(k) == s {
			return k
		}
	}
	return ""
}

// Closeable reports whether records of this kind may be marked closed.
// Jobs and schemes have an application window; the rest do not.
func (k Kind) Closeable() bool {
	return k == KindJob || k == KindScheme
}

// SearchesBody reports whether free-text search also matches the body
// for this kind. News and schemes are long-form; the rest are matched
// on titles only.
func (k Kind) SearchesBody() bool {
	return k == KindNews || k == KindScheme
}

// Status represents the publishing state of a content record.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusClosed    Status = "closed"
)

// ValidFor reports whether the status is legal for the given kind.
func (s Status) ValidFor(kind Kind) bool {
	switch s {
	case StatusDraft, StatusPublished:
		return true
	case StatusClosed:
		return kind.Closeable()
	}
	return false
}

// Content is a record in the unified content table. All portal sections
// (news, events, businesses, villages, jobs, schemes, classifieds, service
// posts) share this shape, differentiated by the Kind field.
//
// Category holds the category's display name, not a foreign key; list
// filters resolve a category slug to its name before matching.
type Content struct {
	ID       uuid.UUID  `json:"id"`
	Kind     Kind       `json:"kind"`
	Title    string     `json:"title"`
	TitleHi  *string    `json:"title_hi,omitempty"`
	Slug     string     `json:"slug"`
	Body     string     `json:"body"`
	BodyHi   *string    `json:"body_hi,omitempty"`
	Category string     `json:"category"`
	Status   Status     `json:"status"`
	ImageURL *string    `json:"image_url,omitempty"`
	AuthorID *uuid.UUID `json:"author_id,omitempty"`

	// PublishedAt is set while the record is published. FirstPublishedAt
	// keeps the original publication time across unpublish/republish
	// cycles so republishing does not rewrite history.
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	FirstPublishedAt *time.Time `json:"first_published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsPublished returns true if the record is in published status.
func (c *Content) IsPublished() bool {
	return c.Status == StatusPublished
}
