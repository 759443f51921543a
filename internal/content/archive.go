// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"sort"
	"time"

	"gramsetu/internal/models"
)

// ArchiveBucket is one year-month publication bucket for the sidebar.
type ArchiveBucket struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Count int `json:"count"`
}

// Archive groups the publish dates of a kind's published records into
// year-month buckets, most recent period first. Recomputed on every
// request over a lightweight date projection; fine at the hundreds to
// low thousands of records this portal holds.
func (s *Service) Archive(ctx context.Context, kind models.Kind) ([]ArchiveBucket, error) {
	dates, err := s.repo.PublishedDates(kind)
	if err != nil {
		return nil, err
	}

	type ym struct{ year, month int }
	counts := make(map[ym]int, len(dates))
	for _, d := range dates {
		counts[ym{d.Year(), int(d.Month())}]++
	}

	buckets := make([]ArchiveBucket, 0, len(counts))
	for k, n := range counts {
		buckets = append(buckets, ArchiveBucket{Year: k.year, Month: k.month, Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Year != buckets[j].Year {
			return buckets[i].Year > buckets[j].Year
		}
		return buckets[i].Month > buckets[j].Month
	})
	return buckets, nil
}

// CategoryCounts returns the published-record count per category for a
// kind, for sidebar navigation.
func (s *Service) CategoryCounts(ctx context.Context, kind models.Kind) ([]CategoryCount, error) {
	return s.repo.CategoryCounts(kind)
}

// MonthWindow converts a year+month into the [from, until) range used by
// archive-filtered list queries.
func MonthWindow(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
