// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"

	"github.com/google/uuid"

	"gramsetu/internal/models"
)

// BulkDelete removes the given records sequentially. Ids that do not
// resolve, or that belong to a different kind, are skipped silently; the
// return value is the number of records actually deleted. Not atomic: a
// failure partway through leaves earlier deletions committed.
//
// Sequential on purpose — batches are tens of rows and a per-item loop
// keeps object-store load flat instead of fanning out delete storms.
func (s *Service) BulkDelete(ctx context.Context, kind models.Kind, ids []uuid.UUID) (int, error) {
	if !s.auth.Authenticated(ctx) {
		return 0, ErrUnauthorized
	}

	deleted := 0
	for _, id := range ids {
		record, err := s.repo.FindByID(id)
		if err != nil {
			return deleted, err
		}
		if record == nil || record.Kind != kind {
			continue
		}

		if err := s.repo.Delete(id); err != nil {
			return deleted, err
		}
		if s.linker != nil && record.ImageURL != nil {
			s.linker.Detach(*record.ImageURL)
		}
		deleted++
	}

	if deleted > 0 {
		s.invalidate(ctx, adminListRoute(kind), publicListPrefix(kind))
	}
	return deleted, nil
}

// BulkSetPublished publishes or unpublishes the given records in a single
// set-based statement and returns the number of rows affected. Publishing
// stamps the publish timestamp (preserving first-publication history);
// unpublishing clears it.
func (s *Service) BulkSetPublished(ctx context.Context, kind models.Kind, ids []uuid.UUID, publish bool) (int64, error) {
	if !s.auth.Authenticated(ctx) {
		return 0, ErrUnauthorized
	}
	if len(ids) == 0 {
		return 0, nil
	}

	affected, err := s.repo.SetPublished(kind, ids, publish, s.now())
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		s.invalidate(ctx, adminListRoute(kind), publicListPrefix(kind))
	}
	return affected, nil
}
