// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media coordinates content-attached images against the object
// store. Deletes of replaced or orphaned images are best-effort: a slow
// or unavailable object store must never block or fail a content edit,
// so failures are logged and swallowed. Orphaned blobs are reclaimable
// by a manual sweep; they are never user-visible.
package media

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// deleteTimeout bounds each background delete against the object store.
const deleteTimeout = 30 * time.Second

// ObjectDeleter is the slice of the storage client the linker needs.
// Deleting a URL that no longer resolves to a live object is a no-op.
type ObjectDeleter interface {
	DeleteByURL(ctx context.Context, url string) error
}

// Linker tracks image attachments for content records and cleans up
// blobs that are no longer referenced.
type Linker struct {
	objects ObjectDeleter
	wg      sync.WaitGroup
}

// NewLinker creates a Linker. objects may be nil when object storage is
// not configured; every operation then becomes a no-op.
func NewLinker(objects ObjectDeleter) *Linker {
	return &Linker{objects: objects}
}

// Attach records that a content record now references newURL. If it
// previously referenced a different URL, the old blob is deleted in the
// background.
func (l *Linker) Attach(newURL, previousURL string) {
	if previousURL == "" || newURL == previousURL {
		return
	}
	l.deleteAsync("delete replaced image", previousURL)
}

// Detach deletes the blob for a record that is being removed.
func (l *Linker) Detach(url string) {
	if url == "" {
		return
	}
	l.deleteAsync("delete orphaned image", url)
}

// Wait blocks until all in-flight deletes finish. Called on shutdown and
// by tests that assert on delete calls.
func (l *Linker) Wait() {
	l.wg.Wait()
}

func (l *Linker) deleteAsync(op, url string) {
	if l.objects == nil {
		return
	}
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), deleteTimeout)
		defer cancel()
		bestEffort(op, url, func() error {
			return l.objects.DeleteByURL(ctx, url)
		})
	}()
}

// bestEffort runs fn and deliberately discards its failure after logging
// it. Call sites use it where the primary operation's outcome must not
// depend on the object store.
func bestEffort(op, url string, fn func() error) {
	if err := fn(); err != nil {
		slog.Warn("best-effort media cleanup failed", "op", op, "url", url, "error", err)
	}
}
