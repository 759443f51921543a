// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gramsetu/internal/cache"
	"gramsetu/internal/content"
	"gramsetu/internal/markdown"
	"gramsetu/internal/models"
	"gramsetu/internal/store"
)

// Public groups the unauthenticated read-only handlers. Responses are
// cached in Valkey by request URI; mutations on the admin side signal
// invalidation through the content service.
type Public struct {
	svc          *content.Service
	settingStore *store.SettingStore
	directory    *store.DirectoryStore
	routeCache   *cache.RouteCache
}

// NewPublic creates the public handler group. routeCache may be nil when
// Valkey is not configured; responses are then served uncached.
func NewPublic(svc *content.Service, settingStore *store.SettingStore, directory *store.DirectoryStore, routeCache *cache.RouteCache) *Public {
	return &Public{
		svc:          svc,
		settingStore: settingStore,
		directory:    directory,
		routeCache:   routeCache,
	}
}

// serveCached writes a cached response body if one exists for this
// request URI. Returns true when the request was served from cache.
func (p *Public) serveCached(w http.ResponseWriter, r *http.Request) bool {
	if p.routeCache == nil {
		return false
	}
	body, ok := p.routeCache.Get(r.Context(), r.URL.RequestURI())
	if !ok {
		return false
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
	return true
}

// writeAndCache serializes v, stores the body under the request URI,
// and writes it with a 200.
func (p *Public) writeAndCache(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("marshal response", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if p.routeCache != nil {
		p.routeCache.Set(r.Context(), r.URL.RequestURI(), body)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// sectionEnabled checks the feature toggle for a section. Toggles are
// enabled unless set to exactly "false"; a read failure fails open.
func (p *Public) sectionEnabled(kind models.Kind) bool {
	enabled, err := p.settingStore.GetBool("feature." + string(kind))
	if err != nil {
		slog.Warn("feature toggle read failed", "kind", kind, "error", err)
		return true
	}
	return enabled
}

// requireSection rejects requests for disabled sections with a 404.
func (p *Public) requireSection(w http.ResponseWriter, r *http.Request) (models.Kind, bool) {
	kind, ok := kindParam(w, r)
	if !ok {
		return "", false
	}
	if !p.sectionEnabled(kind) {
		writeError(w, http.StatusNotFound, "section disabled")
		return "", false
	}
	return kind, true
}

// ContentList serves one page of published records for a section.
func (p *Public) ContentList(w http.ResponseWriter, r *http.Request) {
	kind, ok := p.requireSection(w, r)
	if !ok {
		return
	}
	if p.serveCached(w, r) {
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	year, _ := strconv.Atoi(q.Get("year"))
	month, _ := strconv.Atoi(q.Get("month"))

	result, err := p.svc.List(r.Context(), content.ListQuery{
		Kind:         kind,
		Search:       q.Get("search"),
		CategorySlug: q.Get("category"),
		Year:         year,
		Month:        month,
		Page:         page,
		Public:       true,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	p.writeAndCache(w, r, result)
}

// detailResponse wraps a record with its Markdown body rendered to HTML.
type detailResponse struct {
	models.Content
	BodyHTML   string `json:"body_html"`
	BodyHiHTML string `json:"body_hi_html,omitempty"`
}

// ContentDetail serves one published record by slug, with the body
// rendered to HTML for direct display.
func (p *Public) ContentDetail(w http.ResponseWriter, r *http.Request) {
	kind, ok := p.requireSection(w, r)
	if !ok {
		return
	}
	if p.serveCached(w, r) {
		return
	}

	record, err := p.svc.GetPublished(r.Context(), kind, chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := detailResponse{Content: *record}
	if resp.BodyHTML, err = markdown.ToHTML(record.Body); err != nil {
		writeServiceError(w, err)
		return
	}
	if record.BodyHi != nil {
		if resp.BodyHiHTML, err = markdown.ToHTML(*record.BodyHi); err != nil {
			writeServiceError(w, err)
			return
		}
	}
	p.writeAndCache(w, r, resp)
}

// ContentArchive serves the month-bucket archive for a section.
func (p *Public) ContentArchive(w http.ResponseWriter, r *http.Request) {
	kind, ok := p.requireSection(w, r)
	if !ok {
		return
	}
	if p.serveCached(w, r) {
		return
	}

	buckets, err := p.svc.Archive(r.Context(), kind)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	p.writeAndCache(w, r, buckets)
}

// ContentCategories serves the per-category published counts for a section.
func (p *Public) ContentCategories(w http.ResponseWriter, r *http.Request) {
	kind, ok := p.requireSection(w, r)
	if !ok {
		return
	}
	if p.serveCached(w, r) {
		return
	}

	counts, err := p.svc.CategoryCounts(r.Context(), kind)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	p.writeAndCache(w, r, counts)
}

// Helplines serves the helpline directory.
func (p *Public) Helplines(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r) {
		return
	}
	helplines, err := p.directory.ListHelplines()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	p.writeAndCache(w, r, helplines)
}

// BusRoutes serves the bus timetable directory.
func (p *Public) BusRoutes(w http.ResponseWriter, r *http.Request) {
	if p.serveCached(w, r) {
		return
	}
	routes, err := p.directory.ListBusRoutes()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	p.writeAndCache(w, r, routes)
}

// invalidateRoutes is shared by admin handlers that mutate data the
// public handlers cache outside the content service's own signals.
func invalidateRoutes(ctx context.Context, inv content.Invalidator, routes ...string) {
	if inv != nil {
		inv.Invalidate(ctx, routes...)
	}
}
