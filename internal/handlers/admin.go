// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"gramsetu/internal/content"
	"gramsetu/internal/models"
	"gramsetu/internal/session"
	"gramsetu/internal/slug"
	"gramsetu/internal/storage"
	"gramsetu/internal/store"
)

// Admin groups the session-authenticated handlers.
type Admin struct {
	svc           *content.Service
	categoryStore *store.CategoryStore
	settingStore  *store.SettingStore
	directory     *store.DirectoryStore
	sessions      *session.Store
	storageClient *storage.Client
	cache         content.Invalidator
}

// NewAdmin creates the admin handler group with its dependencies.
// storageClient and cache may be nil if S3 or Valkey are not configured.
func NewAdmin(svc *content.Service, categoryStore *store.CategoryStore, settingStore *store.SettingStore, directory *store.DirectoryStore, sessions *session.Store, storageClient *storage.Client, cacheInv content.Invalidator) *Admin {
	return &Admin{
		svc:           svc,
		categoryStore: categoryStore,
		settingStore:  settingStore,
		directory:     directory,
		sessions:      sessions,
		storageClient: storageClient,
		cache:         cacheInv,
	}
}

// ContentList serves the admin list for one section, drafts included.
func (a *Admin) ContentList(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	year, _ := strconv.Atoi(q.Get("year"))
	month, _ := strconv.Atoi(q.Get("month"))

	result, err := a.svc.List(r.Context(), content.ListQuery{
		Kind:         kind,
		Search:       q.Get("search"),
		CategorySlug: q.Get("category"),
		Status:       models.Status(q.Get("status")),
		Year:         year,
		Month:        month,
		Page:         page,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ContentGet serves one record by ID for the edit screen.
func (a *Admin) ContentGet(w http.ResponseWriter, r *http.Request) {
	if _, ok := kindParam(w, r); !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	record, err := a.svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// ContentCreate creates a record in one section.
func (a *Admin) ContentCreate(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	var in content.Input
	if !readJSON(w, r, &in) {
		return
	}

	record, err := a.svc.Create(r.Context(), kind, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// ContentUpdate updates a record by ID.
func (a *Admin) ContentUpdate(w http.ResponseWriter, r *http.Request) {
	if _, ok := kindParam(w, r); !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var in content.Input
	if !readJSON(w, r, &in) {
		return
	}

	record, err := a.svc.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// ContentDelete deletes a record by ID.
func (a *Admin) ContentDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := kindParam(w, r); !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := a.svc.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// bulkRequest is the body of a bulk operation.
type bulkRequest struct {
	Action string      `json:"action"` // delete | publish | unpublish
	IDs    []uuid.UUID `json:"ids"`
}

// ContentBulk applies one action to a batch of IDs within a section.
func (a *Admin) ContentBulk(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	var req bulkRequest
	if !readJSON(w, r, &req) {
		return
	}

	var affected int64
	var err error
	switch req.Action {
	case "delete":
		var n int
		n, err = a.svc.BulkDelete(r.Context(), kind, req.IDs)
		affected = int64(n)
	case "publish":
		affected, err = a.svc.BulkSetPublished(r.Context(), kind, req.IDs, true)
	case "unpublish":
		affected, err = a.svc.BulkSetPublished(r.Context(), kind, req.IDs, false)
	default:
		writeError(w, http.StatusBadRequest, "unknown bulk action")
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"affected": affected})
}

// categoryInput is the body for category create and update.
type categoryInput struct {
	Name   string  `json:"name"`
	NameHi *string `json:"name_hi"`
	Slug   string  `json:"slug"`
}

// CategoryList serves all categories of one kind with post counts.
func (a *Admin) CategoryList(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	categories, err := a.categoryStore.ListByKind(kind)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// CategoryCreate adds a category to one kind.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	var in categoryInput
	if !readJSON(w, r, &in) {
		return
	}
	category, fieldErr := a.buildCategory(kind, in)
	if fieldErr != nil {
		writeServiceError(w, fieldErr)
		return
	}

	created, err := a.categoryStore.Create(category)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// CategoryUpdate renames a category; the new name is propagated to its
// content rows.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	var in categoryInput
	if !readJSON(w, r, &in) {
		return
	}
	category, fieldErr := a.buildCategory(kind, in)
	if fieldErr != nil {
		writeServiceError(w, fieldErr)
		return
	}

	existing, err := a.categoryStore.FindByID(kind, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	category.ID = id
	if err := a.categoryStore.Update(category); err != nil {
		writeServiceError(w, err)
		return
	}
	// A rename rewrites the denormalized name on content rows, so every
	// cached public payload for the section may be stale.
	invalidateRoutes(r.Context(), a.cache, "/api/"+string(kind)+"*")
	writeJSON(w, http.StatusOK, category)
}

// CategoryDelete removes a category.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := a.categoryStore.Delete(kind, id); err != nil {
		writeServiceError(w, err)
		return
	}
	invalidateRoutes(r.Context(), a.cache, "/api/"+string(kind)+"*")
	w.WriteHeader(http.StatusNoContent)
}

// buildCategory validates category input and derives the slug when absent.
func (a *Admin) buildCategory(kind models.Kind, in categoryInput) (*models.Category, error) {
	verr := content.ValidationError{}
	if in.Name == "" {
		verr["name"] = "name is required"
	}
	if len(verr) > 0 {
		return nil, verr
	}
	return &models.Category{
		Kind:   kind,
		Name:   in.Name,
		NameHi: in.NameHi,
		Slug:   categorySlug(in),
	}, nil
}

// categorySlug uses the submitted slug when present, otherwise derives
// one from the name.
func categorySlug(in categoryInput) string {
	if in.Slug != "" {
		return slug.Generate(in.Slug)
	}
	return slug.Generate(in.Name)
}

// SettingsList serves every setting row grouped for the admin screen.
func (a *Admin) SettingsList(w http.ResponseWriter, r *http.Request) {
	settings, err := a.settingStore.All()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// SettingsUpdate applies a batch of setting values atomically.
func (a *Admin) SettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if !readJSON(w, r, &values) {
		return
	}
	if len(values) == 0 {
		writeError(w, http.StatusBadRequest, "no settings provided")
		return
	}

	if err := a.settingStore.SetMany(values); err != nil {
		writeServiceError(w, err)
		return
	}
	// Settings shape every public payload (page size, feature toggles).
	invalidateRoutes(r.Context(), a.cache, "/api/*")
	writeJSON(w, http.StatusOK, map[string]int{"updated": len(values)})
}

// Logout destroys the caller's session.
func (a *Admin) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
