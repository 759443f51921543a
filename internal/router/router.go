// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// GramSetu server. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"gramsetu/internal/handlers"
	"gramsetu/internal/middleware"
	"gramsetu/internal/session"
)

const (
	// publicRateLimit bounds anonymous traffic per client IP.
	publicRateLimit  = 120
	publicRateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sessionStore *session.Store, admin *handlers.Admin, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check — no auth, no rate limit.
	r.Get("/health", healthHandler)

	// Public API — published content only, rate-limited per IP.
	limiter := middleware.NewRateLimiter(publicRateLimit, publicRateWindow)
	r.Route("/api", func(r chi.Router) {
		r.Use(limiter.Middleware)

		r.Get("/helplines", public.Helplines)
		r.Get("/bus-routes", public.BusRoutes)

		r.Route("/{kind}", func(r chi.Router) {
			r.Get("/", public.ContentList)
			r.Get("/archive", public.ContentArchive)
			r.Get("/categories", public.ContentCategories)
			r.Get("/{slug}", public.ContentDetail)
		})
	})

	// Admin API — requires an authenticated session plus a CSRF token
	// on state-changing methods.
	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.CSRF)
		r.Use(middleware.RequireAuth)

		r.Post("/logout", admin.Logout)
		r.Post("/media", admin.MediaUpload)

		// Settings — admin role only.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Get("/settings", admin.SettingsList)
			r.Put("/settings", admin.SettingsUpdate)
		})

		r.Route("/helplines", func(r chi.Router) {
			r.Get("/", admin.HelplineList)
			r.Post("/", admin.HelplineCreate)
			r.Put("/{id}", admin.HelplineUpdate)
			r.Delete("/{id}", admin.HelplineDelete)
		})

		r.Route("/bus-routes", func(r chi.Router) {
			r.Get("/", admin.BusRouteList)
			r.Post("/", admin.BusRouteCreate)
			r.Put("/{id}", admin.BusRouteUpdate)
			r.Delete("/{id}", admin.BusRouteDelete)
		})

		r.Route("/categories/{kind}", func(r chi.Router) {
			r.Get("/", admin.CategoryList)
			r.Post("/", admin.CategoryCreate)
			r.Put("/{id}", admin.CategoryUpdate)
			r.Delete("/{id}", admin.CategoryDelete)
		})

		// Per-section content CRUD.
		r.Route("/{kind}", func(r chi.Router) {
			r.Get("/", admin.ContentList)
			r.Post("/", admin.ContentCreate)
			r.Post("/bulk", admin.ContentBulk)
			r.Get("/{id}", admin.ContentGet)
			r.Put("/{id}", admin.ContentUpdate)
			r.Delete("/{id}", admin.ContentDelete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
