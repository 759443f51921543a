// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP surface: a public read-only JSON
// API and a session-authenticated admin API. Handlers stay thin and
// delegate lifecycle rules to the content service.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"gramsetu/internal/content"
	"gramsetu/internal/models"
)

// maxBodyBytes caps JSON request bodies. Content bodies top out at
// 100k characters, so 1 MB leaves generous headroom.
const maxBodyBytes = 1 << 20

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write json response", "error", err)
	}
}

// writeError writes a JSON error body with the given status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes the request body into dst, rejecting unknown fields
// and oversized bodies. Returns false after writing a 400 response.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// writeServiceError maps content service errors onto HTTP responses:
// validation failures carry a per-field map, missing records 404,
// missing authentication 401, anything else a logged 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr content.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  "validation failed",
			"fields": map[string]string(verr),
		})
		return
	}
	if content.IsNotFound(err) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if errors.Is(err, content.ErrUnauthorized) {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	slog.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// kindParam parses the {kind} URL parameter. Returns false after
// writing a 404 for unknown section names.
func kindParam(w http.ResponseWriter, r *http.Request) (models.Kind, bool) {
	kind := models.ParseKind(chi.URLParam(r, "kind"))
	if kind == "" {
		writeError(w, http.StatusNotFound, "unknown section")
		return "", false
	}
	return kind, true
}

// idParam parses the {id} URL parameter as a UUID. Returns false after
// writing a 400 response.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
