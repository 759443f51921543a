// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"gramsetu/internal/content"
	"gramsetu/internal/models"
)

// helplineInput is the body for helpline create and update.
type helplineInput struct {
	Name      string  `json:"name"`
	NameHi    *string `json:"name_hi"`
	Phone     string  `json:"phone"`
	Category  string  `json:"category"`
	SortOrder int     `json:"sort_order"`
}

func (in helplineInput) validate() error {
	verr := content.ValidationError{}
	if in.Name == "" {
		verr["name"] = "name is required"
	}
	if in.Phone == "" {
		verr["phone"] = "phone is required"
	}
	if len(verr) > 0 {
		return verr
	}
	return nil
}

// HelplineList serves all helplines in display order.
func (a *Admin) HelplineList(w http.ResponseWriter, r *http.Request) {
	helplines, err := a.directory.ListHelplines()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, helplines)
}

// HelplineCreate adds a helpline.
func (a *Admin) HelplineCreate(w http.ResponseWriter, r *http.Request) {
	var in helplineInput
	if !readJSON(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := a.directory.CreateHelpline(&models.Helpline{
		Name: in.Name, NameHi: in.NameHi, Phone: in.Phone,
		Category: in.Category, SortOrder: in.SortOrder,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	invalidateRoutes(r.Context(), a.cache, "/api/helplines")
	writeJSON(w, http.StatusCreated, created)
}

// HelplineUpdate modifies a helpline by ID.
func (a *Admin) HelplineUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in helplineInput
	if !readJSON(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	h := &models.Helpline{
		ID: id, Name: in.Name, NameHi: in.NameHi, Phone: in.Phone,
		Category: in.Category, SortOrder: in.SortOrder,
	}
	if err := a.directory.UpdateHelpline(h); err != nil {
		writeServiceError(w, err)
		return
	}
	invalidateRoutes(r.Context(), a.cache, "/api/helplines")
	writeJSON(w, http.StatusOK, h)
}

// HelplineDelete removes a helpline by ID.
func (a *Admin) HelplineDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := a.directory.DeleteHelpline(id); err != nil {
		writeServiceError(w, err)
		return
	}
	invalidateRoutes(r.Context(), a.cache, "/api/helplines")
	w.WriteHeader(http.StatusNoContent)
}

// busRouteInput is the body for bus route create and update.
type busRouteInput struct {
	Route       string `json:"route"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Departures  string `json:"departures"`
	SortOrder   int    `json:"sort_order"`
}

func (in busRouteInput) validate() error {
	verr := content.ValidationError{}
	if in.Route == "" {
		verr["route"] = "route is required"
	}
	if in.Origin == "" {
		verr["origin"] = "origin is required"
	}
	if in.Destination == "" {
		verr["destination"] = "destination is required"
	}
	if len(verr) > 0 {
		return verr
	}
	return nil
}

// BusRouteList serves all bus routes in display order.
func (a *Admin) BusRouteList(w http.ResponseWriter, r *http.Request) {
	routes, err := a.directory.ListBusRoutes()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, routes)
}

// BusRouteCreate adds a bus route.
func (a *Admin) BusRouteCreate(w http.ResponseWriter, r *http.Request) {
	var in busRouteInput
	if !readJSON(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := a.directory.CreateBusRoute(&models.BusRoute{
		Route: in.Route, Origin: in.Origin, Destination: in.Destination,
		Departures: in.Departures, SortOrder: in.SortOrder,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	invalidateRoutes(r.Context(), a.cache, "/api/bus-routes")
	writeJSON(w, http.StatusCreated, created)
}

// BusRouteUpdate modifies a bus route by ID.
func (a *Admin) BusRouteUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var in busRouteInput
	if !readJSON(w, r, &in) {
		return
	}
	if err := in.validate(); err != nil {
		writeServiceError(w, err)
		return
	}

	rt := &models.BusRoute{
		ID: id, Route: in.Route, Origin: in.Origin, Destination: in.Destination,
		Departures: in.Departures, SortOrder: in.SortOrder,
	}
	if err := a.directory.UpdateBusRoute(rt); err != nil {
		writeServiceError(w, err)
		return
	}
	invalidateRoutes(r.Context(), a.cache, "/api/bus-routes")
	writeJSON(w, http.StatusOK, rt)
}

// BusRouteDelete removes a bus route by ID.
func (a *Admin) BusRouteDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := a.directory.DeleteBusRoute(id); err != nil {
		writeServiceError(w, err)
		return
	}
	invalidateRoutes(r.Context(), a.cache, "/api/bus-routes")
	w.WriteHeader(http.StatusNoContent)
}
