// Package handlers exposes the JSON API: listing discovery, listing
// lifecycle, notifications, and auth.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/mealbridge-dev/mealbridge/config"
	"github.com/mealbridge-dev/mealbridge/internal/auth"
	"github.com/mealbridge-dev/mealbridge/internal/geo"
	"github.com/mealbridge-dev/mealbridge/internal/listings"
	"github.com/mealbridge-dev/mealbridge/internal/notify"
	"github.com/mealbridge-dev/mealbridge/internal/storage"
	"github.com/mealbridge-dev/mealbridge/internal/token"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	cfg      *config.Config
	store    *listings.Store
	notes    *notify.Store
	auth     *auth.Service
	tokens   *token.Service
	client   storage.Client
	geocoder *geo.Geocoder // nil when geocoding is disabled
	pageSize int
}

// New creates a handler. geocoder may be nil.
func New(cfg *config.Config, store *listings.Store, notes *notify.Store, authService *auth.Service, tokens *token.Service, client storage.Client, geocoder *geo.Geocoder) *Handler {
	pageSize := cfg.Listings.PageSize
	if pageSize <= 0 {
		pageSize = listings.DefaultPageSize
	}
	return &Handler{
		cfg:      cfg,
		store:    store,
		notes:    notes,
		auth:     authService,
		tokens:   tokens,
		client:   client,
		geocoder: geocoder,
		pageSize: pageSize,
	}
}

// --- response helpers ---

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondError sends a short title+message pair. Raw errors never leave
// the process.
func respondError(w http.ResponseWriter, status int, title, message string) {
	respondJSON(w, status, map[string]string{
		"error":   title,
		"message": message,
	})
}

// respondValidation sends field-keyed validation errors.
func respondValidation(w http.ResponseWriter, errs map[string]string) {
	respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"error":  "Validation failed",
		"fields": errs,
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request", "Request body must be valid JSON.")
		return false
	}
	return true
}
