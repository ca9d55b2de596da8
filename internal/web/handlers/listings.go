package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mealbridge-dev/mealbridge/internal/geo"
	"github.com/mealbridge-dev/mealbridge/internal/listings"
	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

type createListingRequest struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	Quantity       string   `json:"quantity"`
	Unit           string   `json:"unit"`
	Address        string   `json:"address"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Distance       string   `json:"distance"`
	ExpiresInHours *int     `json:"expires_in_hours,omitempty"`
	ExpiresAt      string   `json:"expires_at,omitempty"`
	Images         []string `json:"images,omitempty"`
	Allergens      []string `json:"allergens,omitempty"`
	Storage        string   `json:"storage,omitempty"`
	Condition      string   `json:"condition,omitempty"`
	ContactPhone   string   `json:"contact_phone,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

type idsRequest struct {
	IDs []string `json:"ids"`
}

// ListListings handles GET /api/listings: the discovery pipeline end to
// end. Query params: q, category, distance, expires, pages.
// "pages" is how many pages the client has revealed (default 1); the
// response window grows by one page size per revealed page.
func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := listings.Criteria{
		Query:       q.Get("q"),
		Category:    models.Category(q.Get("category")),
		MaxDistance: parseFloatParam(q.Get("distance")),
		MaxHours:    parseFloatParam(q.Get("expires")),
	}

	filtered := listings.Filter(h.store.Active(), criteria)

	pages := 1
	if n, err := strconv.Atoi(q.Get("pages")); err == nil && n > 1 {
		pages = n
	}

	pager := listings.NewPager(h.pageSize)
	pager.Reset(len(filtered))
	for i := 1; i < pages; i++ {
		pager.LoadMore()
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"listings":  pager.Window(filtered),
		"total":     len(filtered),
		"revealed":  pager.Revealed(),
		"has_more":  pager.HasMore(),
		"page_size": h.pageSize,
	})
}

// GetListing handles GET /api/listings/{id}: one active listing plus its
// map-embed URL.
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, ok := h.store.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Not found", "That listing is no longer available.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"listing":   l,
		"embed_url": geo.EmbedURL(l.Latitude, l.Longitude),
	})
}

// CreateListing handles POST /api/listings. The store add is optimistic:
// it is rolled back if the collaborator insert fails, and the failure
// surfaces as one error notification.
func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "Sign in to continue.")
		return
	}

	var req createListingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Address == "" && h.geocoder != nil && (req.Latitude != 0 || req.Longitude != 0) {
		// Best-effort prefill from coordinates.
		req.Address = h.geocoder.ReverseGeocode(r.Context(), req.Latitude, req.Longitude)
	}

	if errs := validateListing(req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	l := models.Listing{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Category:    models.Category(req.Category),
		Quantity:    strings.TrimSpace(req.Quantity),
		Unit:        strings.TrimSpace(req.Unit),
		Address:     strings.TrimSpace(req.Address),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Distance:    strings.TrimSpace(req.Distance),
		Expires:     expirationText(req),
		Donor: models.Donor{
			ID:   user.ID,
			Name: user.Name,
		},
		Images:       req.Images,
		Allergens:    req.Allergens,
		Storage:      req.Storage,
		Condition:    req.Condition,
		ContactPhone: req.ContactPhone,
		Notes:        req.Notes,
		CreatedAt:    time.Now().UTC(),
	}

	h.store.Dispatch(listings.Add{Listing: l})

	if err := h.client.InsertListing(r.Context(), &l); err != nil {
		// Roll the optimistic add back so local and remote state agree.
		h.store.Dispatch(listings.Delete{ID: l.ID})
		log.Printf("Listing insert failed for %s: %v", l.ID, err)
		h.notes.Error("Listing not posted", "We couldn't save your listing. Please try again.")
		respondError(w, http.StatusBadGateway, "Listing not posted", "We couldn't save your listing. Please try again.")
		return
	}

	h.notes.Success("Listing posted", fmt.Sprintf("%q is now visible to recipients.", l.Title))
	respondJSON(w, http.StatusCreated, l)
}

// ValidateListingStep handles POST /api/listings/validate?step=: stepwise
// validation for the multi-step creation form. An unknown or missing step
// validates everything.
func (h *Handler) ValidateListingStep(w http.ResponseWriter, r *http.Request) {
	var req createListingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var errs map[string]string
	switch r.URL.Query().Get("step") {
	case StepBasics:
		errs = validateListingBasics(req)
	case StepPickup:
		errs = validateListingPickup(req)
	case StepDetails:
		errs = validateListingDetails(req)
	default:
		errs = validateListing(req)
	}

	if len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"valid": true})
}

// ClaimListing handles POST /api/listings/{id}/claim.
func (h *Handler) ClaimListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, ok := h.store.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "Not found", "That listing is no longer available.")
		return
	}

	h.store.Dispatch(listings.Claim{ID: id})
	h.notes.Success("Claimed", fmt.Sprintf("You claimed %q. Arrange pickup with %s.", l.Title, l.Donor.Name))
	respondJSON(w, http.StatusOK, map[string]string{"status": "claimed", "id": id})
}

// BulkClaimListings handles POST /api/listings/claim with {"ids": [...]}.
// The claim is one transition: no caller observes a partial bulk claim.
func (h *Handler) BulkClaimListings(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	before := len(h.store.Active())
	h.store.Dispatch(listings.BulkClaim{IDs: req.IDs})
	claimed := before - len(h.store.Active())

	if claimed > 0 {
		h.notes.Success("Claimed", fmt.Sprintf("You claimed %d listings.", claimed))
	}
	respondJSON(w, http.StatusOK, map[string]int{"claimed": claimed})
}

// DeleteListing handles DELETE /api/listings/{id}. Only the posting donor
// or an admin may delete.
func (h *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	user, _ := GetUserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	l, ok := h.store.Get(id)
	if !ok {
		// Idempotent: deleting an absent listing is fine.
		respondJSON(w, http.StatusNoContent, nil)
		return
	}
	if l.Donor.ID != user.ID && !user.Role.IsAdmin() {
		respondError(w, http.StatusForbidden, "Forbidden", "You can only remove your own listings.")
		return
	}

	h.store.Dispatch(listings.Delete{ID: id})
	respondJSON(w, http.StatusNoContent, nil)
}

// BulkDeleteListings handles POST /api/listings/delete with {"ids": [...]}.
func (h *Handler) BulkDeleteListings(w http.ResponseWriter, r *http.Request) {
	user, _ := GetUserFromContext(r.Context())

	var req idsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Filter to listings the caller may delete before the one transition.
	allowed := make([]string, 0, len(req.IDs))
	for _, id := range req.IDs {
		l, ok := h.store.Get(id)
		if !ok {
			continue
		}
		if l.Donor.ID == user.ID || user.Role.IsAdmin() {
			allowed = append(allowed, id)
		}
	}

	h.store.Dispatch(listings.BulkDelete{IDs: allowed})
	respondJSON(w, http.StatusOK, map[string]int{"deleted": len(allowed)})
}

// PastListings handles GET /api/listings/past: the claimed history.
func (h *Handler) PastListings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"listings": h.store.Past(),
	})
}

func expirationText(req createListingRequest) string {
	if req.ExpiresInHours != nil {
		return fmt.Sprintf("%d hours", *req.ExpiresInHours)
	}
	return strings.TrimSpace(req.ExpiresAt)
}

// parseFloatParam parses an optional numeric query param; empty or
// malformed input means "no bound".
func parseFloatParam(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}
