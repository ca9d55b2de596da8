package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListNotifications handles GET /api/notifications, newest first.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": h.notes.List(),
		"count":         h.notes.Len(),
	})
}

// RemoveNotification handles DELETE /api/notifications/{id}. Removing an
// absent ID is a no-op, not an error.
func (h *Handler) RemoveNotification(w http.ResponseWriter, r *http.Request) {
	h.notes.Remove(chi.URLParam(r, "id"))
	respondJSON(w, http.StatusNoContent, nil)
}

// ClearNotifications handles DELETE /api/notifications.
func (h *Handler) ClearNotifications(w http.ResponseWriter, r *http.Request) {
	h.notes.Clear()
	respondJSON(w, http.StatusNoContent, nil)
}
