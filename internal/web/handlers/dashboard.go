package handlers

import (
	"net/http"

	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

// Dashboard handles GET /api/dashboard with aggregates for the caller's
// role: donors see their posted/claimed counts, recipients see what is
// available per category, volunteers see open pickups.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "Sign in to continue.")
		return
	}

	state := h.store.State()

	out := map[string]interface{}{
		"role": user.Role,
	}

	switch {
	case user.Role.CanDonate():
		var posted, claimed int
		for _, l := range state.Active {
			if l.Donor.ID == user.ID {
				posted++
			}
		}
		for _, l := range state.Past {
			if l.Donor.ID == user.ID {
				claimed++
			}
		}
		out["posted"] = posted
		out["claimed"] = claimed
	case user.Role == models.RoleVolunteer:
		out["open_pickups"] = len(state.Active)
		out["completed"] = len(state.Past)
	default:
		byCategory := map[models.Category]int{}
		for _, l := range state.Active {
			byCategory[l.Category]++
		}
		out["available"] = len(state.Active)
		out["by_category"] = byCategory
	}

	respondJSON(w, http.StatusOK, out)
}
