package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/mealbridge-dev/mealbridge/internal/storage"
	"github.com/mealbridge-dev/mealbridge/pkg/identity"
	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
	BusinessName    string `json:"business_name,omitempty"`
	Address         string `json:"address,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup handles POST /api/auth/signup. On success the new account is
// signed in: session cookie plus bearer token in one response.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if errs := validateSignup(req); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	params := storage.SignUpParams{
		Email:        identity.NormalizeEmail(req.Email),
		Password:     req.Password,
		Name:         req.Name,
		Phone:        identity.NormalizePhone(req.Phone),
		Role:         models.Role(req.Role),
		BusinessName: req.BusinessName,
		Address:      req.Address,
	}

	sessionID, user, err := h.auth.SignUp(r.Context(), params, r.RemoteAddr, r.UserAgent())
	if err != nil {
		h.respondAuthError(w, err)
		return
	}

	h.setSessionCookie(w, sessionID)
	h.respondSignedIn(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		respondValidation(w, map[string]string{"email": "Email and password are required."})
		return
	}

	sessionID, user, err := h.auth.SignIn(r.Context(), identity.NormalizeEmail(req.Email), req.Password, r.RemoteAddr, r.UserAgent())
	if err != nil {
		h.respondAuthError(w, err)
		return
	}

	h.setSessionCookie(w, sessionID)
	h.respondSignedIn(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := h.auth.SignOut(r.Context(), cookie.Value); err != nil {
			respondError(w, http.StatusBadGateway, "Sign out failed", "Please try again.")
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized", "Sign in to continue.")
		return
	}
	user.PendingNotifications = h.notes.Len()
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/",
		MaxAge:   h.cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   h.cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) respondSignedIn(w http.ResponseWriter, status int, user *models.User) {
	tok, err := h.tokens.Generate(user, time.Duration(h.cfg.Session.MaxAge)*time.Second)
	if err != nil {
		// The session cookie alone is enough to be signed in.
		respondJSON(w, status, map[string]interface{}{"user": user})
		return
	}
	respondJSON(w, status, map[string]interface{}{
		"user":  user,
		"token": tok,
	})
}

func (h *Handler) respondAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Sign in failed", "Invalid email or password.")
	case errors.Is(err, storage.ErrEmailTaken):
		respondError(w, http.StatusConflict, "Sign up failed", "An account with this email already exists.")
	default:
		respondError(w, http.StatusBadGateway, "Service unavailable", "Something went wrong. Please try again.")
	}
}
