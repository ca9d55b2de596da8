package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/mealbridge-dev/mealbridge/internal/auth"
	"github.com/mealbridge-dev/mealbridge/internal/token"
	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// UserContextKey stores the authenticated user in request context.
const UserContextKey contextKey = "user"

// SessionCookie is the session cookie name.
const SessionCookie = "session"

// AuthMiddleware resolves the caller from a bearer token or session
// cookie and stores the user in context. Unauthenticated requests get a
// 401 JSON body.
func AuthMiddleware(authService *auth.Service, tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := resolveUser(r, authService, tokens)
			if user == nil {
				respondError(w, http.StatusUnauthorized, "Unauthorized", "Sign in to continue.")
				return
			}
			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DonorMiddleware requires a donor-capable role. MUST be used after
// AuthMiddleware so the user is already in context.
func DonorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok || !user.Role.CanDonate() {
			respondError(w, http.StatusForbidden, "Forbidden", "Only donor accounts can do that.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext extracts the authenticated user from request context.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}

func resolveUser(r *http.Request, authService *auth.Service, tokens *token.Service) *models.User {
	// Bearer token first.
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		claims, err := tokens.Validate(strings.TrimPrefix(h, "Bearer "))
		if err == nil {
			return &models.User{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
		}
		log.Printf("Bearer token rejected: %v", err)
		return nil
	}

	// Session cookie otherwise.
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil
	}
	user, err := authService.Restore(cookie.Value)
	if err != nil {
		log.Printf("Session restore error: %v", err)
		return nil
	}
	return user
}
