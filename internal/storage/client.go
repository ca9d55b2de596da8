// Package storage defines the boundary to the external identity/storage
// collaborator. The rest of the app treats it as opaque: it sees only the
// request/response shapes below, never a wire format.
package storage

import (
	"context"
	"errors"

	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrProfileNotFound    = errors.New("profile not found")
)

// SignUpParams carries everything needed to create both the auth
// credential and the profile record.
type SignUpParams struct {
	Email        string
	Password     string
	Name         string
	Phone        string
	Role         models.Role
	BusinessName string
	Address      string
}

// Client is the identity/storage collaborator.
type Client interface {
	// SignIn verifies credentials and returns the account profile.
	SignIn(ctx context.Context, email, password string) (*models.Profile, error)

	// SignUp creates an auth credential and a profile record.
	SignUp(ctx context.Context, p SignUpParams) (*models.Profile, error)

	// SignOut invalidates the account's sessions on the provider side.
	SignOut(ctx context.Context, userID string) error

	// ProfileByID fetches a profile record.
	ProfileByID(ctx context.Context, id string) (*models.Profile, error)

	// InsertListing persists a new listing record.
	InsertListing(ctx context.Context, l *models.Listing) error
}
