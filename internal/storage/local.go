package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mealbridge-dev/mealbridge/internal/database"
	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

const bcryptCost = 12

// LocalClient implements Client on the local SQLite store. It stands in
// for the hosted provider in development and tests so the full sign-in /
// sign-up / listing-insert path runs offline.
type LocalClient struct {
	db *database.DB
}

// NewLocal creates a local collaborator backed by db.
func NewLocal(db *database.DB) *LocalClient {
	return &LocalClient{db: db}
}

// SignIn verifies the bcrypt credential and returns the profile.
func (c *LocalClient) SignIn(ctx context.Context, email, password string) (*models.Profile, error) {
	p, err := c.db.GetProfileByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if p == nil {
		return nil, ErrInvalidCredentials
	}

	hash, err := c.db.GetPasswordHash(p.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup credential: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return p, nil
}

// SignUp creates the credential and profile record together.
func (c *LocalClient) SignUp(ctx context.Context, params SignUpParams) (*models.Profile, error) {
	existing, err := c.db.GetProfileByEmail(params.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup profile: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	p := &models.Profile{
		ID:           uuid.New().String(),
		Name:         params.Name,
		Email:        params.Email,
		Phone:        params.Phone,
		Role:         params.Role,
		BusinessName: params.BusinessName,
		Address:      params.Address,
		CreatedAt:    time.Now().UTC(),
	}

	if err := c.db.SaveProfile(p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	if err := c.db.SetPasswordHash(p.ID, string(hash)); err != nil {
		return nil, fmt.Errorf("save credential: %w", err)
	}
	return p, nil
}

// SignOut is a no-op locally: sessions live in the caller's session store.
func (c *LocalClient) SignOut(ctx context.Context, userID string) error {
	return nil
}

// ProfileByID fetches a profile record.
func (c *LocalClient) ProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	p, err := c.db.GetProfile(id)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// InsertListing persists the listing record.
func (c *LocalClient) InsertListing(ctx context.Context, l *models.Listing) error {
	if err := c.db.InsertListing(l); err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}
