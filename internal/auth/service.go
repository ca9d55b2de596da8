// Package auth wraps the external identity collaborator behind a session
// facade. It is the only writer of session state: either a sign-in fully
// succeeds and the caller holds a session for a complete user record, or
// nothing changes. Collaborator failures surface as error notifications,
// never as partial state.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mealbridge-dev/mealbridge/internal/database"
	"github.com/mealbridge-dev/mealbridge/internal/notify"
	"github.com/mealbridge-dev/mealbridge/internal/storage"
	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

// Service handles sign-in, sign-up, sign-out, and session restoration.
type Service struct {
	client storage.Client
	db     *database.DB
	notes  *notify.Store
	maxAge time.Duration
}

// New creates the auth facade. maxAge bounds session lifetime.
func New(client storage.Client, db *database.DB, notes *notify.Store, maxAge time.Duration) *Service {
	return &Service{client: client, db: db, notes: notes, maxAge: maxAge}
}

// SignIn authenticates against the collaborator, caches the profile, and
// opens a session. On any failure the session state is untouched and an
// error notification is pushed.
func (s *Service) SignIn(ctx context.Context, email, password, ipAddress, userAgent string) (string, *models.User, error) {
	profile, err := s.client.SignIn(ctx, email, password)
	if err != nil {
		s.notifyFailure("Sign in failed", err)
		return "", nil, err
	}

	sessionID, err := s.openSession(profile, ipAddress, userAgent)
	if err != nil {
		s.notifyFailure("Sign in failed", err)
		return "", nil, err
	}

	user := profile.User()
	user.PendingNotifications = s.notes.Len()
	return sessionID, &user, nil
}

// SignUp creates the credential and profile at the collaborator, then
// signs the new account in.
func (s *Service) SignUp(ctx context.Context, params storage.SignUpParams, ipAddress, userAgent string) (string, *models.User, error) {
	profile, err := s.client.SignUp(ctx, params)
	if err != nil {
		s.notifyFailure("Sign up failed", err)
		return "", nil, err
	}

	sessionID, err := s.openSession(profile, ipAddress, userAgent)
	if err != nil {
		s.notifyFailure("Sign up failed", err)
		return "", nil, err
	}

	s.notes.Success("Welcome", "Your account is ready.")

	user := profile.User()
	user.PendingNotifications = s.notes.Len()
	return sessionID, &user, nil
}

// SignOut revokes the collaborator session first, then drops the local
// one. If revocation fails the local session is kept, so the account is
// never half signed out.
func (s *Service) SignOut(ctx context.Context, sessionID string) error {
	session, err := s.db.GetSession(sessionID)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil
	}

	if err := s.client.SignOut(ctx, session.UserID); err != nil {
		s.notifyFailure("Sign out failed", err)
		return err
	}
	return s.db.DeleteSession(sessionID)
}

// Restore resolves a session ID back to its user from the local cache.
// Expired, unknown, or unreadable sessions come back as (nil, nil): a
// missing saved session is never an error.
func (s *Service) Restore(sessionID string) (*models.User, error) {
	session, err := s.db.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	profile, err := s.db.GetProfile(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("get cached profile: %w", err)
	}
	if profile == nil {
		// Orphaned session: drop it and report no session.
		_ = s.db.DeleteSession(sessionID)
		return nil, nil
	}

	user := profile.User()
	user.PendingNotifications = s.notes.Len()
	return &user, nil
}

// RefreshProfile re-fetches the profile from the collaborator,
// best-effort, and updates the cache. Failures are logged only.
func (s *Service) RefreshProfile(ctx context.Context, userID string) {
	profile, err := s.client.ProfileByID(ctx, userID)
	if err != nil {
		log.Printf("Profile refresh for %s skipped: %v", userID, err)
		return
	}
	if err := s.db.SaveProfile(profile); err != nil {
		log.Printf("Profile cache update for %s failed: %v", userID, err)
	}
}

// CleanExpiredSessions removes every expired session from the cache.
func (s *Service) CleanExpiredSessions() error {
	return s.db.DeleteExpiredSessions()
}

func (s *Service) openSession(profile *models.Profile, ipAddress, userAgent string) (string, error) {
	if err := s.db.SaveProfile(profile); err != nil {
		return "", fmt.Errorf("cache profile: %w", err)
	}

	now := time.Now()
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    profile.ID,
		ExpiresAt: now.Add(s.maxAge),
		CreatedAt: now,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	if err := s.db.CreateSession(session); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return session.ID, nil
}

// notifyFailure turns a collaborator error into one short title+message
// notification. Raw errors stay in the log.
func (s *Service) notifyFailure(title string, err error) {
	msg := "Something went wrong. Please try again."
	switch {
	case errors.Is(err, storage.ErrInvalidCredentials):
		msg = "Invalid email or password."
	case errors.Is(err, storage.ErrEmailTaken):
		msg = "An account with this email already exists."
	}
	log.Printf("%s: %v", title, err)
	s.notes.Error(title, msg)
}
