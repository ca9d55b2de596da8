package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

const (
	profilesCollection = "profiles"
	listingsCollection = "listings"

	// Password sign-in goes through the Identity Toolkit REST endpoint;
	// the Admin SDK cannot verify passwords itself.
	signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"
)

// FirebaseConfig holds what the Firebase-backed client needs to connect.
type FirebaseConfig struct {
	ProjectID       string
	CredentialsPath string
	WebAPIKey       string
}

// FirebaseClient implements Client on Firebase Auth + Firestore.
type FirebaseClient struct {
	auth   *auth.Client
	fs     *firestore.Client
	apiKey string
	http   *http.Client
}

// NewFirebase connects to Firebase Auth and Firestore.
func NewFirebase(ctx context.Context, cfg FirebaseConfig) (*FirebaseClient, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}

	return &FirebaseClient{
		auth:   authClient,
		fs:     fs,
		apiKey: cfg.WebAPIKey,
		http:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Close releases the Firestore connection.
func (c *FirebaseClient) Close() error {
	return c.fs.Close()
}

// Auth exposes the underlying auth client for ID-token verification.
func (c *FirebaseClient) Auth() *auth.Client {
	return c.auth
}

// SignIn verifies the password through the Identity Toolkit endpoint and
// loads the profile document.
func (c *FirebaseClient) SignIn(ctx context.Context, email, password string) (*models.Profile, error) {
	body, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, fmt.Errorf("encode sign-in request: %w", err)
	}

	url := signInEndpoint + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		// Wrong password and unknown email both land here.
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sign in: unexpected status %d", resp.StatusCode)
	}

	var result struct {
		LocalID string `json:"localId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode sign-in response: %w", err)
	}

	return c.ProfileByID(ctx, result.LocalID)
}

// SignUp creates the auth user and writes the profile document. If the
// profile write fails the auth user is removed again so sign-up never
// leaves a credential without a profile.
func (c *FirebaseClient) SignUp(ctx context.Context, p SignUpParams) (*models.Profile, error) {
	params := (&auth.UserToCreate{}).
		Email(p.Email).
		Password(p.Password).
		DisplayName(p.Name)

	rec, err := c.auth.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create auth user: %w", err)
	}

	profile := &models.Profile{
		ID:           rec.UID,
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		Role:         p.Role,
		BusinessName: p.BusinessName,
		Address:      p.Address,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := c.fs.Collection(profilesCollection).Doc(rec.UID).Set(ctx, profile); err != nil {
		_ = c.auth.DeleteUser(ctx, rec.UID)
		return nil, fmt.Errorf("write profile: %w", err)
	}

	return profile, nil
}

// SignOut revokes the account's refresh tokens.
func (c *FirebaseClient) SignOut(ctx context.Context, userID string) error {
	if err := c.auth.RevokeRefreshTokens(ctx, userID); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}

// ProfileByID fetches the profile document.
func (c *FirebaseClient) ProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	doc, err := c.fs.Collection(profilesCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var p models.Profile
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	p.ID = doc.Ref.ID
	return &p, nil
}

// InsertListing writes the listing document.
func (c *FirebaseClient) InsertListing(ctx context.Context, l *models.Listing) error {
	if _, err := c.fs.Collection(listingsCollection).Doc(l.ID).Set(ctx, l); err != nil {
		return fmt.Errorf("write listing: %w", err)
	}
	return nil
}
