// Package token mints and validates API bearer tokens for clients that
// talk JSON instead of holding a session cookie.
package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"

	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

// Service handles JWT generation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	authClient *auth.Client // nil when the local collaborator is in use
}

// Claims are the portal token claims.
type Claims struct {
	UserID string      `json:"uid"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// New creates a token service. authClient may be nil; Firebase ID-token
// verification is then unavailable.
func New(signingKey, issuer string, authClient *auth.Client) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		authClient: authClient,
	}
}

// GenerateSigningKey returns a random hex signing key.
func GenerateSigningKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate signing key: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Generate creates a signed token for an authenticated user.
func (s *Service) Generate(user *models.User, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.signingKey)
}

// Validate parses and verifies a token, returning its claims.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ValidateFirebaseToken verifies a Firebase ID token for clients that
// authenticated with the provider directly.
func (s *Service) ValidateFirebaseToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if s.authClient == nil {
		return nil, fmt.Errorf("firebase verification not configured")
	}
	tok, err := s.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("invalid firebase token: %w", err)
	}
	return tok, nil
}
