package token

import (
	"testing"
	"time"

	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    "u1",
		Email: "u1@example.com",
		Role:  models.RoleRestaurant,
	}
}

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-signing-key", "mealbridge", nil)

	tok, err := svc.Generate(testUser(), time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := svc.Validate(tok)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if claims.UserID != "u1" {
		t.Errorf("UserID = %s, want u1", claims.UserID)
	}
	if claims.Email != "u1@example.com" {
		t.Errorf("Email = %s", claims.Email)
	}
	if claims.Role != models.RoleRestaurant {
		t.Errorf("Role = %s, want restaurant", claims.Role)
	}
	if claims.Issuer != "mealbridge" {
		t.Errorf("Issuer = %s, want mealbridge", claims.Issuer)
	}
}

func TestValidate_WrongKey(t *testing.T) {
	tok, err := New("key-one", "mealbridge", nil).Generate(testUser(), time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := New("key-two", "mealbridge", nil).Validate(tok); err == nil {
		t.Error("expected validation to fail with a different key")
	}
}

func TestValidate_Expired(t *testing.T) {
	svc := New("test-signing-key", "mealbridge", nil)

	tok, err := svc.Generate(testUser(), -time.Minute)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := svc.Validate(tok); err == nil {
		t.Error("expected validation to fail for an expired token")
	}
}

func TestValidate_Garbage(t *testing.T) {
	svc := New("test-signing-key", "mealbridge", nil)
	if _, err := svc.Validate("not.a.token"); err == nil {
		t.Error("expected validation to fail for garbage input")
	}
}

func TestGenerateSigningKey(t *testing.T) {
	a, err := GenerateSigningKey()
	if err != nil {
		t.Fatalf("GenerateSigningKey: %v", err)
	}
	b, err := GenerateSigningKey()
	if err != nil {
		t.Fatalf("GenerateSigningKey: %v", err)
	}
	if len(a) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(a))
	}
	if a == b {
		t.Error("two generated keys must differ")
	}
}
