package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testProfile(id, email string) *models.Profile {
	return &models.Profile{
		ID:        id,
		Name:      "Test User",
		Email:     email,
		Phone:     "15551234567",
		Role:      models.RoleRestaurant,
		CreatedAt: time.Now().UTC(),
	}
}

func TestProfileRoundTrip(t *testing.T) {
	db := testDB(t)

	p := testProfile("u1", "u1@example.com")
	p.BusinessName = "Corner Bakery"
	p.Rating = 4.5
	p.Donations = 12

	if err := db.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got, err := db.GetProfile("u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got == nil {
		t.Fatal("GetProfile returned nil for an existing profile")
	}
	if got.Email != p.Email || got.BusinessName != p.BusinessName || got.Rating != p.Rating {
		t.Errorf("got %+v, want %+v", got, p)
	}

	byEmail, err := db.GetProfileByEmail("u1@example.com")
	if err != nil {
		t.Fatalf("GetProfileByEmail: %v", err)
	}
	if byEmail == nil || byEmail.ID != "u1" {
		t.Errorf("GetProfileByEmail = %+v, want profile u1", byEmail)
	}
}

func TestGetProfile_Absent(t *testing.T) {
	db := testDB(t)

	got, err := db.GetProfile("nope")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent profile, got %+v", got)
	}
}

func TestSaveProfile_Upsert(t *testing.T) {
	db := testDB(t)

	p := testProfile("u1", "u1@example.com")
	if err := db.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	p.Name = "Renamed"
	p.Donations = 3
	if err := db.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile upsert: %v", err)
	}

	got, err := db.GetProfile("u1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Name != "Renamed" || got.Donations != 3 {
		t.Errorf("upsert did not stick: %+v", got)
	}
}

func TestPasswordHash(t *testing.T) {
	db := testDB(t)

	if err := db.SaveProfile(testProfile("u1", "u1@example.com")); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	hash, err := db.GetPasswordHash("u1")
	if err != nil {
		t.Fatalf("GetPasswordHash: %v", err)
	}
	if hash != "" {
		t.Errorf("expected empty hash before set, got %q", hash)
	}

	if err := db.SetPasswordHash("u1", "bcrypt-hash"); err != nil {
		t.Fatalf("SetPasswordHash: %v", err)
	}
	hash, err = db.GetPasswordHash("u1")
	if err != nil {
		t.Fatalf("GetPasswordHash: %v", err)
	}
	if hash != "bcrypt-hash" {
		t.Errorf("hash = %q, want bcrypt-hash", hash)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := testDB(t)

	if err := db.SaveProfile(testProfile("u1", "u1@example.com")); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	s := &models.Session{
		ID:        "sess-1",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
		IPAddress: "127.0.0.1",
		UserAgent: "test",
	}
	if err := db.CreateSession(s); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := db.GetSession("sess-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil || got.UserID != "u1" {
		t.Fatalf("GetSession = %+v, want session for u1", got)
	}

	if err := db.DeleteSession("sess-1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	got, err = db.GetSession("sess-1")
	if err != nil {
		t.Fatalf("GetSession after delete: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}
}

func TestGetSession_ExpiredIsDropped(t *testing.T) {
	db := testDB(t)

	if err := db.SaveProfile(testProfile("u1", "u1@example.com")); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	s := &models.Session{
		ID:        "stale",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(-time.Minute),
		CreatedAt: time.Now().Add(-time.Hour),
	}
	if err := db.CreateSession(s); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := db.GetSession("stale")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Errorf("expired session should read as nil, got %+v", got)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	db := testDB(t)

	if err := db.SaveProfile(testProfile("u1", "u1@example.com")); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	fresh := &models.Session{ID: "fresh", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour), CreatedAt: time.Now()}
	stale := &models.Session{ID: "stale", UserID: "u1", ExpiresAt: time.Now().Add(-time.Hour), CreatedAt: time.Now()}
	for _, s := range []*models.Session{fresh, stale} {
		if err := db.CreateSession(s); err != nil {
			t.Fatalf("CreateSession(%s): %v", s.ID, err)
		}
	}

	if err := db.DeleteExpiredSessions(); err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}

	if got, _ := db.GetSession("fresh"); got == nil {
		t.Error("fresh session should survive the sweep")
	}
}

func TestListingRoundTrip(t *testing.T) {
	db := testDB(t)

	l := &models.Listing{
		ID:        "l1",
		Title:     "Surplus sourdough loaves",
		Category:  models.CategoryBakery,
		Quantity:  "8",
		Unit:      "loaves",
		Address:   "12 Baker St",
		Distance:  "1.2 miles away",
		Expires:   "12 hours",
		Donor:     models.Donor{ID: "d1", Name: "Corner Bakery", Rating: 4.8, TotalDonations: 42},
		Images:    []string{"a.jpg", "b.jpg"},
		Allergens: []string{"gluten"},
		CreatedAt: time.Now().UTC(),
	}
	if err := db.InsertListing(l); err != nil {
		t.Fatalf("InsertListing: %v", err)
	}

	got, err := db.ListListings()
	if err != nil {
		t.Fatalf("ListListings: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("listings = %d, want 1", len(got))
	}
	if got[0].Title != l.Title || got[0].Category != l.Category {
		t.Errorf("got %+v, want %+v", got[0], l)
	}
	if len(got[0].Images) != 2 || got[0].Images[1] != "b.jpg" {
		t.Errorf("images = %v, want [a.jpg b.jpg]", got[0].Images)
	}
	if got[0].Donor.TotalDonations != 42 {
		t.Errorf("donor total = %d, want 42", got[0].Donor.TotalDonations)
	}

	if err := db.DeleteListing("l1"); err != nil {
		t.Fatalf("DeleteListing: %v", err)
	}
	got, err = db.ListListings()
	if err != nil {
		t.Fatalf("ListListings after delete: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("listings = %d after delete, want 0", len(got))
	}
}
