// Package database wraps the local SQLite store: cached profiles and
// sessions for restore-across-restarts, plus the tables backing the local
// dev-mode identity/storage client.
package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mealbridge-dev/mealbridge/pkg/models"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database and runs migrations.
func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single writer, many readers.
	conn.SetMaxOpenConns(1)

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func migrate(conn *sql.DB) error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS profiles (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL DEFAULT '',
		email         TEXT UNIQUE NOT NULL,
		phone         TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'individual',
		avatar_url    TEXT NOT NULL DEFAULT '',
		business_name TEXT NOT NULL DEFAULT '',
		address       TEXT NOT NULL DEFAULT '',
		rating        REAL NOT NULL DEFAULT 0,
		donations     INTEGER NOT NULL DEFAULT 0,
		password_hash TEXT NOT NULL DEFAULT '',
		created_at    DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_profiles_email ON profiles(email);

	CREATE TABLE IF NOT EXISTS sessions (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		expires_at DATETIME NOT NULL,
		created_at DATETIME NOT NULL,
		ip_address TEXT NOT NULL DEFAULT '',
		user_agent TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);

	CREATE TABLE IF NOT EXISTS listings (
		id            TEXT PRIMARY KEY,
		title         TEXT NOT NULL,
		description   TEXT NOT NULL DEFAULT '',
		category      TEXT NOT NULL,
		quantity      TEXT NOT NULL DEFAULT '',
		unit          TEXT NOT NULL DEFAULT '',
		address       TEXT NOT NULL DEFAULT '',
		latitude      REAL NOT NULL DEFAULT 0,
		longitude     REAL NOT NULL DEFAULT 0,
		distance      TEXT NOT NULL DEFAULT '',
		expires       TEXT NOT NULL DEFAULT '',
		donor_id      TEXT NOT NULL DEFAULT '',
		donor_name    TEXT NOT NULL DEFAULT '',
		donor_rating  REAL NOT NULL DEFAULT 0,
		donor_total   INTEGER NOT NULL DEFAULT 0,
		images        TEXT NOT NULL DEFAULT '',
		allergens     TEXT NOT NULL DEFAULT '',
		storage       TEXT NOT NULL DEFAULT '',
		condition     TEXT NOT NULL DEFAULT '',
		contact_phone TEXT NOT NULL DEFAULT '',
		notes         TEXT NOT NULL DEFAULT '',
		created_at    DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_listings_category ON listings(category);
	CREATE INDEX IF NOT EXISTS idx_listings_created_at ON listings(created_at);
	`
	_, err := conn.Exec(ddl)
	return err
}

// --- Profile operations ---

const profileColumns = `id, name, email, phone, role, avatar_url, business_name, address, rating, donations, created_at`

func scanProfile(row interface{ Scan(...interface{}) error }) (*models.Profile, error) {
	p := &models.Profile{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone, &p.Role, &p.AvatarURL,
		&p.BusinessName, &p.Address, &p.Rating, &p.Donations, &p.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// SaveProfile inserts or replaces a cached profile record.
func (db *DB) SaveProfile(p *models.Profile) error {
	const q = `INSERT INTO profiles (id, name, email, phone, role, avatar_url, business_name, address, rating, donations, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	           ON CONFLICT(id) DO UPDATE SET
	             name = excluded.name, email = excluded.email, phone = excluded.phone,
	             role = excluded.role, avatar_url = excluded.avatar_url,
	             business_name = excluded.business_name, address = excluded.address,
	             rating = excluded.rating, donations = excluded.donations`
	_, err := db.conn.Exec(q,
		p.ID, p.Name, p.Email, p.Phone, string(p.Role), p.AvatarURL,
		p.BusinessName, p.Address, p.Rating, p.Donations, p.CreatedAt,
	)
	return err
}

// GetProfile looks up a cached profile by ID. Returns (nil, nil) if absent.
func (db *DB) GetProfile(id string) (*models.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`
	return scanProfile(db.conn.QueryRow(q, id))
}

// GetProfileByEmail looks up a cached profile by email.
func (db *DB) GetProfileByEmail(email string) (*models.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles WHERE email = ?`
	return scanProfile(db.conn.QueryRow(q, email))
}

// SetPasswordHash stores the credential hash for the local identity client.
func (db *DB) SetPasswordHash(userID, hash string) error {
	_, err := db.conn.Exec(`UPDATE profiles SET password_hash = ? WHERE id = ?`, hash, userID)
	return err
}

// GetPasswordHash returns the stored credential hash, or "" if unset.
func (db *DB) GetPasswordHash(userID string) (string, error) {
	var hash string
	err := db.conn.QueryRow(`SELECT password_hash FROM profiles WHERE id = ?`, userID).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return hash, err
}

// --- Session operations ---

// CreateSession inserts a new session.
func (db *DB) CreateSession(s *models.Session) error {
	const q = `INSERT INTO sessions (id, user_id, expires_at, created_at, ip_address, user_agent)
	           VALUES (?, ?, ?, ?, ?, ?)`
	_, err := db.conn.Exec(q, s.ID, s.UserID, s.ExpiresAt, s.CreatedAt, s.IPAddress, s.UserAgent)
	return err
}

// GetSession looks up a session by ID. Expired or unreadable rows are
// treated as "no session", never as an error the caller must handle.
func (db *DB) GetSession(id string) (*models.Session, error) {
	s := &models.Session{}
	err := db.conn.QueryRow(
		`SELECT id, user_id, expires_at, created_at, ip_address, user_agent FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.CreatedAt, &s.IPAddress, &s.UserAgent)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		// Corrupt row: drop it and report no session.
		_, _ = db.conn.Exec(`DELETE FROM sessions WHERE id = ?`, id)
		return nil, nil
	}
	if time.Now().After(s.ExpiresAt) {
		_, _ = db.conn.Exec(`DELETE FROM sessions WHERE id = ?`, id)
		return nil, nil
	}
	return s, nil
}

// DeleteSession removes a session by ID.
func (db *DB) DeleteSession(id string) error {
	_, err := db.conn.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	return err
}

// DeleteExpiredSessions removes every expired session.
func (db *DB) DeleteExpiredSessions() error {
	_, err := db.conn.Exec(`DELETE FROM sessions WHERE expires_at < ?`, time.Now())
	return err
}

// --- Listing operations (local collaborator backing store) ---

const listingColumns = `id, title, description, category, quantity, unit, address, latitude, longitude, distance, expires, donor_id, donor_name, donor_rating, donor_total, images, allergens, storage, condition, contact_phone, notes, created_at`

// InsertListing persists a listing record.
func (db *DB) InsertListing(l *models.Listing) error {
	const q = `INSERT INTO listings (` + listingColumns + `)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.conn.Exec(q,
		l.ID, l.Title, l.Description, string(l.Category), l.Quantity, l.Unit,
		l.Address, l.Latitude, l.Longitude, l.Distance, l.Expires,
		l.Donor.ID, l.Donor.Name, l.Donor.Rating, l.Donor.TotalDonations,
		joinList(l.Images), joinList(l.Allergens),
		l.Storage, l.Condition, l.ContactPhone, l.Notes, l.CreatedAt,
	)
	return err
}

// ListListings returns every persisted listing, newest first.
func (db *DB) ListListings() ([]models.Listing, error) {
	rows, err := db.conn.Query(`SELECT ` + listingColumns + ` FROM listings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Listing
	for rows.Next() {
		var l models.Listing
		var category, images, allergens string
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Description, &category, &l.Quantity, &l.Unit,
			&l.Address, &l.Latitude, &l.Longitude, &l.Distance, &l.Expires,
			&l.Donor.ID, &l.Donor.Name, &l.Donor.Rating, &l.Donor.TotalDonations,
			&images, &allergens,
			&l.Storage, &l.Condition, &l.ContactPhone, &l.Notes, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		l.Category = models.Category(category)
		l.Images = splitList(images)
		l.Allergens = splitList(allergens)
		out = append(out, l)
	}
	return out, rows.Err()
}

// DeleteListing removes a persisted listing by ID.
func (db *DB) DeleteListing(id string) error {
	_, err := db.conn.Exec(`DELETE FROM listings WHERE id = ?`, id)
	return err
}

func joinList(items []string) string {
	return strings.Join(items, "\n")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
