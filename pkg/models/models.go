package models

import "time"

// Role is the fixed set of account roles.
type Role string

const (
	RoleRestaurant Role = "restaurant"
	RoleMart       Role = "mart"
	RoleIndividual Role = "individual"
	RoleVolunteer  Role = "volunteer"
	RoleAdmin      Role = "admin"
)

// ValidRole reports whether r is a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleRestaurant, RoleMart, RoleIndividual, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

// Donor-like roles post listings; everyone else browses and claims.
func (r Role) CanDonate() bool {
	return r == RoleRestaurant || r == RoleMart || r == RoleAdmin
}

// IsAdmin reports whether the role grants admin access.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// User is the signed-in account as the rest of the app sees it: read-only
// context owned by the auth facade.
type User struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Role                 Role   `json:"role"`
	AvatarURL            string `json:"avatar_url,omitempty"`
	PendingNotifications int    `json:"pending_notifications"`
}

// Profile is the full record held by the identity/storage collaborator.
type Profile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	BusinessName string    `json:"business_name,omitempty"`
	Address      string    `json:"address,omitempty"`
	Rating       float64   `json:"rating"`
	Donations    int       `json:"donations"`
	CreatedAt    time.Time `json:"created_at"`
}

// User projects the profile down to the in-app user record.
func (p Profile) User() User {
	return User{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Role:      p.Role,
		AvatarURL: p.AvatarURL,
	}
}

// Session is an authenticated session tracked in the local cache.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
}
