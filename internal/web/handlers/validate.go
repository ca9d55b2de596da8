package handlers

import (
	"strings"
	"unicode"

	"github.com/mealbridge-dev/mealbridge/pkg/identity"
	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

// Validation runs before any store dispatch: a request that reaches the
// reducer is structurally valid. Errors come back as a field → message
// map for inline display.

// Form steps of the listing creation flow, validated independently so the
// client can gate each step.
const (
	StepBasics  = "basics"
	StepPickup  = "pickup"
	StepDetails = "details"
)

func validateListingBasics(req createListingRequest) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(req.Title) == "" {
		errs["title"] = "Title is required."
	}
	if strings.TrimSpace(req.Description) == "" {
		errs["description"] = "Description is required."
	}
	if !models.ValidCategory(models.Category(req.Category)) {
		errs["category"] = "Pick a category."
	}
	return errs
}

func validateListingPickup(req createListingRequest) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(req.Address) == "" {
		errs["address"] = "Pickup address is required."
	}
	if req.ContactPhone != "" && !identity.ValidPhone(req.ContactPhone) {
		errs["contact_phone"] = "Enter a valid phone number."
	}
	return errs
}

func validateListingDetails(req createListingRequest) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(req.Quantity) == "" {
		errs["quantity"] = "Quantity is required."
	}
	if req.ExpiresInHours == nil && strings.TrimSpace(req.ExpiresAt) == "" {
		errs["expires"] = "Say when the food expires."
	}
	if req.ExpiresInHours != nil && *req.ExpiresInHours <= 0 {
		errs["expires"] = "Expiration must be a positive hour count."
	}
	return errs
}

// validateListing runs every step.
func validateListing(req createListingRequest) map[string]string {
	errs := validateListingBasics(req)
	for k, v := range validateListingPickup(req) {
		errs[k] = v
	}
	for k, v := range validateListingDetails(req) {
		errs[k] = v
	}
	return errs
}

// validatePassword enforces the complexity rule: at least 8 characters
// with both a letter and a digit. Returns "" when acceptable.
func validatePassword(pw string) string {
	if len(pw) < 8 {
		return "Password must be at least 8 characters."
	}
	var hasLetter, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "Password must contain a letter and a digit."
	}
	return ""
}

func validateSignup(req signupRequest) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "Name is required."
	}
	if !identity.ValidEmail(req.Email) {
		errs["email"] = "Enter a valid email address."
	}
	if req.Phone != "" && !identity.ValidPhone(req.Phone) {
		errs["phone"] = "Enter a valid phone number."
	}
	if msg := validatePassword(req.Password); msg != "" {
		errs["password"] = msg
	}
	if req.Password != req.ConfirmPassword {
		errs["confirm_password"] = "Passwords do not match."
	}
	if !models.ValidRole(models.Role(req.Role)) || models.Role(req.Role) == models.RoleAdmin {
		errs["role"] = "Pick an account type."
	}
	return errs
}
