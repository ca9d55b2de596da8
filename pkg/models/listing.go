package models

import "time"

// Category is the fixed set of food categories a listing can belong to.
type Category string

const (
	CategoryBakery     Category = "bakery"
	CategoryFruits     Category = "fruits"
	CategoryVegetables Category = "vegetables"
	CategoryMeals      Category = "meals"
	CategoryDairy      Category = "dairy"
	CategoryBeverages  Category = "beverages"

	// CategoryAll is the wildcard used by filter criteria, never by a listing.
	CategoryAll Category = "all"
)

// Categories lists every category a listing may carry, in display order.
func Categories() []Category {
	return []Category{
		CategoryBakery, CategoryFruits, CategoryVegetables,
		CategoryMeals, CategoryDairy, CategoryBeverages,
	}
}

// ValidCategory reports whether c is one of the listing categories
// (the "all" wildcard is not valid on a listing itself).
func ValidCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// ClaimedMarker replaces a listing's expiration descriptor once it is
// claimed. A listing carrying it never matches a bounded expiration filter.
const ClaimedMarker = "Claimed"

// Donor identifies who posted a listing.
type Donor struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Rating         float64 `json:"rating"`
	TotalDonations int     `json:"total_donations"`
}

// Listing is a single surplus-food donation offer.
type Listing struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`

	// Quantity is free text ("3", "about 5") paired with a unit ("loaves").
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`

	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Distance is human-readable text such as "2.3 miles away". The filter
	// evaluator parses the leading magnitude out of it.
	Distance string `json:"distance"`

	// Expires is human-readable text such as "12 hours", an absolute
	// date/time, or the ClaimedMarker once the listing has been claimed.
	Expires string `json:"expires"`

	Donor Donor `json:"donor"`

	Images       []string `json:"images,omitempty"`
	Allergens    []string `json:"allergens,omitempty"`
	Storage      string   `json:"storage,omitempty"`
	Condition    string   `json:"condition,omitempty"`
	ContactPhone string   `json:"contact_phone,omitempty"`
	Notes        string   `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Claimed reports whether the listing has been claimed.
func (l Listing) Claimed() bool {
	return l.Expires == ClaimedMarker
}
