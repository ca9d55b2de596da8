// Package geo holds the best-effort location collaborators: reverse
// geocoding for prefilling pickup addresses and map-embed URL building.
// Geocoding failures are logged and swallowed, never surfaced.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// Geocoder resolves coordinates to addresses via a Nominatim-compatible
// endpoint.
type Geocoder struct {
	baseURL string
	http    *http.Client
}

// NewGeocoder creates a geocoder. An empty baseURL uses the public
// Nominatim instance.
func NewGeocoder(baseURL string) *Geocoder {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Geocoder{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// ReverseGeocode returns a display address for the coordinates, or ""
// when the lookup fails for any reason.
func (g *Geocoder) ReverseGeocode(ctx context.Context, lat, lng float64) string {
	u := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%s&lon=%s",
		g.baseURL,
		url.QueryEscape(fmt.Sprintf("%.6f", lat)),
		url.QueryEscape(fmt.Sprintf("%.6f", lng)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		log.Printf("Reverse geocode skipped: %v", err)
		return ""
	}
	req.Header.Set("User-Agent", "mealbridge/1.0")

	resp, err := g.http.Do(req)
	if err != nil {
		log.Printf("Reverse geocode skipped: %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Reverse geocode skipped: status %d", resp.StatusCode)
		return ""
	}

	var result struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("Reverse geocode skipped: %v", err)
		return ""
	}
	return result.DisplayName
}

// EmbedURL builds an OpenStreetMap embed URL for a pickup location.
// Pure display: nothing comes back to the caller.
func EmbedURL(lat, lng float64) string {
	const span = 0.01
	return fmt.Sprintf(
		"https://www.openstreetmap.org/export/embed.html?bbox=%.6f,%.6f,%.6f,%.6f&layer=mapnik&marker=%.6f,%.6f",
		lng-span, lat-span, lng+span, lat+span, lat, lng,
	)
}
