package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestReverseGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/reverse") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("lat") == "" || r.URL.Query().Get("lon") == "" {
			t.Error("missing lat/lon query params")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name": "12 Baker St, Springfield"}`))
	}))
	defer srv.Close()

	g := NewGeocoder(srv.URL)
	got := g.ReverseGeocode(context.Background(), 39.78, -89.64)
	if got != "12 Baker St, Springfield" {
		t.Errorf("ReverseGeocode = %q", got)
	}
}

func TestReverseGeocode_FailuresReturnEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{"bad json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			g := NewGeocoder(srv.URL)
			if got := g.ReverseGeocode(context.Background(), 1, 2); got != "" {
				t.Errorf("ReverseGeocode = %q, want empty", got)
			}
		})
	}
}

func TestReverseGeocode_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	g := NewGeocoder(srv.URL)
	if got := g.ReverseGeocode(context.Background(), 1, 2); got != "" {
		t.Errorf("ReverseGeocode = %q, want empty", got)
	}
}

func TestEmbedURL(t *testing.T) {
	u := EmbedURL(39.78, -89.64)
	if !strings.Contains(u, "openstreetmap.org/export/embed.html") {
		t.Errorf("EmbedURL = %q", u)
	}
	if !strings.Contains(u, "marker=39.780000,-89.640000") {
		t.Errorf("EmbedURL missing marker: %q", u)
	}
}
