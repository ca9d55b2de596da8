package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mealbridge-dev/mealbridge/config"
	"github.com/mealbridge-dev/mealbridge/internal/auth"
	"github.com/mealbridge-dev/mealbridge/internal/database"
	"github.com/mealbridge-dev/mealbridge/internal/geo"
	"github.com/mealbridge-dev/mealbridge/internal/listings"
	"github.com/mealbridge-dev/mealbridge/internal/notify"
	"github.com/mealbridge-dev/mealbridge/internal/storage"
	"github.com/mealbridge-dev/mealbridge/internal/token"
	"github.com/mealbridge-dev/mealbridge/internal/web/handlers"
	"github.com/mealbridge-dev/mealbridge/pkg/models"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mealbridge-server %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", buildDate)
		os.Exit(0)
	}

	cfg := config.Load()
	ctx := context.Background()

	if cfg.JWT.SigningKey == "" {
		key, err := token.GenerateSigningKey()
		if err != nil {
			log.Fatalf("Failed to generate signing key: %v", err)
		}
		log.Println("WARNING: JWT_SIGNING_KEY is empty — using a random key (tokens won't survive restarts)")
		cfg.JWT.SigningKey = key
	}

	// Local cache: sessions, cached profiles, dev-mode backing store.
	db, err := database.New(cfg.DB.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Identity/storage collaborator.
	client, tokens, err := buildCollaborator(ctx, cfg, db)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	// State containers: constructed once here, injected into consumers.
	store := listings.NewStore()
	notes := notify.NewStore()
	authService := auth.New(client, db, notes, time.Duration(cfg.Session.MaxAge)*time.Second)

	if err := authService.CleanExpiredSessions(); err != nil {
		log.Printf("Expired session cleanup failed: %v", err)
	}

	var geocoder *geo.Geocoder
	if cfg.Geo.Enabled {
		geocoder = geo.NewGeocoder(cfg.Geo.BaseURL)
	}

	if cfg.Server.Env != "production" {
		seedSampleListings(store)
	}

	h := handlers.New(cfg, store, notes, authService, tokens, client, geocoder)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		// Public browse surface.
		r.Get("/listings", h.ListListings)
		r.Get("/listings/past", h.PastListings)
		r.Get("/listings/{id}", h.GetListing)
		r.Post("/listings/validate", h.ValidateListingStep)

		r.Post("/auth/signup", h.Signup)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		// Signed-in surface.
		r.Group(func(r chi.Router) {
			r.Use(handlers.AuthMiddleware(authService, tokens))

			r.Get("/auth/me", h.Me)
			r.Get("/dashboard", h.Dashboard)

			r.Post("/listings/{id}/claim", h.ClaimListing)
			r.Post("/listings/claim", h.BulkClaimListings)
			r.Delete("/listings/{id}", h.DeleteListing)
			r.Post("/listings/delete", h.BulkDeleteListings)

			r.Get("/notifications", h.ListNotifications)
			r.Delete("/notifications", h.ClearNotifications)
			r.Delete("/notifications/{id}", h.RemoveNotification)

			// Donor-only surface.
			r.Group(func(r chi.Router) {
				r.Use(handlers.DonorMiddleware)
				r.Post("/listings", h.CreateListing)
			})
		})
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("mealbridge server starting on %s (env: %s, storage: %s)", addr, cfg.Server.Env, cfg.Storage.Mode)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}

// buildCollaborator selects the identity/storage client. Firebase needs a
// project ID and web API key; everything else runs on the local client.
func buildCollaborator(ctx context.Context, cfg *config.Config, db *database.DB) (storage.Client, *token.Service, error) {
	if cfg.Storage.Mode == "firebase" {
		fb, err := storage.NewFirebase(ctx, storage.FirebaseConfig{
			ProjectID:       cfg.Firebase.ProjectID,
			CredentialsPath: cfg.Firebase.CredentialsPath,
			WebAPIKey:       cfg.Firebase.WebAPIKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return fb, token.New(cfg.JWT.SigningKey, cfg.JWT.Issuer, fb.Auth()), nil
	}

	return storage.NewLocal(db), token.New(cfg.JWT.SigningKey, cfg.JWT.Issuer, nil), nil
}

// seedSampleListings loads a browsable starter set so the explore surface
// isn't empty in development.
func seedSampleListings(store *listings.Store) {
	now := time.Now().UTC()
	samples := []models.Listing{
		{Title: "Surplus sourdough loaves", Category: models.CategoryBakery, Quantity: "8", Unit: "loaves", Address: "12 Baker St", Distance: "1.2 miles away", Expires: "12 hours"},
		{Title: "Crate of ripe bananas", Category: models.CategoryFruits, Quantity: "1", Unit: "crate", Address: "Greenway Mart", Distance: "2.5 miles away", Expires: "24 hours"},
		{Title: "Mixed salad greens", Category: models.CategoryVegetables, Quantity: "6", Unit: "bags", Address: "Field & Fork", Distance: "3.1 miles away", Expires: "8 hours"},
		{Title: "Veggie curry trays", Category: models.CategoryMeals, Quantity: "10", Unit: "trays", Address: "Spice House", Distance: "0.8 miles away", Expires: "6 hours"},
		{Title: "Day-old bagels", Category: models.CategoryBakery, Quantity: "24", Unit: "pieces", Address: "Corner Bakery", Distance: "4.0 miles away", Expires: "18 hours"},
		{Title: "Apple surplus", Category: models.CategoryFruits, Quantity: "15", Unit: "kg", Address: "Orchard Stand", Distance: "4.8 miles away", Expires: "20 hours"},
	}

	for i := range samples {
		samples[i].ID = uuid.New().String()
		samples[i].Description = samples[i].Title
		samples[i].Donor = models.Donor{ID: "seed", Name: "Demo Donor", Rating: 4.8, TotalDonations: 42}
		samples[i].CreatedAt = now
		store.Dispatch(listings.Add{Listing: samples[i]})
	}
	log.Printf("Seeded %d sample listings", len(samples))
}
