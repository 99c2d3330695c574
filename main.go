package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"go-foodmap/cluster"
	"go-foodmap/config"
	"go-foodmap/cronjobs"
	"go-foodmap/db"
	"go-foodmap/geocode"
	"go-foodmap/routes"
	"go-foodmap/stats"
)

// buildGeocoder wires the configured geocoding backend behind the shared
// cache. Nominatim is the default; Google Maps needs MAPS_CREDENTIALS set.
func buildGeocoder(cfg *config.Config) *geocode.Geocoder {
	var svc geocode.GeocodingService

	switch cfg.GeocoderBackend {
	case "maps":
		mapsSvc, err := geocode.NewMapsService()
		if err != nil {
			log.Fatalf("Failed to create Maps geocoding service: %v", err)
		}
		svc = mapsSvc
	default:
		svc = geocode.NewNominatimService(cfg.NominatimURL, cfg.GeocodeDelayMs, cfg.GeocodeTimeoutMs)
	}

	return geocode.NewGeocoder(svc, geocode.NewCache())
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	fmt.Println("Geocoder backend: ", cfg.GeocoderBackend)

	// Init firestore
	firestoreClient, err := db.InitFirestore()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer db.CloseFirestore() // Firestore client is closed on exit

	geocoder := buildGeocoder(cfg)
	clusterer := cluster.New(cfg.Clustering)

	var statsService stats.StatisticsService
	if cfg.StatisticsURL != "" {
		statsService = stats.NewHTTPStatisticsService(cfg.StatisticsURL)
	}
	aggregator := stats.NewAggregator(statsService)

	// Initialize cron jobs
	cronjobs.InitCronJobs(firestoreClient, geocoder, cfg.BackfillSchedule)

	r := routes.SetupRouter(firestoreClient, geocoder, clusterer, aggregator)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
