package cronjobs

import (
	"context"
	"log"
	"sync"

	"cloud.google.com/go/firestore"
	"github.com/robfig/cron/v3"

	"go-foodmap/db"
	"go-foodmap/geocode"
	"go-foodmap/types"
)

// backfillCoordinates geocodes every donation that still lacks a lat/lng
// pair and writes the result back. One goroutine per donation; the shared
// geocoder coalesces duplicate addresses and rate-limits the backend.
func backfillCoordinates(firestoreClient *firestore.Client, geocoder *geocode.Geocoder) {
	candidates, err := db.GetDonationsMissingCoordinates(firestoreClient)
	if err != nil {
		log.Printf("Error fetching donations missing coordinates: %v", err)
		return
	}
	if len(candidates) == 0 {
		return
	}
	log.Printf("Backfilling coordinates for %d donations", len(candidates))

	var wg sync.WaitGroup
	for _, donation := range candidates {
		wg.Add(1)
		go func(d *types.DonationRecord) {
			defer wg.Done()
			coords, ok := geocoder.Resolve(context.Background(), d.Location)
			if !ok {
				log.Printf("Could not geocode donation %d (%q)", d.ID, d.Location)
				return
			}
			if err := db.UpdateDonationCoordinates(firestoreClient, d.ID, coords); err != nil {
				log.Printf("Error updating coordinates for donation %d: %v", d.ID, err)
			}
		}(donation)
	}
	wg.Wait() // Wait for all updates to finish
}

func InitCronJobs(firestoreClient *firestore.Client, geocoder *geocode.Geocoder, schedule string) {
	log.Println("\nStarting Cron Jobs -------------------------------------------------------")
	c := cron.New()

	// Geocode backfill: catches donations submitted with only an address
	_, err := c.AddFunc(schedule, func() {
		log.Println("\nCronJob: Geocode Backfill Running")
		backfillCoordinates(firestoreClient, geocoder)
	})
	if err != nil {
		log.Println("Error scheduling Geocode Backfill:", err)
	}

	c.Start()
}
