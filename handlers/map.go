package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-foodmap/cluster"
	"go-foodmap/db"
	"go-foodmap/geocode"
	"go-foodmap/stats"
	"go-foodmap/types"
)

func getBoundsFromQuery(c *gin.Context) (types.Bounds, error) {
	north, err := strconv.ParseFloat(c.Query("north"), 64)
	if err != nil {
		return types.Bounds{}, fmt.Errorf("invalid north parameter")
	}

	south, err := strconv.ParseFloat(c.Query("south"), 64)
	if err != nil {
		return types.Bounds{}, fmt.Errorf("invalid south parameter")
	}

	east, err := strconv.ParseFloat(c.Query("east"), 64)
	if err != nil {
		return types.Bounds{}, fmt.Errorf("invalid east parameter")
	}

	west, err := strconv.ParseFloat(c.Query("west"), 64)
	if err != nil {
		return types.Bounds{}, fmt.Errorf("invalid west parameter")
	}

	return types.Bounds{South: south, West: west, North: north, East: east}, nil
}

func getZoomFromQuery(c *gin.Context) (int, error) {
	zoom, err := strconv.Atoi(c.Query("zoom"))
	if err != nil {
		return 0, fmt.Errorf("invalid zoom parameter")
	}
	return zoom, nil
}

// visibleDonations fetches all donations, geocodes the ones that only carry
// an address, and keeps those inside the viewport bounds.
func visibleDonations(c *gin.Context, firestoreClient *firestore.Client, geocoder *geocode.Geocoder, bounds types.Bounds) ([]*types.DonationRecord, error) {
	donations, err := db.GetDonations(firestoreClient)
	if err != nil {
		return nil, err
	}

	geocoder.FillCoordinates(c.Request.Context(), donations)

	var visible []*types.DonationRecord
	for _, donation := range donations {
		coords, ok := donation.Coordinates()
		if !ok {
			continue
		}
		if bounds.Contains(coords) {
			visible = append(visible, donation)
		}
	}
	return visible, nil
}

// MapClustersHandler groups the donations inside the requested viewport into
// zoom-appropriate clusters.
func MapClustersHandler(c *gin.Context, firestoreClient *firestore.Client, geocoder *geocode.Geocoder, clusterer *cluster.Clusterer) {
	bounds, err := getBoundsFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	zoom, err := getZoomFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visible, err := visibleDonations(c, firestoreClient, geocoder, bounds)
	if err != nil {
		log.Printf("Error fetching donations for clustering: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch donations"})
		return
	}

	clusters := clusterer.Cluster(visible, zoom)

	c.JSON(http.StatusOK, gin.H{
		"clusters":   cluster.Summaries(clusters),
		"zoom_level": zoom,
	})
}

// MapStatisticsHandler returns the viewport statistics snapshot. The
// aggregator prefers the remote statistics service and falls back to counting
// the visible donations itself.
func MapStatisticsHandler(c *gin.Context, firestoreClient *firestore.Client, geocoder *geocode.Geocoder, clusterer *cluster.Clusterer, aggregator *stats.Aggregator) {
	bounds, err := getBoundsFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	zoom, err := getZoomFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visible, err := visibleDonations(c, firestoreClient, geocoder, bounds)
	if err != nil {
		log.Printf("Error fetching donations for statistics: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch donations"})
		return
	}

	viewport := types.ViewportState{
		Center: types.Coordinates{
			Lat: (bounds.South + bounds.North) / 2,
			Lng: (bounds.West + bounds.East) / 2,
		},
		Zoom:   zoom,
		Bounds: bounds,
	}

	snapshot := aggregator.Aggregate(c.Request.Context(), viewport, visible)
	if len(snapshot.Clusters) == 0 {
		snapshot.Clusters = cluster.Summaries(clusterer.Cluster(visible, zoom))
	}

	c.JSON(http.StatusOK, snapshot)
}
