package handlers

import (
	"log"
	"net/http"
	"strconv"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-foodmap/db"
	"go-foodmap/geo"
	"go-foodmap/types"
)

type donationWithDistance struct {
	*types.DonationRecord
	Distance     float64 `json:"distance_miles"`
	DistanceText string  `json:"distance_text"`
}

// GetDonationsHandler returns every donation in the collection. When the
// caller passes its own position (lat/lng query params) each donation is
// annotated with the distance from that point.
func GetDonationsHandler(c *gin.Context, firestoreClient *firestore.Client) {
	donations, err := db.GetDonations(firestoreClient)
	if err != nil {
		log.Printf("Error fetching donations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch donations"})
		return
	}
	if donations == nil {
		donations = []*types.DonationRecord{}
	}

	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusOK, gin.H{"donations": donations})
		return
	}

	from := types.Coordinates{Lat: lat, Lng: lng}
	annotated := make([]donationWithDistance, 0, len(donations))
	for _, donation := range donations {
		entry := donationWithDistance{DonationRecord: donation}
		if coords, ok := donation.Coordinates(); ok {
			entry.Distance = geo.Distance(from, coords)
			entry.DistanceText = geo.FormatDistance(entry.Distance)
		}
		annotated = append(annotated, entry)
	}

	c.JSON(http.StatusOK, gin.H{"donations": annotated})
}

// GetDonationHandler returns one donation by its numeric ID.
func GetDonationHandler(c *gin.Context, firestoreClient *firestore.Client) {
	donationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation id"})
		return
	}

	donation, err := db.GetDonation(firestoreClient, donationID)
	if err != nil {
		log.Printf("Error fetching donation %d: %v", donationID, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
		return
	}

	c.JSON(http.StatusOK, donation)
}

// CreateDonationHandler stores a new donation document.
func CreateDonationHandler(c *gin.Context, firestoreClient *firestore.Client) {
	var donation types.DonationRecord
	if err := c.ShouldBindJSON(&donation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if donation.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "donation id is required"})
		return
	}

	if err := db.SaveDonation(firestoreClient, donation); err != nil {
		log.Printf("Error saving donation %d: %v", donation.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save donation"})
		return
	}

	c.JSON(http.StatusCreated, donation)
}

type claimRequest struct {
	UserID int `json:"user_id" binding:"required"`
}

// ClaimDonationHandler marks a donation claimed by the requesting user.
func ClaimDonationHandler(c *gin.Context, firestoreClient *firestore.Client) {
	donationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation id"})
		return
	}

	var req claimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := db.ClaimDonation(firestoreClient, donationID, req.UserID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"claimed": donationID, "user_id": req.UserID})
}
