package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-foodmap/geocode"
)

// GeocodeProbe resolves a single location string. Handy for checking which
// backend is wired up and whether the cache is warm.
func GeocodeProbe(c *gin.Context, geocoder *geocode.Geocoder) {
	locationParam := c.Query("location")
	if locationParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location parameter is required"})
		return
	}

	// JSON response struct
	type LocationResponse struct {
		Location  string  `json:"location"`
		Resolved  bool    `json:"resolved"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}

	responseData := LocationResponse{
		Location: locationParam,
	}

	coords, ok := geocoder.Resolve(c.Request.Context(), locationParam)
	if ok {
		responseData.Resolved = true
		responseData.Latitude = coords.Lat
		responseData.Longitude = coords.Lng
	}

	c.JSON(http.StatusOK, responseData)
}
