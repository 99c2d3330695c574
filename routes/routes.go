package routes

import (
	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-foodmap/cluster"
	"go-foodmap/geocode"
	"go-foodmap/handlers"
	"go-foodmap/stats"
)

func SetupRouter(firestoreClient *firestore.Client, geocoder *geocode.Geocoder, clusterer *cluster.Clusterer, aggregator *stats.Aggregator) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Hello, welcome to Go Foodmap!",
		})
	})

	// api routes
	api := r.Group("/api/foodmap")
	{
		api.GET("/donations", func(c *gin.Context) {
			handlers.GetDonationsHandler(c, firestoreClient)
		})
		api.GET("/donations/:id", func(c *gin.Context) {
			handlers.GetDonationHandler(c, firestoreClient)
		})
		api.POST("/donations", func(c *gin.Context) {
			handlers.CreateDonationHandler(c, firestoreClient)
		})
		api.POST("/donations/:id/claim", func(c *gin.Context) {
			handlers.ClaimDonationHandler(c, firestoreClient)
		})

		api.GET("/map/clusters", func(c *gin.Context) {
			handlers.MapClustersHandler(c, firestoreClient, geocoder, clusterer)
		})
		api.GET("/map/statistics", func(c *gin.Context) {
			handlers.MapStatisticsHandler(c, firestoreClient, geocoder, clusterer, aggregator)
		})

		api.GET("/geocode", func(c *gin.Context) {
			handlers.GeocodeProbe(c, geocoder)
		})
	}

	return r
}
