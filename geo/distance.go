package geo

import (
	"fmt"
	"math"

	"go-foodmap/types"
)

const earthRadiusMiles = 3959.0

// Distance calculates the great-circle distance in miles between two
// points on the earth (specified in decimal degrees).
func Distance(a, b types.Coordinates) float64 {
	radLat1 := a.Lat * math.Pi / 180
	radLat2 := b.Lat * math.Pi / 180

	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLon := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(radLat1)*math.Cos(radLat2)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMiles * c
}

// FormatDistance renders a distance the way the map popups show it:
// feet under a mile, one-decimal miles otherwise.
func FormatDistance(miles float64) string {
	if miles < 1 {
		return fmt.Sprintf("%d ft", int(math.Round(miles*5280)))
	}
	return fmt.Sprintf("%.1f mi", miles)
}
