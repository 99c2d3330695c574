package types

// StatsSummary is the headline block of the statistics panel.
type StatsSummary struct {
	Total     int     `json:"total"`
	Available int     `json:"available"`
	Claimed   int     `json:"claimed"`
	ClaimRate float64 `json:"claim_rate"`
}

// FoodTypeCount is one histogram entry of the food-type breakdown.
type FoodTypeCount struct {
	FoodType string `json:"food_type"`
	Count    int    `json:"count"`
}

// StatisticsSnapshot is one complete statistics result for a viewport.
// A snapshot is built fresh per viewport change and superseded, never
// merged, by the next one. The remote statistics endpoint returns this
// exact shape; the local fallback fills the summary and leaves the
// richer blocks empty.
type StatisticsSnapshot struct {
	Summary        StatsSummary     `json:"summary"`
	FoodTypes      []FoodTypeCount  `json:"food_types"`
	Clusters       []ClusterSummary `json:"clusters"`
	RecentActivity []DonationRecord `json:"recent_activity"`
	ZoomLevel      int              `json:"zoom_level"`
}
