package types

// ClusterStats are the per-cluster roll-up counts.
type ClusterStats struct {
	Total     int            `json:"total"`
	Available int            `json:"available"`
	Claimed   int            `json:"claimed"`
	FoodTypes map[string]int `json:"food_types"`
}

// ClusterBounds is the axis-aligned box covering every member.
type ClusterBounds struct {
	SouthWest Coordinates `json:"southwest"`
	NorthEast Coordinates `json:"northeast"`
}

// Extend grows the box to include another point.
func (b *ClusterBounds) Extend(c Coordinates) {
	if c.Lat < b.SouthWest.Lat {
		b.SouthWest.Lat = c.Lat
	}
	if c.Lat > b.NorthEast.Lat {
		b.NorthEast.Lat = c.Lat
	}
	if c.Lng < b.SouthWest.Lng {
		b.SouthWest.Lng = c.Lng
	}
	if c.Lng > b.NorthEast.Lng {
		b.NorthEast.Lng = c.Lng
	}
}

// Cluster is one group of donations at the current zoom level. Members
// are references into the caller's donation set, in input order; the
// whole value is recomputed from scratch on every clustering pass.
type Cluster struct {
	ID      uint32            `json:"id"`
	Center  Coordinates       `json:"center"`
	Members []*DonationRecord `json:"-"`
	Bounds  ClusterBounds     `json:"bounds"`
	Stats   ClusterStats      `json:"stats"`
}

// ClusterSummary is the wire shape the statistics endpoint and the map
// client exchange: center as [lat,lng], members as ids, bounds as
// [[south,west],[north,east]].
type ClusterSummary struct {
	Center    [2]float64    `json:"center"`
	Donations []int         `json:"donations"`
	Bounds    [2][2]float64 `json:"bounds"`
	Stats     ClusterStats  `json:"stats"`
}

// Summary converts a cluster to its wire shape.
func (cl Cluster) Summary() ClusterSummary {
	ids := make([]int, len(cl.Members))
	for i, d := range cl.Members {
		ids[i] = d.ID
	}
	return ClusterSummary{
		Center:    [2]float64{cl.Center.Lat, cl.Center.Lng},
		Donations: ids,
		Bounds: [2][2]float64{
			{cl.Bounds.SouthWest.Lat, cl.Bounds.SouthWest.Lng},
			{cl.Bounds.NorthEast.Lat, cl.Bounds.NorthEast.Lng},
		},
		Stats: cl.Stats,
	}
}
