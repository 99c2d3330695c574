package cluster

import (
	"math"

	"github.com/google/uuid"

	"go-foodmap/config"
	"go-foodmap/types"
)

// Clusterer partitions geocoded donations into map clusters. Strategy
// is zoom-banded: street zoom keeps every donation as its own marker,
// lower zooms bucket donations into fixed-degree grid cells so nearby
// markers merge. The whole cluster set is rebuilt from scratch on every
// call; at marketplace scale that is cheaper than being clever.
type Clusterer struct {
	opts config.Clustering
}

// New creates a clusterer, filling in defaults for zeroed options.
func New(opts config.Clustering) *Clusterer {
	if opts.StreetZoom <= 0 {
		opts.StreetZoom = 15
	}
	if opts.NeighborhoodZoom <= 0 {
		opts.NeighborhoodZoom = 10
	}
	if opts.NeighborhoodCell <= 0 {
		opts.NeighborhoodCell = 0.01 // ~1km
	}
	if opts.RegionalCell <= 0 {
		opts.RegionalCell = 0.05 // ~5km
	}
	if opts.NeighborhoodZoom > opts.StreetZoom {
		opts.NeighborhoodZoom = opts.StreetZoom
	}
	return &Clusterer{opts: opts}
}

// bucketKey identifies one grid cell. Derived purely from coordinates,
// so membership never depends on input iteration order.
type bucketKey struct {
	latIdx int64
	lngIdx int64
}

// Cluster partitions the donations for the given zoom level. Only
// donations with usable coordinates participate; the rest are dropped
// from the result, never pinned to a default location. Every geocoded
// donation lands in exactly one cluster, and clusters come out ordered
// by their first member's position in the input.
func (c *Clusterer) Cluster(donations []*types.DonationRecord, zoom int) []types.Cluster {
	if zoom >= c.opts.StreetZoom {
		return c.singletons(donations)
	}

	cell := c.opts.RegionalCell
	if zoom >= c.opts.NeighborhoodZoom {
		cell = c.opts.NeighborhoodCell
	}

	// Group members per cell, keeping first-seen cell order so the
	// output is deterministic rather than map-ordered.
	buckets := make(map[bucketKey]int)
	var groups [][]*types.DonationRecord

	for _, d := range donations {
		coords, ok := d.Coordinates()
		if !ok {
			continue
		}
		key := bucketKey{
			latIdx: int64(math.Floor(coords.Lat / cell)),
			lngIdx: int64(math.Floor(coords.Lng / cell)),
		}
		idx, seen := buckets[key]
		if !seen {
			idx = len(groups)
			buckets[key] = idx
			groups = append(groups, nil)
		}
		groups[idx] = append(groups[idx], d)
	}

	clusters := make([]types.Cluster, 0, len(groups))
	for _, members := range groups {
		clusters = append(clusters, buildCluster(members))
	}
	return clusters
}

// singletons maps every geocoded donation to its own cluster.
func (c *Clusterer) singletons(donations []*types.DonationRecord) []types.Cluster {
	var clusters []types.Cluster
	for _, d := range donations {
		if _, ok := d.Coordinates(); !ok {
			continue
		}
		clusters = append(clusters, buildCluster([]*types.DonationRecord{d}))
	}
	return clusters
}

// buildCluster aggregates one member group: planar-mean centroid,
// min/max bounding box, and the status/food-type roll-up.
func buildCluster(members []*types.DonationRecord) types.Cluster {
	cl := types.Cluster{
		ID:      uuid.New().ID(),
		Members: members,
		Stats: types.ClusterStats{
			FoodTypes: make(map[string]int),
		},
	}
	if len(members) == 0 {
		return cl
	}

	first, _ := members[0].Coordinates()
	cl.Bounds = types.ClusterBounds{SouthWest: first, NorthEast: first}

	var sumLat, sumLng float64
	for _, d := range members {
		coords, _ := d.Coordinates()
		sumLat += coords.Lat
		sumLng += coords.Lng
		cl.Bounds.Extend(coords)

		cl.Stats.Total++
		if d.IsClaimed {
			cl.Stats.Claimed++
		} else {
			cl.Stats.Available++
		}
		cl.Stats.FoodTypes[d.FoodTypeOrOther()]++
	}

	n := float64(len(members))
	cl.Center = types.Coordinates{Lat: sumLat / n, Lng: sumLng / n}
	return cl
}

// Summaries converts a cluster set to its wire shape.
func Summaries(clusters []types.Cluster) []types.ClusterSummary {
	out := make([]types.ClusterSummary, len(clusters))
	for i, cl := range clusters {
		out[i] = cl.Summary()
	}
	return out
}
