package stats

import (
	"context"
	"log"
	"math"

	"go-foodmap/types"
)

// Filters scope a remote statistics request to the current viewport.
type Filters struct {
	Zoom   int
	LatMin float64
	LatMax float64
	LngMin float64
	LngMax float64
}

// StatisticsService is the remote aggregation endpoint. It can do
// server-side clustering over the whole dataset, so its answer is
// preferred whenever it is reachable.
type StatisticsService interface {
	GetStatistics(ctx context.Context, f Filters) (types.StatisticsSnapshot, error)
}

// Aggregator produces the statistics panel content: remote numbers
// when the service answers, locally derived counts when it doesn't.
// The remote endpoint must never be a single point of failure for
// counts the client can compute itself.
type Aggregator struct {
	svc StatisticsService
}

func NewAggregator(svc StatisticsService) *Aggregator {
	return &Aggregator{svc: svc}
}

// Aggregate builds a snapshot for the viewport. It never fails; any
// remote problem routes to the local fallback over the loaded
// donations.
func (a *Aggregator) Aggregate(ctx context.Context, viewport types.ViewportState, local []*types.DonationRecord) types.StatisticsSnapshot {
	if a.svc != nil {
		snapshot, err := a.svc.GetStatistics(ctx, Filters{
			Zoom:   viewport.Zoom,
			LatMin: viewport.Bounds.South,
			LatMax: viewport.Bounds.North,
			LngMin: viewport.Bounds.West,
			LngMax: viewport.Bounds.East,
		})
		if err == nil {
			return snapshot
		}
		log.Printf("Statistics service unavailable, falling back to local counts: %v", err)
	}

	return LocalSnapshot(viewport, local)
}

// LocalSnapshot derives a best-effort snapshot from the donations
// already loaded. Only the summary block is filled; the richer blocks
// stay empty because the remote side owns them. The result is always
// structurally complete.
func LocalSnapshot(viewport types.ViewportState, local []*types.DonationRecord) types.StatisticsSnapshot {
	summary := types.StatsSummary{}
	for _, d := range local {
		if _, ok := d.Coordinates(); !ok {
			continue
		}
		summary.Total++
		if d.IsClaimed {
			summary.Claimed++
		} else {
			summary.Available++
		}
	}
	if summary.Total > 0 {
		rate := float64(summary.Claimed) / float64(summary.Total) * 100
		summary.ClaimRate = math.Round(rate*10) / 10
	}

	return types.StatisticsSnapshot{
		Summary:        summary,
		FoodTypes:      []types.FoodTypeCount{},
		Clusters:       []types.ClusterSummary{},
		RecentActivity: []types.DonationRecord{},
		ZoomLevel:      viewport.Zoom,
	}
}
