package viewport

import (
	"context"
	"log"
	"sync"
	"time"

	"go-foodmap/cluster"
	"go-foodmap/stats"
	"go-foodmap/types"
)

// DonationSource hands the tracker the current donation set. In the
// service this is the Firestore store; tests use a fixed slice.
type DonationSource interface {
	ListDonations(ctx context.Context) ([]*types.DonationRecord, error)
}

// RenderSink receives each finished recomputation. Whatever draws the
// map implements this.
type RenderSink interface {
	Render(clusters []types.Cluster, snapshot types.StatisticsSnapshot)
}

// Tracker watches viewport changes, debounces them, and reruns
// clustering plus aggregation for the settled viewport. A burst of
// pan/zoom events collapses to one recomputation of the final state;
// results of superseded recomputations are thrown away, never rendered.
type Tracker struct {
	delay      time.Duration
	source     DonationSource
	clusterer  *cluster.Clusterer
	aggregator *stats.Aggregator
	sink       RenderSink

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	closed     bool
}

func New(delay time.Duration, source DonationSource, clusterer *cluster.Clusterer, aggregator *stats.Aggregator, sink RenderSink) *Tracker {
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	return &Tracker{
		delay:      delay,
		source:     source,
		clusterer:  clusterer,
		aggregator: aggregator,
		sink:       sink,
	}
}

// Observe feeds one viewport-change event in. The recomputation only
// starts after the debounce window passes with no further events, and
// runs with the viewport of the last event.
func (t *Tracker) Observe(v types.ViewportState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}

	// Each event supersedes everything before it, including work
	// already in flight.
	t.generation++
	gen := t.generation

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.delay, func() {
		t.recompute(gen, v)
	})
}

// Close stops any pending recomputation. Results still in flight are
// discarded by the generation check.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	t.generation++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Tracker) recompute(gen uint64, v types.ViewportState) {
	ctx := context.Background()

	donations, err := t.source.ListDonations(ctx)
	if err != nil {
		log.Printf("Failed to list donations for viewport recompute: %v", err)
		donations = nil
	}

	clusters := t.clusterer.Cluster(donations, v.Zoom)
	snapshot := t.aggregator.Aggregate(ctx, v, donations)

	// A newer event arrived while we were computing: this result is
	// stale, drop it.
	t.mu.Lock()
	current := !t.closed && gen == t.generation
	t.mu.Unlock()
	if !current {
		return
	}

	t.sink.Render(clusters, snapshot)
}
