package stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-foodmap/types"
)

func geocoded(id int, lat, lng float64, claimed bool) *types.DonationRecord {
	d := &types.DonationRecord{ID: id, IsClaimed: claimed}
	d.SetCoordinates(types.Coordinates{Lat: lat, Lng: lng})
	return d
}

func testViewport(zoom int) types.ViewportState {
	return types.ViewportState{
		Center: types.Coordinates{Lat: 42.36, Lng: -71.06},
		Zoom:   zoom,
		Bounds: types.Bounds{South: 42.0, West: -71.5, North: 42.7, East: -70.5},
	}
}

func TestAggregateAdoptsRemote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("zoom") != "12" {
			t.Errorf("Expected zoom=12, got %q", q.Get("zoom"))
		}
		if q.Get("lat_min") != "42" || q.Get("lat_max") != "42.7" {
			t.Errorf("Unexpected lat filters: %q..%q", q.Get("lat_min"), q.Get("lat_max"))
		}
		if q.Get("lng_min") != "-71.5" || q.Get("lng_max") != "-70.5" {
			t.Errorf("Unexpected lng filters: %q..%q", q.Get("lng_min"), q.Get("lng_max"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"summary": {"total": 42, "available": 30, "claimed": 12, "claim_rate": 28.6},
			"food_types": [{"food_type": "fruits", "count": 20}],
			"clusters": [],
			"recent_activity": [],
			"zoom_level": 12
		}`))
	}))
	defer server.Close()

	a := NewAggregator(NewHTTPStatisticsService(server.URL))
	snapshot := a.Aggregate(context.Background(), testViewport(12), nil)

	if snapshot.Summary.Total != 42 || snapshot.Summary.ClaimRate != 28.6 {
		t.Errorf("Expected remote summary adopted verbatim, got %+v", snapshot.Summary)
	}
	if len(snapshot.FoodTypes) != 1 || snapshot.FoodTypes[0].FoodType != "fruits" {
		t.Errorf("Expected remote food types adopted, got %v", snapshot.FoodTypes)
	}
}

func TestAggregateFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	local := []*types.DonationRecord{
		geocoded(1, 42.36, -71.06, false),
		geocoded(2, 42.37, -71.05, true),
		geocoded(3, 42.38, -71.04, true),
		{ID: 4, Location: "not geocoded"},
	}

	a := NewAggregator(NewHTTPStatisticsService(server.URL))
	snapshot := a.Aggregate(context.Background(), testViewport(12), local)

	if snapshot.Summary.Total != 3 {
		t.Errorf("Expected total 3 (geocoded only), got %d", snapshot.Summary.Total)
	}
	if snapshot.Summary.Available != 1 || snapshot.Summary.Claimed != 2 {
		t.Errorf("Expected available=1 claimed=2, got %+v", snapshot.Summary)
	}
	// 2/3*100 rounded to one decimal.
	if snapshot.Summary.ClaimRate != 66.7 {
		t.Errorf("Expected claim rate 66.7, got %f", snapshot.Summary.ClaimRate)
	}
	if snapshot.ZoomLevel != 12 {
		t.Errorf("Expected zoom level 12, got %d", snapshot.ZoomLevel)
	}
}

func TestAggregateFallsBackOnMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"summary": definitely not json`))
	}))
	defer server.Close()

	local := []*types.DonationRecord{geocoded(1, 42.36, -71.06, false)}

	a := NewAggregator(NewHTTPStatisticsService(server.URL))
	snapshot := a.Aggregate(context.Background(), testViewport(10), local)

	if snapshot.Summary.Total != 1 || snapshot.Summary.Available != 1 {
		t.Errorf("Expected local fallback counts, got %+v", snapshot.Summary)
	}
}

func TestAggregateFallsBackWhenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	a := NewAggregator(NewHTTPStatisticsService(server.URL))
	snapshot := a.Aggregate(context.Background(), testViewport(12), nil)

	if snapshot.Summary.Total != 0 || snapshot.Summary.ClaimRate != 0 {
		t.Errorf("Expected zero-filled fallback, got %+v", snapshot.Summary)
	}
}

func TestAggregateWithoutService(t *testing.T) {
	a := NewAggregator(nil)
	snapshot := a.Aggregate(context.Background(), testViewport(14),
		[]*types.DonationRecord{geocoded(1, 42.36, -71.06, true)})

	if snapshot.Summary.Total != 1 || snapshot.Summary.ClaimRate != 100 {
		t.Errorf("Expected local-only aggregation, got %+v", snapshot.Summary)
	}
}

func TestLocalSnapshotEmptyInput(t *testing.T) {
	snapshot := LocalSnapshot(testViewport(12), nil)

	if snapshot.Summary.Total != 0 || snapshot.Summary.ClaimRate != 0 {
		t.Errorf("Expected zero summary with zero claim rate, got %+v", snapshot.Summary)
	}
	// Structurally complete: empty but never nil.
	if snapshot.FoodTypes == nil || snapshot.Clusters == nil || snapshot.RecentActivity == nil {
		t.Error("Expected fallback snapshot blocks to be empty, not nil")
	}
}

func TestLocalSnapshotClaimRateBounds(t *testing.T) {
	cases := [][]*types.DonationRecord{
		nil,
		{geocoded(1, 42.36, -71.06, false)},
		{geocoded(1, 42.36, -71.06, true)},
		{geocoded(1, 42.36, -71.06, true), geocoded(2, 42.37, -71.05, false), geocoded(3, 42.38, -71.04, true)},
	}

	for i, local := range cases {
		snapshot := LocalSnapshot(testViewport(12), local)
		rate := snapshot.Summary.ClaimRate
		if rate < 0 || rate > 100 {
			t.Errorf("case %d: claim rate %f out of [0,100]", i, rate)
		}
		if snapshot.Summary.Total == 0 && rate != 0 {
			t.Errorf("case %d: expected rate 0 for empty set, got %f", i, rate)
		}
	}
}
