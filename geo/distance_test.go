package geo

import (
	"math"
	"testing"

	"go-foodmap/types"
)

func TestDistanceIdentity(t *testing.T) {
	points := []types.Coordinates{
		{Lat: 0, Lng: 0},
		{Lat: 42.3601, Lng: -71.0589},
		{Lat: -33.8688, Lng: 151.2093},
		{Lat: 90, Lng: 0},
	}

	for _, p := range points {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Expected distance from a point to itself to be 0, got %f for %+v", d, p)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := []struct {
		a, b types.Coordinates
	}{
		{types.Coordinates{Lat: 42.3601, Lng: -71.0589}, types.Coordinates{Lat: 40.7128, Lng: -74.0060}},
		{types.Coordinates{Lat: 0, Lng: 0}, types.Coordinates{Lat: 0, Lng: 180}},
		{types.Coordinates{Lat: -45, Lng: 30}, types.Coordinates{Lat: 45, Lng: -30}},
	}

	for _, pair := range pairs {
		ab := Distance(pair.a, pair.b)
		ba := Distance(pair.b, pair.a)
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Expected symmetric distances, got %f and %f", ab, ba)
		}
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Boston to New York is roughly 190 miles great-circle.
	boston := types.Coordinates{Lat: 42.3601, Lng: -71.0589}
	newYork := types.Coordinates{Lat: 40.7128, Lng: -74.0060}

	d := Distance(boston, newYork)
	if d < 185 || d > 195 {
		t.Errorf("Expected Boston-NYC distance around 190 mi, got %f", d)
	}
}

func TestDistanceAntipodal(t *testing.T) {
	a := types.Coordinates{Lat: 0, Lng: 0}
	b := types.Coordinates{Lat: 0, Lng: 180}

	d := Distance(a, b)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		t.Fatalf("Expected finite antipodal distance, got %f", d)
	}
	// Half the earth's circumference at R=3959.
	expected := math.Pi * 3959.0
	if math.Abs(d-expected) > 1 {
		t.Errorf("Expected antipodal distance %f, got %f", expected, d)
	}
}

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		miles    float64
		expected string
	}{
		{0.5, "2640 ft"},
		{0.0947, "500 ft"},
		{0, "0 ft"},
		{1, "1.0 mi"},
		{1.25, "1.2 mi"},
		{12.34, "12.3 mi"},
	}

	for _, tc := range cases {
		if got := FormatDistance(tc.miles); got != tc.expected {
			t.Errorf("FormatDistance(%f): expected %q, got %q", tc.miles, tc.expected, got)
		}
	}
}
