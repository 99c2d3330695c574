package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNominatimSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("Expected format=json, got %q", r.URL.Query().Get("format"))
		}
		if r.URL.Query().Get("q") != "Boston, MA" {
			t.Errorf("Expected q=Boston, MA, got %q", r.URL.Query().Get("q"))
		}
		w.Write([]byte(`[{"lat":"42.3601","lon":"-71.0589"}]`))
	}))
	defer server.Close()

	svc := NewNominatimService(server.URL, 0, 5000)
	coords, found, err := svc.Search(context.Background(), "Boston, MA")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !found {
		t.Fatal("Expected a result")
	}
	if coords.Lat != 42.3601 || coords.Lng != -71.0589 {
		t.Errorf("Expected (42.3601,-71.0589), got (%f,%f)", coords.Lat, coords.Lng)
	}
}

func TestNominatimNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	svc := NewNominatimService(server.URL, 0, 5000)
	_, found, err := svc.Search(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found {
		t.Error("Expected no result for empty response")
	}
}

func TestNominatimServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewNominatimService(server.URL, 0, 5000)
	if _, _, err := svc.Search(context.Background(), "Boston, MA"); err == nil {
		t.Error("Expected an error for a 500 response")
	}
}

func TestNominatimMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"an array"}`))
	}))
	defer server.Close()

	svc := NewNominatimService(server.URL, 0, 5000)
	if _, _, err := svc.Search(context.Background(), "Boston, MA"); err == nil {
		t.Error("Expected an error for a malformed body")
	}
}

func TestNominatimBadCoordinateStrings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"-71.0589"}]`))
	}))
	defer server.Close()

	svc := NewNominatimService(server.URL, 0, 5000)
	if _, _, err := svc.Search(context.Background(), "Boston, MA"); err == nil {
		t.Error("Expected an error for unparseable coordinates")
	}
}
