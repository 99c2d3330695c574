package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go-foodmap/types"
)

// nominatimResult is one hit from the Nominatim search endpoint, which
// serializes coordinates as strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NominatimService looks addresses up against a Nominatim instance.
// The public openstreetmap.org instance wants at most one request per
// second, so calls go through a politeness delay.
type NominatimService struct {
	baseURL string
	client  *http.Client

	mu       sync.Mutex
	lastCall time.Time
	delay    time.Duration
}

func NewNominatimService(baseURL string, delayMs int, timeoutMs int) *NominatimService {
	return &NominatimService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(timeoutMs) * time.Millisecond},
		delay:   time.Duration(delayMs) * time.Millisecond,
	}
}

// wait blocks until enough time has passed since the last request.
func (s *NominatimService) wait() {
	s.mu.Lock()
	defer s.mu.Unlock()

	elapsed := time.Since(s.lastCall)
	if elapsed < s.delay {
		time.Sleep(s.delay - elapsed)
	}
	s.lastCall = time.Now()
}

func (s *NominatimService) Search(ctx context.Context, query string) (types.Coordinates, bool, error) {
	s.wait()

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return types.Coordinates{}, false, err
	}
	req.Header.Set("User-Agent", "go-foodmap/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return types.Coordinates{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.Coordinates{}, false, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return types.Coordinates{}, false, fmt.Errorf("failed to decode nominatim response: %v", err)
	}
	if len(results) == 0 {
		return types.Coordinates{}, false, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return types.Coordinates{}, false, fmt.Errorf("bad lat %q in nominatim response", results[0].Lat)
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return types.Coordinates{}, false, fmt.Errorf("bad lon %q in nominatim response", results[0].Lon)
	}

	return types.Coordinates{Lat: lat, Lng: lng}, true, nil
}
