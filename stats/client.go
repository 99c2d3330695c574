package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go-foodmap/types"
)

// HTTPStatisticsService calls the marketplace's statistics endpoint
// with the viewport filters as query parameters.
type HTTPStatisticsService struct {
	baseURL string
	client  *http.Client
}

func NewHTTPStatisticsService(baseURL string) *HTTPStatisticsService {
	return &HTTPStatisticsService{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *HTTPStatisticsService) GetStatistics(ctx context.Context, f Filters) (types.StatisticsSnapshot, error) {
	var snapshot types.StatisticsSnapshot

	params := url.Values{}
	params.Set("zoom", strconv.Itoa(f.Zoom))
	params.Set("lat_min", strconv.FormatFloat(f.LatMin, 'f', -1, 64))
	params.Set("lat_max", strconv.FormatFloat(f.LatMax, 'f', -1, 64))
	params.Set("lng_min", strconv.FormatFloat(f.LngMin, 'f', -1, 64))
	params.Set("lng_max", strconv.FormatFloat(f.LngMax, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL+"/donations/statistics/?"+params.Encode(), nil)
	if err != nil {
		return snapshot, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return snapshot, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return snapshot, fmt.Errorf("statistics endpoint returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return snapshot, fmt.Errorf("failed to decode statistics response: %v", err)
	}

	return snapshot, nil
}
