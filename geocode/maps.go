package geocode

import (
	"context"
	"fmt"
	"os"
	"sync"

	"googlemaps.github.io/maps"

	"go-foodmap/types"
)

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
)

// initMapsClient initializes and returns a singleton Google Maps client.
func initMapsClient() (*maps.Client, error) {
	var err error
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_CREDENTIALS")
		if apiKey == "" {
			err = fmt.Errorf("MAPS_CREDENTIALS environment variable not set")
			return
		}
		mapsClient, err = maps.NewClient(maps.WithAPIKey(apiKey))
	})
	if err == nil && mapsClient == nil {
		err = fmt.Errorf("maps client was not initialized")
	}
	return mapsClient, err
}

// MapsService is the Google Maps geocoding backend, used when
// GEOCODER_BACKEND=maps and an API key is configured.
type MapsService struct {
	client *maps.Client
}

func NewMapsService() (*MapsService, error) {
	client, err := initMapsClient()
	if err != nil {
		return nil, err
	}
	return &MapsService{client: client}, nil
}

func (s *MapsService) Search(ctx context.Context, query string) (types.Coordinates, bool, error) {
	req := &maps.GeocodingRequest{
		Address: query,
	}

	results, err := s.client.Geocode(ctx, req)
	if err != nil {
		return types.Coordinates{}, false, err
	}
	if len(results) == 0 {
		return types.Coordinates{}, false, nil
	}

	loc := results[0].Geometry.Location
	return types.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, true, nil
}
