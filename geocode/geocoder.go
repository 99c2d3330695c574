package geocode

import (
	"context"
	"log"

	"golang.org/x/sync/singleflight"

	"go-foodmap/types"
)

// GeocodingService resolves free-text addresses against some external
// lookup. found=false means the service answered but knows no such
// place; err covers transport and malformed-response failures.
type GeocodingService interface {
	Search(ctx context.Context, query string) (coords types.Coordinates, found bool, err error)
}

// Geocoder is the cache-first resolver the map engine uses. A failed
// lookup is never an error to the caller: the donation simply stays off
// the map until someone fixes its address.
type Geocoder struct {
	svc   GeocodingService
	cache *Cache
	group singleflight.Group
}

func NewGeocoder(svc GeocodingService, cache *Cache) *Geocoder {
	if cache == nil {
		cache = NewCache()
	}
	return &Geocoder{svc: svc, cache: cache}
}

type resolveResult struct {
	coords   types.Coordinates
	resolved bool
}

// Resolve turns an address into coordinates, consulting the cache
// first. Concurrent lookups for the same address share one in-flight
// request. ok=false means unresolved; callers drop the donation from
// spatial work, nothing more.
func (g *Geocoder) Resolve(ctx context.Context, location string) (types.Coordinates, bool) {
	key := NormalizeKey(location)
	if key == "" {
		return types.Coordinates{}, false
	}

	if e, hit := g.cache.get(key); hit {
		return e.coords, e.resolved
	}

	v, _, _ := g.group.Do(key, func() (interface{}, error) {
		// Another caller may have finished while we queued.
		if e, hit := g.cache.get(key); hit {
			return resolveResult{coords: e.coords, resolved: e.resolved}, nil
		}

		coords, found, err := g.svc.Search(ctx, location)
		if err != nil {
			log.Printf("Geocoding %q failed: %v", location, err)
			g.cache.putUnresolved(key)
			return resolveResult{}, nil
		}
		if !found || !coords.Valid() {
			g.cache.putUnresolved(key)
			return resolveResult{}, nil
		}

		g.cache.putResolved(key, coords)
		return resolveResult{coords: coords, resolved: true}, nil
	})

	res := v.(resolveResult)
	return res.coords, res.resolved
}

// FillCoordinates geocodes every donation that still lacks a usable
// position, in place. Donations whose address cannot be resolved are
// left untouched.
func (g *Geocoder) FillCoordinates(ctx context.Context, donations []*types.DonationRecord) {
	for _, d := range donations {
		if _, ok := d.Coordinates(); ok {
			continue
		}
		if d.Location == "" {
			continue
		}
		if coords, ok := g.Resolve(ctx, d.Location); ok {
			d.SetCoordinates(coords)
		}
	}
}
