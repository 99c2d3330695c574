package geocode

import (
	"strings"
	"sync"

	"go-foodmap/types"
)

// cacheEntry remembers a lookup outcome. Failed lookups are cached too
// so a bad address never hits the geocoding service twice.
type cacheEntry struct {
	coords   types.Coordinates
	resolved bool
}

// Cache is a process-wide lookup cache keyed by normalized address
// text. Entries live for the life of the process; addresses don't move.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// NormalizeKey folds an address into its cache key.
func NormalizeKey(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

func (c *Cache) get(key string) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

func (c *Cache) putResolved(key string, coords types.Coordinates) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{coords: coords, resolved: true}
}

func (c *Cache) putUnresolved(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{}
}

// Len reports how many addresses have a cached outcome.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
