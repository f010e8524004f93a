package dted

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tileCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dted_tile_cache_hits_total",
		Help: "The total number of hits on the loaded-tile cache",
	})
	tileCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dted_tile_cache_misses_total",
		Help: "The total number of misses on the loaded-tile cache",
	})
	tileCacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dted_tile_cache_evictions_total",
		Help: "The total number of evictions from the loaded-tile cache",
	})
)

// TileCache keeps fully loaded tiles in memory with LRU eviction, keyed by
// file path. A DTED level 2 grid is roughly 25MB, so the cache is sized in
// tiles rather than bytes and kept small by default.
type TileCache struct {
	mutex sync.Mutex
	cache *lru.Cache[string, *Tile]
}

// NewTileCache creates a cache holding at most size loaded tiles.
func NewTileCache(size int) (*TileCache, error) {
	cache, err := lru.NewWithEvict(size, func(string, *Tile) {
		tileCacheEvictions.Inc()
	})
	if err != nil {
		return nil, err
	}
	return &TileCache{cache: cache}, nil
}

// Get returns the loaded tile for path, calling load on a cache miss. Only
// one loader runs at a time; concurrent callers for the same path share the
// loaded result.
func (c *TileCache) Get(path string, load func() (*Tile, error)) (*Tile, error) {
	if tile, ok := c.cache.Get(path); ok {
		tileCacheHits.Inc()
		return tile, nil
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	if tile, ok := c.cache.Get(path); ok {
		tileCacheHits.Inc()
		return tile, nil
	}
	tileCacheMisses.Inc()

	tile, err := load()
	if err != nil {
		return nil, err
	}
	c.cache.Add(path, tile)
	return tile, nil
}

// Len returns the number of cached tiles.
func (c *TileCache) Len() int {
	return c.cache.Len()
}

// Purge drops every cached tile.
func (c *TileCache) Purge() {
	c.cache.Purge()
}
