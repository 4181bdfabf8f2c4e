package naturalearth

import (
	"context"
	"fmt"
	"sync"

	"github.com/couchcryptid/aerosol-aod-etl/internal/domain"
	"github.com/couchcryptid/aerosol-aod-etl/internal/observability"
)

// CachedLookup wraps a RegionLookup with an in-memory LRU cache.
// AERONET sites cluster heavily, so repeated coordinates are common
// within one run.
type CachedLookup struct {
	inner   domain.RegionLookup
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedLookup creates a cache decorator around a region lookup.
// metrics may be nil.
func NewCachedLookup(inner domain.RegionLookup, maxEntries int, metrics *observability.Metrics) *CachedLookup {
	return &CachedLookup{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedLookup) Locate(ctx context.Context, lat, lon float64) (domain.Region, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lon)
	if region, ok := c.cache.get(key); ok {
		c.countCache("hit")
		return region, nil
	}
	c.countCache("miss")

	region, err := c.inner.Locate(ctx, lat, lon)
	if err != nil {
		c.countLookup("error")
		return region, err
	}
	if region.Country == "" && region.Continent == "" {
		c.countLookup("empty")
	} else {
		c.countLookup("hit")
	}

	// Empty results are cached too: an ocean point stays an ocean point.
	c.cache.put(key, region)
	return region, nil
}

func (c *CachedLookup) countCache(result string) {
	if c.metrics != nil {
		c.metrics.RegionCache.WithLabelValues(result).Inc()
	}
}

func (c *CachedLookup) countLookup(outcome string) {
	if c.metrics != nil {
		c.metrics.RegionLookups.WithLabelValues(outcome).Inc()
	}
}

// lruCache is a simple thread-safe LRU cache for Regions.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value domain.Region
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (domain.Region, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.Region{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value domain.Region) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictOldest()
	}
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if c.head == e {
		return
	}
	c.unlink(e)
	e.prev = nil
	c.addToFront(e)
}

func (c *lruCache) unlink(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	if c.tail == e {
		c.tail = e.prev
	}
	e.next = nil
}

func (c *lruCache) evictOldest() {
	if c.tail == nil {
		return
	}
	oldest := c.tail
	c.unlink(oldest)
	if c.head == oldest {
		c.head = nil
	}
	delete(c.entries, oldest.key)
}
