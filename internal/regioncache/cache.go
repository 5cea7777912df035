// Package regioncache provides time-bounded memoization of the most recent
// per-region aggregate. It is the only shared mutable structure in the core;
// all access is mutex-guarded.
package regioncache

import (
	"sync"
	"time"

	"github.com/seenimoa/econmood/pkg/models"
)

// entry holds one cached aggregate with its insertion time.
type entry struct {
	agg        models.RegionAggregate
	insertedAt time.Time
}

// Cache is a TTL cache over region aggregates with a maximum entry count.
// When full, the oldest-inserted entry is evicted to admit a new region.
// The cache never produces data; it only returns what was last Put.
type Cache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	entries    map[models.Region]entry
	order      []models.Region // insertion order, oldest first
	now        func() time.Time
}

// New creates a cache with the given per-entry TTL and entry bound.
func New(ttl time.Duration, maxEntries int) *Cache {
	return &Cache{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[models.Region]entry),
		now:        time.Now,
	}
}

// Get returns the cached aggregate for a region. Expired entries miss and
// are dropped.
func (c *Cache) Get(region models.Region) (models.RegionAggregate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[region]
	if !ok {
		return models.RegionAggregate{}, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		c.remove(region)
		return models.RegionAggregate{}, false
	}
	return e.agg, true
}

// Put stores the aggregate for a region, evicting the oldest-inserted entry
// if the cache is full.
func (c *Cache) Put(region models.Region, agg models.RegionAggregate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[region]; ok {
		c.remove(region)
	} else if c.maxEntries > 0 && len(c.entries) >= c.maxEntries && len(c.order) > 0 {
		c.remove(c.order[0])
	}

	c.entries[region] = entry{agg: agg, insertedAt: c.now()}
	c.order = append(c.order, region)
}

// InvalidateAll empties the cache. Subsequent Get calls miss until fresh
// aggregates are Put.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[models.Region]entry)
	c.order = nil
}

// Len returns the number of cached entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove drops a region from entries and order. Must be called with mu held.
func (c *Cache) remove(region models.Region) {
	delete(c.entries, region)
	for i, r := range c.order {
		if r == region {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
