package solver

import (
	"sync"
	"sync/atomic"

	"github.com/lox/videopoker/poker"
)

// drawKey identifies an enumeration: the full dealt hand (whose cards are dead)
// and the subset held. Both are order independent and neither depends on the
// pay table, so one entry serves every table and every ordering of the hand.
type drawKey struct {
	hand poker.CardSet
	held poker.CardSet
}

// Cache memoizes category counts per (hand, held cards) and the category of
// complete hands. It is safe for concurrent use; concurrent first writes of a
// key store identical values. A nil *Cache is valid and caches nothing.
type Cache struct {
	mu         sync.RWMutex
	draws      map[drawKey][poker.NumCategories]int64
	categories map[poker.CardSet]poker.Category

	hits   atomic.Int64
	misses atomic.Int64
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		draws:      make(map[drawKey][poker.NumCategories]int64),
		categories: make(map[poker.CardSet]poker.Category),
	}
}

func (c *Cache) counts(key drawKey) ([poker.NumCategories]int64, bool) {
	if c == nil {
		return [poker.NumCategories]int64{}, false
	}
	c.mu.RLock()
	counts, ok := c.draws[key]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return counts, ok
}

func (c *Cache) storeCounts(key drawKey, counts [poker.NumCategories]int64) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.draws[key] = counts
	c.mu.Unlock()
}

// category classifies a complete five-card set, memoized.
func (c *Cache) category(cs poker.CardSet) poker.Category {
	if c == nil {
		return poker.CategoryOf(cs)
	}
	c.mu.RLock()
	cat, ok := c.categories[cs]
	c.mu.RUnlock()
	if ok {
		return cat
	}

	cat = poker.CategoryOf(cs)
	c.mu.Lock()
	c.categories[cs] = cat
	c.mu.Unlock()
	return cat
}

// Clear drops every entry and resets the statistics.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	clear(c.draws)
	clear(c.categories)
	c.mu.Unlock()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Stats returns hit and miss counts for enumeration lookups and the number of cached entries.
func (c *Cache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: len(c.draws) + len(c.categories),
	}
}
