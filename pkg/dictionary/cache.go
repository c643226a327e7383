package dictionary

import (
	"sync"

	"github.com/charmbracelet/log"
)

// ResponseCache maps an encoded query to the raw body the service returned for it.
// Entries live as long as the cache does: no eviction, no TTL.
// The first body stored for a key is kept; concurrent duplicate fetches are tolerated.
type ResponseCache struct {
	bodies map[string]string
	hits   int64
	misses int64
	mu     sync.RWMutex
}

func NewResponseCache() *ResponseCache {
	return &ResponseCache{bodies: make(map[string]string)}
}

// Get returns the cached body for key, if any.
func (c *ResponseCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	body, ok := c.bodies[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return body, ok
}

// Put stores body under key unless the key is already present.
func (c *ResponseCache) Put(key, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.bodies[key]; exists {
		log.Debugf("Response cache already holds key, keeping first body (%d bytes)", len(c.bodies[key]))
		return
	}
	c.bodies[key] = body
}

func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bodies)
}

// Clear drops every entry and resets the counters.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bodies = make(map[string]string)
	c.hits = 0
	c.misses = 0
}

func (c *ResponseCache) Stats() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bytes := 0
	for _, body := range c.bodies {
		bytes += len(body)
	}
	return map[string]int{
		"cacheEntries": len(c.bodies),
		"cacheBytes":   bytes,
		"cacheHits":    int(c.hits),
		"cacheMisses":  int(c.misses),
	}
}
