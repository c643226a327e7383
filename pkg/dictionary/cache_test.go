package dictionary

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseCacheGetPut(t *testing.T) {
	c := NewResponseCache()

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Put("k", "first")
	c.Put("k", "second")
	body, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "first", body, "first stored body wins")

	// keys are exact strings
	_, ok = c.Get("k ")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, 1, stats["cacheEntries"])
	assert.Equal(t, 5, stats["cacheBytes"])
	assert.Equal(t, 1, stats["cacheHits"])
	assert.Equal(t, 2, stats["cacheMisses"])
}

func TestResponseCacheClear(t *testing.T) {
	c := NewResponseCache()
	c.Put("a", "1")
	c.Put("b", "2")
	assert.Equal(t, 2, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Stats()["cacheHits"])
}

func TestResponseCacheConcurrentAccess(t *testing.T) {
	c := NewResponseCache()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("q%d", i%20)
				if _, ok := c.Get(key); !ok {
					c.Put(key, fmt.Sprintf("body-%d", w))
				}
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 20, c.Len())
}
