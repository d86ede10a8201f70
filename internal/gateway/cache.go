package gateway

import (
	"container/list"
	"sync"
)

// resultCache is the bounded correlation-id idempotency cache. A
// repeated inbound operation with a known correlation id returns the
// cached result instead of re-executing. Eviction is oldest-first.
type resultCache struct {
	mu      sync.Mutex
	maxSize int
	order   *list.List
	entries map[string]*list.Element
}

type cacheEntry struct {
	key    string
	result interface{}
}

func newResultCache(maxSize int) *resultCache {
	return &resultCache{
		maxSize: maxSize,
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

func (c *resultCache) get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return elem.Value.(*cacheEntry).result, true
}

func (c *resultCache) put(key string, result interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).result = result
		return
	}
	c.entries[key] = c.order.PushBack(&cacheEntry{key: key, result: result})
	for c.order.Len() > c.maxSize {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}
