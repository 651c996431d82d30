package sketch

import (
	"container/list"
	"sync"
)

// lruCache is a fixed-capacity, thread-safe LRU from element digest to its
// permutation-applied length-N vector (spec component E / §9's "linked
// list + hash map" design note). The list+map shape mirrors the teacher's
// in-memory response cache: a doubly-linked list for recency order plus a
// map for O(1) lookup of list nodes.
type lruCache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	index    map[uint64]*list.Element
}

type cacheEntry struct {
	key   uint64
	value []uint64
}

func newLRUCache(capacity int) *lruCache {
	if capacity <= 0 {
		capacity = 10000 // spec §4.D default
	}
	return &lruCache{
		capacity: capacity,
		ll:       list.New(),
		index:    make(map[uint64]*list.Element),
	}
}

// get returns the cached vector for key, if present, promoting it to most
// recently used.
func (c *lruCache) get(key uint64) ([]uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*cacheEntry).value, true
}

// put inserts or refreshes a cached vector, evicting the least recently
// used entry if the cache is at capacity. Concurrent puts for the same key
// are fine to race: only one survives, the other is harmlessly discarded
// (spec §5).
func (c *lruCache) put(key uint64, value []uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[key]; ok {
		el.Value.(*cacheEntry).value = value
		c.ll.MoveToFront(el)
		return
	}

	el := c.ll.PushFront(&cacheEntry{key: key, value: value})
	c.index[key] = el

	if c.ll.Len() > c.capacity {
		c.evictOldest()
	}
}

func (c *lruCache) evictOldest() {
	oldest := c.ll.Back()
	if oldest == nil {
		return
	}
	c.ll.Remove(oldest)
	delete(c.index, oldest.Value.(*cacheEntry).key)
}

// len reports the current number of cached entries (for tests/metrics).
func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
