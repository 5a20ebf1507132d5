package databridge

import (
	"sync"
	"time"
)

// ResponseCache is a fixed-capacity LRU cache with per-entry TTL. Entries
// past their TTL are treated as absent on lookup and evicted lazily; when
// the cache is full the least recently used entry is dropped to make room.
// Safe for concurrent use.
type ResponseCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]*cacheEntry
	head     *cacheEntry // most recently used
	tail     *cacheEntry // least recently used

	now func() time.Time
}

type cacheEntry struct {
	key       string
	value     *NormalizedResult
	expiresAt time.Time
	prev      *cacheEntry
	next      *cacheEntry
}

// NewResponseCache builds a cache holding up to capacity entries, each
// valid for ttl after insertion.
func NewResponseCache(capacity int, ttl time.Duration) *ResponseCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &ResponseCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*cacheEntry, capacity),
		now:      time.Now,
	}
}

// Get returns the cached value for key if present and unexpired, and marks
// it most recently used.
func (c *ResponseCache) Get(key string) (*NormalizedResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.unlink(entry)
		delete(c.entries, key)
		return nil, false
	}
	c.moveToFront(entry)
	return entry.value, true
}

// Put stores value under key, evicting the least recently used entry when
// the cache is at capacity.
func (c *ResponseCache) Put(key string, value *NormalizedResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		entry.value = value
		entry.expiresAt = c.now().Add(c.ttl)
		c.moveToFront(entry)
		return
	}

	if len(c.entries) >= c.capacity {
		c.evictTail()
	}

	entry := &cacheEntry{
		key:       key,
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
	c.entries[key] = entry
	c.pushFront(entry)
}

// Len returns the number of entries currently stored, expired or not.
func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry, c.capacity)
	c.head = nil
	c.tail = nil
}

func (c *ResponseCache) pushFront(entry *cacheEntry) {
	entry.prev = nil
	entry.next = c.head
	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry
	if c.tail == nil {
		c.tail = entry
	}
}

func (c *ResponseCache) unlink(entry *cacheEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
	entry.prev = nil
	entry.next = nil
}

func (c *ResponseCache) moveToFront(entry *cacheEntry) {
	if c.head == entry {
		return
	}
	c.unlink(entry)
	c.pushFront(entry)
}

func (c *ResponseCache) evictTail() {
	if c.tail == nil {
		return
	}
	victim := c.tail
	c.unlink(victim)
	delete(c.entries, victim.key)
}
