/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/asgardeo/tokenengine/internal/system/log"
)

// inMemoryCacheEntry represents an entry in the in-memory cache with its position in the LRU list.
type inMemoryCacheEntry[T any] struct {
	CacheEntry[T]
	listElement *list.Element
}

// inMemoryCache is a least recently used cache whose entries expire individually.
type inMemoryCache[T any] struct {
	enabled     bool
	name        string
	mu          sync.Mutex
	entries     map[CacheKey]*inMemoryCacheEntry[T]
	accessOrder *list.List
	size        int
	ttl         time.Duration
	hitCount    int64
	missCount   int64
	evictCount  int64
}

func newInMemoryCache[T any](name string, size int, ttl time.Duration) *inMemoryCache[T] {
	return &inMemoryCache[T]{
		enabled:     true,
		name:        name,
		entries:     make(map[CacheKey]*inMemoryCacheEntry[T]),
		accessOrder: list.New(),
		size:        size,
		ttl:         ttl,
	}
}

// GetName returns the name of the cache.
func (c *inMemoryCache[T]) GetName() string {
	return c.name
}

// IsEnabled returns whether the cache is enabled.
func (c *inMemoryCache[T]) IsEnabled() bool {
	return c.enabled
}

// Set adds or updates an entry using the default TTL.
func (c *inMemoryCache[T]) Set(key CacheKey, value T) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL adds or updates an entry that expires after ttl.
func (c *inMemoryCache[T]) SetWithTTL(key CacheKey, value T, ttl time.Duration) {
	if !c.enabled || ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expiry := time.Now().Add(ttl)
	if existing, ok := c.entries[key]; ok {
		existing.Value = value
		existing.ExpiryTime = expiry
		c.accessOrder.MoveToFront(existing.listElement)
		return
	}

	c.entries[key] = &inMemoryCacheEntry[T]{
		CacheEntry:  CacheEntry[T]{Value: value, ExpiryTime: expiry},
		listElement: c.accessOrder.PushFront(key),
	}
	if len(c.entries) > c.size {
		c.evictOldest()
	}
}

// Get retrieves a live value from the cache.
func (c *inMemoryCache[T]) Get(key CacheKey) (T, bool) {
	var zero T
	if !c.enabled {
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if ok && time.Now().After(entry.ExpiryTime) {
		c.deleteEntry(key, entry)
		ok = false
	}
	recordLookup(c.name, ok)
	if !ok {
		c.missCount++
		return zero, false
	}

	c.hitCount++
	c.accessOrder.MoveToFront(entry.listElement)
	return entry.Value, true
}

// Delete removes an entry from the cache.
func (c *inMemoryCache[T]) Delete(key CacheKey) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.deleteEntry(key, entry)
	}
}

// Clear removes all entries from the cache.
func (c *inMemoryCache[T]) Clear() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[CacheKey]*inMemoryCacheEntry[T])
	c.accessOrder.Init()
}

// CleanupExpired removes all expired entries from the cache.
func (c *inMemoryCache[T]) CleanupExpired() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	cleaned := 0
	for key, entry := range c.entries {
		if now.After(entry.ExpiryTime) {
			c.deleteEntry(key, entry)
			cleaned++
		}
	}

	if cleaned > 0 {
		log.GetLogger().Debug("Expired cache entries cleaned", log.String("cacheName", c.name),
			log.Int("count", cleaned))
	}
}

// GetStats returns cache statistics.
func (c *inMemoryCache[T]) GetStats() CacheStat {
	if !c.enabled {
		return CacheStat{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStat{
		Enabled:    true,
		Size:       len(c.entries),
		MaxSize:    c.size,
		HitCount:   c.hitCount,
		MissCount:  c.missCount,
		EvictCount: c.evictCount,
	}
}

// evictOldest removes the least recently used entry.
func (c *inMemoryCache[T]) evictOldest() {
	oldest := c.accessOrder.Back()
	if oldest == nil {
		return
	}
	key := oldest.Value.(CacheKey)
	if entry, ok := c.entries[key]; ok {
		c.deleteEntry(key, entry)
		c.evictCount++
	}
}

func (c *inMemoryCache[T]) deleteEntry(key CacheKey, entry *inMemoryCacheEntry[T]) {
	delete(c.entries, key)
	c.accessOrder.Remove(entry.listElement)
}
