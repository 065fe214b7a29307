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

// Package cache provides named, size bounded in-memory caches with per entry expiry.
package cache

import (
	"time"

	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/metrics"
)

// CacheInterface defines the common interface for cache operations.
type CacheInterface[T any] interface {
	GetName() string
	// Set stores a value with the default TTL of the cache.
	Set(key CacheKey, value T)
	// SetWithTTL stores a value that expires after ttl instead of the cache default.
	SetWithTTL(key CacheKey, value T, ttl time.Duration)
	Get(key CacheKey) (T, bool)
	Delete(key CacheKey)
	Clear()
	IsEnabled() bool
	CleanupExpired()
	GetStats() CacheStat
}

// GetCache creates the named cache using the cache configuration of the server runtime.
func GetCache[T any](cacheName string) CacheInterface[T] {
	return NewCache[T](cacheName, config.GetServerRuntime().Config.Cache)
}

// NewCache creates the named cache from the given configuration and starts its cleanup routine.
// A disabled cache accepts writes and always misses.
func NewCache[T any](cacheName string, cacheConfig config.CacheConfig) CacheInterface[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Cache"),
		log.String("cacheName", cacheName))

	cacheProperty := getCacheProperty(cacheConfig, cacheName)
	if cacheConfig.Disabled || cacheProperty.Disabled {
		logger.Debug("Cache is disabled")
		return &inMemoryCache[T]{name: cacheName, enabled: false}
	}

	if cacheConfig.Type != "" && cacheConfig.Type != cacheTypeInMemory {
		logger.Warn("Unknown cache type, defaulting to in-memory cache", log.String("type", cacheConfig.Type))
	}

	size := firstPositive(cacheProperty.Size, cacheConfig.Size, defaultCacheSize)
	ttl := firstPositive(cacheProperty.TTL, cacheConfig.TTL, defaultCacheTTL)
	cleanupInterval := firstPositive(cacheProperty.CleanupInterval, cacheConfig.CleanupInterval,
		defaultCleanupInterval)

	logger.Debug("Initializing in-memory cache", log.Int("size", size), log.Int("ttl", ttl))
	c := newInMemoryCache[T](cacheName, size, time.Duration(ttl)*time.Second)
	startCleanupRoutine(c, time.Duration(cleanupInterval)*time.Second)
	return c
}

// startCleanupRoutine periodically drops expired entries so memory does not wait for eviction.
func startCleanupRoutine[T any](c CacheInterface[T], interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			c.CleanupExpired()
		}
	}()
}

// getCacheProperty retrieves the cache property for the specified cache name.
func getCacheProperty(cacheConfig config.CacheConfig, cacheName string) config.CacheProperty {
	for _, property := range cacheConfig.Properties {
		if property.Name == cacheName {
			return property
		}
	}
	return config.CacheProperty{}
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

func recordLookup(cacheName string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	metrics.CacheRequestsTotal.WithLabelValues(cacheName, result).Inc()
}
