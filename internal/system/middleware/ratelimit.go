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

package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/asgardeo/tokenengine/internal/system/cache"
	"github.com/asgardeo/tokenengine/internal/system/config"
	"github.com/asgardeo/tokenengine/internal/system/log"
	"github.com/asgardeo/tokenengine/internal/system/utils"
)

const (
	rateLimiterCacheName = "RateLimiterCache"
	rateLimiterIdleTTL   = 30 * time.Minute
	maxTrackedClients    = 10000
)

// RateLimiter applies a token bucket per client IP. Idle buckets expire from an LRU cache.
type RateLimiter struct {
	enabled  bool
	rps      rate.Limit
	burst    int
	mu       sync.Mutex
	limiters cache.CacheInterface[*rate.Limiter]
}

// NewRateLimiter creates a rate limiter from the given configuration.
func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		enabled: cfg.Enabled,
		rps:     rate.Limit(cfg.RequestsPerSecond),
		burst:   cfg.Burst,
		limiters: cache.NewCache[*rate.Limiter](rateLimiterCacheName, config.CacheConfig{
			Size:            maxTrackedClients,
			TTL:             int(rateLimiterIdleTTL.Seconds()),
			CleanupInterval: int(rateLimiterIdleTTL.Seconds()),
		}),
	}
}

// Allow reports whether a request from identifier may proceed now.
func (rl *RateLimiter) Allow(identifier string) bool {
	if !rl.enabled {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	key := cache.CacheKey{Key: identifier}
	limiter, found := rl.limiters.Get(key)
	if !found {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
	}
	// Re-setting extends the idle expiry of an active client.
	rl.limiters.Set(key, limiter)
	return limiter.Allow()
}

// WithRateLimit rejects requests above the per-IP rate with 429 and an OAuth style error body.
func (rl *RateLimiter) WithRateLimit(pattern string, handler http.HandlerFunc) (string, http.HandlerFunc) {
	return pattern, func(w http.ResponseWriter, r *http.Request) {
		clientIP := utils.GetClientIP(r)
		if !rl.Allow(clientIP) {
			log.GetLogger().Warn("Rate limit exceeded", log.String("clientIP", clientIP),
				log.String("path", r.URL.Path))
			retryAfter := 1
			if rl.rps > 0 && rl.rps < 1 {
				retryAfter = int(1 / float64(rl.rps))
			}
			utils.WriteJSONError(w, "slow_down", "Too many requests", http.StatusTooManyRequests,
				[]map[string]string{{"Retry-After": strconv.Itoa(retryAfter)}})
			return
		}
		handler(w, r)
	}
}
