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

// Package cleanup deletes expired authorization, token and session rows in the background.
// Expiry is always enforced at lookup time, so the sweeper only keeps storage bounded.
package cleanup

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/asgardeo/tokenengine/internal/system/log"
)

const loggerComponentName = "ExpiredRowSweeper"

// PurgerInterface is implemented by components owning expirable rows.
type PurgerInterface interface {
	PurgeExpired(now time.Time) (int64, error)
}

// PurgerFunc adapts a function to PurgerInterface.
type PurgerFunc func(now time.Time) (int64, error)

// PurgeExpired calls f(now).
func (f PurgerFunc) PurgeExpired(now time.Time) (int64, error) {
	return f(now)
}

// Sweeper periodically runs a set of named purgers.
type Sweeper struct {
	interval time.Duration
	purgers  map[string]PurgerInterface
	now      func() time.Time
}

// NewSweeper creates a sweeper running every interval. A non positive interval disables Start.
func NewSweeper(interval time.Duration, purgers map[string]PurgerInterface) *Sweeper {
	return &Sweeper{
		interval: interval,
		purgers:  purgers,
		now:      time.Now,
	}
}

// Sweep runs every purger once, concurrently, and returns the total number of deleted rows.
// A failing purger does not stop the others.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	now := s.now()

	var total atomic.Int64
	var g errgroup.Group
	for name, purger := range s.purgers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			deleted, err := purger.PurgeExpired(now)
			if err != nil {
				logger.Error("Failed to purge expired rows", log.String("purger", name), log.Error(err))
				return fmt.Errorf("failed to purge %s: %w", name, err)
			}
			if deleted > 0 {
				logger.Debug("Purged expired rows", log.String("purger", name), log.Int64("count", deleted))
			}
			total.Add(deleted)
			return nil
		})
	}
	err := g.Wait()
	return total.Load(), err
}

// Start runs Sweep on every tick until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))
	logger.Info("Starting expired row sweeper", log.String("interval", s.interval.String()))

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
					logger.Warn("Expired row sweep finished with errors", log.Error(err))
				}
			}
		}
	}()
}
