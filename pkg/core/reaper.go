/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package core

import (
	"context"
	"time"

	"github.com/carverauto/holostats/pkg/logger"
)

// Purger removes telemetry older than a horizon.
type Purger interface {
	PurgeOlderThan(ctx context.Context, horizon time.Duration) (int64, error)
}

// RetentionReaper periodically deletes telemetry that has aged past the
// retention horizon.
type RetentionReaper struct {
	purger   Purger
	logger   logger.Logger
	interval time.Duration
	horizon  time.Duration
}

// NewRetentionReaper creates a new RetentionReaper.
func NewRetentionReaper(purger Purger, log logger.Logger, interval, horizon time.Duration) *RetentionReaper {
	return &RetentionReaper{
		purger:   purger,
		logger:   log,
		interval: interval,
		horizon:  horizon,
	}
}

// Start runs the reaper loop until ctx is cancelled. A zero interval
// returns immediately.
func (r *RetentionReaper) Start(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info().Msg("Retention reaper disabled")
		return
	}

	r.logger.Info().
		Str("interval", r.interval.String()).
		Str("horizon", r.horizon.String()).
		Msg("Starting retention reaper")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("Retention reaper stopping")
			return
		case <-ticker.C:
			if _, err := r.reap(ctx); err != nil {
				r.logger.Error().Err(err).Msg("Failed to purge expired telemetry")
			}
		}
	}
}

// reap executes a single purge cycle.
func (r *RetentionReaper) reap(ctx context.Context) (int64, error) {
	deleted, err := r.purger.PurgeOlderThan(ctx, r.horizon)
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		r.logger.Info().
			Int64("count", deleted).
			Msg("Purged expired telemetry")
	}

	return deleted, nil
}
