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

package db

import (
	"context"
	"fmt"

	"github.com/carverauto/holostats/pkg/logger"
	"github.com/carverauto/holostats/pkg/models"
)

// New opens the store selected by cfg.Store. The CNPG store runs its
// migrations before returning.
func New(ctx context.Context, cfg *models.DatabaseConfig, log logger.Logger) (Service, error) {
	switch cfg.Store {
	case models.StoreMemory:
		log.Warn().Msg("using in-memory store; telemetry will not survive a restart")

		return NewMemoryStore(), nil
	case models.StoreCNPG:
		pool, err := NewCNPGPool(ctx, cfg.CNPG, log)
		if err != nil {
			return nil, err
		}

		if err := RunCNPGMigrations(ctx, pool, log); err != nil {
			pool.Close()

			return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
		}

		return NewCNPGStore(pool, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, cfg.Store)
	}
}
