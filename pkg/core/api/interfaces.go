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

package api

import (
	"context"
	"time"

	"github.com/carverauto/holostats/pkg/models"
)

//go:generate mockgen -destination=mock_api_server.go -package=api github.com/carverauto/holostats/pkg/core/api TelemetryService

// TelemetryService is the engine behind the HTTP routes.
type TelemetryService interface {
	Ping(ctx context.Context) error
	Ingest(ctx context.Context, payload []byte, signature string) (*models.TelemetryReport, error)
	DistinctDeviceNames(ctx context.Context, window time.Duration) ([]string, error)
	FleetStatus(ctx context.Context, window time.Duration) ([]models.FleetHostView, error)
	Capacity(ctx context.Context) (models.CapacityTally, error)
	HostUptime(ctx context.Context, name string) (float64, error)
	PurgeOlderThan(ctx context.Context, horizon time.Duration) (int64, error)
}
