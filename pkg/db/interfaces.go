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

// Package db holds the telemetry, registration and presence stores.
package db

import (
	"context"
	"time"

	"github.com/carverauto/holostats/pkg/models"
)

//go:generate mockgen -destination=mock_db.go -package=db github.com/carverauto/holostats/pkg/db Service

// Service is the storage surface the telemetry engine depends on.
type Service interface {
	Ping(ctx context.Context) error
	Close() error

	// Telemetry operations.

	// InsertTelemetry persists an accepted report and sets its Seq.
	InsertTelemetry(ctx context.Context, report *models.TelemetryReport) error
	// DeleteTelemetryBefore removes reports timestamped strictly before cutoff.
	DeleteTelemetryBefore(ctx context.Context, cutoff time.Time) (int64, error)
	// LatestTelemetrySince returns the newest report per device at or after cutoff.
	LatestTelemetrySince(ctx context.Context, cutoff time.Time) ([]models.TelemetryReport, error)
	// DistinctHostsSince returns the devices with any report at or after cutoff.
	DistinctHostsSince(ctx context.Context, cutoff time.Time) ([]string, error)

	// Registration operations.

	// FindRegistrationByKey returns ErrRegistrationNotFound when no record lists the key.
	FindRegistrationByKey(ctx context.Context, networkIdentity string) (*models.RegistrationRecord, error)

	// Presence and performance operations.

	// ListPresenceMembers returns authorized network members with their first assigned address.
	ListPresenceMembers(ctx context.Context) ([]models.PresenceRecord, error)
	// StreamUptimes calls fn with every known host uptime, stopping at the first error.
	StreamUptimes(ctx context.Context, fn func(uptime float64) error) error
	// GetHostUptime returns ErrHostNotFound for unknown hosts.
	GetHostUptime(ctx context.Context, name string) (float64, error)
}
