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

package telemetry

//go:generate mockgen -destination=mock_telemetry.go -package=telemetry github.com/carverauto/holostats/pkg/telemetry EventPublisher,CountryResolver

import (
	"context"

	"github.com/carverauto/holostats/pkg/models"
)

// EventPublisher announces accepted reports to downstream consumers.
type EventPublisher interface {
	PublishTelemetryAccepted(ctx context.Context, data *models.TelemetryAcceptedEventData) error
}

// CountryResolver maps a WAN address to an ISO country code.
type CountryResolver interface {
	Country(address string) (string, error)
}
