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

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carverauto/holostats/pkg/db"
	"github.com/carverauto/holostats/pkg/identity"
	"github.com/carverauto/holostats/pkg/models"
)

// Ingest authenticates and stores one signed report. payload is the exact
// request body and signature the base64 header value. The signature is
// checked over payload before any of its content is trusted; the only read
// before that is the holoportId needed to pick the verification key.
func (s *Service) Ingest(ctx context.Context, payload []byte, signature string) (*models.TelemetryReport, error) {
	ctx, span := s.tracer.Start(ctx, "telemetry.Ingest")
	defer span.End()

	report, err := s.ingest(ctx, payload, signature)
	if err != nil {
		reason := rejectionReason(err)

		s.metrics.ReportsRejected.WithLabelValues(reason).Inc()
		span.SetAttributes(attribute.String("holostats.rejection", reason))
		recordSpanError(span, err)

		event := s.logger.Warn()
		if errors.Is(err, ErrStore) {
			event = s.logger.Error()
		}

		event.Err(err).Str("reason", reason).Msg("Rejected telemetry report")

		return nil, err
	}

	s.metrics.ReportsAccepted.Inc()
	span.SetAttributes(attribute.String("holostats.holoport_id", report.HoloportID))

	return report, nil
}

func (s *Service) ingest(ctx context.Context, payload []byte, signature string) (*models.TelemetryReport, error) {
	if signature == "" {
		return nil, ErrMissingSignature
	}

	sig, err := identity.DecodeSignature(signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSignature, err)
	}

	holoportID, err := peekHoloportID(payload)
	if err != nil {
		return nil, err
	}

	ident, err := s.codec.Resolve(holoportID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedIdentity, err)
	}

	if !identity.Verify(payload, sig, ident.Key) {
		s.logger.Info().Str("holoport_id", holoportID).Msg("Signature verification failed")
		return nil, ErrUnauthenticatedKey
	}

	registration, err := s.store.FindRegistrationByKey(ctx, ident.NetworkIdentity)
	if errors.Is(err, db.ErrRegistrationNotFound) || (err == nil && !registration.Authorizes(ident.NetworkIdentity)) {
		s.logger.Info().
			Str("holoport_id", holoportID).
			Str("network_identity", ident.NetworkIdentity).
			Msg("Holoport key has no registration")

		return nil, ErrUnregisteredDevice
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	report, err := s.decodeReport(payload)
	if err != nil {
		return nil, err
	}

	report.Timestamp = s.now().Unix()
	report.Seq = 0

	if err := s.store.InsertTelemetry(ctx, report); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.publishAccepted(ctx, report, ident, registration)

	return report, nil
}

// peekHoloportID reads only the identity field of an unauthenticated payload.
func peekHoloportID(payload []byte) (string, error) {
	var peek struct {
		HoloportID *string `json:"holoportId"`
	}

	if err := json.Unmarshal(payload, &peek); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	if peek.HoloportID == nil || *peek.HoloportID == "" {
		return "", fmt.Errorf("%w: holoportId is missing", ErrMalformedPayload)
	}

	return *peek.HoloportID, nil
}

func (s *Service) decodeReport(payload []byte) (*models.TelemetryReport, error) {
	if err := s.schema.Validate(payload); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	var report models.TelemetryReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	if string(report.HposAppList) == "null" {
		report.HposAppList = nil
	}

	return &report, nil
}

func (s *Service) publishAccepted(
	ctx context.Context,
	report *models.TelemetryReport,
	ident identity.Identity,
	registration *models.RegistrationRecord,
) {
	if s.publisher == nil {
		return
	}

	data := &models.TelemetryAcceptedEventData{
		HoloportID:      report.HoloportID,
		NetworkIdentity: ident.NetworkIdentity,
		RegistrationID:  registration.ID,
		AcceptedAt:      time.Unix(report.Timestamp, 0).UTC(),
	}

	if report.ZerotierIP != nil {
		data.ZerotierIP = *report.ZerotierIP
	}

	if err := s.publisher.PublishTelemetryAccepted(ctx, data); err != nil {
		s.metrics.EventPublishErrors.Inc()
		s.logger.Warn().Err(err).Str("holoport_id", report.HoloportID).Msg("Failed to publish telemetry.accepted event")
	}
}
