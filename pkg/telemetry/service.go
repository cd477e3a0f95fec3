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

// Package telemetry authenticates holoport reports and answers fleet queries
// over the stored telemetry, registration and presence data.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carverauto/holostats/pkg/db"
	"github.com/carverauto/holostats/pkg/identity"
	"github.com/carverauto/holostats/pkg/logger"
	"github.com/carverauto/holostats/pkg/models"
)

const (
	tracerName = "github.com/carverauto/holostats/pkg/telemetry"

	defaultIdentityCacheSize = 4096
)

// Service is safe for concurrent use. It keeps no mutable state of its own
// beyond the identity cache and counters.
type Service struct {
	store     db.Service
	codec     *identity.Codec
	schema    *SchemaValidator
	publisher EventPublisher
	geo       CountryResolver
	metrics   *Metrics
	logger    logger.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps and cutoffs.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithCodec sets the identity resolver.
func WithCodec(codec *identity.Codec) Option {
	return func(s *Service) {
		s.codec = codec
	}
}

// WithPublisher enables telemetry.accepted events.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithCountryResolver enables WAN country annotation in fleet views.
func WithCountryResolver(r CountryResolver) Option {
	return func(s *Service) {
		s.geo = r
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		s.logger = log
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// NewService builds a Service over store.
func NewService(store db.Service, opts ...Option) (*Service, error) {
	schema, err := NewSchemaValidator()
	if err != nil {
		return nil, err
	}

	s := &Service{
		store:  store,
		schema: schema,
		now:    time.Now,
	}

	for _, o := range opts {
		o(s)
	}

	if s.codec == nil {
		if s.codec, err = identity.NewCodec(defaultIdentityCacheSize); err != nil {
			return nil, err
		}
	}

	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}

	if s.logger == nil {
		s.logger = logger.NewTestLogger()
	}

	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}

	return s, nil
}

// Ping checks the store connection.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}

	return nil
}

// LatestPerDevice returns the newest report of every device seen within window.
func (s *Service) LatestPerDevice(ctx context.Context, window time.Duration) ([]models.TelemetryReport, error) {
	cutoff, err := Cutoff(s.now(), window)
	if err != nil {
		return nil, err
	}

	reports, err := s.store.LatestTelemetrySince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	return reports, nil
}

// DistinctDeviceNames lists the identities that reported within window. Every
// stored report passed the registration check, so these are registered hosts.
func (s *Service) DistinctDeviceNames(ctx context.Context, window time.Duration) ([]string, error) {
	cutoff, err := Cutoff(s.now(), window)
	if err != nil {
		return nil, err
	}

	names, err := s.store.DistinctHostsSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	return names, nil
}

// Capacity folds every host uptime into a tier tally as rows stream in.
func (s *Service) Capacity(ctx context.Context) (models.CapacityTally, error) {
	ctx, span := s.tracer.Start(ctx, "telemetry.Capacity")
	defer span.End()

	var tally Tally

	err := s.store.StreamUptimes(ctx, func(uptime float64) error {
		tally.Add(uptime)
		return nil
	})
	if err != nil {
		recordSpanError(span, err)
		return models.CapacityTally{}, fmt.Errorf("%w: %w", ErrStore, err)
	}

	span.SetAttributes(attribute.Int64("holostats.hosts", int64(tally.TotalHosts)))

	return tally.Summary(), nil
}

func (s *Service) HostUptime(ctx context.Context, name string) (float64, error) {
	uptime, err := s.store.GetHostUptime(ctx, name)
	if errors.Is(err, db.ErrHostNotFound) {
		return 0, ErrHostNotFound
	}

	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrStore, err)
	}

	return uptime, nil
}

// FleetStatus reconciles the latest in-window telemetry with the authorized
// ZeroTier members.
func (s *Service) FleetStatus(ctx context.Context, window time.Duration) ([]models.FleetHostView, error) {
	ctx, span := s.tracer.Start(ctx, "telemetry.FleetStatus")
	defer span.End()

	reports, err := s.LatestPerDevice(ctx, window)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}

	members, err := s.store.ListPresenceMembers(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}

	views := Reconcile(reports, members)

	if s.geo != nil {
		s.annotateCountries(views)
	}

	span.SetAttributes(
		attribute.Int("holostats.reports", len(reports)),
		attribute.Int("holostats.members", len(members)),
	)

	return views, nil
}

func (s *Service) annotateCountries(views []models.FleetHostView) {
	for i := range views {
		if views[i].WanIP == nil {
			continue
		}

		country, err := s.geo.Country(*views[i].WanIP)
		if err != nil {
			s.logger.Debug().Err(err).Str("wan_ip", *views[i].WanIP).Msg("GeoIP lookup failed")
			continue
		}

		if country != "" {
			views[i].WanCountry = &country
		}
	}
}

// PurgeOlderThan deletes reports timestamped before now minus horizon.
func (s *Service) PurgeOlderThan(ctx context.Context, horizon time.Duration) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "telemetry.PurgeOlderThan")
	defer span.End()

	cutoff, err := Cutoff(s.now(), horizon)
	if err != nil {
		recordSpanError(span, err)
		return 0, err
	}

	deleted, err := s.store.DeleteTelemetryBefore(ctx, cutoff)
	if err != nil {
		recordSpanError(span, err)
		return 0, fmt.Errorf("%w: %w", ErrStore, err)
	}

	s.metrics.ReportsPurged.Add(float64(deleted))
	span.SetAttributes(attribute.Int64("holostats.deleted", deleted))

	return deleted, nil
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
