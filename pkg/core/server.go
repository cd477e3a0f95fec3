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

// Package core wires the holostats telemetry service and runs it.
package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/carverauto/holostats/pkg/core/api"
	"github.com/carverauto/holostats/pkg/db"
	"github.com/carverauto/holostats/pkg/geoip"
	"github.com/carverauto/holostats/pkg/identity"
	"github.com/carverauto/holostats/pkg/logger"
	"github.com/carverauto/holostats/pkg/models"
	"github.com/carverauto/holostats/pkg/natsutil"
	"github.com/carverauto/holostats/pkg/telemetry"
)

var (
	errDatabaseError = errors.New("database error")
	errNATSError     = errors.New("nats error")
	errGeoIPError    = errors.New("geoip error")
)

// Server owns the store, the telemetry engine and the HTTP API.
type Server struct {
	config    *models.ServerConfig
	db        db.Service
	telemetry *telemetry.Service
	apiServer *api.APIServer
	reaper    *RetentionReaper
	registry  *prometheus.Registry
	natsConn  *nats.Conn
	geo       *geoip.Resolver
	logger    logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer opens the configured store and optional integrations and builds
// the API on top of them.
func NewServer(ctx context.Context, config *models.ServerConfig, log logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.NewTestLogger()
	}

	database, err := db.New(ctx, &config.Database, log.WithComponent("db"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errDatabaseError, err)
	}

	s := &Server{
		config:   config,
		db:       database,
		registry: prometheus.NewRegistry(),
		logger:   log,
	}

	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts, err := s.telemetryOptions(ctx)
	if err != nil {
		_ = s.closeResources()
		return nil, err
	}

	s.telemetry, err = telemetry.NewService(database, opts...)
	if err != nil {
		_ = s.closeResources()
		return nil, err
	}

	horizon := time.Duration(config.Retention.Horizon)

	s.apiServer = api.NewAPIServer(config.CORS,
		api.WithTelemetryService(s.telemetry),
		api.WithLogger(log.WithComponent("api")),
		api.WithAPIKey(config.APIKey),
		api.WithMaxPayloadBytes(config.MaxPayloadBytes),
		api.WithRetentionHorizon(horizon),
		api.WithMetricsGatherer(s.registry),
	)

	s.reaper = NewRetentionReaper(s.telemetry, log.WithComponent("reaper"),
		time.Duration(config.Retention.Interval), horizon)

	return s, nil
}

func (s *Server) telemetryOptions(ctx context.Context) ([]telemetry.Option, error) {
	codec, err := identity.NewCodec(s.config.IdentityCacheSize)
	if err != nil {
		return nil, err
	}

	opts := []telemetry.Option{
		telemetry.WithCodec(codec),
		telemetry.WithMetrics(telemetry.NewMetrics(s.registry)),
		telemetry.WithLogger(s.logger.WithComponent("telemetry")),
	}

	if s.config.NATS != nil && s.config.NATS.Enabled {
		publisher, nc, err := natsutil.ConnectWithEventPublisher(ctx, s.config.NATS, s.logger.WithComponent("nats"))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errNATSError, err)
		}

		s.natsConn = nc

		opts = append(opts, telemetry.WithPublisher(publisher))
	}

	if s.config.GeoIP != nil && s.config.GeoIP.DatabasePath != "" {
		resolver, err := geoip.Open(s.config.GeoIP.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errGeoIPError, err)
		}

		s.geo = resolver

		opts = append(opts, telemetry.WithCountryResolver(resolver))
	}

	return opts, nil
}

// Start runs the retention reaper in the background and serves the API
// until Stop is called.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info().
		Str("listen_addr", s.config.ListenAddr).
		Str("store", s.config.Database.Store).
		Msg("Starting holostats core")

	reaperCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		s.reaper.Start(reaperCtx)
	}()

	return s.apiServer.Start(s.config.ListenAddr)
}

// Stop shuts down the API, waits for the reaper and releases the store and
// integrations.
func (s *Server) Stop(ctx context.Context) error {
	var errs []error

	if err := s.apiServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shut down API: %w", err))
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()

	if err := s.closeResources(); err != nil {
		errs = append(errs, err)
	}

	s.logger.Info().Msg("holostats core stopped")

	return errors.Join(errs...)
}

func (s *Server) closeResources() error {
	var errs []error

	if s.natsConn != nil {
		if err := s.natsConn.Drain(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", errNATSError, err))
		}

		s.natsConn = nil
	}

	if s.geo != nil {
		if err := s.geo.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", errGeoIPError, err))
		}

		s.geo = nil
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %w", errDatabaseError, err))
		}

		s.db = nil
	}

	return errors.Join(errs...)
}

// Handler exposes the API handler, mainly for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.apiServer.Handler()
}
