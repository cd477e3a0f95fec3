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

// Package api provides the HTTP API server for holostats
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	hsHttp "github.com/carverauto/holostats/pkg/http"
	"github.com/carverauto/holostats/pkg/logger"
	"github.com/carverauto/holostats/pkg/models"
	"github.com/carverauto/holostats/pkg/version"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultMaxPayloadBytes = 1 << 20
)

// APIServer serves the holostats HTTP API.
type APIServer struct {
	router           *mux.Router
	handler          http.Handler
	corsConfig       models.CORSConfig
	telemetry        TelemetryService
	logger           logger.Logger
	apiKey           string
	maxPayloadBytes  int64
	retentionHorizon time.Duration
	gatherer         prometheus.Gatherer

	mu     sync.Mutex
	server *http.Server
	closed bool
}

// NewAPIServer creates a new API server instance with the given configuration
func NewAPIServer(config models.CORSConfig, options ...func(server *APIServer)) *APIServer {
	s := &APIServer{
		router:           mux.NewRouter(),
		corsConfig:       config,
		logger:           logger.NewTestLogger(),
		maxPayloadBytes:  defaultMaxPayloadBytes,
		retentionHorizon: models.DefaultRetentionHorizon,
	}

	for _, o := range options {
		o(s)
	}

	s.setupRoutes()

	return s
}

// WithTelemetryService sets the engine the routes call into.
func WithTelemetryService(svc TelemetryService) func(server *APIServer) {
	return func(server *APIServer) {
		server.telemetry = svc
	}
}

func WithLogger(log logger.Logger) func(server *APIServer) {
	return func(server *APIServer) {
		server.logger = log
	}
}

// WithAPIKey protects the query and maintenance routes. Ingestion is
// authenticated by host signatures instead.
func WithAPIKey(key string) func(server *APIServer) {
	return func(server *APIServer) {
		server.apiKey = key
	}
}

func WithMaxPayloadBytes(n int64) func(server *APIServer) {
	return func(server *APIServer) {
		if n > 0 {
			server.maxPayloadBytes = n
		}
	}
}

// WithRetentionHorizon sets the default horizon of /maintenance/cleanup.
func WithRetentionHorizon(d time.Duration) func(server *APIServer) {
	return func(server *APIServer) {
		server.retentionHorizon = d
	}
}

// WithMetricsGatherer exposes the given registry at /metrics.
func WithMetricsGatherer(g prometheus.Gatherer) func(server *APIServer) {
	return func(server *APIServer) {
		server.gatherer = g
	}
}

// Handler returns the router wrapped in the CORS and logging middleware.
func (s *APIServer) Handler() http.Handler {
	return s.handler
}

// setupRoutes configures the HTTP routes for the API server.
func (s *APIServer) setupRoutes() {
	// Preflight requests never reach the router.
	s.handler = hsHttp.CommonMiddleware(s.router, s.corsConfig, s.logger)

	s.router.Use(hsHttp.APIKeyMiddlewareWithOptions(hsHttp.APIKeyOptions{
		APIKey:          s.apiKey,
		ExcludePaths:    []string{"/", "/hosts/stats", "/metrics"},
		LogUnauthorized: true,
		Logger:          s.logger,
	}))

	s.router.HandleFunc("/", s.getIndex).Methods(http.MethodGet)

	limit := hsHttp.BodyLimitMiddleware(s.maxPayloadBytes)
	s.router.Handle("/hosts/stats", limit(http.HandlerFunc(s.postHostStats))).Methods(http.MethodPost)

	hosts := s.router.PathPrefix("/hosts").Subrouter()
	hosts.HandleFunc("/list-available", s.getAvailableHosts).Methods(http.MethodGet)
	hosts.HandleFunc("/registered", s.getRegisteredHosts).Methods(http.MethodGet)
	hosts.HandleFunc("/{name}/uptime", s.getHostUptime).Methods(http.MethodGet)

	s.router.HandleFunc("/network/capacity", s.getCapacity).Methods(http.MethodGet)
	s.router.HandleFunc("/maintenance/cleanup", s.postCleanup).Methods(http.MethodPost)

	if s.gatherer != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
}

// Start starts the API server on the specified address and blocks until it
// is shut down.
func (s *APIServer) Start(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.handler,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}

	s.server = srv
	s.mu.Unlock()

	s.logger.Info().Str("addr", addr).Str("version", version.GetVersion()).Msg("Starting HTTP API")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Shutdown gracefully stops a server started with Start. A later Start
// returns immediately.
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	srv := s.server
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	return srv.Shutdown(ctx)
}

// encodeJSONResponse encodes a response as JSON
func (s *APIServer) encodeJSONResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")

	w.WriteHeader(statusCode)

	errResponse := models.ErrorResponse{
		Message: message,
		Status:  statusCode,
	}

	if err := json.NewEncoder(w).Encode(errResponse); err != nil {
		// Fallback in case encoding fails
		http.Error(w, "Failed to encode error response", http.StatusInternalServerError)
	}
}
