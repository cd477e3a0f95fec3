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
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/carverauto/holostats/pkg/identity"
	"github.com/carverauto/holostats/pkg/models"
	"github.com/carverauto/holostats/pkg/telemetry"
	"github.com/carverauto/holostats/pkg/version"
)

const authFailedMessage = "host authentication failed"

var (
	errWindowRequired  = errors.New("exactly one of days or hours is required")
	errWindowMalformed = errors.New("days and hours must be non-negative integers")
)

func (s *APIServer) getIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.telemetry.Ping(r.Context()); err != nil {
		s.writeTelemetryError(w, err)
		return
	}

	s.encodeJSONResponse(w, models.StatusResponse{Status: "connected", Version: version.GetVersion()})
}

func (s *APIServer) postHostStats(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, "payload too large", http.StatusRequestEntityTooLarge)
			return
		}

		writeError(w, "failed to read request body", http.StatusBadRequest)

		return
	}

	report, err := s.telemetry.Ingest(r.Context(), payload, r.Header.Get(identity.SignatureHeader))
	if err != nil {
		s.writeTelemetryError(w, err)
		return
	}

	s.encodeJSONResponse(w, report)
}

func (s *APIServer) getAvailableHosts(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r.URL.Query())
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	views, err := s.telemetry.FleetStatus(r.Context(), window)
	if err != nil {
		s.writeTelemetryError(w, err)
		return
	}

	s.encodeJSONResponse(w, views)
}

func (s *APIServer) getRegisteredHosts(w http.ResponseWriter, r *http.Request) {
	window, err := parseWindow(r.URL.Query())
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	names, err := s.telemetry.DistinctDeviceNames(r.Context(), window)
	if err != nil {
		s.writeTelemetryError(w, err)
		return
	}

	if names == nil {
		names = []string{}
	}

	s.encodeJSONResponse(w, names)
}

func (s *APIServer) getHostUptime(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	uptime, err := s.telemetry.HostUptime(r.Context(), name)
	if err != nil {
		s.writeTelemetryError(w, err)
		return
	}

	s.encodeJSONResponse(w, models.UptimeResponse{Uptime: uptime})
}

func (s *APIServer) getCapacity(w http.ResponseWriter, r *http.Request) {
	tally, err := s.telemetry.Capacity(r.Context())
	if err != nil {
		s.writeTelemetryError(w, err)
		return
	}

	s.encodeJSONResponse(w, tally)
}

// postCleanup purges telemetry older than the retention horizon, or the
// days/hours given in the query.
func (s *APIServer) postCleanup(w http.ResponseWriter, r *http.Request) {
	horizon := s.retentionHorizon

	query := r.URL.Query()
	if query.Has("days") || query.Has("hours") {
		var err error

		if horizon, err = parseWindow(query); err != nil {
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	deleted, err := s.telemetry.PurgeOlderThan(r.Context(), horizon)
	if err != nil {
		s.writeTelemetryError(w, err)
		return
	}

	s.logger.Info().Int64("deleted", deleted).Str("horizon", horizon.String()).Msg("Purged telemetry")

	s.encodeJSONResponse(w, models.CleanupResponse{Deleted: deleted, Horizon: horizon.String()})
}

// parseWindow reads exactly one of ?days= or ?hours=.
func parseWindow(query url.Values) (time.Duration, error) {
	days, hours := query.Get("days"), query.Get("hours")

	if (days == "") == (hours == "") {
		return 0, errWindowRequired
	}

	if days != "" {
		n, err := strconv.ParseUint(days, 10, 64)
		if err != nil {
			return 0, errWindowMalformed
		}

		return telemetry.DaysWindow(n)
	}

	n, err := strconv.ParseUint(hours, 10, 64)
	if err != nil {
		return 0, errWindowMalformed
	}

	return telemetry.HoursWindow(n)
}

// writeTelemetryError is the single place engine errors become HTTP statuses.
// Every authentication failure except a missing header shares one body.
func (s *APIServer) writeTelemetryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, telemetry.ErrHostNotFound):
		writeError(w, "host not found", http.StatusNotFound)
	case errors.Is(err, telemetry.ErrMissingSignature):
		writeError(w, "missing "+identity.SignatureHeader+" header", http.StatusUnauthorized)
	case errors.Is(err, telemetry.ErrAuthenticationRejected):
		writeError(w, authFailedMessage, http.StatusUnauthorized)
	case errors.Is(err, telemetry.ErrMalformedSignature):
		writeError(w, telemetry.ErrMalformedSignature.Error(), http.StatusBadRequest)
	case errors.Is(err, telemetry.ErrMalformedIdentity):
		writeError(w, telemetry.ErrMalformedIdentity.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, telemetry.ErrDecode):
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, telemetry.ErrValidation):
		writeError(w, err.Error(), http.StatusBadRequest)
	default:
		s.logger.Error().Err(err).Msg("Request failed")
		writeError(w, "internal server error", http.StatusInternalServerError)
	}
}
