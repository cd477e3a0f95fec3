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

import "errors"

var (

	// Core database errors.

	ErrDatabaseError = errors.New("database error")

	// Operation errors.

	ErrFailedToScan   = errors.New("failed to scan")
	ErrFailedToQuery  = errors.New("failed to query")
	ErrFailedToInsert = errors.New("failed to insert")
	ErrFailedToDelete = errors.New("failed to delete")
	ErrFailedToInit   = errors.New("failed to initialize schema")

	// Lookups.

	ErrRegistrationNotFound = errors.New("registration not found")
	ErrHostNotFound         = errors.New("host not found")

	// Validation.

	ErrTelemetryReportNil  = errors.New("telemetry report is nil")
	ErrHoloportIDMissing   = errors.New("holoport id is required")
	ErrRegistrationInvalid = errors.New("registration requires an id and at least one key")
	ErrUnknownStore        = errors.New("unknown store backend")

	// CNPG connection helpers.

	ErrCNPGConfigMissing   = errors.New("cnpg configuration is missing")
	ErrCNPGLackingTLSFiles = errors.New("cnpg tls requires cert_file, key_file, and ca_file")
	ErrCNPGTLSDisabled     = errors.New("cnpg tls configured but sslmode is disable")
)
