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
	"errors"
)

// Error categories. Every error returned by Service matches exactly one of
// these with errors.Is.
var (
	ErrDecode                 = errors.New("decode error")
	ErrAuthenticationRejected = errors.New("authentication rejected")
	ErrValidation             = errors.New("validation error")
	ErrStore                  = errors.New("store error")
)

var (
	ErrMissingSignature   = newError(ErrAuthenticationRejected, "signature header is missing")
	ErrMalformedSignature = newError(ErrDecode, "signature is not 64 bytes of base64")
	ErrMalformedPayload   = newError(ErrDecode, "payload does not match the telemetry report schema")
	ErrMalformedIdentity  = newError(ErrDecode, "holoport id is not a valid base36 ed25519 key")
	ErrUnauthenticatedKey = newError(ErrAuthenticationRejected, "signature does not verify against holoport key")
	ErrUnregisteredDevice = newError(ErrAuthenticationRejected, "holoport key is not registered")
	ErrCutoffTooLarge     = newError(ErrValidation, "time window reaches before the unix epoch")

	// ErrHostNotFound is returned by HostUptime for names without a performance summary.
	ErrHostNotFound = errors.New("host not found")
)

// categorizedError is a specific failure that unwraps to its category.
type categorizedError struct {
	category error
	msg      string
}

func newError(category error, msg string) error {
	return &categorizedError{category: category, msg: msg}
}

func (e *categorizedError) Error() string { return e.msg }

func (e *categorizedError) Unwrap() error { return e.category }

// rejectionReason is the metrics label for a failed ingest.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingSignature):
		return "missing_signature"
	case errors.Is(err, ErrMalformedSignature):
		return "malformed_signature"
	case errors.Is(err, ErrMalformedIdentity):
		return "malformed_identity"
	case errors.Is(err, ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, ErrUnauthenticatedKey):
		return "unauthenticated_key"
	case errors.Is(err, ErrUnregisteredDevice):
		return "unregistered_device"
	case errors.Is(err, ErrStore):
		return "store"
	default:
		return "other"
	}
}
