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
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCutoff(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	cutoff, err := Cutoff(now, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Unix(1_700_000_000-86400, 0), cutoff)

	cutoff, err = Cutoff(now, 0)
	require.NoError(t, err)
	assert.Equal(t, now, cutoff)

	cutoff, err = Cutoff(now, 1_700_000_000*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cutoff.Unix(), "the epoch itself is allowed")

	_, err = Cutoff(now, 1_700_000_001*time.Second)
	require.ErrorIs(t, err, ErrCutoffTooLarge)

	_, err = Cutoff(now, -time.Nanosecond)
	require.ErrorIs(t, err, ErrCutoffTooLarge)

	_, err = Cutoff(now, time.Duration(math.MaxInt64))
	require.ErrorIs(t, err, ErrCutoffTooLarge)
}

func TestWindowConversions(t *testing.T) {
	d, err := DaysWindow(14)
	require.NoError(t, err)
	assert.Equal(t, 14*24*time.Hour, d)

	d, err = HoursWindow(36)
	require.NoError(t, err)
	assert.Equal(t, 36*time.Hour, d)

	_, err = DaysWindow(math.MaxUint64)
	require.ErrorIs(t, err, ErrCutoffTooLarge)

	_, err = HoursWindow(uint64(math.MaxInt64/int64(time.Hour)) + 1)
	require.ErrorIs(t, err, ErrCutoffTooLarge)

	_, err = HoursWindow(uint64(math.MaxInt64 / int64(time.Hour)))
	require.NoError(t, err)
}

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		err      error
		category error
	}{
		{ErrMissingSignature, ErrAuthenticationRejected},
		{ErrMalformedSignature, ErrDecode},
		{ErrMalformedPayload, ErrDecode},
		{ErrMalformedIdentity, ErrDecode},
		{ErrUnauthenticatedKey, ErrAuthenticationRejected},
		{ErrUnregisteredDevice, ErrAuthenticationRejected},
		{ErrCutoffTooLarge, ErrValidation},
	}

	categories := []error{ErrDecode, ErrAuthenticationRejected, ErrValidation, ErrStore}

	for _, tt := range tests {
		for _, c := range categories {
			assert.Equal(t, c == tt.category, errors.Is(tt.err, c), "%v in %v", tt.err, c)
		}
	}
}
