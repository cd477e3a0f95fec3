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
	"math"
	"time"
)

// Cutoff returns now minus horizon. A negative horizon, or one reaching past
// the Unix epoch, is ErrCutoffTooLarge.
func Cutoff(now time.Time, horizon time.Duration) (time.Time, error) {
	if horizon < 0 {
		return time.Time{}, ErrCutoffTooLarge
	}

	cutoff := now.Add(-horizon)
	if cutoff.Before(time.Unix(0, 0)) {
		return time.Time{}, ErrCutoffTooLarge
	}

	return cutoff, nil
}

// DaysWindow converts a day count to a window, failing instead of overflowing.
func DaysWindow(days uint64) (time.Duration, error) {
	return scaleWindow(days, 24*time.Hour)
}

// HoursWindow converts an hour count to a window, failing instead of overflowing.
func HoursWindow(hours uint64) (time.Duration, error) {
	return scaleWindow(hours, time.Hour)
}

func scaleWindow(n uint64, unit time.Duration) (time.Duration, error) {
	if n > uint64(math.MaxInt64/int64(unit)) {
		return 0, ErrCutoffTooLarge
	}

	return time.Duration(n) * unit, nil
}
