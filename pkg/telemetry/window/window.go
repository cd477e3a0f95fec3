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

// Package window selects the reports that fall inside a lookback window.
package window

import (
	"sort"
	"time"

	"github.com/carverauto/holostats/pkg/models"
)

// InWindow reports whether a report timestamp is at or after cutoff.
func InWindow(report *models.TelemetryReport, cutoff time.Time) bool {
	return !time.Unix(report.Timestamp, 0).Before(cutoff)
}

// newer reports whether a should replace b as the latest report of a device.
func newer(a, b *models.TelemetryReport) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp > b.Timestamp
	}

	return a.Seq > b.Seq
}

// LatestPerDevice returns the most recent in-window report of every device in
// a single pass. Equal timestamps are resolved by the higher store sequence,
// so the result is deterministic for a fixed input. Output is ordered by
// device identity.
func LatestPerDevice(reports []models.TelemetryReport, cutoff time.Time) []models.TelemetryReport {
	latest := make(map[string]int, len(reports))

	for i := range reports {
		r := &reports[i]
		if !InWindow(r, cutoff) {
			continue
		}

		if j, ok := latest[r.HoloportID]; !ok || newer(r, &reports[j]) {
			latest[r.HoloportID] = i
		}
	}

	out := make([]models.TelemetryReport, 0, len(latest))
	for _, i := range latest {
		out = append(out, reports[i])
	}

	sort.Slice(out, func(i, j int) bool { return out[i].HoloportID < out[j].HoloportID })

	return out
}

// DistinctDevices returns the sorted identities with at least one report in window.
func DistinctDevices(reports []models.TelemetryReport, cutoff time.Time) []string {
	seen := make(map[string]struct{})

	for i := range reports {
		if InWindow(&reports[i], cutoff) {
			seen[reports[i].HoloportID] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}

	sort.Strings(out)

	return out
}
