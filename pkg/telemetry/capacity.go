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
	"iter"

	"github.com/carverauto/holostats/pkg/models"
)

// Uptime fractions a host must reach to serve each tier.
const (
	ReadOnlyUptimeThreshold    = 0.5
	SourceChainUptimeThreshold = 0.9
)

// Tally counts hosts per service tier. The zero value is an empty tally.
type Tally struct {
	TotalHosts  uint64
	ReadOnly    uint64
	SourceChain uint64
}

// Add counts one host with the given uptime fraction. NaN counts toward the
// total only.
func (t *Tally) Add(uptime float64) {
	t.TotalHosts++

	if uptime >= ReadOnlyUptimeThreshold {
		t.ReadOnly++
	}

	if uptime >= SourceChainUptimeThreshold {
		t.SourceChain++
	}
}

// Combine merges two partial tallies.
func (t Tally) Combine(other Tally) Tally {
	return Tally{
		TotalHosts:  t.TotalHosts + other.TotalHosts,
		ReadOnly:    t.ReadOnly + other.ReadOnly,
		SourceChain: t.SourceChain + other.SourceChain,
	}
}

// Summary converts the tally to its API form.
func (t Tally) Summary() models.CapacityTally {
	return models.CapacityTally(t)
}

// Fold adds every uptime in seq to initial.
func Fold(initial Tally, seq iter.Seq[float64]) Tally {
	for uptime := range seq {
		initial.Add(uptime)
	}

	return initial
}
