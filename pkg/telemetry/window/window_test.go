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

package window

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/holostats/pkg/models"
)

func report(id string, ts, seq int64) models.TelemetryReport {
	return models.TelemetryReport{HoloportID: id, Timestamp: ts, Seq: seq}
}

func TestLatestPerDevicePicksNewest(t *testing.T) {
	reports := []models.TelemetryReport{
		report("a", 100, 1),
		report("b", 150, 2),
		report("a", 300, 3),
		report("a", 200, 4),
		report("c", 10, 5),
	}

	got := LatestPerDevice(reports, time.Unix(100, 0))
	require.Len(t, got, 2)

	assert.Equal(t, "a", got[0].HoloportID)
	assert.Equal(t, int64(300), got[0].Timestamp)
	assert.Equal(t, "b", got[1].HoloportID)
}

func TestLatestPerDeviceCutoffIsInclusive(t *testing.T) {
	reports := []models.TelemetryReport{report("a", 100, 1), report("b", 99, 2)}

	got := LatestPerDevice(reports, time.Unix(100, 0))
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].HoloportID)
}

func TestLatestPerDeviceTieBreaksOnSequence(t *testing.T) {
	reports := []models.TelemetryReport{
		report("a", 100, 7),
		report("a", 100, 9),
		report("a", 100, 8),
	}

	for i := 0; i < 5; i++ {
		rand.Shuffle(len(reports), func(x, y int) { reports[x], reports[y] = reports[y], reports[x] })

		got := LatestPerDevice(reports, time.Unix(0, 0))
		require.Len(t, got, 1)
		assert.Equal(t, int64(9), got[0].Seq)
	}
}

func TestLatestPerDeviceEmpty(t *testing.T) {
	assert.Empty(t, LatestPerDevice(nil, time.Unix(0, 0)))
	assert.Empty(t, DistinctDevices(nil, time.Unix(0, 0)))
}

func TestLatestPerDeviceProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	reports := make([]models.TelemetryReport, 0, 500)
	for i := 0; i < 500; i++ {
		reports = append(reports, report(fmt.Sprintf("hp-%d", rng.Intn(40)), int64(rng.Intn(1000)), int64(i)))
	}

	narrow := time.Unix(800, 0)
	wide := time.Unix(300, 0)

	narrowSet := make(map[string]bool)
	for _, r := range LatestPerDevice(reports, narrow) {
		require.False(t, narrowSet[r.HoloportID], "duplicate device %s", r.HoloportID)
		narrowSet[r.HoloportID] = true
	}

	wideSet := make(map[string]bool)
	for _, r := range LatestPerDevice(reports, wide) {
		require.False(t, wideSet[r.HoloportID], "duplicate device %s", r.HoloportID)
		wideSet[r.HoloportID] = true
	}

	for id := range narrowSet {
		assert.True(t, wideSet[id], "wider window lost device %s", id)
	}

	assert.Len(t, DistinctDevices(reports, wide), len(wideSet))
}

func TestDistinctDevicesSorted(t *testing.T) {
	reports := []models.TelemetryReport{
		report("z", 50, 1),
		report("m", 50, 2),
		report("z", 60, 3),
		report("old", 1, 4),
	}

	assert.Equal(t, []string{"m", "z"}, DistinctDevices(reports, time.Unix(10, 0)))
}
