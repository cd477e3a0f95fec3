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

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/carverauto/holostats/pkg/models"
	"github.com/carverauto/holostats/pkg/telemetry/window"
)

// MemoryStore is an in-process Service used for development and tests.
// Readers see a consistent snapshot under a read lock.
type MemoryStore struct {
	mu sync.RWMutex

	telemetry []models.TelemetryReport
	nextSeq   int64

	registrations map[string]models.RegistrationRecord
	keyIndex      map[string]string

	presence []presenceEntry
	uptimes  map[string]float64
}

type presenceEntry struct {
	record     models.PresenceRecord
	authorized bool
}

var _ Service = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		registrations: make(map[string]models.RegistrationRecord),
		keyIndex:      make(map[string]string),
		uptimes:       make(map[string]float64),
	}
}

func (*MemoryStore) Ping(context.Context) error { return nil }

func (*MemoryStore) Close() error { return nil }

func (m *MemoryStore) InsertTelemetry(_ context.Context, report *models.TelemetryReport) error {
	if _, err := buildTelemetryArgs(report); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextSeq++
	report.Seq = m.nextSeq

	stored := *report
	if report.HposAppList != nil {
		stored.HposAppList = append([]byte(nil), report.HposAppList...)
	}

	m.telemetry = append(m.telemetry, stored)

	return nil
}

func (m *MemoryStore) DeleteTelemetryBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.telemetry[:0]

	var deleted int64

	for i := range m.telemetry {
		if window.InWindow(&m.telemetry[i], cutoff) {
			kept = append(kept, m.telemetry[i])
		} else {
			deleted++
		}
	}

	clear(m.telemetry[len(kept):])
	m.telemetry = kept

	return deleted, nil
}

func (m *MemoryStore) LatestTelemetrySince(_ context.Context, cutoff time.Time) ([]models.TelemetryReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return window.LatestPerDevice(m.telemetry, cutoff), nil
}

func (m *MemoryStore) DistinctHostsSince(_ context.Context, cutoff time.Time) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return window.DistinctDevices(m.telemetry, cutoff), nil
}

func (m *MemoryStore) FindRegistrationByKey(_ context.Context, networkIdentity string) (*models.RegistrationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.keyIndex[networkIdentity]
	if !ok {
		return nil, ErrRegistrationNotFound
	}

	record := m.registrations[id]
	record.Keys = append([]models.AuthorizedKey(nil), record.Keys...)

	return &record, nil
}

// PutRegistration seeds or replaces a registration.
func (m *MemoryStore) PutRegistration(record models.RegistrationRecord) error {
	if record.ID == "" || len(record.Keys) == 0 {
		return ErrRegistrationInvalid
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.registrations[record.ID]; ok {
		for _, k := range old.Keys {
			delete(m.keyIndex, k.PubKey)
		}
	}

	record.Keys = append([]models.AuthorizedKey(nil), record.Keys...)
	m.registrations[record.ID] = record

	for _, k := range record.Keys {
		if existing, ok := m.keyIndex[k.PubKey]; !ok || record.ID < existing {
			m.keyIndex[k.PubKey] = record.ID
		}
	}

	return nil
}

func (m *MemoryStore) ListPresenceMembers(context.Context) ([]models.PresenceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.PresenceRecord

	for _, p := range m.presence {
		if p.authorized {
			out = append(out, p.record)
		}
	}

	return out, nil
}

// PutPresence appends a network member to the presence snapshot.
func (m *MemoryStore) PutPresence(record models.PresenceRecord, authorized bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.presence = append(m.presence, presenceEntry{record: record, authorized: authorized})
}

func (m *MemoryStore) StreamUptimes(ctx context.Context, fn func(uptime float64) error) error {
	m.mu.RLock()
	names := make([]string, 0, len(m.uptimes))

	for name := range m.uptimes {
		names = append(names, name)
	}

	sort.Strings(names)

	values := make([]float64, len(names))
	for i, name := range names {
		values[i] = m.uptimes[name]
	}
	m.mu.RUnlock()

	for _, v := range values {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := fn(v); err != nil {
			return err
		}
	}

	return nil
}

func (m *MemoryStore) GetHostUptime(_ context.Context, name string) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uptime, ok := m.uptimes[name]
	if !ok {
		return 0, ErrHostNotFound
	}

	return uptime, nil
}

// PutUptime records the uptime fraction of a host.
func (m *MemoryStore) PutUptime(name string, uptime float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.uptimes[name] = uptime
}
