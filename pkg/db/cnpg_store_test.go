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
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/holostats/pkg/logger"
	"github.com/carverauto/holostats/pkg/models"
)

// Static test errors for err113 compliance.
var (
	errBoom          = errors.New("boom")
	errNotCalledHere = errors.New("not used by this test")
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}

	for i := range dest {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(r.values[i]))
	}

	return nil
}

type fakeConn struct {
	execTag  pgconn.CommandTag
	execErr  error
	row      fakeRow
	queryErr error
	pingErr  error

	lastSQL  string
	lastArgs []any
}

func (f *fakeConn) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.lastSQL, f.lastArgs = sql, args
	return f.execTag, f.execErr
}

func (f *fakeConn) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.lastSQL, f.lastArgs = sql, args
	if f.queryErr != nil {
		return nil, f.queryErr
	}

	return nil, errNotCalledHere
}

func (f *fakeConn) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.lastSQL, f.lastArgs = sql, args
	return f.row
}

func (f *fakeConn) Ping(context.Context) error { return f.pingErr }

func newFakeStore(conn *fakeConn) *CNPGStore {
	return &CNPGStore{conn: conn, logger: logger.NewTestLogger()}
}

func TestCNPGInsertTelemetrySetsSeq(t *testing.T) {
	conn := &fakeConn{row: fakeRow{values: []any{int64(42)}}}
	store := newFakeStore(conn)

	report := &models.TelemetryReport{HoloportID: "hp", Timestamp: 1700000000, Channel: strPtr("main")}
	require.NoError(t, store.InsertTelemetry(context.Background(), report))

	assert.Equal(t, int64(42), report.Seq)
	assert.Equal(t, insertTelemetrySQL, conn.lastSQL)
	require.Len(t, conn.lastArgs, 11)
	assert.Equal(t, "hp", conn.lastArgs[0])
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), conn.lastArgs[10])
	assert.Nil(t, conn.lastArgs[7], "absent app list is stored as NULL")
}

func TestCNPGInsertTelemetryWrapsDriverErrors(t *testing.T) {
	store := newFakeStore(&fakeConn{row: fakeRow{err: errBoom}})

	err := store.InsertTelemetry(context.Background(), &models.TelemetryReport{HoloportID: "hp"})
	require.ErrorIs(t, err, ErrDatabaseError)
	require.ErrorIs(t, err, ErrFailedToInsert)
	require.ErrorIs(t, err, errBoom)
}

func TestCNPGDeleteTelemetryBefore(t *testing.T) {
	conn := &fakeConn{execTag: pgconn.NewCommandTag("DELETE 3")}
	store := newFakeStore(conn)

	cutoff := time.Unix(1000, 0)
	n, err := store.DeleteTelemetryBefore(context.Background(), cutoff)
	require.NoError(t, err)

	assert.Equal(t, int64(3), n)
	assert.Equal(t, deleteTelemetryBeforeSQL, conn.lastSQL)
	assert.Equal(t, []any{cutoff.UTC()}, conn.lastArgs)
}

func TestCNPGQueryErrorsAreStoreErrors(t *testing.T) {
	store := newFakeStore(&fakeConn{queryErr: errBoom})
	ctx := context.Background()

	_, err := store.LatestTelemetrySince(ctx, time.Now())
	require.ErrorIs(t, err, ErrDatabaseError)

	_, err = store.DistinctHostsSince(ctx, time.Now())
	require.ErrorIs(t, err, ErrDatabaseError)

	_, err = store.FindRegistrationByKey(ctx, "uhCAk")
	require.ErrorIs(t, err, ErrDatabaseError)

	_, err = store.ListPresenceMembers(ctx)
	require.ErrorIs(t, err, ErrDatabaseError)

	err = store.StreamUptimes(ctx, func(float64) error { return nil })
	require.ErrorIs(t, err, ErrDatabaseError)
}

func TestCNPGGetHostUptime(t *testing.T) {
	store := newFakeStore(&fakeConn{row: fakeRow{values: []any{0.75}}})

	uptime, err := store.GetHostUptime(context.Background(), "hp")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, uptime, 1e-9)

	store = newFakeStore(&fakeConn{row: fakeRow{err: pgx.ErrNoRows}})

	_, err = store.GetHostUptime(context.Background(), "hp")
	require.ErrorIs(t, err, ErrHostNotFound)
}

func TestCNPGPing(t *testing.T) {
	require.NoError(t, newFakeStore(&fakeConn{}).Ping(context.Background()))
	require.ErrorIs(t, newFakeStore(&fakeConn{pingErr: errBoom}).Ping(context.Background()), ErrDatabaseError)
}

func TestScanTelemetry(t *testing.T) {
	reportedAt := time.Unix(1700000123, 0)
	row := fakeRow{values: []any{
		int64(7),
		"hp",
		strPtr("mainnet"),
		(*string)(nil),
		strPtr("hp-plus"),
		(*bool)(nil),
		strPtr("10.0.0.1"),
		strPtr("1.2.3.4"),
		[]byte(`[{"name":"app"}]`),
		strPtr("v1"),
		strPtr("v2"),
		reportedAt,
	}}

	report, err := scanTelemetry(row)
	require.NoError(t, err)

	assert.Equal(t, int64(7), report.Seq)
	assert.Equal(t, "hp", report.HoloportID)
	assert.Equal(t, "mainnet", *report.HoloNetwork)
	assert.Nil(t, report.Channel)
	assert.Equal(t, int64(1700000123), report.Timestamp)
	assert.JSONEq(t, `[{"name":"app"}]`, string(report.HposAppList))
}
