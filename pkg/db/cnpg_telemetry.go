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
	"time"

	"github.com/carverauto/holostats/pkg/models"
)

const (
	insertTelemetrySQL = `
INSERT INTO telemetry (
	holoport_id,
	holo_network,
	channel,
	holoport_model,
	ssh_status,
	zt_ip,
	wan_ip,
	hpos_app_list,
	channel_version,
	hpos_version,
	reported_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
)
RETURNING seq`

	deleteTelemetryBeforeSQL = `DELETE FROM telemetry WHERE reported_at < $1`

	latestTelemetrySinceSQL = `
SELECT DISTINCT ON (holoport_id)
	seq,
	holoport_id,
	holo_network,
	channel,
	holoport_model,
	ssh_status,
	zt_ip,
	wan_ip,
	hpos_app_list,
	channel_version,
	hpos_version,
	reported_at
FROM telemetry
WHERE reported_at >= $1
ORDER BY holoport_id, reported_at DESC, seq DESC`

	distinctHostsSinceSQL = `
SELECT DISTINCT holoport_id
FROM telemetry
WHERE reported_at >= $1
ORDER BY holoport_id`
)

func buildTelemetryArgs(report *models.TelemetryReport) ([]any, error) {
	if report == nil {
		return nil, ErrTelemetryReportNil
	}

	if report.HoloportID == "" {
		return nil, ErrHoloportIDMissing
	}

	var appList []byte
	if len(report.HposAppList) > 0 {
		appList = report.HposAppList
	}

	return []any{
		report.HoloportID,
		report.HoloNetwork,
		report.Channel,
		report.HoloportModel,
		report.SSHStatus,
		report.ZerotierIP,
		report.WanIP,
		appList,
		report.ChannelVersion,
		report.HposVersion,
		time.Unix(report.Timestamp, 0).UTC(),
	}, nil
}

func (s *CNPGStore) InsertTelemetry(ctx context.Context, report *models.TelemetryReport) error {
	args, err := buildTelemetryArgs(report)
	if err != nil {
		return err
	}

	if err := s.conn.QueryRow(ctx, insertTelemetrySQL, args...).Scan(&report.Seq); err != nil {
		return storeErr(ErrFailedToInsert, err)
	}

	return nil
}

func (s *CNPGStore) DeleteTelemetryBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.conn.Exec(ctx, deleteTelemetryBeforeSQL, cutoff.UTC())
	if err != nil {
		return 0, storeErr(ErrFailedToDelete, err)
	}

	return tag.RowsAffected(), nil
}

func (s *CNPGStore) LatestTelemetrySince(ctx context.Context, cutoff time.Time) ([]models.TelemetryReport, error) {
	rows, err := s.conn.Query(ctx, latestTelemetrySinceSQL, cutoff.UTC())
	if err != nil {
		return nil, storeErr(ErrFailedToQuery, err)
	}
	defer rows.Close()

	var reports []models.TelemetryReport

	for rows.Next() {
		report, err := scanTelemetry(rows)
		if err != nil {
			return nil, storeErr(ErrFailedToScan, err)
		}

		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(ErrFailedToQuery, err)
	}

	return reports, nil
}

func scanTelemetry(row rowScanner) (models.TelemetryReport, error) {
	var (
		report     models.TelemetryReport
		appList    []byte
		reportedAt time.Time
	)

	if err := row.Scan(
		&report.Seq,
		&report.HoloportID,
		&report.HoloNetwork,
		&report.Channel,
		&report.HoloportModel,
		&report.SSHStatus,
		&report.ZerotierIP,
		&report.WanIP,
		&appList,
		&report.ChannelVersion,
		&report.HposVersion,
		&reportedAt,
	); err != nil {
		return models.TelemetryReport{}, err
	}

	if len(appList) > 0 {
		report.HposAppList = appList
	}

	report.Timestamp = reportedAt.Unix()

	return report, nil
}

func (s *CNPGStore) DistinctHostsSince(ctx context.Context, cutoff time.Time) ([]string, error) {
	rows, err := s.conn.Query(ctx, distinctHostsSinceSQL, cutoff.UTC())
	if err != nil {
		return nil, storeErr(ErrFailedToQuery, err)
	}
	defer rows.Close()

	hosts := []string{}

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storeErr(ErrFailedToScan, err)
		}

		hosts = append(hosts, id)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(ErrFailedToQuery, err)
	}

	return hosts, nil
}
