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

	"github.com/carverauto/holostats/pkg/models"
)

const (
	listPresenceMembersSQL = `
SELECT name, ip_assignments[1], last_online, physical_address, description
FROM zerotier_members
WHERE authorized
ORDER BY member_id`

	listUptimesSQL = `SELECT uptime FROM performance_summary`

	hostUptimeSQL = `SELECT uptime FROM performance_summary WHERE name = $1`
)

func (s *CNPGStore) ListPresenceMembers(ctx context.Context) ([]models.PresenceRecord, error) {
	rows, err := s.conn.Query(ctx, listPresenceMembersSQL)
	if err != nil {
		return nil, storeErr(ErrFailedToQuery, err)
	}
	defer rows.Close()

	var members []models.PresenceRecord

	for rows.Next() {
		var m models.PresenceRecord
		if err := rows.Scan(&m.Name, &m.ZerotierIP, &m.LastOnline, &m.PhysicalAddress, &m.Description); err != nil {
			return nil, storeErr(ErrFailedToScan, err)
		}

		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(ErrFailedToQuery, err)
	}

	return members, nil
}

// StreamUptimes hands rows to fn as they arrive so large fleets are never
// buffered in memory.
func (s *CNPGStore) StreamUptimes(ctx context.Context, fn func(uptime float64) error) error {
	rows, err := s.conn.Query(ctx, listUptimesSQL)
	if err != nil {
		return storeErr(ErrFailedToQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var uptime float64
		if err := rows.Scan(&uptime); err != nil {
			return storeErr(ErrFailedToScan, err)
		}

		if err := fn(uptime); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return storeErr(ErrFailedToQuery, err)
	}

	return nil
}

func (s *CNPGStore) GetHostUptime(ctx context.Context, name string) (float64, error) {
	var uptime float64

	if err := s.conn.QueryRow(ctx, hostUptimeSQL, name).Scan(&uptime); err != nil {
		if isNoRows(err) {
			return 0, ErrHostNotFound
		}

		return 0, storeErr(ErrFailedToQuery, err)
	}

	return uptime, nil
}
