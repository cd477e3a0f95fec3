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

// A single statement, so concurrent registration writes are never observed half-applied.
const findRegistrationByKeySQL = `
SELECT r.id, COALESCE(r.email, ''), k.role, k.pub_key
FROM registrations r
JOIN registration_keys k ON k.registration_id = r.id
WHERE r.id = (
	SELECT registration_id
	FROM registration_keys
	WHERE pub_key = $1
	ORDER BY registration_id
	LIMIT 1
)
ORDER BY k.role, k.pub_key`

func (s *CNPGStore) FindRegistrationByKey(ctx context.Context, networkIdentity string) (*models.RegistrationRecord, error) {
	rows, err := s.conn.Query(ctx, findRegistrationByKeySQL, networkIdentity)
	if err != nil {
		return nil, storeErr(ErrFailedToQuery, err)
	}
	defer rows.Close()

	var record *models.RegistrationRecord

	for rows.Next() {
		var (
			id, email string
			key       models.AuthorizedKey
		)

		if err := rows.Scan(&id, &email, &key.Role, &key.PubKey); err != nil {
			return nil, storeErr(ErrFailedToScan, err)
		}

		if record == nil {
			record = &models.RegistrationRecord{ID: id, Email: email}
		}

		record.Keys = append(record.Keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, storeErr(ErrFailedToQuery, err)
	}

	if record == nil {
		return nil, ErrRegistrationNotFound
	}

	return record, nil
}
