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
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/holostats/pkg/logger"
)

// cnpgConn is the subset of *pgxpool.Pool the store uses.
type cnpgConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type rowScanner interface {
	Scan(dest ...any) error
}

// CNPGStore implements Service on Postgres.
type CNPGStore struct {
	conn   cnpgConn
	close  func()
	logger logger.Logger
}

var _ Service = (*CNPGStore)(nil)

// NewCNPGStore wraps an open pool. Close closes the pool.
func NewCNPGStore(pool *pgxpool.Pool, log logger.Logger) *CNPGStore {
	return &CNPGStore{conn: pool, close: pool.Close, logger: log}
}

func (s *CNPGStore) Ping(ctx context.Context) error {
	if err := s.conn.Ping(ctx); err != nil {
		return fmt.Errorf("%w: ping: %w", ErrDatabaseError, err)
	}

	return nil
}

func (s *CNPGStore) Close() error {
	if s.close != nil {
		s.close()
	}

	return nil
}

// storeErr marks driver failures as database errors, leaving context
// cancellation recognizable to callers.
func storeErr(op error, err error) error {
	return fmt.Errorf("%w: %w: %w", ErrDatabaseError, op, err)
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
