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

package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/holostats/pkg/core/api"
	"github.com/carverauto/holostats/pkg/logger"
)

var errTestPurge = errors.New("purge error")

func TestRetentionReaper_Reap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := api.NewMockTelemetryService(ctrl)
	log := logger.NewTestLogger()
	horizon := 14 * 24 * time.Hour

	reaper := NewRetentionReaper(mockSvc, log, time.Hour, horizon)

	t.Run("purges_expired_reports", func(t *testing.T) {
		ctx := context.Background()

		mockSvc.EXPECT().PurgeOlderThan(ctx, horizon).Return(int64(3), nil)

		deleted, err := reaper.reap(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
	})

	t.Run("nothing_to_purge", func(t *testing.T) {
		ctx := context.Background()

		mockSvc.EXPECT().PurgeOlderThan(ctx, horizon).Return(int64(0), nil)

		deleted, err := reaper.reap(ctx)
		assert.NoError(t, err)
		assert.Zero(t, deleted)
	})

	t.Run("purge_error", func(t *testing.T) {
		ctx := context.Background()

		mockSvc.EXPECT().PurgeOlderThan(ctx, horizon).Return(int64(0), errTestPurge)

		_, err := reaper.reap(ctx)
		assert.ErrorIs(t, err, errTestPurge)
	})
}

func TestRetentionReaper_StartRunsOnTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := api.NewMockTelemetryService(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	purged := make(chan struct{}, 1)

	mockSvc.EXPECT().PurgeOlderThan(gomock.Any(), time.Hour).
		DoAndReturn(func(context.Context, time.Duration) (int64, error) {
			select {
			case purged <- struct{}{}:
			default:
			}

			return 1, nil
		}).MinTimes(1)

	reaper := NewRetentionReaper(mockSvc, logger.NewTestLogger(), 10*time.Millisecond, time.Hour)

	done := make(chan struct{})

	go func() {
		reaper.Start(ctx)
		close(done)
	}()

	select {
	case <-purged:
	case <-time.After(2 * time.Second):
		t.Fatal("reaper did not purge")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("reaper did not stop")
	}
}

func TestRetentionReaper_ZeroIntervalDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := api.NewMockTelemetryService(ctrl)

	reaper := NewRetentionReaper(mockSvc, logger.NewTestLogger(), 0, time.Hour)

	done := make(chan struct{})

	go func() {
		reaper.Start(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled reaper should return immediately")
	}
}
