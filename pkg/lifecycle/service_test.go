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

package lifecycle

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/holostats/pkg/logger"
)

var (
	errStartFailed = errors.New("start failed")
	errStopFailed  = errors.New("stop failed")
)

type fakeService struct {
	startErr error
	stopErr  error
	stopped  atomic.Bool
}

func (f *fakeService) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}

	<-ctx.Done()

	return nil
}

func (f *fakeService) Stop(context.Context) error {
	f.stopped.Store(true)
	return f.stopErr
}

func TestRunServiceStopsOnCancel(t *testing.T) {
	svc := &fakeService{}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- RunService(ctx, &ServiceOptions{Service: svc, Logger: logger.NewTestLogger()})
	}()

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("RunService did not return")
	}

	assert.True(t, svc.stopped.Load())
}

func TestRunServiceReportsStartAndStopErrors(t *testing.T) {
	svc := &fakeService{startErr: errStartFailed, stopErr: errStopFailed}

	err := RunService(context.Background(), &ServiceOptions{
		Service:         svc,
		Logger:          logger.NewTestLogger(),
		ShutdownTimeout: time.Second,
	})

	require.ErrorIs(t, err, errStartFailed)
	require.ErrorIs(t, err, errStopFailed)
	assert.True(t, svc.stopped.Load())
}
