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
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/holostats/pkg/logger"
	"github.com/carverauto/holostats/pkg/models"
)

func memoryConfig() *models.ServerConfig {
	cfg := &models.ServerConfig{
		ListenAddr: "127.0.0.1:0",
		Database:   models.DatabaseConfig{Store: models.StoreMemory},
	}
	cfg.ApplyDefaults()

	return cfg
}

func TestNewServerWithMemoryStore(t *testing.T) {
	srv, err := NewServer(context.Background(), memoryConfig(), logger.NewTestLogger())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "go_goroutines")

	assert.NoError(t, srv.Stop(context.Background()))
}

func TestServerStartStop(t *testing.T) {
	cfg := memoryConfig()
	cfg.Retention.Interval = models.Duration(time.Hour)

	srv, err := NewServer(context.Background(), cfg, nil)
	require.NoError(t, err)

	errCh := make(chan error, 1)

	go func() {
		errCh <- srv.Start(context.Background())
	}()

	require.Eventually(t, func() bool {
		srv.mu.Lock()
		defer srv.mu.Unlock()

		return srv.cancel != nil
	}, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, srv.Stop(ctx))

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestNewServerUnknownStore(t *testing.T) {
	cfg := memoryConfig()
	cfg.Database.Store = "sqlite"

	_, err := NewServer(context.Background(), cfg, logger.NewTestLogger())
	assert.ErrorIs(t, err, errDatabaseError)
}

func TestNewServerMissingGeoIPDatabase(t *testing.T) {
	cfg := memoryConfig()
	cfg.GeoIP = &models.GeoIPConfig{DatabasePath: filepath.Join(t.TempDir(), "missing.mmdb")}

	_, err := NewServer(context.Background(), cfg, logger.NewTestLogger())
	assert.ErrorIs(t, err, errGeoIPError)
}
