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

package natsutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/nats-io/nkeys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/holostats/pkg/logger"
	"github.com/carverauto/holostats/pkg/models"
)

func runJetStreamServer(t *testing.T, users ...*natsserver.NkeyUser) *natsserver.Server {
	t.Helper()

	opts := &natsserver.Options{
		Host:      "127.0.0.1",
		Port:      -1,
		JetStream: true,
		StoreDir:  t.TempDir(),
		Nkeys:     users,
	}

	srv, err := natsserver.NewServer(opts)
	require.NoError(t, err)

	go srv.Start()

	if !srv.ReadyForConnections(10 * time.Second) {
		srv.Shutdown()
		t.Fatalf("embedded NATS server not ready for connections")
	}

	require.Eventually(t, func() bool {
		return srv.JetStreamEnabled()
	}, 5*time.Second, 50*time.Millisecond, "embedded NATS server not ready for JetStream")

	t.Cleanup(srv.Shutdown)

	return srv
}

func streamSubjects(ctx context.Context, t *testing.T, nc *nats.Conn, name string) ([]string, uint64) {
	t.Helper()

	js, err := jetstream.New(nc)
	require.NoError(t, err)

	stream, err := js.Stream(ctx, name)
	require.NoError(t, err)

	info, err := stream.Info(ctx)
	require.NoError(t, err)

	return info.Config.Subjects, info.State.Msgs
}

func TestConnectWithEventPublisherCreatesStreamAndDedupes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	srv := runJetStreamServer(t)

	publisher, nc, err := ConnectWithEventPublisher(ctx, &models.NATSConfig{
		URL:        srv.ClientURL(),
		StreamName: "HOLOSTATS",
	}, logger.NewTestLogger())
	require.NoError(t, err)

	t.Cleanup(nc.Close)

	data := &models.TelemetryAcceptedEventData{
		HoloportID: "5d88demtfm201uzjdadndjrxhc1rc3tgwwfffz91m9nt7oxyje",
		AcceptedAt: time.Unix(1_700_000_000, 0).UTC(),
	}

	require.NoError(t, publisher.PublishTelemetryAccepted(ctx, data))
	require.NoError(t, publisher.PublishTelemetryAccepted(ctx, data))

	subjects, msgs := streamSubjects(ctx, t, nc, "HOLOSTATS")
	assert.Equal(t, []string{TelemetryAcceptedSubject}, subjects)
	assert.Equal(t, uint64(1), msgs, "redelivered report is deduplicated by message id")

	later := *data
	later.AcceptedAt = data.AcceptedAt.Add(time.Minute)
	require.NoError(t, publisher.PublishTelemetryAccepted(ctx, &later))

	_, msgs = streamSubjects(ctx, t, nc, "HOLOSTATS")
	assert.Equal(t, uint64(2), msgs)
}

func TestConnectWithEventPublisherReusesExistingStream(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     []string
	}{
		{"extends unrelated subjects", []string{"events.>"}, []string{"events.>", TelemetryAcceptedSubject}},
		{"keeps covering wildcard", []string{"holostats.>"}, []string{"holostats.>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			srv := runJetStreamServer(t)

			setup, err := nats.Connect(srv.ClientURL())
			require.NoError(t, err)

			t.Cleanup(setup.Close)

			js, err := jetstream.New(setup)
			require.NoError(t, err)

			_, err = js.CreateStream(ctx, jetstream.StreamConfig{Name: "FLEET", Subjects: tt.existing})
			require.NoError(t, err)

			_, nc, err := ConnectWithEventPublisher(ctx, &models.NATSConfig{
				URL:        srv.ClientURL(),
				StreamName: "FLEET",
			}, nil)
			require.NoError(t, err)

			t.Cleanup(nc.Close)

			subjects, _ := streamSubjects(ctx, t, setup, "FLEET")
			assert.Equal(t, tt.want, subjects)
		})
	}
}

func TestConnectWithEventPublisherRequiresStreamName(t *testing.T) {
	_, _, err := ConnectWithEventPublisher(context.Background(), &models.NATSConfig{URL: "nats://127.0.0.1:1"}, nil)
	require.ErrorIs(t, err, errStreamNameRequired)
}

func writeSeed(t *testing.T, kp nkeys.KeyPair) string {
	t.Helper()

	seed, err := kp.Seed()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "user.nk")
	require.NoError(t, os.WriteFile(path, seed, 0o600))

	return path
}

func TestConnectWithEventPublisherNKeyAuth(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := nkeys.CreateUser()
	require.NoError(t, err)

	pub, err := user.PublicKey()
	require.NoError(t, err)

	srv := runJetStreamServer(t, &natsserver.NkeyUser{Nkey: pub})

	cfg := &models.NATSConfig{URL: srv.ClientURL(), StreamName: "HOLOSTATS"}

	_, _, err = ConnectWithEventPublisher(ctx, cfg, nil)
	require.Error(t, err, "anonymous connection is refused")

	cfg.NKeySeedFile = writeSeed(t, user)

	publisher, nc, err := ConnectWithEventPublisher(ctx, cfg, nil)
	require.NoError(t, err)

	t.Cleanup(nc.Close)

	require.NoError(t, publisher.PublishTelemetryAccepted(ctx, &models.TelemetryAcceptedEventData{
		HoloportID: "abc",
		AcceptedAt: time.Unix(1_700_000_000, 0).UTC(),
	}))
}

func TestAuthOption(t *testing.T) {
	opt, err := authOption(&models.NATSConfig{})
	require.NoError(t, err)
	assert.Nil(t, opt)

	opt, err = authOption(&models.NATSConfig{CredsFile: "/etc/holostats/core.creds"})
	require.NoError(t, err)
	assert.NotNil(t, opt)

	_, err = authOption(&models.NATSConfig{CredsFile: "a.creds", NKeySeedFile: "a.nk"})
	require.ErrorIs(t, err, ErrConflictingAuth)

	_, err = authOption(&models.NATSConfig{NKeySeedFile: filepath.Join(t.TempDir(), "missing.nk")})
	require.Error(t, err)

	account, err := nkeys.CreateAccount()
	require.NoError(t, err)

	_, err = authOption(&models.NATSConfig{NKeySeedFile: writeSeed(t, account)})
	require.ErrorIs(t, err, ErrNotUserSeed)
}
