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

package telemetry

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/holostats/pkg/db"
	"github.com/carverauto/holostats/pkg/identity"
	"github.com/carverauto/holostats/pkg/models"
)

var (
	errPublish = errors.New("nats unavailable")
	errDriver  = errors.New("connection reset")
)

// RFC 8032 test 1 key pair.
const testSeedHex = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"

type ingestFixture struct {
	priv            ed25519.PrivateKey
	holoportID      string
	networkIdentity string
	now             time.Time
	store           *db.MemoryStore
	metrics         *Metrics
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()

	seed, err := hex.DecodeString(testSeedHex)
	require.NoError(t, err)

	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	f := &ingestFixture{
		priv:            priv,
		holoportID:      identity.EncodeIdentity(pub),
		networkIdentity: identity.EncodeNetworkIdentity(pub),
		now:             time.Unix(1_700_000_000, 0),
		store:           db.NewMemoryStore(),
		metrics:         NewMetrics(prometheus.NewRegistry()),
	}

	require.NoError(t, f.store.PutRegistration(models.RegistrationRecord{
		ID:    "reg-1",
		Email: "host@example.com",
		Keys:  []models.AuthorizedKey{{Role: "host", PubKey: f.networkIdentity}},
	}))

	return f
}

func (f *ingestFixture) service(t *testing.T, store db.Service, opts ...Option) *Service {
	t.Helper()

	opts = append([]Option{WithClock(func() time.Time { return f.now }), WithMetrics(f.metrics)}, opts...)

	svc, err := NewService(store, opts...)
	require.NoError(t, err)

	return svc
}

func (f *ingestFixture) payload(extra string) []byte {
	return []byte(fmt.Sprintf(`{"holoportId":%q%s}`, f.holoportID, extra))
}

func (f *ingestFixture) sign(payload []byte) string {
	return identity.Sign(f.priv, payload)
}

func TestIngestAcceptsSignedRegisteredReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newIngestFixture(t)

	publisher := NewMockEventPublisher(ctrl)
	publisher.EXPECT().
		PublishTelemetryAccepted(gomock.Any(), &models.TelemetryAcceptedEventData{
			HoloportID:      f.holoportID,
			NetworkIdentity: f.networkIdentity,
			RegistrationID:  "reg-1",
			ZerotierIP:      "10.147.0.5",
			AcceptedAt:      f.now.UTC(),
		}).
		Return(nil)

	svc := f.service(t, f.store, WithPublisher(publisher))

	payload := f.payload(`,"ztIp":"10.147.0.5","sshStatus":true,"hposAppList":null,"timestamp":42`)

	report, err := svc.Ingest(context.Background(), payload, f.sign(payload))
	require.NoError(t, err)

	assert.Equal(t, f.now.Unix(), report.Timestamp, "client timestamp is replaced by server time")
	assert.Nil(t, report.HposAppList)
	require.NotNil(t, report.SSHStatus)
	assert.True(t, *report.SSHStatus)

	stored, err := f.store.LatestTelemetrySince(context.Background(), time.Unix(0, 0))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, f.holoportID, stored[0].HoloportID)

	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.ReportsAccepted), 0)
}

func TestIngestRejections(t *testing.T) {
	f := newIngestFixture(t)
	valid := f.payload("")

	otherSeed := make([]byte, ed25519.SeedSize)
	otherSeed[0] = 7
	otherPriv := ed25519.NewKeyFromSeed(otherSeed)
	stranger := []byte(fmt.Sprintf(`{"holoportId":%q}`, identity.EncodeIdentity(otherPriv.Public().(ed25519.PublicKey))))

	badSchema := f.payload(`,"sshStatus":"yes"`)

	tests := []struct {
		name      string
		payload   []byte
		signature string
		want      error
		category  error
		reason    string
	}{
		{"missing signature", valid, "", ErrMissingSignature, ErrAuthenticationRejected, "missing_signature"},
		{"undecodable signature", valid, "not*base64", ErrMalformedSignature, ErrDecode, "malformed_signature"},
		{"short signature", valid, "AAAA", ErrMalformedSignature, ErrDecode, "malformed_signature"},
		{"not json", []byte("{"), f.sign([]byte("{")), ErrMalformedPayload, ErrDecode, "malformed_payload"},
		{"no holoport id", []byte(`{"channel":"main"}`), f.sign(valid), ErrMalformedPayload, ErrDecode, "malformed_payload"},
		{"numeric holoport id", []byte(`{"holoportId":12}`), f.sign(valid), ErrMalformedPayload, ErrDecode, "malformed_payload"},
		{"bad identity", []byte(`{"holoportId":"NOT-BASE36"}`), f.sign(valid), ErrMalformedIdentity, ErrDecode, "malformed_identity"},
		{"signature over other bytes", f.payload(`,"channel":"x"`), f.sign(valid), ErrUnauthenticatedKey, ErrAuthenticationRejected, "unauthenticated_key"},
		{"unregistered key", stranger, identity.Sign(otherPriv, stranger), ErrUnregisteredDevice, ErrAuthenticationRejected, "unregistered_device"},
		{"schema violation", badSchema, f.sign(badSchema), ErrMalformedPayload, ErrDecode, "malformed_payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.metrics = NewMetrics(prometheus.NewRegistry())
			svc := f.service(t, f.store)

			report, err := svc.Ingest(context.Background(), tt.payload, tt.signature)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, tt.category)
			assert.Nil(t, report)

			assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.ReportsRejected.WithLabelValues(tt.reason)), 0)
			assert.InDelta(t, 0, testutil.ToFloat64(f.metrics.ReportsAccepted), 0)
		})
	}

	hosts, err := f.store.DistinctHostsSince(context.Background(), time.Unix(0, 0))
	require.NoError(t, err)
	assert.Empty(t, hosts, "rejected reports are never stored")
}

func TestIngestRegistrationStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newIngestFixture(t)

	store := db.NewMockService(ctrl)
	store.EXPECT().FindRegistrationByKey(gomock.Any(), f.networkIdentity).Return(nil, errDriver)

	svc := f.service(t, store)
	payload := f.payload("")

	_, err := svc.Ingest(context.Background(), payload, f.sign(payload))
	require.ErrorIs(t, err, ErrStore)
	require.ErrorIs(t, err, errDriver)
	assert.NotErrorIs(t, err, ErrAuthenticationRejected)
}

func TestIngestInsertFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newIngestFixture(t)

	store := db.NewMockService(ctrl)
	store.EXPECT().
		FindRegistrationByKey(gomock.Any(), f.networkIdentity).
		Return(&models.RegistrationRecord{ID: "reg-1", Keys: []models.AuthorizedKey{{Role: "host", PubKey: f.networkIdentity}}}, nil)
	store.EXPECT().InsertTelemetry(gomock.Any(), gomock.Any()).Return(errDriver)

	svc := f.service(t, store)
	payload := f.payload("")

	_, err := svc.Ingest(context.Background(), payload, f.sign(payload))
	require.ErrorIs(t, err, ErrStore)
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.ReportsRejected.WithLabelValues("store")), 0)
}

func TestIngestPublishFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newIngestFixture(t)

	publisher := NewMockEventPublisher(ctrl)
	publisher.EXPECT().PublishTelemetryAccepted(gomock.Any(), gomock.Any()).Return(errPublish)

	svc := f.service(t, f.store, WithPublisher(publisher))
	payload := f.payload("")

	report, err := svc.Ingest(context.Background(), payload, f.sign(payload))
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.EventPublishErrors), 0)
}

func TestIngestAcceptsUnpaddedSignature(t *testing.T) {
	f := newIngestFixture(t)
	svc := f.service(t, f.store)
	payload := f.payload("")

	sig := f.sign(payload)
	for len(sig) > 0 && sig[len(sig)-1] == '=' {
		sig = sig[:len(sig)-1]
	}

	_, err := svc.Ingest(context.Background(), payload, sig)
	require.NoError(t, err)
}
