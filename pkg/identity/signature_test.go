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

package identity

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rfcSignatureHex = "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065" +
	"224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b"

func testKeyPair(t *testing.T) (ed25519.PublicKey, ed25519.PrivateKey) {
	t.Helper()

	seed := make([]byte, ed25519.SeedSize)
	copy(seed, "holostats-signature-test-seed")
	priv := ed25519.NewKeyFromSeed(seed)

	return priv.Public().(ed25519.PublicKey), priv
}

func TestVerifyKnownVector(t *testing.T) {
	sig, err := hex.DecodeString(rfcSignatureHex)
	require.NoError(t, err)

	assert.True(t, Verify([]byte{}, sig, rfcKey(t)))
}

func TestVerifyRejectsSingleBitMutations(t *testing.T) {
	pub, priv := testKeyPair(t)
	payload := []byte(`{"holoportId":"abc","channel":"main"}`)
	sig := ed25519.Sign(priv, payload)

	require.True(t, Verify(payload, sig, pub))

	for i := 0; i < len(payload)*8; i++ {
		mutated := append([]byte(nil), payload...)
		mutated[i/8] ^= 1 << (i % 8)
		assert.False(t, Verify(mutated, sig, pub), "payload bit %d", i)
	}

	for i := 0; i < len(sig)*8; i++ {
		mutated := append([]byte(nil), sig...)
		mutated[i/8] ^= 1 << (i % 8)
		assert.False(t, Verify(payload, mutated, pub), "signature bit %d", i)
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	_, priv := testKeyPair(t)
	payload := []byte("payload")

	assert.False(t, Verify(payload, ed25519.Sign(priv, payload), rfcKey(t)))
}

func TestVerifyRejectsMalleableScalar(t *testing.T) {
	pub, priv := testKeyPair(t)
	payload := []byte("payload")
	sig := ed25519.Sign(priv, payload)

	// Adding the group order L to S yields an equivalent but non-canonical signature.
	l := []byte{
		0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58, 0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x10,
	}
	malleable := append([]byte(nil), sig...)

	var carry uint16
	for i := 0; i < 32; i++ {
		sum := uint16(malleable[32+i]) + uint16(l[i]) + carry
		malleable[32+i] = byte(sum)
		carry = sum >> 8
	}

	assert.False(t, Verify(payload, malleable, pub))
}

func TestVerifyRejectsSmallOrderKey(t *testing.T) {
	identityPoint := make([]byte, 32)
	identityPoint[0] = 1

	sig := make([]byte, 64)
	copy(sig, identityPoint)

	assert.False(t, Verify([]byte("anything"), sig, identityPoint))
}

func TestVerifyRejectsBadSizes(t *testing.T) {
	pub, priv := testKeyPair(t)
	sig := ed25519.Sign(priv, []byte("x"))

	assert.False(t, Verify([]byte("x"), sig[:63], pub))
	assert.False(t, Verify([]byte("x"), sig, pub[:31]))
}

func TestDecodeSignature(t *testing.T) {
	_, priv := testKeyPair(t)
	sig := ed25519.Sign(priv, []byte("x"))

	padded := base64.StdEncoding.EncodeToString(sig)
	require.True(t, strings.HasSuffix(padded, "="))

	got, err := DecodeSignature(padded)
	require.NoError(t, err)
	assert.Equal(t, sig, got)

	got, err = DecodeSignature(strings.TrimRight(padded, "="))
	require.NoError(t, err)
	assert.Equal(t, sig, got)

	_, err = DecodeSignature("not base64!")
	require.ErrorIs(t, err, ErrInvalidSignature)

	_, err = DecodeSignature(base64.StdEncoding.EncodeToString(sig[:10]))
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestDecodeSignatureRejectsNonCanonicalEncodings(t *testing.T) {
	_, priv := testKeyPair(t)
	sig := ed25519.Sign(priv, []byte("x"))

	padded := base64.StdEncoding.EncodeToString(sig)
	unpadded := strings.TrimRight(padded, "=")
	require.Len(t, unpadded, 86)

	// 64 bytes leave four unused bits in the last symbol.
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	last := strings.IndexByte(alphabet, unpadded[85])
	require.Zero(t, last&0x0f)
	dirty := unpadded[:85] + string(alphabet[last|1])

	tests := []struct {
		name    string
		encoded string
	}{
		{"nonzero trailing bits", dirty},
		{"nonzero trailing bits padded", dirty + "=="},
		{"partial padding", unpadded + "="},
		{"excess padding", padded + "="},
		{"embedded newline", unpadded[:40] + "\n" + unpadded[40:]},
		{"embedded carriage return", unpadded[:40] + "\r\n" + unpadded[40:]},
		{"url alphabet", strings.NewReplacer("+", "-", "/", "_").Replace(unpadded) + "-_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeSignature(tt.encoded)
			require.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}

func TestSignProducesVerifiableHeader(t *testing.T) {
	pub, priv := testKeyPair(t)
	payload := []byte(`{"holoportId":"x"}`)

	sig, err := DecodeSignature(Sign(priv, payload))
	require.NoError(t, err)
	assert.True(t, Verify(payload, sig, pub))
}
