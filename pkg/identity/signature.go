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
	"errors"
	"fmt"
	"strings"

	"filippo.io/edwards25519"
)

// ErrInvalidSignature is returned when a signature header cannot be decoded.
var ErrInvalidSignature = errors.New("invalid signature encoding")

// SignatureHeader carries the base64 signature of the request body.
const SignatureHeader = "X-Hpos-Signature"

// DecodeSignature decodes a standard base64 signature, padded or not. Only
// the canonical encoding is accepted: padding must be complete, unused
// trailing bits must be zero, and line breaks are rejected.
func DecodeSignature(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)

	if strings.ContainsAny(encoded, "\r\n") {
		return nil, fmt.Errorf("%w: unexpected line break", ErrInvalidSignature)
	}

	enc := base64.RawStdEncoding.Strict()
	if strings.HasSuffix(encoded, "=") {
		enc = base64.StdEncoding.Strict()
	}

	sig, err := enc.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	if len(sig) != ed25519.SignatureSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSignature, len(sig), ed25519.SignatureSize)
	}

	return sig, nil
}

// EncodeSignature is the inverse of DecodeSignature.
func EncodeSignature(sig []byte) string {
	return base64.StdEncoding.EncodeToString(sig)
}

// Verify checks sig over payload with strict rules: on top of the canonical S
// check done by crypto/ed25519, keys and R values of small order are rejected,
// as are non-canonical key encodings.
func Verify(payload, sig []byte, key ed25519.PublicKey) bool {
	if len(key) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}

	if checkPoint(key) != nil || hasSmallOrder(key) {
		return false
	}

	if hasSmallOrder(sig[:32]) {
		return false
	}

	return ed25519.Verify(key, payload, sig)
}

// hasSmallOrder reports whether the encoded point is invalid or lies in the
// torsion subgroup.
func hasSmallOrder(encoded []byte) bool {
	p, err := new(edwards25519.Point).SetBytes(encoded)
	if err != nil {
		return true
	}

	return new(edwards25519.Point).MultByCofactor(p).Equal(edwards25519.NewIdentityPoint()) == 1
}

// Sign produces the header value a holoport sends with payload.
func Sign(priv ed25519.PrivateKey, payload []byte) string {
	return EncodeSignature(ed25519.Sign(priv, payload))
}
