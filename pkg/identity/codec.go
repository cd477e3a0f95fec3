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

// Package identity decodes holoport identifiers into Ed25519 keys, derives the
// network identity used by host registrations, and verifies report signatures.
package identity

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"filippo.io/edwards25519"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/blake2b"
)

var (
	// ErrInvalidIdentity is returned for any identifier that does not decode to
	// a usable Ed25519 verification key.
	ErrInvalidIdentity = errors.New("invalid holoport identity")

	errEmptyIdentity    = fmt.Errorf("%w: empty identifier", ErrInvalidIdentity)
	errIdentityTooLong  = fmt.Errorf("%w: identifier too long", ErrInvalidIdentity)
	errInvalidCharacter = fmt.Errorf("%w: character outside base-36 alphabet", ErrInvalidIdentity)
	errWrongKeyWidth    = fmt.Errorf("%w: decoded key is not 32 bytes", ErrInvalidIdentity)
	errInvalidPoint     = fmt.Errorf("%w: key is not a canonical curve point", ErrInvalidIdentity)
)

const (
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

	// A 32-byte value never needs more than 50 base-36 digits.
	maxIdentifierLength = 50

	networkIdentityPrefix = "u"
	locationBytes         = 4
	locationDigestBytes   = 16
)

// agentKeyPrefix is the multicodec-style header of a Holochain agent key.
var agentKeyPrefix = []byte{0x84, 0x20, 0x24}

// DecodeIdentity decodes a lowercase base-36 holoport identifier into its
// Ed25519 public key. Each leading '0' stands for one leading zero byte.
func DecodeIdentity(identifier string) (ed25519.PublicKey, error) {
	if identifier == "" {
		return nil, errEmptyIdentity
	}

	if len(identifier) > maxIdentifierLength {
		return nil, errIdentityTooLong
	}

	zeros := 0
	for zeros < len(identifier) && identifier[zeros] == alphabet[0] {
		zeros++
	}

	n := new(big.Int)
	base := big.NewInt(int64(len(alphabet)))
	digit := new(big.Int)

	for _, r := range identifier[zeros:] {
		idx := strings.IndexRune(alphabet, r)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", errInvalidCharacter, r)
		}

		n.Mul(n, base)
		n.Add(n, digit.SetInt64(int64(idx)))
	}

	raw := append(make([]byte, zeros), n.Bytes()...)
	if len(raw) != ed25519.PublicKeySize {
		return nil, errWrongKeyWidth
	}

	if err := checkPoint(raw); err != nil {
		return nil, err
	}

	return ed25519.PublicKey(raw), nil
}

// EncodeIdentity is the inverse of DecodeIdentity.
func EncodeIdentity(key ed25519.PublicKey) string {
	zeros := 0
	for zeros < len(key) && key[zeros] == 0 {
		zeros++
	}

	var b strings.Builder

	b.WriteString(strings.Repeat(alphabet[:1], zeros))

	if rest := key[zeros:]; len(rest) > 0 {
		b.WriteString(new(big.Int).SetBytes(rest).Text(len(alphabet)))
	}

	return b.String()
}

// EncodeNetworkIdentity derives the agent key string registrations are stored
// under: "u" followed by unpadded base64url of the 3-byte agent prefix, the
// 32-byte key and a 4-byte DHT location.
func EncodeNetworkIdentity(key ed25519.PublicKey) string {
	buf := make([]byte, 0, len(agentKeyPrefix)+len(key)+locationBytes)
	buf = append(buf, agentKeyPrefix...)
	buf = append(buf, key...)
	buf = append(buf, dhtLocation(key)...)

	return networkIdentityPrefix + base64.RawURLEncoding.EncodeToString(buf)
}

// dhtLocation xor-folds a 16-byte BLAKE2b digest of key into 4 bytes.
func dhtLocation(key []byte) []byte {
	h, err := blake2b.New(locationDigestBytes, nil)
	if err != nil {
		// Only reachable with an invalid size constant.
		panic(err)
	}

	h.Write(key)
	digest := h.Sum(nil)

	out := make([]byte, locationBytes)
	copy(out, digest[:locationBytes])

	for i := locationBytes; i < len(digest); i += locationBytes {
		for j := 0; j < locationBytes; j++ {
			out[j] ^= digest[i+j]
		}
	}

	return out
}

// checkPoint rejects encodings that are not canonical points on the curve.
func checkPoint(raw []byte) error {
	p, err := new(edwards25519.Point).SetBytes(raw)
	if err != nil {
		return errInvalidPoint
	}

	if string(p.Bytes()) != string(raw) {
		return errInvalidPoint
	}

	return nil
}

// Identity is a decoded holoport identifier.
type Identity struct {
	HoloportID      string
	Key             ed25519.PublicKey
	NetworkIdentity string
}

// Codec memoizes identifier decoding. Decoding is pure, so cached entries
// never go stale; the LRU only bounds memory.
type Codec struct {
	cache *lru.Cache[string, Identity]
}

// NewCodec returns a Codec caching up to size identities. A size of zero
// disables caching.
func NewCodec(size int) (*Codec, error) {
	if size <= 0 {
		return &Codec{}, nil
	}

	cache, err := lru.New[string, Identity](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity cache: %w", err)
	}

	return &Codec{cache: cache}, nil
}

// Resolve decodes identifier and derives its network identity.
func (c *Codec) Resolve(identifier string) (Identity, error) {
	if c.cache != nil {
		if id, ok := c.cache.Get(identifier); ok {
			return id, nil
		}
	}

	key, err := DecodeIdentity(identifier)
	if err != nil {
		return Identity{}, err
	}

	id := Identity{
		HoloportID:      identifier,
		Key:             key,
		NetworkIdentity: EncodeNetworkIdentity(key),
	}

	if c.cache != nil {
		c.cache.Add(identifier, id)
	}

	return id, nil
}

// Len reports the number of cached identities.
func (c *Codec) Len() int {
	if c.cache == nil {
		return 0
	}

	return c.cache.Len()
}
