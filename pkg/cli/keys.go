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

package cli

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const seedFileMode = 0o600

// generateSeed returns a fresh Ed25519 private key.
func generateSeed() (ed25519.PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	return priv, nil
}

// writeSeed stores the 32-byte seed of priv as hex.
func writeSeed(path string, priv ed25519.PrivateKey, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errSeedFileExists
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return os.WriteFile(path, []byte(hex.EncodeToString(priv.Seed())+"\n"), seedFileMode)
}

// readSeed loads a private key from a hex seed file.
func readSeed(path string) (ed25519.PrivateKey, error) {
	if path == "" {
		return nil, errSeedFileRequired
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	seed, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil || len(seed) != ed25519.SeedSize {
		return nil, errInvalidSeed
	}

	return ed25519.NewKeyFromSeed(seed), nil
}
