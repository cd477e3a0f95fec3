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
	"errors"
	"fmt"
	"os"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"

	"github.com/carverauto/holostats/pkg/models"
)

var (
	// ErrConflictingAuth is returned when both an NKey seed and a creds file are configured.
	ErrConflictingAuth = errors.New("nats nkey_seed_file and creds_file are mutually exclusive")
	// ErrNotUserSeed is returned when the seed file holds an operator, account or server key.
	ErrNotUserSeed = errors.New("nats nkey seed is not a user seed")
)

// authOption picks the NATS credentials from cfg. A nil option means the
// connection is anonymous or authenticated by TLS alone.
func authOption(cfg *models.NATSConfig) (nats.Option, error) {
	switch {
	case cfg.NKeySeedFile != "" && cfg.CredsFile != "":
		return nil, ErrConflictingAuth
	case cfg.CredsFile != "":
		return nats.UserCredentials(cfg.CredsFile), nil
	case cfg.NKeySeedFile != "":
		return nkeyOption(cfg.NKeySeedFile)
	default:
		return nil, nil
	}
}

func nkeyOption(path string) (nats.Option, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read nkey seed: %w", err)
	}

	seed, err := nkeys.ParseDecoratedNKey(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse nkey seed: %w", err)
	}

	pub, err := seed.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive nkey public key: %w", err)
	}

	if !nkeys.IsValidPublicUserKey(pub) {
		seed.Wipe()
		return nil, ErrNotUserSeed
	}

	return nats.Nkey(pub, seed.Sign), nil
}
