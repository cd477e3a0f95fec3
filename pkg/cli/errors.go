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
	"errors"
)

var (
	errSeedFileRequired = errors.New("--seed-file is required")
	errSeedFileExists   = errors.New("seed file already exists; pass --force to overwrite")
	errInvalidSeed      = errors.New("seed file must hold 32 hex-encoded bytes")
	errPayloadRequired  = errors.New("--payload is required")
	errServerRequired   = errors.New("--server is required")
	errSubmissionFailed = errors.New("submission rejected")
	errIdentityMismatch = errors.New("payload holoportId does not match the seed's identity")
	errPayloadNotJSON   = errors.New("payload is not a JSON object")
)
