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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/carverauto/holostats/pkg/identity"
	"github.com/carverauto/holostats/pkg/models"
	"github.com/carverauto/holostats/pkg/version"
)

const (
	statsPath          = "/hosts/stats"
	defaultHTTPTimeout = 15 * time.Second
	maxResponseBytes   = 1 << 20
)

// submission is a signed report ready to send.
type submission struct {
	payload   []byte
	signature string
	gzip      bool
}

// prepareReport makes sure payload is a JSON object carrying holoportID.
// When the field is absent it is added and added is true.
func prepareReport(payload []byte, holoportID string) (out []byte, added bool, err error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil || fields == nil {
		return nil, false, errPayloadNotJSON
	}

	raw, ok := fields["holoportId"]
	if !ok {
		fields["holoportId"], err = json.Marshal(holoportID)
		if err != nil {
			return nil, false, err
		}

		out, err = json.Marshal(fields)

		return out, true, err
	}

	var claimed string
	if err := json.Unmarshal(raw, &claimed); err != nil || claimed != holoportID {
		return nil, false, errIdentityMismatch
	}

	return payload, false, nil
}

// submitReport posts a signed report and returns the stored record.
func submitReport(ctx context.Context, client *http.Client, server string, sub submission) (*models.TelemetryReport, error) {
	body := sub.payload

	if sub.gzip {
		var buf bytes.Buffer

		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write(sub.payload); err != nil {
			return nil, err
		}

		if err := zw.Close(); err != nil {
			return nil, err
		}

		body = buf.Bytes()
	}

	url := strings.TrimRight(server, "/") + statsPath

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent("hostctl"))
	req.Header.Set(identity.SignatureHeader, sub.signature)

	if sub.gzip {
		req.Header.Set("Content-Encoding", "gzip")
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr models.ErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%w: %d %s", errSubmissionFailed, resp.StatusCode, apiErr.Message)
		}

		return nil, fmt.Errorf("%w: %d %s", errSubmissionFailed, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var report models.TelemetryReport
	if err := json.Unmarshal(respBody, &report); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &report, nil
}
