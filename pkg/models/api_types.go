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

package models

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// UptimeResponse is returned by the per-host uptime endpoint.
type UptimeResponse struct {
	Uptime float64 `json:"uptime"`
}

// CleanupResponse reports the outcome of a retention purge.
type CleanupResponse struct {
	Deleted int64  `json:"deleted"`
	Horizon string `json:"horizon"`
}

// StatusResponse is the index route payload.
type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
