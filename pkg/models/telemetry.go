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

import "encoding/json"

// TelemetryReport is one authenticated status submission from a holoport.
// Timestamp is assigned by the server at acceptance time (Unix seconds).
type TelemetryReport struct {
	HoloportID     string          `json:"holoportId"`
	HoloNetwork    *string         `json:"holoNetwork,omitempty"`
	Channel        *string         `json:"channel,omitempty"`
	HoloportModel  *string         `json:"holoportModel,omitempty"`
	SSHStatus      *bool           `json:"sshStatus,omitempty"`
	ZerotierIP     *string         `json:"ztIp,omitempty"`
	WanIP          *string         `json:"wanIp,omitempty"`
	HposAppList    json.RawMessage `json:"hposAppList,omitempty"`
	ChannelVersion *string         `json:"channelVersion,omitempty"`
	HposVersion    *string         `json:"hposVersion,omitempty"`
	Timestamp      int64           `json:"timestamp"`

	// Seq is the store insertion sequence, used to order reports sharing a timestamp.
	Seq int64 `json:"-"`
}

// AuthorizedKey is one (role, public key) pair of a registration.
type AuthorizedKey struct {
	Role   string `json:"role"`
	PubKey string `json:"pubKey"`
}

// RegistrationRecord is an out-of-band host enrollment. Read-only to holostats.
type RegistrationRecord struct {
	ID    string          `json:"id"`
	Email string          `json:"email,omitempty"`
	Keys  []AuthorizedKey `json:"keys"`
}

// Authorizes reports whether any of the record's keys is the given network identity.
func (r *RegistrationRecord) Authorizes(networkIdentity string) bool {
	if r == nil || networkIdentity == "" {
		return false
	}

	for _, k := range r.Keys {
		if k.PubKey == networkIdentity {
			return true
		}
	}

	return false
}

// PresenceRecord is one authorized member of the ZeroTier network snapshot.
// LastOnline is milliseconds since the epoch; 0 means the member was never seen.
type PresenceRecord struct {
	Name            *string `json:"name,omitempty"`
	ZerotierIP      *string `json:"zerotierIp,omitempty"`
	LastOnline      int64   `json:"lastOnline"`
	PhysicalAddress *string `json:"physicalAddress,omitempty"`
	Description     *string `json:"description,omitempty"`
}

// FleetHostView merges the latest telemetry of a host with its presence record.
// Errors lists every inconsistency found while merging; it is empty, never nil,
// when both sources agree.
type FleetHostView struct {
	ZerotierIP            *string         `json:"zerotierIp"`
	WanIP                 *string         `json:"wanIp"`
	WanCountry            *string         `json:"wanCountry,omitempty"`
	LastZerotierOnline    *int64          `json:"lastZerotierOnline"`
	LastNetstatsdReported *int64          `json:"lastNetstatsdReported"`
	HoloportID            *string         `json:"holoportId"`
	RegisteredEmail       *string         `json:"registeredEmail"`
	HoloNetwork           *string         `json:"holoNetwork"`
	Channel               *string         `json:"channel"`
	HoloportModel         *string         `json:"holoportModel"`
	SSHStatus             *bool           `json:"sshStatus"`
	HposAppList           json.RawMessage `json:"hposAppList,omitempty"`
	ChannelVersion        *string         `json:"channelVersion"`
	HposVersion           *string         `json:"hposVersion"`
	Errors                []string        `json:"errors"`
}

// CapacityTally counts hosts meeting the uptime thresholds of each service tier.
type CapacityTally struct {
	TotalHosts  uint64 `json:"totalHosts"`
	ReadOnly    uint64 `json:"readOnly"`
	SourceChain uint64 `json:"sourceChain"`
}
