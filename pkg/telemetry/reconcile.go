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
	"fmt"

	"github.com/carverauto/holostats/pkg/models"
)

const (
	errNoAddress      = "holoport has no IP assigned in the ZeroTier network"
	errSilentAddress  = "IP %s is listed in Zerotier Central as active, but no holoport reported this IP via netstatsd within queried timeframe"
	errMismatchedID   = "Mismatched holoport ID between data from zerotier (%s) and netstatsd (%s)"
	errUnknownAddress = "Netstatsd reported zerotier IP as %s but Zerotier Central has no knowledge of it"
)

// Reconcile merges the latest telemetry of each device with the ZeroTier
// presence snapshot, joining on network address. Every presence record yields
// one view; telemetry no member claimed yields a view of its own. Each
// telemetry record is consumed at most once. Inconsistencies are recorded on
// the view rather than returned.
func Reconcile(reports []models.TelemetryReport, members []models.PresenceRecord) []models.FleetHostView {
	byAddress := make(map[string][]int, len(reports))

	for i := range reports {
		if ip := reports[i].ZerotierIP; ip != nil {
			byAddress[*ip] = append(byAddress[*ip], i)
		}
	}

	consumed := make([]bool, len(reports))
	views := make([]models.FleetHostView, 0, len(members)+len(reports))

	for i := range members {
		member := &members[i]

		view := models.FleetHostView{
			ZerotierIP:         member.ZerotierIP,
			WanIP:              member.PhysicalAddress,
			LastZerotierOnline: nonZero(member.LastOnline),
			RegisteredEmail:    member.Description,
			Errors:             []string{},
		}

		switch {
		case member.ZerotierIP == nil:
			view.Errors = append(view.Errors, errNoAddress)
		case len(byAddress[*member.ZerotierIP]) == 0:
			view.Errors = append(view.Errors, fmt.Sprintf(errSilentAddress, *member.ZerotierIP))
		default:
			queue := byAddress[*member.ZerotierIP]
			idx := queue[0]
			byAddress[*member.ZerotierIP] = queue[1:]
			consumed[idx] = true

			report := &reports[idx]
			applyReport(&view, report)

			if member.Name == nil || *member.Name != report.HoloportID {
				view.Errors = append(view.Errors, fmt.Sprintf(errMismatchedID, valueOr(member.Name, "???"), report.HoloportID))
			}
		}

		views = append(views, view)
	}

	for i := range reports {
		if consumed[i] {
			continue
		}

		report := &reports[i]

		view := models.FleetHostView{
			ZerotierIP: report.ZerotierIP,
			Errors:     []string{fmt.Sprintf(errUnknownAddress, valueOr(report.ZerotierIP, "None"))},
		}
		applyReport(&view, report)

		views = append(views, view)
	}

	return views
}

func applyReport(view *models.FleetHostView, report *models.TelemetryReport) {
	id := report.HoloportID
	reported := report.Timestamp

	view.HoloportID = &id
	view.LastNetstatsdReported = &reported
	view.HoloNetwork = report.HoloNetwork
	view.Channel = report.Channel
	view.HoloportModel = report.HoloportModel
	view.SSHStatus = report.SSHStatus
	view.HposAppList = report.HposAppList
	view.ChannelVersion = report.ChannelVersion
	view.HposVersion = report.HposVersion
}

func nonZero(v int64) *int64 {
	if v == 0 {
		return nil
	}

	return &v
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}

	return *s
}
