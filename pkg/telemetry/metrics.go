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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the ingest and retention counters.
type Metrics struct {
	ReportsAccepted    prometheus.Counter
	ReportsRejected    *prometheus.CounterVec
	EventPublishErrors prometheus.Counter
	ReportsPurged      prometheus.Counter
}

// NewMetrics registers the counters with reg. A nil reg keeps them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ReportsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "holostats",
			Name:      "reports_accepted_total",
			Help:      "Total number of telemetry reports stored",
		}),
		ReportsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "holostats",
			Name:      "reports_rejected_total",
			Help:      "Total number of telemetry reports rejected, by reason",
		}, []string{"reason"}),
		EventPublishErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "holostats",
			Name:      "event_publish_errors_total",
			Help:      "Total number of telemetry.accepted events that failed to publish",
		}),
		ReportsPurged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "holostats",
			Name:      "reports_purged_total",
			Help:      "Total number of telemetry reports removed by retention",
		}),
	}
}
