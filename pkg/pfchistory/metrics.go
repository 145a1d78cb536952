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

package pfchistory

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeApplied  = "applied"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// Metrics exposes the task loop counters. A nil *Metrics records nothing.
type Metrics struct {
	events         *prometheus.CounterVec
	registered     prometheus.Gauge
	deferredPasses prometheus.Counter
	abortedPasses  prometheus.Counter
	hookLoaded     prometheus.Gauge
	clearedRecords prometheus.Counter
	droppedEvents  prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pfchistory_events_total",
			Help: "Configuration events processed, by operation and outcome",
		}, []string{"op", "outcome"}),
		registered: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pfchistory_registered_ports",
			Help: "Ports currently subscribed to PFC stat history polling",
		}),
		deferredPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pfchistory_deferred_passes_total",
			Help: "Task passes skipped because ports were not ready",
		}),
		abortedPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pfchistory_aborted_passes_total",
			Help: "Task passes stopped early on an unresolvable port",
		}),
		hookLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pfchistory_hook_loaded",
			Help: "1 when the per-sample counter plugin is registered with the polling group",
		}),
		clearedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pfchistory_cleared_records_total",
			Help: "Stale history records removed at startup",
		}),
		droppedEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pfchistory_dropped_registration_events_total",
			Help: "Registration events dropped because the publish queue was full",
		}),
	}

	reg.MustRegister(
		m.events,
		m.registered,
		m.deferredPasses,
		m.abortedPasses,
		m.hookLoaded,
		m.clearedRecords,
		m.droppedEvents,
	)

	return m
}

func (m *Metrics) observeEvent(op, outcome string) {
	if m == nil {
		return
	}

	m.events.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) setRegistered(n int) {
	if m == nil {
		return
	}

	m.registered.Set(float64(n))
}

func (m *Metrics) deferredPass() {
	if m == nil {
		return
	}

	m.deferredPasses.Inc()
}

func (m *Metrics) abortedPass() {
	if m == nil {
		return
	}

	m.abortedPasses.Inc()
}

func (m *Metrics) setHookLoaded(loaded bool) {
	if m == nil {
		return
	}

	if loaded {
		m.hookLoaded.Set(1)
	} else {
		m.hookLoaded.Set(0)
	}
}

func (m *Metrics) addCleared(n int) {
	if m == nil {
		return
	}

	m.clearedRecords.Add(float64(n))
}

func (m *Metrics) droppedEvent() {
	if m == nil {
		return
	}

	m.droppedEvents.Inc()
}
