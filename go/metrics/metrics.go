// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package metrics exposes runtime statistics of transaction processing
// through prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the collectors of the runtime.
	Registry = prometheus.NewRegistry()

	transactions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumen",
			Subsystem: "processor",
			Name:      "transactions_total",
			Help:      "Total number of processed transactions by receipt code.",
		},
		[]string{"code"},
	)

	gasUsed = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lumen",
			Subsystem: "processor",
			Name:      "gas_used",
			Help:      "Gas used per transaction.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 10),
		},
	)

	callDepth = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lumen",
			Subsystem: "processor",
			Name:      "call_depth",
			Help:      "Deepest call frame reached per transaction.",
			Buckets:   prometheus.LinearBuckets(1, 4, 16),
		},
	)

	eventsEmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lumen",
			Subsystem: "processor",
			Name:      "events_total",
			Help:      "Total number of events emitted by successful transactions.",
		},
	)

	eventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumen",
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Total number of events delivered to the event bus by name.",
		},
		[]string{"name"},
	)
)

func init() {
	Registry.MustRegister(
		transactions,
		gasUsed,
		callDepth,
		eventsEmitted,
		eventsPublished,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RecordTransaction records the outcome of a processed transaction.
func RecordTransaction(code string, gas int64, depth int, events int) {
	transactions.WithLabelValues(code).Inc()
	gasUsed.Observe(float64(gas))
	if depth > 0 {
		callDepth.Observe(float64(depth))
	}
	eventsEmitted.Add(float64(events))
}

// RecordPublishedEvent counts an event delivered to observers.
func RecordPublishedEvent(name string) {
	eventsPublished.WithLabelValues(name).Inc()
}
