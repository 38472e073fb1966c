/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package finality

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "voting"
	subsystem = "finality"
)

type Metrics struct {
	Submitted      prometheus.Counter
	SubmitFailures prometheus.Counter
	Polls          prometheus.Counter
	Outcomes       *prometheus.CounterVec
	WaitDuration   prometheus.Histogram
}

// NewMetrics creates the client metrics and registers them with reg, if not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Submitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "batches_submitted",
			Help:      "Number of batches accepted by the gateway.",
		}),
		SubmitFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "submit_failures",
			Help:      "Number of batch list submissions that failed.",
		}),
		Polls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "status_polls",
			Help:      "Number of batch status requests.",
		}),
		Outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "outcomes",
			Help:      "Resolved batch outcomes by status.",
		}, []string{"status"}),
		WaitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "wait_seconds",
			Help:      "Time spent waiting for a batch outcome.",
			Buckets:   []float64{.1, .5, 1, 2, 5, 10, 30},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Submitted, m.SubmitFailures, m.Polls, m.Outcomes, m.WaitDuration)
	}
	return m
}
