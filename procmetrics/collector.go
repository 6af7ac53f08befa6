// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package procmetrics exports machine lifecycle events as Prometheus
// metrics.
//
//	c := procmetrics.New("app")
//	prometheus.MustRegister(c)
//	m := proc.New(proc.WithHooks(c.Hooks()))
package procmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"code.hybscloud.com/proc"
)

// Collector counts process lifecycle events. It implements
// prometheus.Collector.
type Collector struct {
	started     *prometheus.CounterVec
	transitions *prometheus.CounterVec
	ended       *prometheus.CounterVec
	live        prometheus.Gauge
	passes      prometheus.Counter
	dirty       prometheus.Histogram
}

// New creates a collector whose metric names are prefixed by namespace.
func New(namespace string) *Collector {
	return &Collector{
		started: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proc_started_total",
			Help:      "Chains started, by label of the first process.",
		}, []string{"label"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proc_transitions_total",
			Help:      "Transitions, by label of the successor.",
		}, []string{"label"}),
		ended: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proc_ended_total",
			Help:      "Chains ended, by label of the last process.",
		}, []string{"label"}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "proc_live_chains",
			Help:      "Chains with a live process.",
		}),
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "proc_passes_total",
			Help:      "Scheduling passes run.",
		}),
		dirty: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "proc_pass_dirty_processes",
			Help:      "Dirty processes stepped per pass.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}
}

// Hooks returns machine observers that feed the collector.
func (c *Collector) Hooks() proc.Hooks {
	return proc.Hooks{
		OnStart: func(info proc.ProcessInfo) {
			c.started.WithLabelValues(info.Label).Inc()
			c.live.Inc()
		},
		OnTransition: func(_, to proc.ProcessInfo) {
			c.transitions.WithLabelValues(to.Label).Inc()
		},
		OnEnd: func(info proc.ProcessInfo) {
			c.ended.WithLabelValues(info.Label).Inc()
			c.live.Dec()
		},
		OnPass: func(dirty int) {
			c.passes.Inc()
			c.dirty.Observe(float64(dirty))
		},
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.started.Describe(ch)
	c.transitions.Describe(ch)
	c.ended.Describe(ch)
	c.live.Describe(ch)
	c.passes.Describe(ch)
	c.dirty.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.started.Collect(ch)
	c.transitions.Collect(ch)
	c.ended.Collect(ch)
	c.live.Collect(ch)
	c.passes.Collect(ch)
	c.dirty.Collect(ch)
}
