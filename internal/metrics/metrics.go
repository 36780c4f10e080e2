// SPDX-License-Identifier: MIT

// Package metrics records pipeline stage timings in a private prometheus
// registry and exports them as a node-exporter textfile.
package metrics

import (
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/spectral/fault"
)

// Namespace prefixes every metric name.
const Namespace = "spectral"

// Collector holds the pipeline metrics. It implements spectral.Observer.
type Collector struct {
	registry *prometheus.Registry

	StageDuration *prometheus.HistogramVec
	StageTotal    *prometheus.CounterVec
	Nodes         prometheus.Gauge
	Visits        prometheus.Counter

	visits atomic.Int64
}

// NewCollector creates and registers the metrics on a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "stage_duration_seconds",
				Help:      "Pipeline stage duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"stage"},
		),
		StageTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "stage_total",
				Help:      "Pipeline stages run, by outcome",
			},
			[]string{"stage", "status"},
		),
		Nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "graph_nodes",
			Help:      "Node count of the last clustered graph",
		}),
		Visits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "neighborhood_visits_total",
			Help:      "Nodes reached by neighborhood walks",
		}),
	}
	c.registry.MustRegister(c.StageDuration, c.StageTotal, c.Nodes, c.Visits)

	return c
}

// Registry exposes the collector's registry, e.g. for promhttp.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// StageDone implements spectral.Observer.
func (c *Collector) StageDone(stage fault.Stage, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.StageDuration.WithLabelValues(string(stage)).Observe(d.Seconds())
	c.StageTotal.WithLabelValues(string(stage), status).Inc()
	if stage == fault.StageSimilarity {
		c.Visits.Add(float64(c.visits.Swap(0)))
	}
}

// OnVisit counts one neighborhood visit. It is safe for concurrent use and
// matches the signature of spectral.WithOnVisit.
func (c *Collector) OnVisit(_, _ int, _ float64) {
	c.visits.Add(1)
}

// WriteTextfile atomically writes every metric to path in the text
// exposition format.
func (c *Collector) WriteTextfile(path string) error {
	return errors.Wrapf(prometheus.WriteToTextfile(path, c.registry), "metrics: write %s", path)
}
