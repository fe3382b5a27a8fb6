// Package metrics records search statistics in Prometheus collectors.
//
// The tool is a batch job, so nothing is served over HTTP; a Recorder owns
// a private registry and writes it out in the text exposition format for a
// node-exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/explore"
)

const namespace = "anglefinder"

// Recorder holds the collectors for one process.
type Recorder struct {
	reg *prometheus.Registry

	pushes   prometheus.Counter
	pops     prometheus.Counter
	stale    prometheus.Counter
	admitted prometheus.Counter
	rejected prometheus.Counter

	reached   prometheus.Gauge
	maxCost   prometheus.Gauge
	earlyExit prometheus.Gauge
	duration  prometheus.Histogram

	routes  *prometheus.CounterVec
	results *prometheus.GaugeVec
}

// New registers every collector on a fresh registry.
func New() *Recorder {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "explore", Name: name, Help: help,
		})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "explore", Name: name, Help: help,
		})
	}

	r := &Recorder{
		reg:       prometheus.NewRegistry(),
		pushes:    counter("pushes_total", "Heap pushes, including starting angles."),
		pops:      counter("pops_total", "Heap pops."),
		stale:     counter("stale_pops_total", "Pops skipped because a cheaper path was known."),
		admitted:  counter("edges_admitted_total", "Edges recorded by the admission rule."),
		rejected:  counter("edges_rejected_total", "Edges refused by the admission rule."),
		reached:   gauge("reached_angles", "Distinct angles reached by the last exploration."),
		maxCost:   gauge("max_cost", "Cost of the last popped entry."),
		earlyExit: gauge("early_exit", "1 if the last exploration stopped once every angle was reached."),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "explore", Name: "duration_seconds",
			Help:    "Wall time of graph construction.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		routes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "rank", Name: "routes_sampled_total",
			Help: "Routes drawn from the walker, by target angle.",
		}, []string{"target"}),
		results: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "rank", Name: "results",
			Help: "Results kept after ranking, by target angle.",
		}, []string{"target"}),
	}
	r.reg.MustRegister(
		r.pushes, r.pops, r.stale, r.admitted, r.rejected,
		r.reached, r.maxCost, r.earlyExit, r.duration,
		r.routes, r.results,
	)

	return r
}

// ObserveExplore records one exploration.
func (r *Recorder) ObserveExplore(st explore.Stats, took time.Duration) {
	r.pushes.Add(float64(st.Pushes))
	r.pops.Add(float64(st.Pops))
	r.stale.Add(float64(st.Stale))
	r.admitted.Add(float64(st.Admitted))
	r.rejected.Add(float64(st.Rejected))
	r.reached.Set(float64(st.Reached))
	r.maxCost.Set(st.MaxCost.Float())
	if st.EarlyExit {
		r.earlyExit.Set(1)
	} else {
		r.earlyExit.Set(0)
	}
	r.duration.Observe(took.Seconds())
}

// ObserveRank records how many routes were sampled for target and how many
// survived ranking.
func (r *Recorder) ObserveRank(target angle.Angle, sampled, kept int) {
	r.routes.WithLabelValues(target.String()).Add(float64(sampled))
	r.results.WithLabelValues(target.String()).Set(float64(kept))
}

// Registry exposes the private registry, for tests and embedding.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// WriteTextfile writes every metric to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}

	return nil
}
