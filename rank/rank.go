// Package rank samples routes out of an explored graph and orders them by
// their true path cost.
//
// A walk emits its first route at (or tied for) the optimal cost, but later
// routes come in DFS order, not cost order. Collect therefore takes a sample
// of the first routes, prices each one with the cost model and keeps the
// cheapest.
package rank

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/cost"
	"github.com/katalvlaran/anglefinder/explore"
	"github.com/katalvlaran/anglefinder/motion"
	"github.com/katalvlaran/anglefinder/navigate"
)

// Defaults for Collect.
const (
	DefaultSampleSize = 20
	DefaultNumber     = 10
)

// ErrNilModel is returned when no cost model is given.
var ErrNilModel = errors.New("rank: cost model is nil")

// Result is one priced route.
type Result struct {
	Cost  cost.Cost
	Route navigate.Route
}

// Options configures Collect and CollectAll.
type Options struct {
	// SampleSize is how many routes to draw per target. 0 draws them all.
	SampleSize int
	// Number is how many of the cheapest sampled routes to keep per target.
	// 0 keeps the whole sample.
	Number int
	// Walk is forwarded to navigate.NewWalker.
	Walk []navigate.Option
	// Observe, if set, is told per target how many routes were drawn and
	// how many were kept.
	Observe func(target angle.Angle, sampled, kept int)
}

// Option is a functional option for Collect.
type Option func(*Options)

// WithSampleSize sets the per-target sample. Negative values panic.
func WithSampleSize(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic("rank: sample size must be non-negative")
		}
		o.SampleSize = n
	}
}

// WithNumber sets how many results survive per target. Negative values panic.
func WithNumber(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic("rank: number must be non-negative")
		}
		o.Number = n
	}
}

// WithWalkOptions passes options through to the route walker.
func WithWalkOptions(opts ...navigate.Option) Option {
	return func(o *Options) {
		o.Walk = append(o.Walk, opts...)
	}
}

// WithObserver installs a per-target callback, e.g. a metrics recorder.
func WithObserver(fn func(target angle.Angle, sampled, kept int)) Option {
	return func(o *Options) {
		o.Observe = fn
	}
}

// DefaultOptions returns a sample of 20 and a result count of 10.
func DefaultOptions() Options {
	return Options{SampleSize: DefaultSampleSize, Number: DefaultNumber}
}

// Collect draws up to SampleSize routes into target, prices them with model
// and returns the Number cheapest, sorted. An unreached target gives an
// empty result and no error.
func Collect(g *explore.Graph, model *cost.Model, target angle.Angle, opts ...Option) ([]Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return collect(g, model, target, o)
}

// CollectAll runs Collect for every target and returns the union, sorted.
// Each target contributes at most Number results.
func CollectAll(g *explore.Graph, model *cost.Model, targets []angle.Angle, opts ...Option) ([]Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var out []Result
	for _, t := range targets {
		rs, err := collect(g, model, t, o)
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	Sort(out)

	return out, nil
}

func collect(g *explore.Graph, model *cost.Model, target angle.Angle, o Options) ([]Result, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	w, err := navigate.NewWalker(g, target, o.Walk...)
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}

	var out []Result
	for o.SampleSize == 0 || len(out) < o.SampleSize {
		r, ok := w.Next()
		if !ok {
			break
		}
		c, err := model.PathCost(r.Path)
		if err != nil {
			return nil, fmt.Errorf("rank: pricing route to %s: %w", target, err)
		}
		out = append(out, Result{Cost: c, Route: r})
	}

	sampled := len(out)
	Sort(out)
	if o.Number > 0 && len(out) > o.Number {
		out = out[:o.Number]
	}
	if o.Observe != nil {
		o.Observe(target, sampled, len(out))
	}

	return out, nil
}

// Sort orders results by cost, then start angle, then path, comparing
// motion labels one at a time with a shorter prefix first.
func Sort(rs []Result) {
	sort.SliceStable(rs, func(i, j int) bool {
		return Less(rs[i], rs[j])
	})
}

// Less reports whether a sorts before b.
func Less(a, b Result) bool {
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	if a.Route.Start != b.Route.Start {
		return a.Route.Start < b.Route.Start
	}

	return lessPath(a.Route.Path, b.Route.Path)
}

func lessPath(a, b []motion.Label) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return len(a) < len(b)
}
