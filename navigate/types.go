// Package navigate reconstructs motion sequences by walking an explored
// graph backward, from a target angle to any starting angle.
//
// The walk is a depth-first search over each node's per-motion incoming
// edges, cheapest first, with a slack budget ("flex") that shrinks by however
// much each chosen edge exceeds its node's best cost. Once the remaining
// flex would go negative, every costlier edge at that node is skipped too.
// A node already on the current branch is a dead end, so no emitted path
// visits an angle twice even though the graph has cycles.
//
// Edge costs assume a particular previous motion. When the walk picks a
// different one, the chain increment into the next motion can be dearer
// (up to cost.Forbidden); that difference is also charged against flex, so
// every emitted route really costs at most best + flex. Among equally cheap
// edges the one the explorer extended is tried first, then the rest in the
// order they reached the node.
//
// Guarantees:
//
//   - The first route of a walk is cost-optimal (or tied for optimal).
//   - Later routes are within the flex budget but are NOT ordered by cost.
//   - An unreached target produces no routes.
//
// The traversal uses an explicit frame stack instead of recursion, with a
// visited set and path buffer owned by each Walker, so walks are restartable
// and independent.
package navigate

import (
	"errors"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/cost"
	"github.com/katalvlaran/anglefinder/motion"
)

// ErrNilGraph is returned when a nil *explore.Graph is passed.
var ErrNilGraph = errors.New("navigate: graph is nil")

// Route is one reconstructed motion sequence. Applying Path left to right
// from Start reaches Target.
type Route struct {
	Start  angle.Angle
	Target angle.Angle
	Path   []motion.Label
}

// Options configures a walk.
type Options struct {
	// Flex is the total slack budget. Negative means "use the graph's flex".
	Flex cost.Cost

	// MaxDepth, if non-negative, caps the number of motions in a route.
	// Default -1 (no cap).
	MaxDepth int
}

// Option is a functional option for NewWalker and Routes.
type Option func(*Options)

// WithFlex overrides the slack budget. Negative values panic.
func WithFlex(c cost.Cost) Option {
	return func(o *Options) {
		if c < 0 {
			panic("navigate: flex must be non-negative")
		}
		o.Flex = c
	}
}

// WithMaxDepth caps route length. A negative limit disables the cap.
func WithMaxDepth(limit int) Option {
	return func(o *Options) {
		o.MaxDepth = limit
	}
}

// DefaultOptions returns the graph's own flex and no depth cap.
func DefaultOptions() Options {
	return Options{Flex: -1, MaxDepth: -1}
}
