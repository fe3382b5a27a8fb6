// Package explore defines the search graph over all 65536 angles and the
// options for building it.
//
// Every angle has a pre-allocated Node. A Node does not keep a single
// predecessor the way textbook Dijkstra does; it keeps the cheapest known
// incoming Edge per motion label. The next motion's cost depends on the last
// motion used, so the path enumerator needs to know, for each way of
// arriving, which motion arrived.
//
// Options:
//
//   - WithFlex(c):        slack an edge may exceed a node's best cost by and
//     still be recorded (default 3).
//   - WithLogger(l):      progress logging, one line per whole unit of cost.
//   - WithContext(ctx):   cancellation, polled between heap pops.
//   - WithoutEarlyExit(): keep popping after every angle has been reached.
//
// Errors (sentinel):
//
//   - ErrNoStarts      if no starting angle is given.
//   - ErrNilModel      if the cost model is nil.
//   - ErrNilCatalog    if the motion catalog is nil.
//   - ErrUnknownMotion if the model allows a motion the catalog lacks.
package explore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/cost"
	"github.com/katalvlaran/anglefinder/motion"
)

// Sentinel errors returned by Explore.
var (
	// ErrNoStarts indicates an empty set of starting angles.
	ErrNoStarts = errors.New("explore: no starting angles")

	// ErrNilModel indicates a nil *cost.Model.
	ErrNilModel = errors.New("explore: cost model is nil")

	// ErrNilCatalog indicates a nil *motion.Catalog.
	ErrNilCatalog = errors.New("explore: motion catalog is nil")

	// ErrUnknownMotion indicates an allowed motion with no catalog entry.
	ErrUnknownMotion = errors.New("explore: allowed motion missing from catalog")
)

// DefaultFlex is the slack used when WithFlex is not given.
var DefaultFlex = cost.Units(3)

// Edge records the cheapest known way to arrive at a node with Motion as the
// last step: from angle From, at total path cost Cost. Cost may exceed the
// destination's Best when this edge is not on the fastest path.
//
// Prev is the motion that arrived at From on the path that priced this edge,
// so Cost = From's cost + the Prev→Motion increment.
type Edge struct {
	From   angle.Angle
	Motion motion.Label
	Prev   motion.Label
	Cost   cost.Cost

	seq int // admission order of Motion into the node; kept on replacement
}

// Node is the state of one angle after exploration.
type Node struct {
	// Edges holds the best incoming edge per motion label. A starting angle
	// carries an edge under motion.None.
	Edges map[motion.Label]Edge

	// Best is the minimum cost over Edges. Meaningless when !Reached.
	Best cost.Cost

	// Reached reports whether any edge has been recorded.
	Reached bool
}

// Start reports whether this node is a starting angle.
func (n *Node) Start() bool {
	_, ok := n.Edges[motion.None]

	return ok
}

// Sorted returns the incoming edges ascending by cost. Ties keep the order
// in which each motion first reached the node.
func (n *Node) Sorted() []Edge {
	out := make([]Edge, 0, len(n.Edges))
	for _, e := range n.Edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}

		return out[i].seq < out[j].seq
	})

	return out
}

// Stats summarizes one exploration.
type Stats struct {
	Pushes    int       // heap pushes, including the starting angles
	Pops      int       // heap pops
	Stale     int       // pops skipped because a cheaper path was already found
	Admitted  int       // edges recorded (new or replacing)
	Rejected  int       // edges refused by the admission rule
	Reached   int       // distinct angles reached
	MaxCost   cost.Cost // cost of the last popped entry
	EarlyExit bool      // stopped because every angle had been reached
}

// Graph is the read-only result of Explore.
type Graph struct {
	nodes  [angle.Count]Node
	model  *cost.Model
	flex   cost.Cost
	starts []angle.Angle
	stats  Stats
}

// Node returns the node for a. The node must not be modified.
func (g *Graph) Node(a angle.Angle) *Node { return &g.nodes[a] }

// Best returns the cheapest known cost to reach a.
func (g *Graph) Best(a angle.Angle) (cost.Cost, bool) {
	n := &g.nodes[a]

	return n.Best, n.Reached
}

// Model returns the cost model the graph was priced with.
func (g *Graph) Model() *cost.Model { return g.model }

// Flex returns the slack the graph was built with.
func (g *Graph) Flex() cost.Cost { return g.flex }

// Starts returns the distinct starting angles in the order given.
func (g *Graph) Starts() []angle.Angle {
	out := make([]angle.Angle, len(g.starts))
	copy(out, g.starts)

	return out
}

// Stats returns the exploration counters.
func (g *Graph) Stats() Stats { return g.stats }

// Options configures Explore.
type Options struct {
	Flex      cost.Cost
	Logger    *slog.Logger
	Ctx       context.Context
	EarlyExit bool
}

// Option is a functional option for Explore.
type Option func(*Options)

// WithFlex sets the admission slack. Negative values panic.
func WithFlex(c cost.Cost) Option {
	return func(o *Options) {
		if c < 0 {
			panic("explore: flex must be non-negative")
		}
		o.Flex = c
	}
}

// WithLogger installs a logger for progress output.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithContext sets a context for cancellation. nil is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithoutEarlyExit keeps exploring after every angle has been reached. The
// default early exit misses some valid, costlier edges into reached nodes;
// this is for comparing against that approximation, not for normal runs.
func WithoutEarlyExit() Option {
	return func(o *Options) {
		o.EarlyExit = false
	}
}

// DefaultOptions returns the defaults: DefaultFlex, a discarding logger,
// context.Background and early exit enabled.
func DefaultOptions() Options {
	return Options{
		Flex:      DefaultFlex,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Ctx:       context.Background(),
		EarlyExit: true,
	}
}
