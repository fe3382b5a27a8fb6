package navigate

import (
	"iter"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/cost"
	"github.com/katalvlaran/anglefinder/explore"
	"github.com/katalvlaran/anglefinder/motion"
)

// frame is one node on the current branch.
type frame struct {
	at    angle.Angle
	best  cost.Cost
	edges []explore.Edge // ascending by cost
	next  int            // index of the next edge to try
	flex  cost.Cost      // slack left when this node was entered

	// out is the motion leaving this node toward the target (None at the
	// target) and claim the cost of the edge it was taken along.
	out   motion.Label
	claim cost.Cost
}

// Walker lazily enumerates routes into one target. It is not safe for
// concurrent use; create one Walker per goroutine.
type Walker struct {
	g        *explore.Graph
	model    *cost.Model
	target   angle.Angle
	flex     cost.Cost
	maxDepth int

	stack   []frame
	onStack [angle.Count / 64]uint64
	path    []motion.Label // motions from target backward
	started bool

	expanded int
	emitted  int
}

// NewWalker prepares a walk from target back to the starting angles of g.
func NewWalker(g *explore.Graph, target angle.Angle, opts ...Option) (*Walker, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Flex < 0 {
		o.Flex = g.Flex()
	}

	return &Walker{g: g, model: g.Model(), target: target, flex: o.Flex, maxDepth: o.MaxDepth}, nil
}

// Routes returns the walk from target as a single-use sequence.
func Routes(g *explore.Graph, target angle.Angle, opts ...Option) (iter.Seq[Route], error) {
	w, err := NewWalker(g, target, opts...)
	if err != nil {
		return nil, err
	}

	return func(yield func(Route) bool) {
		for {
			r, ok := w.Next()
			if !ok || !yield(r) {
				return
			}
		}
	}, nil
}

// Next returns the next route, or false once the walk is exhausted.
func (w *Walker) Next() (Route, bool) {
	if !w.started {
		w.started = true
		if r, ok := w.enter(w.target, w.flex, explore.Edge{}); ok {
			return r, true
		}
	}

	for len(w.stack) > 0 {
		top := &w.stack[len(w.stack)-1]

		// 1) Exhausted: leave the node so other branches may pass through it.
		if top.next >= len(top.edges) {
			w.unmark(top.at)
			w.stack = w.stack[:len(w.stack)-1]
			if len(w.stack) > 0 {
				w.path = w.path[:len(w.path)-1]
			}
			continue
		}

		// 2) Out of flex: every remaining edge costs at least as much.
		e := top.edges[top.next]
		top.next++
		flex := (top.best - e.Cost) + top.flex
		if flex < 0 {
			top.next = len(top.edges)
			continue
		}

		// 3) Chain correction: e may chain into top.out dearer than the
		// motion that priced top.claim.
		if top.out != motion.None {
			d, ok := w.drift(top.best, e.Motion, top.out, top.claim)
			if !ok || flex-d < 0 {
				continue
			}
			flex -= d
		}

		// 4) Descend along e.
		w.path = append(w.path, e.Motion)
		if r, ok := w.enter(e.From, flex, e); ok {
			return r, true
		}
	}

	return Route{}, false
}

// enter handles arrival at angle a with the given slack, along via (the
// zero Edge at the target). The motion that led here, if any, is already
// on w.path. A start node yields a route unless the first motion costs more
// from a standstill than via priced it; a node on the current branch, or one
// past the depth cap, is a dead end; anything else becomes a new frame.
func (w *Walker) enter(a angle.Angle, flex cost.Cost, via explore.Edge) (Route, bool) {
	n := w.g.Node(a)

	if n.Start() {
		if via.Motion != motion.None {
			if d, ok := w.drift(0, motion.None, via.Motion, via.Cost); !ok || flex-d < 0 {
				w.retreat()
				return Route{}, false
			}
		}
		r := w.route(a)
		w.retreat()
		w.emitted++

		return r, true
	}
	if w.marked(a) || (w.maxDepth >= 0 && len(w.path) >= w.maxDepth) {
		w.retreat()
		return Route{}, false
	}

	w.mark(a)
	w.stack = append(w.stack, frame{
		at:    a,
		best:  n.Best,
		edges: pricedFirst(n.Sorted(), via.Prev),
		flex:  flex,
		out:   via.Motion,
		claim: via.Cost,
	})
	w.expanded++

	return Route{}, false
}

// drift is how much arriving by motion in (at cost best) and then taking out
// costs beyond claim. It is never negative: a cheaper chain than the one
// the explorer priced does not add slack.
func (w *Walker) drift(best cost.Cost, in, out motion.Label, claim cost.Cost) (cost.Cost, bool) {
	inc, ok := w.model.Increment(in, out)
	if !ok {
		return 0, false
	}

	return max(best+inc-claim, 0), true
}

// pricedFirst moves the edge for motion prev to the front of the cheapest
// run of edges. That edge is the one the explorer extended, so walking it
// first reproduces the priced path.
func pricedFirst(edges []explore.Edge, prev motion.Label) []explore.Edge {
	if len(edges) == 0 {
		return edges
	}
	for i, e := range edges {
		if e.Cost != edges[0].Cost {
			break
		}
		if e.Motion == prev {
			copy(edges[1:i+1], edges[:i])
			edges[0] = e
			break
		}
	}

	return edges
}

// retreat drops the motion that led to a node that was not pushed.
func (w *Walker) retreat() {
	if len(w.path) > 0 {
		w.path = w.path[:len(w.path)-1]
	}
}

// route copies the current path, reversed into forward order.
func (w *Walker) route(start angle.Angle) Route {
	p := make([]motion.Label, len(w.path))
	for i, m := range w.path {
		p[len(w.path)-1-i] = m
	}

	return Route{Start: start, Target: w.target, Path: p}
}

func (w *Walker) mark(a angle.Angle)   { w.onStack[a>>6] |= 1 << (a & 63) }
func (w *Walker) unmark(a angle.Angle) { w.onStack[a>>6] &^= 1 << (a & 63) }
func (w *Walker) marked(a angle.Angle) bool {
	return w.onStack[a>>6]&(1<<(a&63)) != 0
}

// Expanded reports how many nodes have been pushed so far.
func (w *Walker) Expanded() int { return w.expanded }

// Emitted reports how many routes have been returned so far.
func (w *Walker) Emitted() int { return w.emitted }
