package explore

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/cost"
	"github.com/katalvlaran/anglefinder/motion"
)

// cancelEvery is how many pops pass between context checks.
const cancelEvery = 1 << 12

// Explore builds the graph of best-known edges into every angle reachable
// from starts, where each start is reachable at cost 0 with no prior motion.
//
// It is a multi-source Dijkstra variant with lazy deletion:
//
//  1. Every start gets a motion.None edge at cost 0 and is pushed.
//  2. The cheapest (cost, angle, last motion) entry is popped. If the angle
//     is already known more cheaply the entry is stale and is skipped.
//  3. Every motion allowed after the last motion is applied; inapplicable
//     motions are skipped. The resulting edge goes through the admission rule
//     (see admit) and is pushed if recorded.
//  4. The loop ends when the heap empties, or as soon as every angle has been
//     reached. That early exit misses some costlier edges into reached nodes;
//     it is a deliberate approximation.
//
// Heap ties are broken by angle and then motion label, so identical inputs
// always produce an identical graph.
func Explore(model *cost.Model, catalog *motion.Catalog, starts []angle.Angle, opts ...Option) (*Graph, error) {
	// 1) Options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate inputs
	if model == nil {
		return nil, ErrNilModel
	}
	if catalog == nil {
		return nil, ErrNilCatalog
	}
	if len(starts) == 0 {
		return nil, ErrNoStarts
	}
	motions := make(map[motion.Label]motion.Motion, len(model.Allowed()))
	for _, l := range model.Allowed() {
		m, ok := catalog.Lookup(l)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMotion, l)
		}
		motions[l] = m
	}

	r := &runner{
		g:       &Graph{model: model, flex: cfg.Flex},
		model:   model,
		motions: motions,
		options: cfg,
		pq:      make(entryPQ, 0, angle.Count),
	}
	r.init(starts)
	if err := r.process(); err != nil {
		return nil, err
	}

	return r.g, nil
}

// runner holds the mutable state of one exploration.
type runner struct {
	g       *Graph
	model   *cost.Model
	motions map[motion.Label]motion.Motion
	options Options
	pq      entryPQ
}

// init seeds every distinct start with a cost-0 None edge.
func (r *runner) init(starts []angle.Angle) {
	heap.Init(&r.pq)
	for _, a := range starts {
		n := &r.g.nodes[a]
		if n.Reached {
			continue // duplicate start
		}
		n.Edges = map[motion.Label]Edge{motion.None: {From: a, Motion: motion.None, Cost: 0}}
		n.Best = 0
		n.Reached = true
		r.g.starts = append(r.g.starts, a)
		r.g.stats.Reached++
		r.push(entry{cost: 0, angle: a, last: motion.None})
	}
}

// process pops entries until the heap is empty or every angle is reached.
func (r *runner) process() error {
	st := &r.g.stats
	log := r.options.Logger
	var reported cost.Cost

	for r.pq.Len() > 0 {
		if r.options.EarlyExit && st.Reached == angle.Count {
			st.EarlyExit = true
			break
		}
		if st.Pops%cancelEvery == 0 {
			if err := r.options.Ctx.Err(); err != nil {
				return fmt.Errorf("explore: interrupted after %d pops: %w", st.Pops, err)
			}
		}

		e := heap.Pop(&r.pq).(entry)
		st.Pops++
		st.MaxCost = e.cost

		if e.cost > reported+cost.Scale {
			log.Debug("exploring", "queue", r.pq.Len(), "cost", e.cost.String(), "reached", st.Reached)
			reported = e.cost
		}

		// A cheaper way into this angle is known; its own entry covers the successors.
		if r.g.nodes[e.angle].Best < e.cost {
			st.Stale++
			continue
		}

		r.relax(e)
	}

	log.Debug("exploration done",
		"reached", st.Reached, "pops", st.Pops, "stale", st.Stale,
		"admitted", st.Admitted, "rejected", st.Rejected, "early_exit", st.EarlyExit)

	return nil
}

// relax applies every motion allowed after e.last to e.angle.
func (r *runner) relax(e entry) {
	for _, step := range r.model.Successors(e.last) {
		to, ok := r.motions[step.Motion].Apply(e.angle)
		if !ok {
			continue
		}
		edge := Edge{From: e.angle, Motion: step.Motion, Prev: e.last, Cost: e.cost + step.Cost}
		if r.admit(to, edge) {
			r.push(entry{cost: edge.Cost, angle: to, last: step.Motion})
		}
	}
}

// admit records edge into node to if it is worth keeping:
//
//   - an unreached node always takes its first edge;
//   - an edge costing more than Best+Flex is rejected;
//   - otherwise it is kept if it is the first edge for its motion, or
//     strictly cheaper than the one already held for that motion.
func (r *runner) admit(to angle.Angle, edge Edge) bool {
	n := &r.g.nodes[to]
	st := &r.g.stats

	if !n.Reached {
		n.Edges = map[motion.Label]Edge{edge.Motion: edge}
		n.Best = edge.Cost
		n.Reached = true
		st.Reached++
		st.Admitted++

		return true
	}

	if edge.Cost > n.Best+r.g.flex {
		st.Rejected++
		return false
	}

	if old, ok := n.Edges[edge.Motion]; !ok || edge.Cost < old.Cost {
		if ok {
			edge.seq = old.seq
		} else {
			edge.seq = len(n.Edges)
		}
		n.Edges[edge.Motion] = edge
		if edge.Cost < n.Best {
			n.Best = edge.Cost
		}
		st.Admitted++

		return true
	}

	st.Rejected++

	return false
}

func (r *runner) push(e entry) {
	heap.Push(&r.pq, e)
	r.g.stats.Pushes++
}

// entry is a heap item: an angle reached at cost with last as the final motion.
type entry struct {
	cost  cost.Cost
	angle angle.Angle
	last  motion.Label
}

// entryPQ is a min-heap of entries ordered by (cost, angle, last).
// Stale entries stay in the heap and are skipped when popped.
type entryPQ []entry

// Len returns the number of items in the heap.
func (pq entryPQ) Len() int { return len(pq) }

// Less orders by cost, then angle, then motion label.
func (pq entryPQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	if a.angle != b.angle {
		return a.angle < b.angle
	}

	return a.last < b.last
}

// Swap swaps two elements in the heap.
func (pq entryPQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends x; called by heap.Push.
func (pq *entryPQ) Push(x interface{}) { *pq = append(*pq, x.(entry)) }

// Pop removes the last element; called by heap.Pop.
func (pq *entryPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
