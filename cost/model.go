package cost

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/anglefinder/motion"
)

// Model answers "what does next cost after prev" for the allowed motion set.
// It is immutable once built and safe to share.
type Model struct {
	// rows[prev][next]; rows exist for None and every allowed motion.
	rows map[motion.Label]map[motion.Label]Cost

	// succ[prev] holds rows[prev] as a label-sorted slice for deterministic iteration.
	succ map[motion.Label][]Step

	base    map[motion.Label]Cost
	allowed []motion.Label
}

// NewModel validates cfg and resolves it into a Model.
//
// Steps:
//  1. Validate base costs, chains and groups.
//  2. Start every row (None and each base motion) as a copy of Base.
//  3. Apply chain overrides.
//  4. Drop rows and columns of motions outside the allowed groups.
func NewModel(cfg Config) (*Model, error) {
	// 1) Validation
	for l, c := range cfg.Base {
		if l == motion.None {
			return nil, fmt.Errorf("cost: base cost for empty motion label")
		}
		if c < 0 {
			return nil, fmt.Errorf("%w: %q=%s", ErrNegativeCost, l, c)
		}
	}
	for _, ch := range cfg.Chains {
		if _, ok := cfg.Base[ch.Prev]; !ok {
			return nil, fmt.Errorf("%w: chain (%q, %q)", ErrUnknownMotion, ch.Prev, ch.Next)
		}
		if _, ok := cfg.Base[ch.Next]; !ok {
			return nil, fmt.Errorf("%w: chain (%q, %q)", ErrUnknownMotion, ch.Prev, ch.Next)
		}
		if ch.Cost < 0 {
			return nil, fmt.Errorf("%w: chain (%q, %q)=%s", ErrNegativeCost, ch.Prev, ch.Next, ch.Cost)
		}
	}

	allowed := make(map[motion.Label]bool, len(cfg.Base))
	if len(cfg.Allowed) == 0 {
		for l := range cfg.Base {
			allowed[l] = true
		}
	}
	for _, g := range cfg.Allowed {
		members, ok := cfg.Groups[g]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, g)
		}
		for _, l := range members {
			if _, ok := cfg.Base[l]; !ok {
				return nil, fmt.Errorf("%w: %q in group %q", ErrUnknownMotion, l, g)
			}
			allowed[l] = true
		}
	}

	// 2) Rows start as Base
	rows := make(map[motion.Label]map[motion.Label]Cost, len(cfg.Base)+1)
	newRow := func() map[motion.Label]Cost {
		r := make(map[motion.Label]Cost, len(cfg.Base))
		for l, c := range cfg.Base {
			r[l] = c
		}

		return r
	}
	rows[motion.None] = newRow()
	for l := range cfg.Base {
		rows[l] = newRow()
	}

	// 3) Chains
	for _, ch := range cfg.Chains {
		rows[ch.Prev][ch.Next] = ch.Cost
	}

	// 4) Restrict to allowed motions
	for l := range cfg.Base {
		if allowed[l] {
			continue
		}
		delete(rows, l)
		for _, r := range rows {
			delete(r, l)
		}
	}

	m := &Model{
		rows: rows,
		succ: make(map[motion.Label][]Step, len(rows)),
		base: make(map[motion.Label]Cost, len(allowed)),
	}
	for prev, r := range rows {
		steps := make([]Step, 0, len(r))
		for next, c := range r {
			steps = append(steps, Step{Motion: next, Cost: c})
		}
		sort.Slice(steps, func(i, j int) bool { return steps[i].Motion < steps[j].Motion })
		m.succ[prev] = steps
	}
	for l := range allowed {
		m.base[l] = cfg.Base[l]
		m.allowed = append(m.allowed, l)
	}
	sort.Slice(m.allowed, func(i, j int) bool { return m.allowed[i] < m.allowed[j] })

	return m, nil
}

// Increment returns the cost of performing next right after prev.
// ok is false when either motion is outside the allowed set.
func (m *Model) Increment(prev, next motion.Label) (Cost, bool) {
	r, ok := m.rows[prev]
	if !ok {
		return 0, false
	}
	c, ok := r[next]

	return c, ok
}

// Successors lists the motions permitted after prev, sorted by label.
// The returned slice is shared and must not be modified.
func (m *Model) Successors(prev motion.Label) []Step {
	return m.succ[prev]
}

// PathCost replays path from None and sums the increments.
func (m *Model) PathCost(path []motion.Label) (Cost, error) {
	var total Cost
	last := motion.None
	for i, next := range path {
		c, ok := m.Increment(last, next)
		if !ok {
			return 0, fmt.Errorf("%w: step %d (%q after %q)", ErrNotAllowed, i, next, last)
		}
		total += c
		last = next
	}

	return total, nil
}

// Allowed returns the allowed motions in sorted order.
func (m *Model) Allowed() []motion.Label {
	out := make([]motion.Label, len(m.allowed))
	copy(out, m.allowed)

	return out
}

// Base returns the base cost of an allowed motion.
func (m *Model) Base(l motion.Label) (Cost, bool) {
	c, ok := m.base[l]

	return c, ok
}
