// Package motion defines the opaque angle transforms that label the edges of
// the search graph, and the Catalog that maps a motion label to its transform.
//
// A Motion is a pure function over angles. It may be partial: Apply returns
// ok=false when the motion cannot be performed from the given angle (for
// example, the camera has no snap target). Inapplicable is not an error; the
// explorer simply creates no edge for that case.
//
// Labels are plain strings so that cost configuration stays readable. The
// empty label None marks "no motion yet" and is used as the synthetic
// predecessor of every starting angle.
package motion

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/anglefinder/angle"
)

// Label names a motion, e.g. "ess left".
type Label string

// None is the sentinel predecessor label for starting angles.
const None Label = ""

// Sentinel errors for catalog operations.
var (
	// ErrEmptyLabel indicates an attempt to register a motion under None.
	ErrEmptyLabel = errors.New("motion: label is empty")

	// ErrDuplicate indicates a label was registered twice.
	ErrDuplicate = errors.New("motion: label already registered")

	// ErrNilMotion indicates a nil Motion was registered.
	ErrNilMotion = errors.New("motion: motion is nil")
)

// Motion transforms an angle. ok is false when the motion is inapplicable.
type Motion interface {
	Apply(a angle.Angle) (next angle.Angle, ok bool)
}

// Func adapts an ordinary function to the Motion interface.
type Func func(a angle.Angle) (angle.Angle, bool)

// Apply calls f(a).
func (f Func) Apply(a angle.Angle) (angle.Angle, bool) { return f(a) }

// Offset returns a total motion that rotates by a fixed delta.
func Offset(delta int) Func {
	return func(a angle.Angle) (angle.Angle, bool) { return a.Add(delta), true }
}

// Then composes two motions: m first, then n. Inapplicability of either
// makes the composition inapplicable.
func Then(m, n Motion) Func {
	return func(a angle.Angle) (angle.Angle, bool) {
		b, ok := m.Apply(a)
		if !ok {
			return 0, false
		}

		return n.Apply(b)
	}
}

// Catalog maps labels to motions. The zero value is not usable; use NewCatalog.
// A Catalog is built once at startup and only read afterwards.
type Catalog struct {
	motions map[Label]Motion
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{motions: make(map[Label]Motion)}
}

// Register adds m under label.
func (c *Catalog) Register(label Label, m Motion) error {
	if label == None {
		return ErrEmptyLabel
	}
	if m == nil {
		return fmt.Errorf("%w: %q", ErrNilMotion, label)
	}
	if _, dup := c.motions[label]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicate, label)
	}
	c.motions[label] = m

	return nil
}

// MustRegister is like Register but panics on error.
func (c *Catalog) MustRegister(label Label, m Motion) {
	if err := c.Register(label, m); err != nil {
		panic(err)
	}
}

// Lookup returns the motion registered under label.
func (c *Catalog) Lookup(label Label) (Motion, bool) {
	m, ok := c.motions[label]

	return m, ok
}

// Has reports whether label is registered.
func (c *Catalog) Has(label Label) bool {
	_, ok := c.motions[label]

	return ok
}

// Labels returns all registered labels in sorted order.
func (c *Catalog) Labels() []Label {
	out := make([]Label, 0, len(c.motions))
	for l := range c.motions {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Len returns the number of registered motions.
func (c *Catalog) Len() int { return len(c.motions) }

// Replay applies path to start, one motion at a time. It returns the angle
// after every step. An unknown label or an inapplicable step stops the
// replay with an error naming the offending position.
func (c *Catalog) Replay(start angle.Angle, path []Label) ([]angle.Angle, error) {
	out := make([]angle.Angle, 0, len(path))
	cur := start
	for i, l := range path {
		m, ok := c.motions[l]
		if !ok {
			return out, fmt.Errorf("motion: step %d: unknown motion %q", i, l)
		}
		next, ok := m.Apply(cur)
		if !ok {
			return out, fmt.Errorf("motion: step %d: %q inapplicable at %s", i, l, cur)
		}
		cur = next
		out = append(out, cur)
	}

	return out, nil
}
