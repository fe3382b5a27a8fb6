// Package camera precomputes where the game's camera settles when the player
// presses up ("ess up") from every one of the 65536 facing angles.
//
// The rules were worked out by hand in game: a short list of "favored"
// camera angles, a handful of ranges that never snap usefully, three ranges
// that gravitate to fixed angles, and a few bands where the snap lands one
// favored angle further along. Build applies those rules once; the resulting
// Table is immutable and is handed to the motion catalog by pointer.
//
// A Table can be persisted through a Store
// (FileStore for a gzip'd text file, RedisStore for a shared cache) and
// LoadOrBuild wires the two together as an explicit startup step.
package camera

import (
	"github.com/katalvlaran/anglefinder/angle"
)

// Snap is one table entry. OK is false when pressing up from that angle
// gives no usable camera angle.
type Snap struct {
	To angle.Angle
	OK bool
}

// Table holds a Snap for every angle, indexed by angle.
type Table [angle.Count]Snap

// Snap returns the entry for a. It satisfies motion.Snapper.
func (t *Table) Snap(a angle.Angle) (angle.Angle, bool) {
	s := t[a]

	return s.To, s.OK
}

// Reachable counts the entries that snap somewhere.
func (t *Table) Reachable() int {
	n := 0
	for i := range t {
		if t[i].OK {
			n++
		}
	}

	return n
}

// Build computes the full table from the favored camera angles. The list is
// scanned in the given order, which is expected to be ascending.
func Build(favored []angle.Angle) *Table {
	t := new(Table)
	for i := 0; i < angle.Count; i++ {
		a := angle.Angle(i)
		to, ok := snapFrom(favored, a)
		t[a] = Snap{To: to, OK: ok}
	}

	return t
}

// snapFrom evaluates the observed camera rules for a single angle.
func snapFrom(favored []angle.Angle, a angle.Angle) (angle.Angle, bool) {
	// these just snap to 0x4000 and 0x8000, not worth considering
	if (0x385F <= a && a < 0x4000) || (0x794F <= a && a < 0x8000) {
		return 0, false
	}
	// snaps to 0xc001
	if 0xBEBF <= a && a < 0xC001 {
		return 0, false
	}
	// snaps to 0x0000
	if 0xFF8F <= a {
		return 0, false
	}

	switch {
	case 0xBE4F <= a && a < 0xBE7F:
		return 0xBE81, true
	case 0xBE7F <= a && a < 0xBEBF:
		return 0xBEC1, true
	case 0xFF5F <= a && a < 0xFF8F:
		return 0xFF91, true
	}

	lowF := a&0xF == 0xF
	for i, cam := range favored {
		if cam&0xFFF0 < a&0xFFF0 {
			continue
		}
		if 0xF55F <= a && a < 0xF8BF && lowF {
			i++
		}
		if 0xF8BF <= a {
			i++
		}
		if 0xB43F <= a && a < 0xB85F && lowF {
			i++
		}
		if 0xB85F <= a && a < 0xC001 {
			i++
		}
		// snapping up happens on the f threshold
		if lowF {
			i++
		}
		if i >= len(favored) {
			return 0, false
		}

		return favored[i], true
	}

	return 0, false
}
