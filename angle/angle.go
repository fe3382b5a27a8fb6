// Package angle defines the 16-bit orientation value every motion operates on.
//
// An Angle is a point on a ring of 65536 discrete values (0x0000–0xFFFF).
// All arithmetic wraps modulo 65536, which Go's uint16 gives for free, so
// motions can add or subtract offsets without masking.
//
// Angles are written in hexadecimal throughout (0x2ca3), matching how they are
// read out of the game's memory.
package angle

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Count is the number of distinct angles.
const Count = 1 << 16

// Angle is a discrete orientation value.
type Angle uint16

// ErrBadAngle indicates text that is not a hexadecimal angle in range.
var ErrBadAngle = errors.New("angle: invalid angle")

// Wrap reduces an arbitrary integer onto the ring.
// Negative inputs wrap the same way unsigned overflow does.
func Wrap(v int) Angle {
	return Angle(uint16(v & 0xFFFF))
}

// Add returns a+delta modulo 65536.
func (a Angle) Add(delta int) Angle {
	return Wrap(int(a) + delta)
}

// String renders the angle as 0x-prefixed, zero-padded lowercase hex.
func (a Angle) String() string {
	return fmt.Sprintf("0x%04x", uint16(a))
}

// Parse reads a hexadecimal angle, with or without the 0x prefix.
func Parse(s string) (Angle, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(strings.TrimPrefix(t, "0x"), "0X")
	if t == "" {
		return 0, fmt.Errorf("%w: %q", ErrBadAngle, s)
	}
	v, err := strconv.ParseUint(t, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadAngle, s)
	}

	return Angle(v), nil
}

// MustParse is like Parse but panics on error. Intended for tables of literals.
func MustParse(s string) Angle {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return a
}

// Range returns the angles from..to inclusive, stepping by step.
// A step of zero is treated as one. When from > to the range wraps
// past 0xFFFF back to zero, since angles live on a ring.
func Range(from, to Angle, step int) []Angle {
	if step <= 0 {
		step = 1
	}
	span := int(to-from) // uint16 subtraction wraps
	out := make([]Angle, 0, span/step+1)
	for off := 0; off <= span; off += step {
		out = append(out, from.Add(off))
	}

	return out
}
