package cost

import (
	"fmt"
	"strconv"
	"strings"
)

// Cost is a fixed-point decimal with four fractional digits.
// One whole unit (roughly "one second of input") is Scale.
//
// Sums are exact. Four significant digits of decimal context would round
// totals of 100 or more (the Forbidden range); Cost keeps them exact, so
// soft-banned routes may compare differently there than under that rounding.
type Cost int64

const (
	// Digits is the number of fractional decimal digits a Cost carries.
	Digits = 4

	// Scale is the integer value of a Cost of 1.
	Scale Cost = 10000

	// Forbidden is the soft-ban cost for transitions that should practically
	// never be taken while staying representable in the model.
	Forbidden Cost = 100 * Scale
)

// Units returns a Cost of n whole units.
func Units(n int64) Cost { return Cost(n) * Scale }

// Parse reads a non-exponent decimal such as "0.05", "3", "-1.5" or ".5".
// More than Digits fractional digits is an error rather than a silent rounding.
func Parse(s string) (Cost, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, fmt.Errorf("%w: empty", ErrBadCost)
	}
	neg := false
	switch t[0] {
	case '-':
		neg = true
		t = t[1:]
	case '+':
		t = t[1:]
	}
	whole, frac, _ := strings.Cut(t, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: %q", ErrBadCost, s)
	}
	if len(frac) > Digits {
		return 0, fmt.Errorf("%w: %q has more than %d fractional digits", ErrBadCost, s, Digits)
	}

	var w, f int64
	var err error
	if whole != "" {
		if w, err = strconv.ParseInt(whole, 10, 64); err != nil || w < 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadCost, s)
		}
	}
	if frac != "" {
		if f, err = strconv.ParseInt(frac, 10, 64); err != nil || f < 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadCost, s)
		}
		for i := len(frac); i < Digits; i++ {
			f *= 10
		}
	}

	c := Cost(w)*Scale + Cost(f)
	if neg {
		c = -c
	}

	return c, nil
}

// MustParse is like Parse but panics on error. Intended for literal tables.
func MustParse(s string) Cost {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return c
}

// String renders the cost without trailing fractional zeros: 1.5, 0.05, 100.
func (c Cost) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole, frac := v/int64(Scale), v%int64(Scale)
	if frac == 0 {
		return sign + strconv.FormatInt(whole, 10)
	}
	f := strings.TrimRight(fmt.Sprintf("%0*d", Digits, frac), "0")

	return sign + strconv.FormatInt(whole, 10) + "." + f
}

// Float returns the cost as a float64, for metrics and display only.
func (c Cost) Float() float64 { return float64(c) / float64(Scale) }

// MarshalText implements encoding.TextMarshaler.
func (c Cost) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Cost) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = v

	return nil
}
