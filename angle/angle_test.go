package angle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/anglefinder/angle"
)

func TestWrap(t *testing.T) {
	assert.Equal(t, angle.Angle(0), angle.Wrap(0x10000))
	assert.Equal(t, angle.Angle(0xFFF6), angle.Wrap(-10))
	assert.Equal(t, angle.Angle(0x0708), angle.Wrap(0x0708))
}

func TestAdd_WrapsBothWays(t *testing.T) {
	assert.Equal(t, angle.Angle(0x0004), angle.Angle(0xFFFE).Add(6))
	assert.Equal(t, angle.Angle(0xF8F8), angle.Angle(0).Add(-0x0708))
}

func TestString(t *testing.T) {
	assert.Equal(t, "0x2ca3", angle.Angle(0x2CA3).String())
	assert.Equal(t, "0x0000", angle.Angle(0).String())
	assert.Equal(t, "0xffff", angle.Angle(0xFFFF).String())
}

func TestParse(t *testing.T) {
	cases := map[string]angle.Angle{
		"0x2ca3": 0x2CA3,
		"0X2CA3": 0x2CA3,
		"2ca3":   0x2CA3,
		" 0814 ": 0x0814,
		"ffff":   0xFFFF,
	}
	for in, want := range cases {
		got, err := angle.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "0x", "10000", "zz", "-1"} {
		_, err := angle.Parse(in)
		assert.ErrorIs(t, err, angle.ErrBadAngle, in)
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { angle.MustParse("nope") })
}

func TestRange(t *testing.T) {
	assert.Equal(t, []angle.Angle{0x10, 0x14, 0x18}, angle.Range(0x10, 0x18, 4))
	assert.Equal(t, []angle.Angle{0x10}, angle.Range(0x10, 0x10, 0))
	// wraps past the top of the ring
	assert.Equal(t, []angle.Angle{0xFFFE, 0xFFFF, 0x0000, 0x0001}, angle.Range(0xFFFE, 0x0001, 1))
}
