package navigate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/cost"
	"github.com/katalvlaran/anglefinder/explore"
	"github.com/katalvlaran/anglefinder/motion"
	"github.com/katalvlaran/anglefinder/navigate"
)

// leftRight builds the ±10 catalog; extra chains are appended to the
// cheap repeated left.
func leftRight(t *testing.T, chains ...cost.Chain) (*cost.Model, *motion.Catalog) {
	t.Helper()
	c := motion.NewCatalog()
	c.MustRegister("left", motion.Offset(10))
	c.MustRegister("right", motion.Offset(-10))
	m, err := cost.NewModel(cost.Config{
		Base: map[motion.Label]cost.Cost{
			"left":  cost.Units(1),
			"right": cost.Units(1),
		},
		Chains: append([]cost.Chain{{Prev: "left", Next: "left", Cost: cost.MustParse("0.5")}}, chains...),
	})
	require.NoError(t, err)

	return m, c
}

func build(t *testing.T, m *cost.Model, c *motion.Catalog, flex cost.Cost, starts ...angle.Angle) *explore.Graph {
	t.Helper()
	g, err := explore.Explore(m, c, starts, explore.WithFlex(flex))
	require.NoError(t, err)

	return g
}

// drain collects up to limit routes.
func drain(t *testing.T, w *navigate.Walker, limit int) []navigate.Route {
	t.Helper()
	var out []navigate.Route
	for len(out) < limit {
		r, ok := w.Next()
		if !ok {
			break
		}
		out = append(out, r)
	}

	return out
}

func key(p []motion.Label) string {
	s := make([]string, len(p))
	for i, l := range p {
		s[i] = string(l)
	}

	return strings.Join(s, ",")
}

func TestNewWalker_NilGraph(t *testing.T) {
	_, err := navigate.NewWalker(nil, 0)
	assert.ErrorIs(t, err, navigate.ErrNilGraph)
	_, err = navigate.Routes(nil, 0)
	assert.ErrorIs(t, err, navigate.ErrNilGraph)
}

func TestWalker_TwoLeftsIsOptimal(t *testing.T) {
	m, c := leftRight(t)
	g := build(t, m, c, 0, 0)

	w, err := navigate.NewWalker(g, 20)
	require.NoError(t, err)
	r, ok := w.Next()
	require.True(t, ok)
	assert.Equal(t, []motion.Label{"left", "left"}, r.Path)
	assert.Equal(t, angle.Angle(0), r.Start)
	assert.Equal(t, angle.Angle(20), r.Target)

	total, err := m.PathCost(r.Path)
	require.NoError(t, err)
	assert.Equal(t, cost.MustParse("1.5"), total)

	// with zero slack nothing else fits
	_, ok = w.Next()
	assert.False(t, ok)
	assert.Equal(t, 1, w.Emitted())
}

func TestWalker_UnreachedTargetYieldsNothing(t *testing.T) {
	m, c := leftRight(t)
	g := build(t, m, c, cost.Units(3), 0)

	w, err := navigate.NewWalker(g, 5)
	require.NoError(t, err)
	_, ok := w.Next()
	assert.False(t, ok)
}

func TestWalker_StartTargetYieldsEmptyPath(t *testing.T) {
	m, c := leftRight(t)
	g := build(t, m, c, cost.Units(3), 0x0100)

	w, err := navigate.NewWalker(g, 0x0100)
	require.NoError(t, err)
	r, ok := w.Next()
	require.True(t, ok)
	assert.Empty(t, r.Path)
	assert.Equal(t, angle.Angle(0x0100), r.Start)
	_, ok = w.Next()
	assert.False(t, ok)
}

func TestWalker_FirstRouteMatchesBest(t *testing.T) {
	m, c := leftRight(t)
	g := build(t, m, c, cost.Units(3), 0, 0x4000)

	for _, target := range []angle.Angle{10, 40, 0x0064, 0x3FF6, 0xFFF6, 0x4032} {
		w, err := navigate.NewWalker(g, target)
		require.NoError(t, err)
		r, ok := w.Next()
		require.True(t, ok, target.String())

		total, err := m.PathCost(r.Path)
		require.NoError(t, err)
		best, _ := g.Best(target)
		assert.Equal(t, best, total, target.String())
	}
}

func TestWalker_RoutesReplayAndNeverRevisit(t *testing.T) {
	m, c := leftRight(t)
	g := build(t, m, c, cost.Units(3), 0)

	for _, target := range []angle.Angle{40, 0xFFB0} {
		w, err := navigate.NewWalker(g, target)
		require.NoError(t, err)
		routes := drain(t, w, 500)
		require.NotEmpty(t, routes)

		for _, r := range routes {
			assert.Equal(t, target, r.Target)
			steps, err := c.Replay(r.Start, r.Path)
			require.NoError(t, err)
			if len(steps) > 0 {
				assert.Equal(t, target, steps[len(steps)-1], key(r.Path))
			}

			seen := map[angle.Angle]bool{r.Start: true}
			for _, a := range steps {
				require.False(t, seen[a], "route %s revisits %s", key(r.Path), a)
				seen[a] = true
			}
		}
	}
}

func TestWalker_MoreFlexFindsSuperset(t *testing.T) {
	m, c := leftRight(t)
	g := build(t, m, c, cost.Units(3), 0, 60)

	paths := func(flex cost.Cost) map[string]bool {
		w, err := navigate.NewWalker(g, 30, navigate.WithFlex(flex))
		require.NoError(t, err)
		out := map[string]bool{}
		for _, r := range drain(t, w, 10000) {
			out[key(r.Path)] = true
		}

		return out
	}

	small := paths(cost.MustParse("0.5"))
	large := paths(cost.Units(3))
	assert.Equal(t, map[string]bool{"left,left,left": true}, small)
	assert.True(t, large["right,right,right"], "route from 60 fits a slack of 3")
	for p := range small {
		assert.True(t, large[p], "path %q lost with more flex", p)
	}
}

func TestWalker_ForbiddenPairNeverAdjacent(t *testing.T) {
	m, c := leftRight(t, cost.Chain{Prev: "left", Next: "right", Cost: cost.Forbidden})
	g := build(t, m, c, cost.Units(5), 0)

	for _, target := range []angle.Angle{20, 0xFFEC, 0x00C8} {
		w, err := navigate.NewWalker(g, target)
		require.NoError(t, err)
		for _, r := range drain(t, w, 1000) {
			assert.NotContains(t, key(r.Path), "left,right", target.String())
		}
	}
}

func TestWalker_MaxDepth(t *testing.T) {
	m, c := leftRight(t)
	g := build(t, m, c, cost.Units(3), 0)

	w, err := navigate.NewWalker(g, 40, navigate.WithMaxDepth(3))
	require.NoError(t, err)
	_, ok := w.Next()
	assert.False(t, ok, "40 needs four motions")

	w, err = navigate.NewWalker(g, 40, navigate.WithMaxDepth(4))
	require.NoError(t, err)
	r, ok := w.Next()
	require.True(t, ok)
	assert.Len(t, r.Path, 4)
}

func TestWalker_Restartable(t *testing.T) {
	m, c := leftRight(t)
	g := build(t, m, c, cost.Units(3), 0)

	w1, err := navigate.NewWalker(g, 30)
	require.NoError(t, err)
	w2, err := navigate.NewWalker(g, 30)
	require.NoError(t, err)
	assert.Equal(t, drain(t, w1, 50), drain(t, w2, 50))
}

func TestRoutes_StopsEarly(t *testing.T) {
	m, c := leftRight(t)
	g := build(t, m, c, cost.Units(3), 0, 60)

	seq, err := navigate.Routes(g, 30)
	require.NoError(t, err)
	n := 0
	for range seq {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestWithFlex_PanicsOnNegative(t *testing.T) {
	o := navigate.DefaultOptions()
	assert.Panics(t, func() { navigate.WithFlex(-1)(&o) })
}
