package navigate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/camera"
	"github.com/katalvlaran/anglefinder/config"
	"github.com/katalvlaran/anglefinder/cost"
	"github.com/katalvlaran/anglefinder/explore"
	"github.com/katalvlaran/anglefinder/motion"
	"github.com/katalvlaran/anglefinder/navigate"
)

// stock explores the game's tables with groups whose motions tie on cost at
// many angles, and whose chains include soft-banned pairs.
func stock(t *testing.T) (*explore.Graph, *cost.Model, *motion.Catalog) {
	t.Helper()
	cfg := config.Default()
	cfg.AllowedGroups = []string{
		"basic", "c-up", "deku",
		"us transformation, target & cardinals available",
	}
	m, err := cfg.Model()
	require.NoError(t, err)
	c := motion.Standard(camera.Build(nil))

	g, err := explore.Explore(m, c, []angle.Angle{0x0000, 0x8000}, explore.WithFlex(cfg.Flex))
	require.NoError(t, err)

	return g, m, c
}

// forbiddenPair returns the first adjacent pair priced at cost.Forbidden.
func forbiddenPair(m *cost.Model, path []motion.Label) (int, bool) {
	for i := 1; i < len(path); i++ {
		if inc, _ := m.Increment(path[i-1], path[i]); inc >= cost.Forbidden {
			return i, true
		}
	}

	return 0, false
}

func TestWalker_StockTablesFirstRouteIsBest(t *testing.T) {
	g, m, c := stock(t)

	reached := 0
	for i := 0; i < angle.Count; i++ {
		target := angle.Angle(i)
		best, ok := g.Best(target)
		if !ok {
			continue
		}
		reached++

		w, err := navigate.NewWalker(g, target)
		require.NoError(t, err)
		r, ok := w.Next()
		require.True(t, ok, target.String())

		total, err := m.PathCost(r.Path)
		require.NoError(t, err)
		require.Equal(t, best, total, "%s via %v", target, r.Path)
		_, bad := forbiddenPair(m, r.Path)
		require.False(t, bad, "%s via %v", target, r.Path)

		steps, err := c.Replay(r.Start, r.Path)
		require.NoError(t, err)
		if len(steps) > 0 {
			require.Equal(t, target, steps[len(steps)-1])
		}
	}
	// every multiple of 8: gcd of the ess, c-up, deku spin and sidehop steps
	assert.Equal(t, angle.Count/8, reached)
}

func TestWalker_StockTablesRoutesStayWithinFlex(t *testing.T) {
	if testing.Short() {
		t.Skip("walks every reached angle")
	}
	g, m, _ := stock(t)
	flex := g.Flex()

	for i := 0; i < angle.Count; i += 8 {
		target := angle.Angle(i)
		best, ok := g.Best(target)
		require.True(t, ok, target.String())

		w, err := navigate.NewWalker(g, target)
		require.NoError(t, err)
		for _, r := range drain(t, w, 20) {
			total, err := m.PathCost(r.Path)
			require.NoError(t, err)
			require.LessOrEqual(t, total, best+flex, "%s via %v", target, r.Path)
			if best+flex < cost.Forbidden {
				at, bad := forbiddenPair(m, r.Path)
				require.False(t, bad, "%s via %v (step %d)", target, r.Path, at)
			}
		}
	}
}
