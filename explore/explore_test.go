package explore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/cost"
	"github.com/katalvlaran/anglefinder/explore"
	"github.com/katalvlaran/anglefinder/motion"
)

// leftRight builds the ±10 catalog with a cheap repeated left.
func leftRight(t *testing.T) (*cost.Model, *motion.Catalog) {
	t.Helper()
	c := motion.NewCatalog()
	c.MustRegister("left", motion.Offset(10))
	c.MustRegister("right", motion.Offset(-10))
	m, err := cost.NewModel(cost.Config{
		Base: map[motion.Label]cost.Cost{
			"left":  cost.Units(1),
			"right": cost.Units(1),
		},
		Chains: []cost.Chain{{Prev: "left", Next: "left", Cost: cost.MustParse("0.5")}},
	})
	require.NoError(t, err)

	return m, c
}

func TestExplore_Validation(t *testing.T) {
	m, c := leftRight(t)

	_, err := explore.Explore(nil, c, []angle.Angle{0})
	assert.ErrorIs(t, err, explore.ErrNilModel)

	_, err = explore.Explore(m, nil, []angle.Angle{0})
	assert.ErrorIs(t, err, explore.ErrNilCatalog)

	_, err = explore.Explore(m, c, nil)
	assert.ErrorIs(t, err, explore.ErrNoStarts)

	partial := motion.NewCatalog()
	partial.MustRegister("left", motion.Offset(10))
	_, err = explore.Explore(m, partial, []angle.Angle{0})
	assert.ErrorIs(t, err, explore.ErrUnknownMotion)
}

func TestExplore_WithFlexPanicsOnNegative(t *testing.T) {
	o := explore.DefaultOptions()
	assert.Panics(t, func() { explore.WithFlex(-1)(&o) })
}

func TestExplore_StartNode(t *testing.T) {
	m, c := leftRight(t)
	g, err := explore.Explore(m, c, []angle.Angle{0x0100}, explore.WithFlex(0))
	require.NoError(t, err)

	n := g.Node(0x0100)
	assert.True(t, n.Reached)
	assert.True(t, n.Start())
	assert.Equal(t, cost.Cost(0), n.Best)
	assert.Equal(t, []angle.Angle{0x0100}, g.Starts())
	assert.Equal(t, cost.Cost(0), g.Flex())
}

func TestExplore_ChainCostReachesTwentyAtOnePointFive(t *testing.T) {
	m, c := leftRight(t)
	g, err := explore.Explore(m, c, []angle.Angle{0}, explore.WithFlex(0))
	require.NoError(t, err)

	best, ok := g.Best(20)
	require.True(t, ok)
	assert.Equal(t, cost.MustParse("1.5"), best)

	e, ok := g.Node(20).Edges["left"]
	require.True(t, ok)
	assert.Equal(t, angle.Angle(10), e.From)
	assert.Equal(t, cost.MustParse("1.5"), e.Cost)

	// odd angles are unreachable with ±10 steps
	_, ok = g.Best(5)
	assert.False(t, ok)
	assert.False(t, g.Stats().EarlyExit)
}

func TestExplore_FirstStepBoundedByBaseCost(t *testing.T) {
	m, c := leftRight(t)
	for _, s := range []angle.Angle{0, 0x1234, 0xFFFF} {
		g, err := explore.Explore(m, c, []angle.Angle{s})
		require.NoError(t, err)
		for _, l := range m.Allowed() {
			mo, _ := c.Lookup(l)
			to, ok := mo.Apply(s)
			require.True(t, ok)
			inc, _ := m.Increment(motion.None, l)
			best, reached := g.Best(to)
			require.True(t, reached, "%s from %s", l, s)
			assert.LessOrEqual(t, best, inc, "%s from %s", l, s)
		}
	}
}

func TestExplore_BestIsMinOverEdges(t *testing.T) {
	m, c := leftRight(t)
	g, err := explore.Explore(m, c, []angle.Angle{0, 0x8000})
	require.NoError(t, err)
	for i := 0; i < angle.Count; i += 2 {
		n := g.Node(angle.Angle(i))
		if !n.Reached {
			continue
		}
		lowest := n.Sorted()[0].Cost
		assert.Equal(t, lowest, n.Best, "angle %#x", i)
	}
}

func TestExplore_InapplicableMotionNeverRecorded(t *testing.T) {
	c := motion.NewCatalog()
	c.MustRegister("left", motion.Offset(1))
	c.MustRegister("never", motion.Func(func(angle.Angle) (angle.Angle, bool) { return 0, false }))
	m, err := cost.NewModel(cost.Config{Base: map[motion.Label]cost.Cost{
		"left":  cost.Units(1),
		"never": 0,
	}})
	require.NoError(t, err)

	g, err := explore.Explore(m, c, []angle.Angle{0})
	require.NoError(t, err)
	for i := 0; i < angle.Count; i++ {
		_, has := g.Node(angle.Angle(i)).Edges["never"]
		require.False(t, has, "angle %#x", i)
	}
}

func TestExplore_AdmissionRespectsFlex(t *testing.T) {
	c := motion.NewCatalog()
	c.MustRegister("fast", motion.Offset(1))
	c.MustRegister("slow", motion.Offset(1))
	m, err := cost.NewModel(cost.Config{Base: map[motion.Label]cost.Cost{
		"fast": cost.Units(1),
		"slow": cost.Units(5),
	}})
	require.NoError(t, err)

	tight, err := explore.Explore(m, c, []angle.Angle{0}, explore.WithFlex(cost.Units(3)))
	require.NoError(t, err)
	_, has := tight.Node(1).Edges["slow"]
	assert.False(t, has, "5 > 1+3 must be rejected")
	assert.Positive(t, tight.Stats().Rejected)

	loose, err := explore.Explore(m, c, []angle.Angle{0}, explore.WithFlex(cost.Units(4)))
	require.NoError(t, err)
	e, has := loose.Node(1).Edges["slow"]
	require.True(t, has, "5 <= 1+4 must be admitted")
	assert.Equal(t, cost.Units(5), e.Cost)
	assert.Equal(t, cost.Units(1), loose.Node(1).Best)
}

func TestExplore_EarlyExitOnceEverythingReached(t *testing.T) {
	c := motion.NewCatalog()
	c.MustRegister("up", motion.Offset(1))
	c.MustRegister("down", motion.Offset(-1))
	m, err := cost.NewModel(cost.Config{Base: map[motion.Label]cost.Cost{
		"up":   cost.Units(1),
		"down": cost.Units(1),
	}})
	require.NoError(t, err)

	g, err := explore.Explore(m, c, []angle.Angle{0})
	require.NoError(t, err)
	st := g.Stats()
	assert.True(t, st.EarlyExit)
	assert.Equal(t, angle.Count, st.Reached)

	full, err := explore.Explore(m, c, []angle.Angle{0}, explore.WithoutEarlyExit())
	require.NoError(t, err)
	assert.False(t, full.Stats().EarlyExit)
	assert.GreaterOrEqual(t, full.Stats().Pops, st.Pops)
}

func TestExplore_Deterministic(t *testing.T) {
	m, c := leftRight(t)
	starts := []angle.Angle{0, 0x0800, 0x4000}
	g1, err := explore.Explore(m, c, starts)
	require.NoError(t, err)
	g2, err := explore.Explore(m, c, starts)
	require.NoError(t, err)
	assert.Equal(t, g1, g2)
}

func TestExplore_DuplicateStarts(t *testing.T) {
	m, c := leftRight(t)
	g, err := explore.Explore(m, c, []angle.Angle{0, 0, 10})
	require.NoError(t, err)
	assert.Equal(t, []angle.Angle{0, 10}, g.Starts())
	assert.Equal(t, 2, g.Stats().Pushes-g.Stats().Admitted)
}

func TestExplore_Cancelled(t *testing.T) {
	m, c := leftRight(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := explore.Explore(m, c, []angle.Angle{0}, explore.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNode_SortedKeepsAdmissionOrderOnTies(t *testing.T) {
	c := motion.NewCatalog()
	c.MustRegister("a", motion.Offset(1))
	c.MustRegister("z", motion.Offset(2))
	m, err := cost.NewModel(cost.Config{Base: map[motion.Label]cost.Cost{
		"a": cost.Units(1),
		"z": cost.Units(2),
	}})
	require.NoError(t, err)

	g, err := explore.Explore(m, c, []angle.Angle{0})
	require.NoError(t, err)

	// z reaches 2 straight from the start before a gets there via 1.
	sorted := g.Node(2).Sorted()
	require.Len(t, sorted, 2)
	assert.Equal(t, motion.Label("z"), sorted[0].Motion)
	assert.Equal(t, motion.None, sorted[0].Prev)
	assert.Equal(t, motion.Label("a"), sorted[1].Motion)
	assert.Equal(t, motion.Label("a"), sorted[1].Prev)
	assert.Equal(t, sorted[0].Cost, sorted[1].Cost)
	assert.Same(t, m, g.Model())
}
