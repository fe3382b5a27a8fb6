// Package navigate_test shows how routes are read out of an explored graph.
package navigate_test

import (
	"fmt"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/cost"
	"github.com/katalvlaran/anglefinder/explore"
	"github.com/katalvlaran/anglefinder/motion"
	"github.com/katalvlaran/anglefinder/navigate"
)

// ExampleRoutes walks back from 60 to the two starting angles 0 and 90.
// The three rights from 90 are cheapest and come first; the six chained
// lefts from 0 cost half a unit more and still fit the slack.
func ExampleRoutes() {
	// 1) Two motions, with a discount for chaining left.
	c := motion.NewCatalog()
	c.MustRegister("left", motion.Offset(10))
	c.MustRegister("right", motion.Offset(-10))
	m, err := cost.NewModel(cost.Config{
		Base:   map[motion.Label]cost.Cost{"left": cost.Units(1), "right": cost.Units(1)},
		Chains: []cost.Chain{{Prev: "left", Next: "left", Cost: cost.MustParse("0.5")}},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 2) Explore from both starts with two units of slack.
	g, err := explore.Explore(m, c, []angle.Angle{0, 90}, explore.WithFlex(cost.Units(2)))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 3) Enumerate every route into 60 within that slack.
	routes, err := navigate.Routes(g, 60)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for r := range routes {
		total, _ := m.PathCost(r.Path)
		fmt.Printf("%s %v %s\n", r.Start, r.Path, total)
	}
	// Output:
	// 0x005a [right right right] 3
	// 0x0000 [left left left left left left] 3.5
}
