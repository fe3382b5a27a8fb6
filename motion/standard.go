package motion

import (
	"fmt"

	"github.com/katalvlaran/anglefinder/angle"
)

// Snapper resolves where the camera settles when the player presses up
// from a given facing angle. ok is false when there is no useful snap.
// *camera.Table implements it.
type Snapper interface {
	Snap(a angle.Angle) (angle.Angle, bool)
}

// Rotation offsets observed in game.
const (
	essStep      = 0x0708
	cUpStep      = 0x03c0
	dekuSpinStep = 0x01e0
	bubbleLeft   = 0x0377
	bubbleRight  = 0x0379
	quarterTurn  = 0x4000
	halfTurn     = 0x8000

	humanSidehopStep = 0x012C
	dekuSidehopStep  = 0x0258
	goronSidehopStep = 0x00B4
)

// sidehop timings from slowest to fastest release; each faster release
// pulls the hop one more step back toward the original facing.
var sidehopTimings = []struct {
	name  string
	steps int
}{
	{"4 frame", 1},
	{"3 frame", 2},
	{"2 frame", 3},
	{"1 frame", 4},
	{"tap", 5},
}

// Standard returns the catalog of the game's rotation motions. Motions that
// depend on the camera (ess up, the cardinal turns, mask transition) consult
// snaps and are inapplicable wherever it has no snap.
func Standard(snaps Snapper) *Catalog {
	c := NewCatalog()

	essUp := Func(snaps.Snap)
	c.MustRegister("ess up", essUp)
	c.MustRegister("ess left", Offset(essStep))
	c.MustRegister("ess right", Offset(-essStep))

	// cardinal turns (gc/vc only): the camera adjusts like ess up first
	c.MustRegister("turn left", Then(essUp, Offset(quarterTurn)))
	c.MustRegister("turn right", Then(essUp, Offset(-quarterTurn)))
	c.MustRegister("turn 180", Then(essUp, Offset(halfTurn)))

	c.MustRegister("c-up left", Offset(cUpStep))
	c.MustRegister("c-up right", Offset(-cUpStep))

	c.MustRegister("deku bubble left", Offset(bubbleLeft))
	c.MustRegister("deku bubble right", Offset(-bubbleRight))
	c.MustRegister("deku spin", Offset(-dekuSpinStep))

	// jp n64 builds only
	c.MustRegister("mask transition", Then(essUp, Offset(halfTurn)))

	c.MustRegister("mask hold sidehop left", Offset(quarterTurn))
	c.MustRegister("mask hold sidehop right", Offset(-quarterTurn))

	for _, form := range []struct {
		name string
		step int
	}{
		{"human", humanSidehopStep},
		{"deku", dekuSidehopStep},
		{"goron", goronSidehopStep},
	} {
		for _, tm := range sidehopTimings {
			back := tm.steps * form.step
			c.MustRegister(Label(fmt.Sprintf("%s %s sidehop left", form.name, tm.name)), Offset(quarterTurn-back))
			c.MustRegister(Label(fmt.Sprintf("%s %s sidehop right", form.name, tm.name)), Offset(-quarterTurn+back))
		}
	}

	return c
}
