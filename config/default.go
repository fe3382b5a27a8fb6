package config

import (
	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/cost"
	"github.com/katalvlaran/anglefinder/motion"
)

// Default returns the stock run: the game's motion groups and costs, every
// known starting-angle group with only the cardinal walls in use, and the
// facing-angle heap copy as the target.
func Default() *Config {
	return &Config{
		Flex:           cost.Units(3),
		SampleSize:     20,
		Number:         10,
		MaxDepth:       -1,
		AllowedGroups:  []string{"basic", "target & cardinals available", "c-up"},
		Groups:         defaultGroups(),
		Costs:          defaultCosts(),
		Chains:         defaultChains(),
		StartGroups:    defaultStartGroups(),
		UseStartGroups: []string{"cardinals"},
		Targets:        []Target{{Angle: ptr(angle.Angle(0x0814))}},
		Camera:         Camera{
			Favored: "camera_favored.txt",
			Cache:   "camera_snaps.txt.gz",
		},
	}
}

func ptr[T any](v T) *T { return &v }

func defaultGroups() map[string][]motion.Label {
	return map[string][]motion.Label{
		"basic":                        {"ess left", "ess right"},
		"target & cardinals available": {"ess up", "turn left", "turn right", "turn 180"},
		"c-up":                         {"c-up left", "c-up right"},
		"first person item horizontal": {"first person item left", "first person item right"},
		"first person item vertical":   {"first person item forward", "first person item backward"},
		"deku":                         {"deku spin"},
		"jp transformation":            {"mask transition"},
		"us transformation, target & cardinals available": {
			"mask hold sidehop left", "mask hold sidehop right",
		},
		"us human transformation, target & cardinals available": sidehops("human", "4 frame", "3 frame", "2 frame", "1 frame"),
		"us human transformation":                               sidehops("human", "tap"),
		"us deku transformation, target & cardinals available":  sidehops("deku", "4 frame", "3 frame", "2 frame", "1 frame"),
		"us deku transformation":                                sidehops("deku", "tap"),
		"us goron transformation, target & cardinals available": sidehops("goron", "1 frame", "2 frame", "3 frame", "4 frame"),
		"us goron transformation":                               sidehops("goron", "tap"),
	}
}

// sidehops lists "<form> <timing> sidehop left/right" for each timing.
func sidehops(form string, timings ...string) []motion.Label {
	out := make([]motion.Label, 0, 2*len(timings))
	for _, t := range timings {
		out = append(out,
			motion.Label(form+" "+t+" sidehop left"),
			motion.Label(form+" "+t+" sidehop right"))
	}

	return out
}

func defaultCosts() map[motion.Label]cost.Cost {
	c := map[motion.Label]cost.Cost{
		"ess left":                   cost.MustParse("0.1"),
		"ess right":                  cost.MustParse("0.1"),
		"ess up":                     cost.MustParse("0.1"),
		"turn left":                  cost.MustParse("0.6"),
		"turn right":                 cost.MustParse("0.6"),
		"turn 180":                   cost.Units(1),
		"c-up left":                  cost.MustParse("3.05"),
		"c-up right":                 cost.MustParse("3.05"),
		"first person item left":     cost.MustParse("3.05"),
		"first person item right":    cost.MustParse("3.05"),
		"first person item forward":  cost.MustParse("3.05"),
		"first person item backward": cost.MustParse("3.05"),
		"deku spin":                  cost.MustParse("0.9"),
		"mask transition":            cost.MustParse("1.5"),
		"mask hold sidehop left":     cost.Units(1),
		"mask hold sidehop right":    cost.Units(1),
	}
	// Collision-angle costs for the human form; no mask transition involved.
	for _, l := range sidehops("human", "4 frame", "3 frame", "2 frame", "1 frame") {
		c[l] = cost.MustParse("1.5")
	}
	for _, l := range sidehops("human", "tap") {
		c[l] = cost.MustParse("0.5")
	}
	for _, form := range []string{"deku", "goron"} {
		for timing, v := range map[string]string{
			"4 frame": "3.2",
			"3 frame": "3.15",
			"2 frame": "3.1",
			"1 frame": "3.05",
			"tap":     "1.5",
		} {
			for _, l := range sidehops(form, timing) {
				c[l] = cost.MustParse(v)
			}
		}
	}

	return c
}

func defaultChains() []Chain {
	frame := cost.MustParse("0.05")
	return []Chain{
		// Repeating an input skips its overhead.
		{Prev: "ess left", Next: "ess left", Cost: frame},
		{Prev: "ess right", Next: "ess right", Cost: frame},
		{Prev: "c-up left", Next: "c-up left", Cost: frame},
		{Prev: "c-up right", Next: "c-up right", Cost: frame},
		{Prev: "first person item left", Next: "first person item left", Cost: frame},
		{Prev: "first person item right", Next: "first person item right", Cost: frame},
		{Prev: "first person item forward", Next: "first person item forward", Cost: frame},
		{Prev: "first person item backward", Next: "first person item backward", Cost: frame},

		// Reversing a reversible motion is never useful.
		{Prev: "ess left", Next: "ess right", Cost: cost.Forbidden},
		{Prev: "ess right", Next: "ess left", Cost: cost.Forbidden},
		{Prev: "c-up left", Next: "c-up right", Cost: cost.Forbidden},
		{Prev: "c-up right", Next: "c-up left", Cost: cost.Forbidden},

		// Ess after c-up only produces duplicates of ess before c-up.
		{Prev: "c-up left", Next: "ess left", Cost: cost.Forbidden},
		{Prev: "c-up right", Next: "ess right", Cost: cost.Forbidden},
		{Prev: "c-up left", Next: "ess right", Cost: cost.Forbidden},
		{Prev: "c-up right", Next: "ess left", Cost: cost.Forbidden},

		// A mask transition right after ess needs a trip through first person.
		{Prev: "ess left", Next: "mask transition", Cost: cost.MustParse("2.9")},
		{Prev: "ess right", Next: "mask transition", Cost: cost.MustParse("2.9")},
	}
}

func defaultStartGroups() map[string]map[angle.Angle]string {
	return map[string]map[angle.Angle]string{
		"cardinals": {
			0x0000: "Southern wall (entrance to tunnel, observatory door)",
			0x4000: "Eastern wall (tunnel, starpost by observatory door)",
			0x8000: "Northern wall (double boxes, yellow stair flight, couch)",
			0xC000: "Western wall (tunnel, starpost by observatory door)",
		},
		"downstairs": {
			0x54D1: "SW face of vase",
			0x1526: "NW face of vase",
			0xD4D1: "NE face of vase",
			0x2AAC: "SE downstairs wall",
			0x5554: "NE downstairs wall (cyan stair flight)",
			0xD563: "Cyan staircase railing",
			0x9A42: "Bottom edge of railing",
			0x5572: "Outside of stairs, front",
			0x556B: "Outside of stairs, middle",
			0x555B: "Outside of stairs, back",
			0x673F: "Corner between crystal and vase",
			0x794C: "Corner between vase and double boxes",
			0xA9FE: "Corner between double boxes and stacked boxes",
			0xABE3: "Stacked boxes",
			0x6228: "Cucco feed",
			0x8207: "Corner between Cucco feed and climbable box",
			0xAAB4: "Climbable box, climbable globe table",
			0xEA51: "Corner between climbable box and climbable globe table",
			0x87AB: "Corner between climbable globe table and wall",
			0xD554: "SW downstairs wall (clock)",
		},
		"downstairs climbable": {
			0xAAAC: "Wall behind climbable box",
			0xAA95: "Wall behind climbable globe table",
			0xEAA5: "Globe",
			0xEB27: "Globe spin axis support",
		},
		"upstairs": {
			0xAA6F: "NW wall (red stair flight)",
			0xAA68: "NW wall trim",
			0xAA42: "NW wall trim corner",
			0xD57A: "SW wall trim corner",
			0xD589: "SW wall trim (magenta stair flight)",
			0xD5A7: "NE face of all starposts",
			0x95A7: "SE face of starpost at top of stairs",
			0xD535: "SW upstairs wall",
			0x28C2: "SE upstairs wall",
			0x554C: "NE upstairs wall",
			0xAAB4: "NW upstairs wall",
			0xD52D: "Railing by couch",
			0xFF01: "N face of telescope platform",
			0x14C9: "NW face of starposts",
			0x9602: "SE face of starposts on telescope platform",
			0xD581: "Telescope front side",
			0x16EE: "Telescope right side",
			0x6AB4: "Telescope back side",
			0x93AE: "Telescope left side",
			0xAA95: "SE face of telescope platform",
			0x563E: "SW face of telescope platform",
			0x564C: "Inner wall near top of magenta stairs",
			0x56CA: "Inner wall near middle/bottom of magenta stairs",
			0x2AC3: "Red staircase railing",
		},
		"damage boost": {
			0x1D44: "instadrop sworded, 2 roll",
			0x2ECC: "drop, 3 hori",
			0x1C7C: "instadrop sworded, 1 roll, 1 vert, 1 diag",
			0x1A04: "several thrusts?",
			0xEE2C: "drop, 1 vert, 1 diag",
			0x1C94: "instadrop, 2 roll, 1 diag untarg",
			0xEEC4: "instadrop sworded vase",
			0x1CAC: "dry roll ? thrust ?",
			0x15E4: "instadrop, 1 vert 2 diag untarg",
			0xE674: "1 hori, 1 vert, 1 diag untarg",
			0x1FEC: "drop bomb, 1 vert untarg",
			0x1C4C: "idk",
			0x1C1C: "instadrop swordless, 2 roll, 1 vert",
			0x3E54: "2 ess left",
			0x4434: "instadrop sworded, 1 hold b",
			0x27B4: "1 ess right, 3 hori",
			0xF28C: "1 ess left, 2 hori",
			0x2244: "instadrop, something, thrust",
			0x1C64: "instadrop swordless, 2 js, 1 diag untarg",
			0x1444: "instadrop sword, 4 vert",
			0x2874: "?",
			0x22FC: "vase, 2 vert, 1 diag",
			0x1BB4: "dry roll, js, diag slash",
			0x0DFC: "instadrop swordless, 3 diag untarg",
			0x19DC: "drop bomb, 1 ess right, 1 hori",
			0x144C: "idk",
		},
		"j0 targeting": {0x2CA3: "J0 heap copy of created file"},
		"j1 targeting": {0x2D53: "J1 heap copy of created file"},
		"u0 targeting": {0xBDA7: "U0 save context"},
		"timestop": {
			0x3DDF: "Tap up (with 3DDF timestop angle)",
			0x7DDF: "Tap left (with 3DDF timestop angle)",
			0xBDDF: "Tap down (with 3DDF timestop angle)",
			0xFDDF: "Tap right (with 3DDF timestop angle)",
		},
	}
}
