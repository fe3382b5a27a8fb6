// Package anglefinder finds cheap sequences of in-game rotation motions that
// turn one 16-bit angle into another.
//
// Every angle 0x0000-0xFFFF is a node; every motion is an opaque function
// from an angle to an angle (possibly non-linear, non-invertible, or not
// applicable at all). A motion's cost depends on the motion right before
// it, so "ess left, ess left" is cheaper than two separate ess lefts.
//
// The work happens in four steps, one package each:
//
//	cost/     : base costs, chain overrides and allowed motion groups
//	explore/  : multi-source Dijkstra keeping the best edge per motion
//	navigate/ : backward DFS from a target, within a slack budget
//	rank/     : samples routes, prices them and keeps the cheapest
//
// Supporting packages:
//
//	angle/    : the 16-bit angle type, parsing and ranges
//	motion/   : the Motion interface, catalogs and the game's motions
//	camera/   : the camera snap table behind ess up and cardinal turns,
//	            cached as gzip text on disk or in Redis
//	config/   : YAML run configuration with the stock tables as defaults
//	render/   : folded, human-readable route listings
//	metrics/  : Prometheus counters written to a textfile
//
// Quick example, from the starting angle 0x0000:
//
//	0x0000 ──ess left──▶ 0x0708 ──ess left──▶ 0x0e10
//	          cost 0.1             cost 0.05
//
// The command line front end lives in cmd/anglefinder:
//
//	go run ./cmd/anglefinder search --target 0e10
package anglefinder
