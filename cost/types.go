// Package cost resolves how expensive a motion is, given the motion that
// immediately preceded it.
//
// A Config carries three tables:
//
//   - Base:   the default cost of every motion, used after None (first motion
//     of a path) and after any motion without a chain override.
//   - Chains: overrides for an ordered pair (previous, next). Cheaper entries
//     model repeated inputs that skip overhead ("ess left, ess left" costs a
//     single frame); Forbidden entries softly ban a transition.
//   - Groups: named sets of motions that need the same game state. Allowed
//     lists the groups enabled for this run.
//
// NewModel resolves a Config into an immutable Model. Motions outside every
// allowed group are removed both as predecessors and as successors, so a
// restricted run simply sees a smaller motion set; nothing downstream needs to
// know about groups.
//
// Costs are fixed-point decimals (see Cost) so that repeated accumulation is
// exact and graph construction is deterministic.
package cost

import (
	"errors"

	"github.com/katalvlaran/anglefinder/motion"
)

// Sentinel errors for cost configuration.
var (
	// ErrBadCost indicates text that is not a decimal cost.
	ErrBadCost = errors.New("cost: invalid cost")

	// ErrNegativeCost indicates a negative base or chain cost.
	ErrNegativeCost = errors.New("cost: negative cost")

	// ErrUnknownMotion indicates a chain or group that references a motion
	// without a base cost.
	ErrUnknownMotion = errors.New("cost: motion has no base cost")

	// ErrUnknownGroup indicates an allowed group that is not defined.
	ErrUnknownGroup = errors.New("cost: unknown motion group")

	// ErrNotAllowed indicates a path step that the model does not permit.
	ErrNotAllowed = errors.New("cost: motion not allowed")
)

// Chain overrides the cost of Next when it directly follows Prev.
type Chain struct {
	Prev motion.Label
	Next motion.Label
	Cost Cost
}

// Config is the raw cost configuration a Model is built from.
type Config struct {
	// Base maps every known motion to its default cost.
	Base map[motion.Label]Cost

	// Chains lists per-pair overrides. Later entries win on duplicates.
	Chains []Chain

	// Groups maps a group name to its member motions.
	Groups map[string][]motion.Label

	// Allowed names the enabled groups. Empty enables every base motion.
	Allowed []string
}

// Step is one permitted successor motion and what it costs.
type Step struct {
	Motion motion.Label
	Cost   Cost
}
