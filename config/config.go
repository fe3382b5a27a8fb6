// Package config loads a search run from YAML.
//
// A file only needs the keys it changes; everything else keeps the value
// from Default. A key that is present replaces the default wholesale, so a
// "costs" map in the file is the complete cost table for the run.
//
// Angles may be written as YAML integers (0x0814 or decimal 2068) or as
// strings, which are always hex ("0814", "0x0814"). Costs are decimals.
//
//	flex: 3
//	allowed_groups: [basic, c-up]
//	use_start_groups: [cardinals]
//	targets:
//	  - 0x0814
//	  - {from: 0x2ca0, to: 0x2cb0, step: 4}
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/cost"
	"github.com/katalvlaran/anglefinder/motion"
)

// Sentinel errors returned by Load, Decode and Validate.
var (
	ErrInvalid         = errors.New("config: invalid configuration")
	ErrUnknownStartSet = errors.New("config: unknown start group")
	ErrNoTargets       = errors.New("config: no target angles")
	ErrNoStarts        = errors.New("config: no starting angles")
)

// Config is one search run.
type Config struct {
	Flex       cost.Cost `mapstructure:"flex"`
	SampleSize int       `mapstructure:"sample_size"`
	Number     int       `mapstructure:"number"`
	MaxDepth   int       `mapstructure:"max_depth"`

	AllowedGroups []string                   `mapstructure:"allowed_groups"`
	Groups        map[string][]motion.Label  `mapstructure:"groups"`
	Costs         map[motion.Label]cost.Cost `mapstructure:"costs"`
	Chains        []Chain                    `mapstructure:"chains"`

	StartGroups    map[string]map[angle.Angle]string `mapstructure:"start_groups"`
	UseStartGroups []string                          `mapstructure:"use_start_groups"`

	Targets   []Target   `mapstructure:"targets"`
	Collision *Collision `mapstructure:"collision"`

	Camera Camera `mapstructure:"camera"`
}

// Chain is a per-pair cost override.
type Chain struct {
	Prev motion.Label `mapstructure:"prev"`
	Next motion.Label `mapstructure:"next"`
	Cost cost.Cost    `mapstructure:"cost"`
}

// Target is either a single angle or an inclusive range.
type Target struct {
	Angle *angle.Angle `mapstructure:"angle"`
	From  *angle.Angle `mapstructure:"from"`
	To    *angle.Angle `mapstructure:"to"`
	Step  int          `mapstructure:"step"`
}

// Angles expands t.
func (t Target) Angles() []angle.Angle {
	if t.Angle != nil {
		return []angle.Angle{*t.Angle}
	}
	if t.From == nil || t.To == nil {
		return nil
	}

	return angle.Range(*t.From, *t.To, t.Step)
}

// Collision derives movement-angle targets from a wanted collision angle.
// Every flag byte masked by Mask is added to Item; the movement angle for
// a wall is (wall + collision) mod 0x8000.
type Collision struct {
	Item  angle.Angle   `mapstructure:"item"`
	Mask  int           `mapstructure:"mask"`
	Walls []angle.Angle `mapstructure:"walls"`
}

// Angles expands the collision targets, first occurrence order.
func (c Collision) Angles() []angle.Angle {
	var flags []int
	seenFlag := map[int]bool{}
	for f := 0; f <= 0xFF; f++ {
		v := c.Mask & f
		if !seenFlag[v] {
			seenFlag[v] = true
			flags = append(flags, v)
		}
	}

	var out []angle.Angle
	seen := map[angle.Angle]bool{}
	for _, w := range c.Walls {
		for _, f := range flags {
			a := angle.Angle((int(w) + int(c.Item) + f) % 0x8000)
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}

	return out
}

// Camera selects where the snap table comes from.
type Camera struct {
	// Favored is the favored-angle list used to build the table.
	Favored string `mapstructure:"favored"`
	// Cache is the gzip file cache. Ignored when Redis.Addr is set.
	Cache string `mapstructure:"cache"`
	Redis Redis  `mapstructure:"redis"`
}

// Redis configures the shared cache.
type Redis struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Key      string        `mapstructure:"key"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Load reads path on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Decode overlays raw onto Default. Unknown keys are an error.
func Decode(raw map[string]any) (*Config, error) {
	cfg := Default()
	if raw == nil {
		return cfg, nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			targetHook,
			angleHook,
			costHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
		ErrorUnused: true,
		ZeroFields:  true,
		Result:      cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return cfg, nil
}

// Validate checks what the cost model cannot: counts, start groups and
// targets.
func (c *Config) Validate() error {
	switch {
	case c.Flex < 0:
		return fmt.Errorf("%w: flex %s is negative", ErrInvalid, c.Flex)
	case c.SampleSize < 0:
		return fmt.Errorf("%w: sample_size %d is negative", ErrInvalid, c.SampleSize)
	case c.Number < 0:
		return fmt.Errorf("%w: number %d is negative", ErrInvalid, c.Number)
	}
	for _, t := range c.Targets {
		if t.Angle == nil && (t.From == nil || t.To == nil) {
			return fmt.Errorf("%w: target needs an angle or both from and to", ErrInvalid)
		}
		if t.Step < 0 {
			return fmt.Errorf("%w: target step %d is negative", ErrInvalid, t.Step)
		}
	}
	if _, _, err := c.Starts(); err != nil {
		return err
	}
	if len(c.TargetAngles()) == 0 {
		return ErrNoTargets
	}

	return nil
}

// CostConfig converts the cost tables for cost.NewModel.
func (c *Config) CostConfig() cost.Config {
	chains := make([]cost.Chain, len(c.Chains))
	for i, ch := range c.Chains {
		chains[i] = cost.Chain{Prev: ch.Prev, Next: ch.Next, Cost: ch.Cost}
	}

	return cost.Config{
		Base:    c.Costs,
		Chains:  chains,
		Groups:  c.Groups,
		Allowed: c.AllowedGroups,
	}
}

// Model builds the cost model for this run.
func (c *Config) Model() (*cost.Model, error) {
	return cost.NewModel(c.CostConfig())
}

// Starts returns the starting angles of every group in UseStartGroups, in
// group order and ascending within a group, plus their descriptions. When
// two groups share an angle the later description wins.
func (c *Config) Starts() ([]angle.Angle, map[angle.Angle]string, error) {
	var out []angle.Angle
	desc := map[angle.Angle]string{}
	for _, name := range c.UseStartGroups {
		group, ok := c.StartGroups[name]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", ErrUnknownStartSet, name)
		}
		keys := make([]angle.Angle, 0, len(group))
		for a := range group {
			keys = append(keys, a)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, a := range keys {
			if _, dup := desc[a]; !dup {
				out = append(out, a)
			}
			desc[a] = group[a]
		}
	}
	if len(out) == 0 {
		return nil, nil, ErrNoStarts
	}

	return out, desc, nil
}

// TargetAngles expands Targets and Collision, dropping repeats.
func (c *Config) TargetAngles() []angle.Angle {
	var out []angle.Angle
	seen := map[angle.Angle]bool{}
	add := func(as []angle.Angle) {
		for _, a := range as {
			if !seen[a] {
				seen[a] = true
				out = append(out, a)
			}
		}
	}
	for _, t := range c.Targets {
		add(t.Angles())
	}
	if c.Collision != nil {
		add(c.Collision.Angles())
	}

	return out
}
