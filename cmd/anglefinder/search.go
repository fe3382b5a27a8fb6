package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/config"
	"github.com/katalvlaran/anglefinder/cost"
	"github.com/katalvlaran/anglefinder/explore"
	"github.com/katalvlaran/anglefinder/metrics"
	"github.com/katalvlaran/anglefinder/motion"
	"github.com/katalvlaran/anglefinder/navigate"
	"github.com/katalvlaran/anglefinder/rank"
	"github.com/katalvlaran/anglefinder/render"
)

// searchFlags override the configuration when set.
type searchFlags struct {
	flex        string
	sample      int
	number      int
	targets     []string
	startGroups []string
	metricsOut  string
	noColor     bool
}

func newSearchCmd(g *globals) *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Explore from the starting angles and print the cheapest routes to each target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if err := f.apply(cmd, cfg); err != nil {
				return err
			}
			log, err := g.logger()
			if err != nil {
				return err
			}

			return runSearch(cmd, cfg, f, log)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.flex, "flex", "", "slack over the best cost, e.g. 3 or 0.5")
	fl.IntVar(&f.sample, "sample", 0, "routes drawn per target (0 = all)")
	fl.IntVar(&f.number, "number", 0, "results kept per target (0 = all)")
	fl.StringSliceVarP(&f.targets, "target", "t", nil, "target angle in hex; repeatable, replaces configured targets")
	fl.StringSliceVar(&f.startGroups, "start-group", nil, "starting angle group; repeatable, replaces use_start_groups")
	fl.StringVar(&f.metricsOut, "metrics-out", "", "write Prometheus metrics to this textfile")
	fl.BoolVar(&f.noColor, "no-color", false, "disable coloured output")

	return cmd
}

// apply copies every flag the user set onto cfg.
func (f *searchFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fl := cmd.Flags()
	if fl.Changed("flex") {
		c, err := cost.Parse(f.flex)
		if err != nil {
			return fmt.Errorf("--flex: %w", err)
		}
		cfg.Flex = c
	}
	if fl.Changed("sample") {
		cfg.SampleSize = f.sample
	}
	if fl.Changed("number") {
		cfg.Number = f.number
	}
	if fl.Changed("target") {
		cfg.Targets = cfg.Targets[:0]
		cfg.Collision = nil
		for _, s := range f.targets {
			a, err := angle.Parse(s)
			if err != nil {
				return fmt.Errorf("--target: %w", err)
			}
			cfg.Targets = append(cfg.Targets, config.Target{Angle: &a})
		}
	}
	if fl.Changed("start-group") {
		cfg.UseStartGroups = f.startGroups
	}

	return cfg.Validate()
}

func runSearch(cmd *cobra.Command, cfg *config.Config, f *searchFlags, log *slog.Logger) error {
	ctx := cmd.Context()
	model, err := cfg.Model()
	if err != nil {
		return err
	}
	snaps, err := loadSnaps(ctx, cfg.Camera, log)
	if err != nil {
		return err
	}
	catalog := motion.Standard(snaps)
	starts, desc, err := cfg.Starts()
	if err != nil {
		return err
	}
	targets := cfg.TargetAngles()

	rec := metrics.New()
	began := time.Now()
	g, err := explore.Explore(model, catalog, starts,
		explore.WithFlex(cfg.Flex),
		explore.WithLogger(log),
		explore.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	st := g.Stats()
	rec.ObserveExplore(st, time.Since(began))
	log.Info("graph explored",
		"starts", len(starts), "reached", st.Reached, "early_exit", st.EarlyExit,
		"took", time.Since(began).Round(time.Millisecond))

	results, err := rank.CollectAll(g, model, targets,
		rank.WithSampleSize(cfg.SampleSize),
		rank.WithNumber(cfg.Number),
		rank.WithWalkOptions(navigate.WithMaxDepth(cfg.MaxDepth)),
		rank.WithObserver(rec.ObserveRank),
	)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	profile := termenv.Ascii
	if !f.noColor {
		profile = termenv.NewOutput(out).EnvColorProfile()
	}
	if err := render.WriteAll(out, results, catalog,
		render.WithDescriptions(desc),
		render.WithColor(profile),
	); err != nil {
		return err
	}

	if f.metricsOut != "" {
		return rec.WriteTextfile(f.metricsOut)
	}

	return nil
}
