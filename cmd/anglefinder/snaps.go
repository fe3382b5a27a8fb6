package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/anglefinder/angle"
	"github.com/katalvlaran/anglefinder/camera"
	"github.com/katalvlaran/anglefinder/config"
)

func newSnapsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "snaps",
		Short: "Rebuild the camera snap cache from the favored angle list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := g.logger()
			if err != nil {
				return err
			}
			cfg, err := g.load()
			if err != nil {
				return err
			}

			favored, err := readFavored(cfg.Camera.Favored)
			if err != nil {
				return err
			}
			t := camera.Build(favored)

			store, closeStore := snapStore(cfg.Camera)
			defer closeStore()
			if err := store.Save(cmd.Context(), t); err != nil {
				return err
			}
			log.Info("camera snaps cached", "favored", len(favored), "reachable", t.Reachable())
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d angles snap\n", t.Reachable(), angle.Count)

			return nil
		},
	}
}

// snapStore picks Redis when an address is configured, else the gzip file.
func snapStore(c config.Camera) (camera.Store, func()) {
	if c.Redis.Addr == "" {
		return camera.NewFileStore(c.Cache), func() {}
	}
	var opts []camera.RedisOption
	if c.Redis.Key != "" {
		opts = append(opts, camera.WithKey(c.Redis.Key))
	}
	if c.Redis.TTL > 0 {
		opts = append(opts, camera.WithTTL(c.Redis.TTL))
	}
	s := camera.NewRedisStore(c.Redis.Addr, c.Redis.Password, c.Redis.DB, opts...)

	return s, func() { _ = s.Close() }
}

func readFavored(path string) ([]angle.Angle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("favored camera angles: %w", err)
	}
	defer f.Close()

	return camera.ReadFavored(f)
}

// loadSnaps is the startup step for searches: cached table or a fresh build.
func loadSnaps(ctx context.Context, c config.Camera, log *slog.Logger) (*camera.Table, error) {
	store, closeStore := snapStore(c)
	defer closeStore()

	return camera.LoadOrBuild(ctx, store, func() ([]angle.Angle, error) {
		return readFavored(c.Favored)
	}, log)
}
