package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMotionsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "motions",
		Short: "List the motions allowed by the configuration and their base costs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			m, err := cfg.Model()
			if err != nil {
				return err
			}

			labels := m.Allowed()
			width := 0
			for _, l := range labels {
				width = max(width, len(l))
			}
			for _, l := range labels {
				c, _ := m.Base(l)
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, l, c)
			}

			return nil
		},
	}
}
