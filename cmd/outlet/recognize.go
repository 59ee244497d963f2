package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/outlet/pkg/router"
	"github.com/vango-dev/outlet/pkg/urltree"
)

func recognizeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "recognize <url>",
		Short: "Match a URL against the route configuration",
		Long: `Recognize a navigation string against the route configuration and
print the resulting snapshot tree without running guards or activating
anything.

Examples:
  outlet recognize --routes routes.json '/team/22/(user/victor//right:simple)'
  outlet recognize --json /inbox/33`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			routes, err := g.loadRoutes(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			tree, err := urltree.Parse(args[0])
			if err != nil {
				return err
			}
			res := router.Recognize(cfg.Root, routes, tree, args[0])
			snapshot, ok := res.Snapshot()
			if !ok {
				return res.Err()
			}

			w := cmd.OutOrStdout()
			if g.json {
				return writeJSON(w, snapshot)
			}
			fmt.Fprint(w, snapshot.Format())
			return nil
		},
	}
}
