package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/outlet/pkg/router"
)

// stepEvent is one component mounted or unmounted by a navigation.
type stepEvent struct {
	Type      string `json:"type"`
	Outlet    string `json:"outlet"`
	Component string `json:"component"`
}

// step is the outcome of one navigation in a sequence.
type step struct {
	Request string      `json:"request"`
	URL     string      `json:"url"`
	ID      string      `json:"id"`
	Created int         `json:"created"`
	Reused  int         `json:"reused"`
	Retired int         `json:"retired"`
	Events  []stepEvent `json:"events"`
}

// eventLog records outlet activity for the step in progress.
type eventLog struct {
	events []stepEvent
}

func (l *eventLog) Activate(outlet string, component router.Component, _ *router.ActivatedRoute) {
	l.events = append(l.events, stepEvent{Type: "activate", Outlet: outlet, Component: router.ComponentName(component)})
}

func (l *eventLog) Deactivate(outlet string, route *router.ActivatedRoute) {
	l.events = append(l.events, stepEvent{Type: "deactivate", Outlet: outlet, Component: router.ComponentName(route.Component)})
}

func (l *eventLog) take() []stepEvent {
	out := l.events
	l.events = nil
	if out == nil {
		out = []stepEvent{}
	}
	return out
}

func navigateCmd(g *globals) *cobra.Command {
	var back int

	cmd := &cobra.Command{
		Use:   "navigate <url>...",
		Short: "Run a sequence of navigations",
		Long: `Navigate through each URL in turn with a single router and print, per
step, the components that were activated and deactivated and how many
routes were created, reused and retired.

Guards named by routes admit unless listed in guards.deny of outlet.json
(or OUTLET_GUARDS_DENY). The sequence stops at the first failure.

Examples:
  outlet navigate /team/22/user/victor /team/33/user/victor
  outlet navigate --back 1 /inbox /inbox/33`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			routes, err := g.loadRoutes(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			log := &eventLog{}
			opts := append(routerOptions(cfg, routes, g.logger()), router.WithActivator(log))
			r := router.New(cfg.Root, routes, opts...)

			w := cmd.OutOrStdout()
			steps := []step{}
			record := func(request string, nav *router.Navigation) {
				s := step{
					Request: request,
					URL:     r.URL(),
					ID:      nav.ID,
					Created: nav.Created,
					Reused:  nav.Reused,
					Retired: nav.Retired,
					Events:  log.take(),
				}
				steps = append(steps, s)
				if !g.json {
					printStep(cmd, s)
				}
			}

			for _, url := range args {
				nav, err := r.NavigateByURL(cmd.Context(), url)
				if err != nil {
					return err
				}
				record(url, nav)
			}
			for range back {
				nav, err := r.Back(cmd.Context())
				if err != nil {
					return err
				}
				record("(back)", nav)
			}

			if g.json {
				return writeJSON(w, steps)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&back, "back", "b", 0, "Go back this many history entries after the last URL")

	return cmd
}

func printStep(cmd *cobra.Command, s step) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "→ %s  (created %d, reused %d, retired %d)\n", displayURL(s.URL), s.Created, s.Reused, s.Retired)
	for _, ev := range s.Events {
		sign := "+"
		if ev.Type == "deactivate" {
			sign = "-"
		}
		fmt.Fprintf(w, "  %s %s: %s\n", sign, ev.Outlet, ev.Component)
	}
}

func displayURL(url string) string {
	if url == "" {
		return "/"
	}
	return url
}
