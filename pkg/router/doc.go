// Package router resolves navigation strings into trees of activated routes
// and keeps those trees alive across navigations.
//
// The router provides:
//   - Route configuration as a tree of *Route values shared by pointer
//   - Matching of one route against a run of URL segments (Match)
//   - Recognition of a whole URL tree into a snapshot tree (Recognize)
//   - Reconciliation of a snapshot tree against the live tree (CreateRouterState)
//   - A navigation orchestrator with guards, history and middleware (Router)
//
// # Route Configuration
//
// Routes are matched in configuration order. The first route that accounts
// for the whole URL wins; there is no sorting by specificity.
//
//	config := []*router.Route{
//	    {Path: "team/:id", Component: "team", Children: []*router.Route{
//	        {Path: "user/:name", Component: "user"},
//	        {Path: "simple", Component: "simple", Outlet: "right"},
//	    }},
//	    {Index: true, Component: "home"},
//	    {Path: "**", Component: "not-found"},
//	}
//
// Path patterns:
//
//	team          → literal segment
//	team/:id      → literal followed by a parameter
//	**            → every remaining segment
//	""            → no segment; groups children without consuming the URL
//
// A route without a Component is componentless: it binds parameters for its
// children without introducing an outlet of its own.
//
// # Node Identity
//
// A live *ActivatedRoute is reused when the new snapshot at the same outlet
// was produced by the same *Route pointer. Build the configuration once and
// keep it; a copied configuration never reuses state.
//
// # Usage
//
//	r := router.New("app", config,
//	    router.WithActivator(outlets),
//	    router.WithGuard("auth", authGuard),
//	)
//
//	nav, err := r.NavigateByURL(ctx, "/team/22/(user/victor//right:simple)")
//	if err != nil {
//	    // *urltree.ParseError, *router.NoMatchError, ErrGuardRejected ...
//	}
//	// nav.Created, nav.Reused, nav.Retired
package router
