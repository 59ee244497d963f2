package router

// OutletActivator mounts and unmounts components. The router calls it while
// committing a navigation: Deactivate for every retired route, bottom-up,
// then Activate for every created route that has a component, top-down.
type OutletActivator interface {
	Activate(outlet string, component Component, route *ActivatedRoute)
	Deactivate(outlet string, route *ActivatedRoute)
}

// ActivatorFuncs adapts a pair of functions to OutletActivator. Either may
// be nil.
type ActivatorFuncs struct {
	OnActivate   func(outlet string, component Component, route *ActivatedRoute)
	OnDeactivate func(outlet string, route *ActivatedRoute)
}

// Activate implements OutletActivator.
func (f ActivatorFuncs) Activate(outlet string, component Component, route *ActivatedRoute) {
	if f.OnActivate != nil {
		f.OnActivate(outlet, component, route)
	}
}

// Deactivate implements OutletActivator.
func (f ActivatorFuncs) Deactivate(outlet string, route *ActivatedRoute) {
	if f.OnDeactivate != nil {
		f.OnDeactivate(outlet, route)
	}
}

// MultiActivator forwards to every activator in order.
func MultiActivator(activators ...OutletActivator) OutletActivator {
	return multiActivator(activators)
}

type multiActivator []OutletActivator

func (m multiActivator) Activate(outlet string, component Component, route *ActivatedRoute) {
	for _, a := range m {
		a.Activate(outlet, component, route)
	}
}

func (m multiActivator) Deactivate(outlet string, route *ActivatedRoute) {
	for _, a := range m {
		a.Deactivate(outlet, route)
	}
}

type nopActivator struct{}

func (nopActivator) Activate(string, Component, *ActivatedRoute) {}
func (nopActivator) Deactivate(string, *ActivatedRoute)          {}
