package router

import "sync"

// NavigateOptions configures a navigation.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// SkipLocationChange commits the navigation without touching history.
	SkipLocationChange bool

	// RelativeTo anchors relative commands passed to Navigate. Nil means
	// the root.
	RelativeTo *ActivatedRoute

	// QueryParams and Fragment replace those of the target URL when set.
	QueryParams Params
	Fragment    string
}

// NavigateOption is a functional option for navigation.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithoutLocationChange leaves history untouched.
func WithoutLocationChange() NavigateOption {
	return func(o *NavigateOptions) {
		o.SkipLocationChange = true
	}
}

// RelativeTo resolves relative commands against route.
func RelativeTo(route *ActivatedRoute) NavigateOption {
	return func(o *NavigateOptions) {
		o.RelativeTo = route
	}
}

// WithQueryParams sets the query parameters of the target URL.
func WithQueryParams(params Params) NavigateOption {
	return func(o *NavigateOptions) {
		o.QueryParams = params.Clone()
	}
}

// WithFragment sets the fragment of the target URL.
func WithFragment(fragment string) NavigateOption {
	return func(o *NavigateOptions) {
		o.Fragment = fragment
	}
}

func buildOptions(opts []NavigateOption) NavigateOptions {
	var o NavigateOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Location is the history the router records committed URLs in.
type Location interface {
	// Path returns the URL of the current entry.
	Path() string

	// Go pushes path, dropping any forward entries.
	Go(path string)

	// Replace overwrites the current entry.
	Replace(path string)

	// Back moves to the previous entry and returns its URL.
	Back() (string, bool)

	// Forward moves to the next entry and returns its URL.
	Forward() (string, bool)
}

// History is an in-memory Location. It starts with a single "" entry.
type History struct {
	mu      sync.Mutex
	entries []string
	index   int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{entries: []string{""}}
}

// Path implements Location.
func (h *History) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Go implements Location.
func (h *History) Go(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], path)
	h.index++
}

// Replace implements Location.
func (h *History) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = path
}

// Back implements Location.
func (h *History) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return "", false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward implements Location.
func (h *History) Forward() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == len(h.entries)-1 {
		return "", false
	}
	h.index++
	return h.entries[h.index], true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
