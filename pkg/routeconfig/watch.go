package routeconfig

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/vango-dev/outlet/pkg/router"
)

// WatcherConfig configures a Watcher.
type WatcherConfig struct {
	// Path is the route config file to poll.
	Path string

	// Interval is the delay between polls. Defaults to 500ms.
	Interval time.Duration

	// OnReload receives the routes each time the file changes and loads cleanly.
	OnReload func([]*router.Route)

	// OnError receives load failures. The previous routes stay in effect.
	OnError func(error)
}

// Watcher polls a route config file and reloads it whenever its
// modification time or size changes.
type Watcher struct {
	config  WatcherConfig
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	modTime time.Time
	size    int64
	seen    bool
}

// NewWatcher creates a watcher. Nothing is polled until Start or Check.
func NewWatcher(config WatcherConfig) *Watcher {
	if config.Interval == 0 {
		config.Interval = 500 * time.Millisecond
	}
	return &Watcher{config: config}
}

// Start records the file's current state, then polls until ctx is done or
// Stop is called. The current contents are assumed to be loaded already.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	if info, err := os.Stat(w.config.Path); err == nil {
		w.record(info)
	}

	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			w.Check(ctx)
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// Check polls the file once. It reports whether new routes were delivered
// to OnReload. A file that changed but fails to load is reported to
// OnError and not retried until it changes again.
func (w *Watcher) Check(ctx context.Context) bool {
	info, err := os.Stat(w.config.Path)
	if err != nil {
		// Report a missing file once; it reloads when it reappears.
		w.mu.Lock()
		wasSeen := w.seen
		w.seen = false
		w.mu.Unlock()
		if wasSeen {
			w.fail(err)
		}
		return false
	}
	if !w.record(info) {
		return false
	}

	routes, err := Load(ctx, FileSource{Path: w.config.Path})
	if err != nil {
		w.fail(err)
		return false
	}
	if w.config.OnReload != nil {
		w.config.OnReload(routes)
	}
	return true
}

// record stores info's stamp and reports whether it differs from the last.
func (w *Watcher) record(info os.FileInfo) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	changed := !w.seen || !info.ModTime().Equal(w.modTime) || info.Size() != w.size
	w.modTime = info.ModTime()
	w.size = info.Size()
	w.seen = true
	return changed
}

func (w *Watcher) fail(err error) {
	if w.config.OnError != nil {
		w.config.OnError(err)
	}
}
