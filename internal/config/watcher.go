package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fsnotify/fsnotify"

	"github.com/dshills/scrollstorm/internal/event"
	"github.com/dshills/scrollstorm/internal/limiter"
)

// Changed is the payload published on event.TopicConfigChanged.
type Changed struct {
	Path   string
	Config *Config
}

// Watcher reloads the configuration file on change and publishes the result
// on the bus. Editor save patterns produce bursts of filesystem events, so
// reloads are debounced.
type Watcher struct {
	mu       sync.Mutex
	path     string
	bus      *event.Bus
	fsw      *fsnotify.Watcher
	reload   *limiter.Debouncer
	onError  func(error)
	closed   bool
	closedWg sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*watcherSettings)

type watcherSettings struct {
	clk      clock.Clock
	debounce time.Duration
	onError  func(error)
}

// WithWatcherClock injects the clock for the reload debounce.
func WithWatcherClock(clk clock.Clock) WatcherOption {
	return func(s *watcherSettings) { s.clk = clk }
}

// WithReloadDebounce sets the quiet period before a reload.
func WithReloadDebounce(d time.Duration) WatcherOption {
	return func(s *watcherSettings) { s.debounce = d }
}

// WithErrorFunc sets the callback for reload and watch failures.
func WithErrorFunc(fn func(error)) WatcherOption {
	return func(s *watcherSettings) { s.onError = fn }
}

// NewWatcher watches the config file at path and publishes reloaded
// configuration on bus. The parent directory is watched rather than the
// file itself so atomic rename-over saves keep working.
func NewWatcher(path string, bus *event.Bus, opts ...WatcherOption) (*Watcher, error) {
	settings := watcherSettings{
		clk:      clock.New(),
		debounce: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(&settings)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		bus:     bus,
		fsw:     fsw,
		onError: settings.onError,
	}
	w.reload = limiter.NewDebouncer(settings.clk, settings.debounce, func(any) {
		w.publish()
	})

	w.closedWg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.closedWg.Done()
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Name != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload.Call(nil)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.fail(err)
		}
	}
}

// publish reloads the file and emits the result. A file that fails to load
// or validate is reported and the previous configuration stays in effect.
func (w *Watcher) publish() {
	cfg, err := Load(w.path)
	if err != nil {
		w.fail(err)
		return
	}
	if err := w.bus.Publish(context.Background(), event.TopicConfigChanged, Changed{
		Path:   w.path,
		Config: cfg,
	}); err != nil {
		w.fail(err)
	}
}

func (w *Watcher) fail(err error) {
	w.mu.Lock()
	fn := w.onError
	w.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

// Close stops watching. Pending debounced reloads are cancelled.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	w.mu.Unlock()

	w.reload.Cancel()
	err := w.fsw.Close()
	w.closedWg.Wait()
	return err
}
