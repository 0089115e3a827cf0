package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/dshills/scrollstorm/internal/animate"
	"github.com/dshills/scrollstorm/internal/config"
	"github.com/dshills/scrollstorm/internal/dom"
	"github.com/dshills/scrollstorm/internal/event"
	"github.com/dshills/scrollstorm/internal/limiter"
	"github.com/dshills/scrollstorm/internal/nav"
	lhost "github.com/dshills/scrollstorm/internal/plugin/lua"
)

// ErrNotRunning is returned by operations that need a started App.
var ErrNotRunning = errors.New("app is not running")

// InitError wraps a component initialization failure.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Options configures an App.
type Options struct {
	// Config holds the tunables. Nil means defaults.
	Config *config.Config

	// ConfigPath, when set, is watched for live reload.
	ConfigPath string

	// Page is the scroll container. Required.
	Page *dom.Page

	// Logger receives application logs. Nil means the default stderr
	// logger at the configured level.
	Logger *Logger

	// History receives hash updates after navigation.
	History nav.History

	// Library is the external animation adapter, nil for none.
	Library animate.Library

	// Detector overrides the default range detector. Explicitly passing
	// nil through DisableDetector exercises the fallback path.
	Detector animate.Detector

	// DisableDetector forces the no-detector fallback.
	DisableDetector bool

	// Clock is injectable for tests. Nil means the wall clock.
	Clock clock.Clock
}

// App owns the event bus and every coordinator component, and wires page
// signals to them.
type App struct {
	mu sync.Mutex

	cfg  *config.Config
	log  *Logger
	page *dom.Page
	clk  clock.Clock

	bus       *event.Bus
	limiters  *limiter.Limiter
	defs      *animate.Registry
	detector  animate.Detector
	engine    *animate.Engine
	resolver  *nav.Resolver
	navigator *nav.Navigator
	scripts   *lhost.Host
	watcher   *config.Watcher

	subs    []*event.Subscription
	running bool
}

// New assembles an App from options. Nothing is subscribed or started yet;
// call Start after registering targets and tracked elements.
func New(opts Options) (*App, error) {
	if opts.Page == nil {
		return nil, &InitError{Component: "page", Err: errors.New("page is required")}
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	log := opts.Logger
	if log == nil {
		lc := DefaultLoggerConfig()
		lc.Level = ParseLogLevel(cfg.LogLevel)
		log = NewLogger(lc)
	}

	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	a := &App{
		cfg:  cfg,
		log:  log,
		page: opts.Page,
		clk:  clk,
	}

	a.bus = event.NewBus(
		event.WithClock(clk),
		event.WithErrorHandler(func(err error) {
			log.WithComponent("bus").Error("listener failure: %v", err)
		}),
	)

	a.limiters = limiter.New(limiter.WithClock(clk))
	a.defs = animate.NewRegistry()

	a.detector = opts.Detector
	if a.detector == nil && !opts.DisableDetector {
		a.detector = animate.NewRangeDetector(opts.Page)
	}
	if a.detector == nil {
		log.WithComponent("animate").Warn("%v, tracked elements reveal on start", animate.ErrDetectorUnavailable)
	}

	a.engine = animate.NewEngine(opts.Page, a.defs,
		animate.WithDetector(a.detector),
		animate.WithLibrary(opts.Library),
		animate.WithEngineBus(a.bus),
		animate.WithEngineClock(clk),
		animate.WithBreakpoint(cfg.Breakpoint),
		animate.WithProfiles(adapterOptions(cfg.Desktop), adapterOptions(cfg.Mobile)),
		animate.WithSweep(cfg.SweepTick(), cfg.SweepWindow()),
	)

	a.resolver = nav.NewResolver(opts.Page,
		nav.WithHeaderHeight(cfg.HeaderHeight),
		nav.WithZoneRatio(cfg.ActiveZoneRatio),
		nav.WithTopThreshold(cfg.TopAnchorThreshold),
		nav.WithActiveClass(cfg.ActiveClass),
		nav.WithBus(a.bus),
	)

	history := opts.History
	if history == nil {
		history = nav.NoopHistory{}
	}
	a.navigator = nav.NewNavigator(opts.Page,
		func(id string) (dom.Element, bool) { return opts.Page.Node(id) },
		nav.WithHistory(history),
		nav.WithScrollOffset(cfg.HeaderHeight),
	)

	a.scripts = lhost.NewHost(a.defs, a.bus, lhost.WithLogFunc(func(format string, args ...any) {
		log.WithComponent("script").Info(format, args...)
	}))

	if opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath, a.bus,
			config.WithWatcherClock(clk),
			config.WithErrorFunc(func(err error) {
				log.WithComponent("config").Warn("reload failed: %v", err)
			}),
		)
		if err != nil {
			return nil, &InitError{Component: "config watcher", Err: err}
		}
		a.watcher = w
	}

	return a, nil
}

// adapterOptions converts a config profile into library options.
func adapterOptions(a config.AdapterConfig) animate.LibraryOptions {
	return animate.LibraryOptions{
		Duration:        a.Duration(),
		Offset:          a.Offset,
		Easing:          a.Easing,
		Once:            a.Once,
		Mirror:          a.Mirror,
		AnchorPlacement: a.AnchorPlacement,
	}
}

// Start subscribes the signal handlers and fires the load sequence.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return nil
	}
	a.running = true
	a.mu.Unlock()

	if err := a.setup(); err != nil {
		return err
	}
	if err := a.navigator.Bind(a.bus); err != nil {
		return &InitError{Component: "navigator", Err: err}
	}

	a.log.Info("starting: %d nav targets, %d tracked elements",
		len(a.resolver.Targets()), a.engine.Tracked())

	return a.bus.Publish(ctx, event.TopicLoad, a.page.Sample("load"))
}

// Shutdown stops the sweep, releases limiters, closes the script host and
// config watcher, and drops every subscription.
func (a *App) Shutdown() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	subs := a.subs
	a.subs = nil
	a.mu.Unlock()

	a.engine.Stop()
	a.limiters.Reset()
	for _, sub := range subs {
		_ = a.bus.Unsubscribe(sub)
	}
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	_ = a.scripts.Close()
	a.log.Info("shut down")
}

// IsRunning reports whether Start has been called without a matching
// Shutdown.
func (a *App) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

// TrackMarked scans the page once and registers every node carrying a
// dom.AttrNavGroup or dom.AttrAnimation attribute. Nav targets the group
// attributes reference must already be registered; tracking an already
// tracked node is a no-op. Call after the page is built.
func (a *App) TrackMarked() error {
	for _, n := range a.page.Nodes() {
		if target := n.Attr(dom.AttrNavGroup); target != "" {
			if err := a.resolver.AddGroupSection(target, n); err != nil {
				return fmt.Errorf("group region %q: %w", n.ID(), err)
			}
		}
		if name := n.Attr(dom.AttrAnimation); name != "" {
			if err := a.engine.Track(n, name); err != nil {
				return fmt.Errorf("element %q: %w", n.ID(), err)
			}
		}
	}
	return nil
}

// LoadScript executes a site script file in the sandboxed host.
func (a *App) LoadScript(path string) error {
	return a.scripts.DoFile(path)
}

// LoadScriptSource executes an in-memory site script.
func (a *App) LoadScriptSource(name, src string) error {
	return a.scripts.DoString(name, src)
}

// Bus returns the event bus.
func (a *App) Bus() *event.Bus { return a.bus }

// Page returns the scroll container.
func (a *App) Page() *dom.Page { return a.page }

// Resolver returns the active-section resolver.
func (a *App) Resolver() *nav.Resolver { return a.resolver }

// Navigator returns the anchor navigator.
func (a *App) Navigator() *nav.Navigator { return a.navigator }

// Engine returns the animation engine.
func (a *App) Engine() *animate.Engine { return a.engine }

// Animations returns the shared definition registry.
func (a *App) Animations() *animate.Registry { return a.defs }

// Config returns the active configuration.
func (a *App) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// Logger returns the application logger.
func (a *App) Logger() *Logger { return a.log }

// applyConfig adopts reloaded settings that can change at runtime. Geometry
// and wiring parameters need a restart and are logged when they differ.
func (a *App) applyConfig(next *config.Config) {
	a.mu.Lock()
	prev := a.cfg
	a.cfg = next
	a.mu.Unlock()

	a.log.SetLevel(ParseLogLevel(next.LogLevel))
	if prev.HeaderHeight != next.HeaderHeight ||
		prev.ActiveZoneRatio != next.ActiveZoneRatio ||
		prev.ScrollThrottleMS != next.ScrollThrottleMS {
		a.log.Warn("reloaded geometry or throttle settings take effect on restart")
	}
	a.log.Info("configuration reloaded")
}

// pump drives the visibility paths that follow a scroll position change.
func (a *App) pump(sample dom.ScrollSample) {
	a.resolver.Resolve(sample)
	if rd, ok := a.detector.(*animate.RangeDetector); ok && rd != nil {
		rd.Pump()
	}
	a.engine.Check()
}
