// Package main is the entry point for the scrollstorm demo.
//
// It loads a page manifest, wires the coordinator to a terminal viewport,
// and renders section and animation state live. Without a terminal it runs
// a scripted scroll trace instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/scrollstorm/internal/app"
	"github.com/dshills/scrollstorm/internal/config"
	"github.com/dshills/scrollstorm/internal/dom"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		pagePath    string
		logLevel    string
		trace       bool
		showVersion bool
	)
	flag.StringVar(&configPath, "config", "", "path to configuration file")
	flag.StringVar(&pagePath, "page", "page.json", "path to page manifest")
	flag.StringVar(&logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	flag.BoolVar(&trace, "trace", false, "run a scripted scroll trace instead of the terminal UI")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("scrollstorm %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return 1
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	manifest, err := LoadManifest(pagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	application, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Page:       dom.NewPage(manifest.Width, manifest.Height),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if err := manifest.Populate(application); err != nil {
		fmt.Fprintf(os.Stderr, "Error: building page: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
		application.Shutdown()
	}()

	if trace {
		if err := runTrace(ctx, application, manifest, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	u, err := newUI(application, manifest)
	if err != nil {
		// No usable terminal; fall back to the trace.
		application.Logger().Warn("terminal unavailable (%v), running trace", err)
		if err := runTrace(ctx, application, manifest, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
	if err := u.run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
