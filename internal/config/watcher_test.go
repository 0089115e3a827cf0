package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/scrollstorm/internal/event"
)

func writeConfig(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWatcherPublishesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scrollstorm.toml")
	writeConfig(t, path, "header_height = 64")

	bus := event.NewBus()
	fut, err := bus.WaitFor(event.TopicConfigChanged, 5*time.Second)
	if err != nil {
		t.Fatalf("WaitFor: %v", err)
	}

	w, err := NewWatcher(path, bus, WithReloadDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	writeConfig(t, path, "header_height = 96")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	payload, err := fut.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}

	changed, ok := payload.(Changed)
	if !ok {
		t.Fatalf("payload type %T", payload)
	}
	if changed.Config.HeaderHeight != 96 {
		t.Errorf("reloaded header_height = %v, want 96", changed.Config.HeaderHeight)
	}
}

func TestWatcherReportsInvalidReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scrollstorm.toml")
	writeConfig(t, path, "header_height = 64")

	errs := make(chan error, 1)
	bus := event.NewBus()
	w, err := NewWatcher(path, bus,
		WithReloadDebounce(10*time.Millisecond),
		WithErrorFunc(func(err error) {
			select {
			case errs <- err:
			default:
			}
		}),
	)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	writeConfig(t, path, "active_zone_ratio = 9.0")

	select {
	case err := <-errs:
		if err == nil {
			t.Fatal("expected a validation error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no error reported for invalid reload")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scrollstorm.toml")
	writeConfig(t, path, "")

	w, err := NewWatcher(path, event.NewBus())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != ErrWatcherClosed {
		t.Errorf("second Close = %v, want ErrWatcherClosed", err)
	}
}
