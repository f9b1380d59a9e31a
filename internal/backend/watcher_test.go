package backend

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestThrottleSpacesCalls(t *testing.T) {
	clock := time.Unix(0, 0)
	th := newThrottle(100 * time.Millisecond)
	th.now = func() time.Time { return clock }
	th.sleep = func(d time.Duration) { clock = clock.Add(d) }

	if slept := th.wait(); slept != 0 {
		t.Fatalf("expected first call to pass immediately, slept %v", slept)
	}
	clock = clock.Add(30 * time.Millisecond)
	if slept := th.wait(); slept != 70*time.Millisecond {
		t.Fatalf("expected 70ms wait, got %v", slept)
	}
}

func TestThrottleDisabled(t *testing.T) {
	var th *throttle
	if th.wait() != 0 {
		t.Fatalf("expected nil throttle to pass")
	}
	if newThrottle(0).wait() != 0 {
		t.Fatalf("expected zero interval to pass")
	}
}

func TestWatcherEmitsTicks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	w := NewWatcher(path, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-w.Events():
			if evt.Kind == KindTick {
				return
			}
		case <-deadline:
			t.Fatalf("expected a tick event")
		}
	}
}

func TestWatcherReportsStoreChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte("[]"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	w := NewWatcher(path, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	if err := os.WriteFile(path, []byte(`[{"command":"ls","menu":"a"}]`), 0o600); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-w.Events():
			if evt.Kind != KindStore {
				continue
			}
			if evt.Err != nil {
				t.Fatalf("unexpected error: %v", evt.Err)
			}
			if evt.Path != path {
				t.Fatalf("expected path %q, got %q", path, evt.Path)
			}
			return
		case <-deadline:
			t.Fatalf("expected a store event")
		}
	}
}

func TestWatcherStopClosesEvents(t *testing.T) {
	w := NewWatcher(filepath.Join(t.TempDir(), "missing.json"), 10*time.Millisecond)
	w.Stop()
	w.Wait()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-w.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("expected events channel to close")
		}
	}
}
