package backend

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/happy-machine/clipboard-warrior/internal/logging/events"
)

// minStatInterval bounds how often the store file is stat'ed when the tick
// interval is very short.
const minStatInterval = 100 * time.Millisecond

// Kind represents the type of event emitted by the backend watcher.
type Kind int

const (
	KindTick Kind = iota
	KindStore
)

// Event conveys a tick or a change to the watched store file.
type Event struct {
	Kind Kind
	Path string
	Err  error
}

// Watcher ticks at a fixed interval and reports changes to the store file.
type Watcher struct {
	path     string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher that ticks every interval and polls
// path for size or modification-time changes.
func NewWatcher(path string, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startTicker()
	w.startStorePoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startTicker() {
	w.wg.Add(1)
	go w.poll(func() (Event, bool) {
		return Event{Kind: KindTick}, true
	})
}

func (w *Watcher) startStorePoller() {
	throttle := newThrottle(minStatInterval)
	last, _ := statSignature(w.path)
	w.wg.Add(1)
	go w.poll(func() (Event, bool) {
		throttle.wait()
		sig, err := statSignature(w.path)
		if err != nil {
			if last.missing && errors.Is(err, fs.ErrNotExist) {
				return Event{}, false
			}
			if errors.Is(err, fs.ErrNotExist) {
				last = signature{missing: true}
			}
			return Event{Kind: KindStore, Path: w.path, Err: err}, true
		}
		if sig == last {
			return Event{}, false
		}
		last = sig
		events.Backend.StoreChanged(w.path)
		return Event{Kind: KindStore, Path: w.path}, true
	})
}

// poll calls next on every tick and publishes the events it reports.
func (w *Watcher) poll(next func() (Event, bool)) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			evt, ok := next()
			if !ok {
				continue
			}
			select {
			case <-w.ctx.Done():
				return
			case w.events <- evt:
			}
		}
	}
}

type signature struct {
	size    int64
	modTime int64
	missing bool
}

func statSignature(path string) (signature, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return signature{missing: true}, err
		}
		return signature{}, err
	}
	return signature{size: info.Size(), modTime: info.ModTime().UnixNano()}, nil
}
