package backend

import (
	"sync"
	"time"
)

// throttle spaces successive stat calls at least interval apart.
type throttle struct {
	interval time.Duration

	mu    sync.Mutex
	next  time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

func newThrottle(interval time.Duration) *throttle {
	t := &throttle{now: time.Now, sleep: time.Sleep}
	if interval > 0 {
		t.interval = interval
	}
	return t
}

// wait blocks until the next slot opens and reports how long it slept.
func (t *throttle) wait() time.Duration {
	if t == nil || t.interval <= 0 {
		return 0
	}
	var slept time.Duration
	for {
		t.mu.Lock()
		now := t.now()
		delay := t.next.Sub(now)
		if delay <= 0 {
			t.next = now.Add(t.interval)
			t.mu.Unlock()
			return slept
		}
		t.mu.Unlock()
		if delay > t.interval {
			delay = t.interval
		}
		t.sleep(delay)
		slept += delay
	}
}
