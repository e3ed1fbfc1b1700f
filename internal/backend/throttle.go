package backend

import (
	"sync"
	"time"
)

// throttle keeps successive loads of one source at least interval apart.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: max(interval, 0)}
}

func (t *throttle) wait() {
	if t == nil || t.interval == 0 {
		return
	}
	t.mu.Lock()
	now := time.Now()
	start := now
	if t.next.After(now) {
		start = t.next
	}
	t.next = start.Add(t.interval)
	t.mu.Unlock()
	if d := start.Sub(now); d > 0 {
		time.Sleep(d)
	}
}
