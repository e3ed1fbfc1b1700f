package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/cmdk-popup/internal/menu"
)

const minFetchGap = 250 * time.Millisecond

// Event conveys a reloaded menu or an error from one source.
type Event struct {
	Source string
	Menu   menu.Menu
	Err    error
}

// Watcher reloads live sources at a fixed interval and publishes events.
type Watcher struct {
	mc       menu.Context
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts one poller per source. The first reload happens one
// interval in; initial content comes from menu.Registry.LoadAll. A
// non-positive interval is treated as one second.
func NewWatcher(sources []menu.Source, mc menu.Context, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		mc:       mc,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	for _, src := range sources {
		if src.Load == nil {
			continue
		}
		w.start(src)
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events. It is closed once every
// poller has exited.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all pollers have exited.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) start(src menu.Source) {
	throttle := newThrottle(minFetchGap)
	w.wg.Add(1)
	go w.poll(src.Name, func(ctx context.Context) (menu.Menu, error) {
		throttle.wait()
		return src.Load(ctx, w.mc)
	})
}

func (w *Watcher) poll(name string, fetch func(context.Context) (menu.Menu, error)) {
	defer w.wg.Done()

	emit := func() bool {
		m, err := fetch(w.ctx)
		evt := Event{Source: name, Menu: m, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
