package backend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atomicstack/cmdk-popup/internal/menu"
)

func TestWatcherEmitsPerSource(t *testing.T) {
	var calls atomic.Int32
	good := menu.Source{Name: "good", Load: func(context.Context, menu.Context) (menu.Menu, error) {
		calls.Add(1)
		return menu.Menu{Items: []menu.Item{{Label: "a"}}}, nil
	}}
	bad := menu.Source{Name: "bad", Load: func(context.Context, menu.Context) (menu.Menu, error) {
		return menu.Menu{}, errors.New("offline")
	}}
	w := NewWatcher([]menu.Source{good, bad, {Name: "nil"}}, menu.Context{}, 10*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	seen := map[string]Event{}
	timeout := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case evt := <-w.Events():
			seen[evt.Source] = evt
		case <-timeout:
			t.Fatalf("timed out waiting for events, got %v", seen)
		}
	}
	if seen["good"].Err != nil || len(seen["good"].Menu.Items) != 1 {
		t.Fatalf("unexpected good event %#v", seen["good"])
	}
	if seen["bad"].Err == nil {
		t.Fatalf("expected error from bad source")
	}
	if _, ok := seen["nil"]; ok {
		t.Fatalf("sources without loaders should not be polled")
	}
	if calls.Load() == 0 {
		t.Fatalf("expected loader to run")
	}
}

func TestWatcherClosesEventsAfterStop(t *testing.T) {
	src := menu.Source{Name: "s", Load: func(context.Context, menu.Context) (menu.Menu, error) {
		return menu.Menu{}, nil
	}}
	w := NewWatcher([]menu.Source{src}, menu.Context{}, time.Hour)
	w.Stop()
	w.Wait()
	select {
	case _, ok := <-w.Events():
		for ok {
			_, ok = <-w.Events()
		}
	case <-time.After(time.Second):
		t.Fatalf("events channel was not closed")
	}
}

func TestThrottleSpacesCalls(t *testing.T) {
	th := newThrottle(20 * time.Millisecond)
	start := time.Now()
	th.wait()
	th.wait()
	th.wait()
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected at least 40ms between three calls, got %v", elapsed)
	}
	var zero *throttle
	zero.wait()
	newThrottle(-1).wait()
}
