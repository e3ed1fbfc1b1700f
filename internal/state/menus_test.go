package state

import (
	"testing"

	"github.com/atomicstack/cmdk-popup/internal/menu"
)

func TestMenuStoreSetReportsChanges(t *testing.T) {
	s := NewMenuStore("a")
	m := menu.Menu{Items: []menu.Item{{Label: "one"}}}
	if !s.Set("a", m) {
		t.Fatalf("expected first set to change the store")
	}
	if s.Set("a", menu.Menu{Items: []menu.Item{{Label: "one"}}}) {
		t.Fatalf("expected equal menu to be ignored")
	}
	if !s.Set("a", menu.Menu{Items: []menu.Item{{Label: "one", Hint: "h"}}}) {
		t.Fatalf("expected hint change to be detected")
	}
	got, ok := s.Get("a")
	if !ok || got.Items[0].Hint != "h" {
		t.Fatalf("unexpected stored menu %#v", got)
	}
}

func TestMenuStoreMergedKeepsSeedOrder(t *testing.T) {
	s := NewMenuStore("first", "second")
	s.Set("second", menu.Menu{Items: []menu.Item{{Label: "b"}}})
	s.Set("first", menu.Menu{Items: []menu.Item{{Label: "a"}}})
	s.Set("third", menu.Menu{Items: []menu.Item{{Label: "c"}}})
	merged := s.Merged()
	var labels []string
	for _, it := range merged.Items {
		labels = append(labels, it.Label)
	}
	if len(labels) != 3 || labels[0] != "a" || labels[1] != "b" || labels[2] != "c" {
		t.Fatalf("unexpected merge order %v", labels)
	}
	if names := s.Sources(); len(names) != 3 || names[2] != "third" {
		t.Fatalf("unexpected sources %v", names)
	}
}
