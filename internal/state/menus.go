package state

import (
	"github.com/google/go-cmp/cmp"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/atomicstack/cmdk-popup/internal/menu"
)

// MenuStore keeps the latest menu per source in registration order.
type MenuStore interface {
	Set(source string, m menu.Menu) bool
	Get(source string) (menu.Menu, bool)
	Sources() []string
	Merged() menu.Menu
}

type menuStore struct {
	menus *orderedmap.OrderedMap[string, menu.Menu]
}

// NewMenuStore returns a store pre-seeded with order so that sources keep
// their slot even when they report late.
func NewMenuStore(order ...string) MenuStore {
	s := &menuStore{menus: orderedmap.New[string, menu.Menu]()}
	for _, name := range order {
		s.menus.Set(name, menu.Menu{})
	}
	return s
}

// Set stores m for source and reports whether anything changed.
func (s *menuStore) Set(source string, m menu.Menu) bool {
	if prev, ok := s.menus.Get(source); ok && cmp.Equal(prev, m) {
		return false
	}
	s.menus.Set(source, m)
	return true
}

func (s *menuStore) Get(source string) (menu.Menu, bool) {
	return s.menus.Get(source)
}

func (s *menuStore) Sources() []string {
	names := make([]string, 0, s.menus.Len())
	for pair := s.menus.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Merged folds every source's menu together in source order.
func (s *menuStore) Merged() menu.Menu {
	menus := make([]menu.Menu, 0, s.menus.Len())
	for pair := s.menus.Oldest(); pair != nil; pair = pair.Next() {
		menus = append(menus, pair.Value)
	}
	return menu.Merge(menus...)
}
