package dispatcher

import (
	"github.com/atomicstack/cmdk-popup/internal/backend"
	"github.com/atomicstack/cmdk-popup/internal/logging/events"
	"github.com/atomicstack/cmdk-popup/internal/state"
)

// Result reports what a backend event did to the store.
type Result struct {
	Source  string
	Changed bool
	Err     error
}

type Dispatcher struct {
	menus state.MenuStore
}

func New(menus state.MenuStore) *Dispatcher {
	return &Dispatcher{menus: menus}
}

// Handle applies evt. Failed reloads keep the previous menu.
func (d *Dispatcher) Handle(evt backend.Event) Result {
	res := Result{Source: evt.Source}
	if evt.Err != nil {
		events.Source.Error(evt.Source, evt.Err)
		res.Err = evt.Err
		return res
	}
	res.Changed = d.menus.Set(evt.Source, evt.Menu)
	if res.Changed {
		groups, items := evt.Menu.Count()
		events.Source.Refresh(evt.Source, groups, items)
	}
	return res
}
