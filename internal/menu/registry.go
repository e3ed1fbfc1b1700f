package menu

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/cmdk-popup/internal/logging/events"
)

// Source is a named loader. Live sources are polled for changes while the
// palette is open.
type Source struct {
	Name string
	Load Loader
	Live bool
}

// Loaded pairs a source name with what it produced.
type Loaded struct {
	Source string
	Menu   Menu
}

// Registry holds the sources feeding one palette, in display order.
type Registry struct {
	sources []Source
}

func NewRegistry(sources ...Source) *Registry {
	r := &Registry{}
	for _, s := range sources {
		r.Add(s)
	}
	return r
}

// Add appends a source. Sources without a loader are ignored.
func (r *Registry) Add(s Source) {
	if s.Load == nil {
		return
	}
	r.sources = append(r.sources, s)
}

// Sources returns the registered sources in order.
func (r *Registry) Sources() []Source {
	return append([]Source(nil), r.sources...)
}

// Names returns the source names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for _, s := range r.sources {
		names = append(names, s.Name)
	}
	return names
}

// Live returns the sources that should be polled.
func (r *Registry) Live() []Source {
	var out []Source
	for _, s := range r.sources {
		if s.Live {
			out = append(out, s)
		}
	}
	return out
}

// LoadAll runs every loader concurrently and returns results in registration
// order. The first failure cancels the rest.
func (r *Registry) LoadAll(ctx context.Context, mc Context) ([]Loaded, error) {
	results := make([]Loaded, len(r.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range r.sources {
		g.Go(func() error {
			m, err := src.Load(gctx, mc)
			if err != nil {
				events.Source.Error(src.Name, err)
				return fmt.Errorf("load %s: %w", src.Name, err)
			}
			groups, items := m.Count()
			events.Source.Load(src.Name, groups, items)
			results[i] = Loaded{Source: src.Name, Menu: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
