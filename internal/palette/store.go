package palette

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/atomicstack/cmdk-popup/internal/score"
)

// Meta is the searchable text registered for an item or group.
type Meta struct {
	Value    string
	Keywords []string
}

// Filtered is the derived result of a recompute pass. It is replaced as a
// unit and never mutated after publication.
type Filtered struct {
	// Search is the term the pass was computed for.
	Search        string
	Count         int
	Scores        map[string]float64
	VisibleGroups map[string]bool
}

type idSet = orderedmap.OrderedMap[string, struct{}]

// store owns the registry. Mutations only mark it dirty; Filtered is rebuilt
// by recompute at the next settle point.
type store struct {
	search    string
	selected  string
	items     *idSet
	meta      map[string]Meta
	groups    *orderedmap.OrderedMap[string, *idSet]
	groupMeta map[string]Meta
	filtered  Filtered
	dirty     bool
}

func newStore() *store {
	return &store{
		items:     orderedmap.New[string, struct{}](),
		meta:      make(map[string]Meta),
		groups:    orderedmap.New[string, *idSet](),
		groupMeta: make(map[string]Meta),
		filtered:  Filtered{Scores: map[string]float64{}, VisibleGroups: map[string]bool{}},
	}
}

func (s *store) setSearch(term string) bool {
	if s.search == term {
		return false
	}
	s.search = term
	s.dirty = true
	return true
}

func (s *store) setSelected(value string) bool {
	if s.selected == value {
		return false
	}
	s.selected = value
	return true
}

func (s *store) registerItemValue(id, value string, keywords []string) {
	s.meta[id] = Meta{Value: value, Keywords: append([]string(nil), keywords...)}
	s.dirty = true
}

func (s *store) registerItem(id, groupID string) {
	s.items.Set(id, struct{}{})
	if groupID != "" {
		members, ok := s.groups.Get(groupID)
		if !ok {
			members = orderedmap.New[string, struct{}]()
			s.groups.Set(groupID, members)
		}
		members.Set(id, struct{}{})
	}
	s.dirty = true
}

func (s *store) deregisterItem(id, groupID string) bool {
	_, present := s.items.Delete(id)
	if groupID != "" {
		if members, ok := s.groups.Get(groupID); ok {
			members.Delete(id)
		}
	}
	if _, ok := s.meta[id]; ok {
		delete(s.meta, id)
		present = true
	}
	if present {
		s.dirty = true
	}
	return present
}

func (s *store) registerGroup(id string) {
	if _, ok := s.groups.Get(id); ok {
		return
	}
	s.groups.Set(id, orderedmap.New[string, struct{}]())
	s.dirty = true
}

func (s *store) registerGroupValue(id, value string, keywords []string) {
	s.groupMeta[id] = Meta{Value: value, Keywords: append([]string(nil), keywords...)}
}

func (s *store) deregisterGroup(id string) bool {
	_, present := s.groups.Delete(id)
	delete(s.groupMeta, id)
	if present {
		s.dirty = true
	}
	return present
}

// recompute rebuilds Filtered from scratch and swaps it in. Scores above zero
// include an item; zero, negative and NaN scores exclude it.
func (s *store) recompute(filter score.Func, shouldFilter bool) Filtered {
	next := Filtered{
		Search:        s.search,
		Scores:        make(map[string]float64, s.items.Len()),
		VisibleGroups: make(map[string]bool),
	}
	unfiltered := !shouldFilter || s.search == ""
	for pair := s.items.Oldest(); pair != nil; pair = pair.Next() {
		id := pair.Key
		var value float64
		switch meta := s.meta[id]; {
		case unfiltered:
			value = 1
		case meta.Value == "":
			value = 0
		default:
			value = filter(meta.Value, s.search, meta.Keywords)
		}
		next.Scores[id] = value
		if value > 0 {
			next.Count++
		}
	}
	for pair := s.groups.Oldest(); pair != nil; pair = pair.Next() {
		for member := pair.Value.Oldest(); member != nil; member = member.Next() {
			if next.Scores[member.Key] > 0 {
				next.VisibleGroups[pair.Key] = true
				break
			}
		}
	}
	s.filtered = next
	s.dirty = false
	return next
}

func (s *store) score(id string) float64 {
	return s.filtered.Scores[id]
}

// Snapshot is a deep copy of the registry, safe to retain and compare.
type Snapshot struct {
	Search    string
	Value     string
	ItemIDs   []string
	ItemMeta  map[string]Meta
	Groups    map[string][]string
	GroupMeta map[string]Meta
	Filtered  Filtered
}

func (s *store) snapshot() Snapshot {
	snap := Snapshot{
		Search:    s.search,
		Value:     s.selected,
		ItemIDs:   make([]string, 0, s.items.Len()),
		ItemMeta:  make(map[string]Meta, len(s.meta)),
		Groups:    make(map[string][]string, s.groups.Len()),
		GroupMeta: make(map[string]Meta, len(s.groupMeta)),
		Filtered: Filtered{
			Search:        s.filtered.Search,
			Count:         s.filtered.Count,
			Scores:        make(map[string]float64, len(s.filtered.Scores)),
			VisibleGroups: make(map[string]bool, len(s.filtered.VisibleGroups)),
		},
	}
	for pair := s.items.Oldest(); pair != nil; pair = pair.Next() {
		snap.ItemIDs = append(snap.ItemIDs, pair.Key)
	}
	for id, meta := range s.meta {
		snap.ItemMeta[id] = cloneMeta(meta)
	}
	for pair := s.groups.Oldest(); pair != nil; pair = pair.Next() {
		members := make([]string, 0, pair.Value.Len())
		for m := pair.Value.Oldest(); m != nil; m = m.Next() {
			members = append(members, m.Key)
		}
		snap.Groups[pair.Key] = members
	}
	for id, meta := range s.groupMeta {
		snap.GroupMeta[id] = cloneMeta(meta)
	}
	for id, v := range s.filtered.Scores {
		snap.Filtered.Scores[id] = v
	}
	for id, v := range s.filtered.VisibleGroups {
		snap.Filtered.VisibleGroups[id] = v
	}
	return snap
}

func cloneMeta(m Meta) Meta {
	return Meta{Value: m.Value, Keywords: append([]string(nil), m.Keywords...)}
}
