package palette

import (
	"sort"

	"github.com/atomicstack/cmdk-popup/internal/logging/events"
)

// Slot names a deferred task. Scheduling an occupied slot replaces the
// pending task; slots run in ascending order when the queue drains.
type Slot int

const (
	SlotReselect     Slot = 1
	SlotMountSelect  Slot = 3
	SlotScroll       Slot = 5
	SlotMountScroll  Slot = 6
	SlotSearchSelect Slot = 8
)

func (s Slot) String() string {
	switch s {
	case SlotReselect:
		return "reselect"
	case SlotMountSelect:
		return "mount-select"
	case SlotScroll:
		return "scroll"
	case SlotMountScroll:
		return "mount-scroll"
	case SlotSearchSelect:
		return "search-select"
	}
	return "unknown"
}

type scheduler struct {
	tasks map[Slot]func()
}

func newScheduler() *scheduler {
	return &scheduler{tasks: make(map[Slot]func())}
}

func (s *scheduler) schedule(slot Slot, fn func()) {
	_, replaced := s.tasks[slot]
	s.tasks[slot] = fn
	events.Schedule.Queue(slot.String(), replaced)
}

func (s *scheduler) pending() bool {
	return len(s.tasks) > 0
}

// drain runs every task queued so far. Tasks scheduled while draining wait
// for the next drain.
func (s *scheduler) drain() int {
	if len(s.tasks) == 0 {
		return 0
	}
	batch := s.tasks
	s.tasks = make(map[Slot]func())
	slots := make([]Slot, 0, len(batch))
	for slot := range batch {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })
	for _, slot := range slots {
		events.Schedule.Run(slot.String())
		batch[slot]()
	}
	return len(slots)
}
