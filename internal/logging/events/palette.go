package events

import "github.com/atomicstack/cmdk-popup/internal/logging"

type RegistryTracer struct{}

type SelectionTracer struct{}

type NavigationTracer struct{}

type ScheduleTracer struct{}

var (
	Registry   = RegistryTracer{}
	Selection  = SelectionTracer{}
	Navigation = NavigationTracer{}
	Schedule   = ScheduleTracer{}
)

func (RegistryTracer) ItemMount(id, value, group string) {
	logging.Trace("registry.item.mount", map[string]interface{}{"id": id, "value": value, "group": group})
}

func (RegistryTracer) ItemUnmount(id, value string, selected bool) {
	logging.Trace("registry.item.unmount", map[string]interface{}{"id": id, "value": value, "selected": selected})
}

func (RegistryTracer) ItemSelect(id, value string) {
	logging.Trace("registry.item.select", map[string]interface{}{"id": id, "value": value})
}

func (RegistryTracer) GroupMount(id, value string) {
	logging.Trace("registry.group.mount", map[string]interface{}{"id": id, "value": value})
}

func (RegistryTracer) GroupUnmount(id, value string) {
	logging.Trace("registry.group.unmount", map[string]interface{}{"id": id, "value": value})
}

func (SelectionTracer) Change(root, value string) {
	logging.Trace("selection.change", map[string]interface{}{"root": root, "value": value})
}

func (SelectionTracer) Forward(field, value string) {
	logging.Trace("selection.forward", map[string]interface{}{"field": field, "value": value})
}

func (SelectionTracer) Mirror(value string) {
	logging.Trace("selection.mirror", map[string]interface{}{"value": value})
}

func (NavigationTracer) Move(root string, delta, index int) {
	logging.Trace("navigation.move", map[string]interface{}{"root": root, "delta": delta, "index": index})
}

func (NavigationTracer) Edge(root, edge string) {
	logging.Trace("navigation.edge", map[string]interface{}{"root": root, "edge": edge})
}

func (NavigationTracer) Group(root, group, value string) {
	logging.Trace("navigation.group", map[string]interface{}{"root": root, "group": group, "value": value})
}

func (ScheduleTracer) Queue(slot string, replaced bool) {
	logging.Trace("schedule.queue", map[string]interface{}{"slot": slot, "replaced": replaced})
}

func (ScheduleTracer) Run(slot string) {
	logging.Trace("schedule.run", map[string]interface{}{"slot": slot})
}
