package events

import "github.com/atomicstack/cmdk-popup/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

type DialogTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
	Dialog  = DialogTracer{}
)

func (UITracer) MenuCursor(value string, offset int) {
	logging.Trace("menu.cursor", map[string]interface{}{"value": value, "offset": offset})
}

func (UITracer) Reconcile(mounted, unmounted, updated int) {
	logging.Trace("menu.reconcile", map[string]interface{}{"mounted": mounted, "unmounted": unmounted, "updated": updated})
}

func (UITracer) Pointer(value string, clicked bool) {
	logging.Trace("menu.pointer", map[string]interface{}{"value": value, "clicked": clicked})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Search(root, term string) {
	logging.Trace("filter.search", map[string]interface{}{"root": root, "search": term})
}

func (FilterTracer) Recompute(root, term string, count, total int) {
	logging.Trace("filter.recompute", map[string]interface{}{"root": root, "search": term, "count": count, "total": total})
}

func (FilterTracer) Cleared(root string) {
	logging.Trace("filter.clear", map[string]interface{}{"root": root})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (DialogTracer) Open() {
	logging.Trace("dialog.open", nil)
}

func (DialogTracer) Close(reason string) {
	logging.Trace("dialog.close", map[string]interface{}{"reason": reason})
}
