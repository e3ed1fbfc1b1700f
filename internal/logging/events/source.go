package events

import "github.com/atomicstack/cmdk-popup/internal/logging"

type SourceTracer struct{}

var Source = SourceTracer{}

func (SourceTracer) Load(name string, groups, items int) {
	logging.Trace("source.load", map[string]interface{}{"source": name, "groups": groups, "items": items})
}

func (SourceTracer) Error(name string, err error) {
	if err == nil {
		return
	}
	logging.Trace("source.error", map[string]interface{}{"source": name, "error": err.Error()})
}

func (SourceTracer) Refresh(name string, groups, items int) {
	logging.Trace("source.refresh", map[string]interface{}{"source": name, "groups": groups, "items": items})
}
