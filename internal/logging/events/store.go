package events

import "github.com/happy-machine/clipboard-warrior/internal/logging"

type StoreTracer struct{}

type BackendTracer struct{}

var (
	Store   = StoreTracer{}
	Backend = BackendTracer{}
)

func (StoreTracer) Load(path string, count int, err error) {
	payload := map[string]interface{}{"path": path, "count": count}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("store.load", payload)
}

func (StoreTracer) Append(path, menu string, count int) {
	logging.Trace("store.append", map[string]interface{}{"path": path, "menu": menu, "count": count})
}

func (StoreTracer) Remove(path, id, menu string) {
	logging.Trace("store.remove", map[string]interface{}{"path": path, "id": id, "menu": menu})
}

func (StoreTracer) Init(path string) {
	logging.Trace("store.init", map[string]interface{}{"path": path})
}

func (BackendTracer) StoreChanged(path string) {
	logging.Trace("backend.store-changed", map[string]interface{}{"path": path})
}
