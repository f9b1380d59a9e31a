package events

import "github.com/happy-machine/clipboard-warrior/internal/logging"

type ClipboardTracer struct{}

var Clipboard = ClipboardTracer{}

func (ClipboardTracer) Read(size int, err error) {
	payload := map[string]interface{}{"bytes": size}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("clipboard.read", payload)
}

func (ClipboardTracer) Write(size int, via string, err error) {
	payload := map[string]interface{}{"bytes": size, "via": via}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("clipboard.write", payload)
}
