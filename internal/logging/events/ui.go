package events

import "github.com/happy-machine/clipboard-warrior/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) TabChange(from, to int, label string) {
	logging.Trace("tab.change", map[string]interface{}{"from": from, "to": to, "label": label})
}

func (UITracer) Home(index int) {
	logging.Trace("tab.home", map[string]interface{}{"index": index})
}

func (UITracer) RowMove(menu string, row int) {
	logging.Trace("row.move", map[string]interface{}{"menu": menu, "row": row})
}

func (UITracer) FormOpen(name string) {
	logging.Trace("form.open", map[string]interface{}{"form": name})
}

func (UITracer) FormCancel(name, reason string) {
	logging.Trace("form.cancel", map[string]interface{}{"form": name, "reason": reason})
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

func (FilterTracer) Cleared(menu string) {
	logging.Trace("filter.clear", map[string]interface{}{"menu": menu})
}

func (FilterTracer) Append(menu, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"menu": menu, "filter": filter})
}

func (FilterTracer) Backspace(menu, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"menu": menu, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
