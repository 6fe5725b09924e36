package handler

import (
	"fmt"

	"github.com/neovim/go-client/nvim"

	"github.com/kndndrj/iltable/core"
	"github.com/kndndrj/iltable/plugin"
)

type eventBus struct {
	vim *nvim.Nvim
	log *plugin.Logger
}

func (eb *eventBus) callLua(event string, data string) {
	if eb.vim == nil {
		eb.log.Debugf("event %q: %s", event, data)
		return
	}

	err := eb.vim.ExecLua(fmt.Sprintf(`require("iltable.handler.__events").trigger(%q, %s)`, event, data), nil)
	if err != nil {
		eb.log.Infof("eb.vim.ExecLua: %s", err)
	}
}

func (eb *eventBus) WidgetStateChanged(state core.WidgetState, w *core.Widget) {
	errMsg := "nil"
	if err := w.Err(); err != nil {
		errMsg = fmt.Sprintf("[[%s]]", err.Error())
	}

	data := fmt.Sprintf(`{
		widget = {
			id = %q,
			state = %q,
			time_taken_us = %d,
			timestamp_us = %d,
			error = %s,
		},
	}`, w.GetID(),
		state.String(),
		w.GetTimeTaken().Microseconds(),
		w.GetTimestamp().UnixMicro(),
		errMsg)

	eb.callLua("widget_state_changed", data)
}

func (eb *eventBus) WidgetRendered(w *core.Widget) {
	ds := w.Dataset()

	sortKeys := "{}"
	if keys := ds.SortKeys(); len(keys) > 0 {
		sortKeys = "{"
		for _, k := range keys {
			sortKeys += fmt.Sprintf("%q,", k.String())
		}
		sortKeys += "}"
	}

	filter := ds.Filter()
	applied := "nil"
	if filter.Applied != nil {
		applied = fmt.Sprintf(`{ column = %q, query = %q }`, filter.Applied.Column, filter.Applied.Query)
	}

	data := fmt.Sprintf(`{
		widget = {
			id = %q,
			total = %d,
			visible = %d,
			sort = %s,
			open_filter = %q,
			filter = %s,
		},
	}`, w.GetID(),
		ds.Len(),
		len(ds.VisibleRows()),
		sortKeys,
		filter.Open,
		applied)

	eb.callLua("widget_rendered", data)
}
