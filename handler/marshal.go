package handler

import (
	"github.com/neovim/go-client/msgpack"

	"github.com/kndndrj/iltable/core"
)

// widgetWrap is a wrapper around WidgetEntry with msgpack marshaling capabilities
type widgetWrap struct {
	entry *WidgetEntry
}

func WrapWidget(entry *WidgetEntry) *widgetWrap {
	return &widgetWrap{
		entry: entry,
	}
}

func WrapWidgets(entries []*WidgetEntry) []*widgetWrap {
	wraps := make([]*widgetWrap, len(entries))

	for i := range entries {
		wraps[i] = &widgetWrap{
			entry: entries[i],
		}
	}

	return wraps
}

func (ww *widgetWrap) MarshalMsgPack(enc *msgpack.Encoder) error {
	if ww.entry == nil {
		return enc.Encode(nil)
	}

	w := ww.entry.widget

	errMsg := ""
	if err := w.Err(); err != nil {
		errMsg = err.Error()
	}

	sortKeys := []string{}
	for _, k := range w.Dataset().SortKeys() {
		sortKeys = append(sortKeys, k.String())
	}

	return enc.Encode(&struct {
		ID        string   `msgpack:"id"`
		Type      string   `msgpack:"type"`
		URL       string   `msgpack:"url"`
		State     string   `msgpack:"state"`
		TimeTaken int64    `msgpack:"time_taken_us"`
		Timestamp int64    `msgpack:"timestamp_us"`
		Error     string   `msgpack:"error,omitempty"`
		Total     int      `msgpack:"total"`
		Visible   int      `msgpack:"visible"`
		Sort      []string `msgpack:"sort"`
		Filter    string   `msgpack:"open_filter"`
	}{
		ID:        string(w.GetID()),
		Type:      ww.entry.params.Type,
		URL:       ww.entry.params.URL,
		State:     w.GetState().String(),
		TimeTaken: w.GetTimeTaken().Microseconds(),
		Timestamp: w.GetTimestamp().UnixMicro(),
		Error:     errMsg,
		Total:     w.Dataset().Len(),
		Visible:   len(w.Dataset().VisibleRows()),
		Sort:      sortKeys,
		Filter:    w.Dataset().Filter().Open,
	})
}

// columnsWrap is a wrapper around core.Columns with msgpack marshaling capabilities
type columnsWrap struct {
	columns core.Columns
}

func WrapColumns(columns core.Columns) *columnsWrap {
	return &columnsWrap{
		columns: columns,
	}
}

func (cw *columnsWrap) MarshalMsgPack(enc *msgpack.Encoder) error {
	names := make([]string, len(cw.columns))
	copy(names, cw.columns)
	return enc.Encode(names)
}
