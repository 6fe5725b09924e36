package handler

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/neovim/go-client/nvim"
	"golang.org/x/sync/errgroup"

	"github.com/kndndrj/iltable/adapters"
	"github.com/kndndrj/iltable/core"
	"github.com/kndndrj/iltable/core/format"
	"github.com/kndndrj/iltable/plugin"
	"github.com/kndndrj/iltable/store"
)

// WidgetParams describe where a widget loads its records from and
// where its snapshots go.
type WidgetParams struct {
	Type  string `json:"type"`
	URL   string `json:"url"`
	Store string `json:"store,omitempty"`
}

// WidgetEntry is a widget together with the params it was created from.
type WidgetEntry struct {
	widget *core.Widget
	params *WidgetParams
	store  core.Store

	// display buffer and visible row range
	mu     sync.Mutex
	buffer *nvim.Buffer
	from   int
	to     int
}

func (e *WidgetEntry) Widget() *core.Widget { return e.widget }

func (e *WidgetEntry) Params() *WidgetParams { return e.params }

type Handler struct {
	vim    *nvim.Nvim
	log    *plugin.Logger
	events *eventBus
	config *handlerConfig

	mu           sync.RWMutex
	lookupWidget map[core.WidgetID]*WidgetEntry
	restored     chan struct{}
}

func New(vim *nvim.Nvim, logger *plugin.Logger, opts ...Option) *Handler {
	config := &handlerConfig{}
	for _, opt := range opts {
		opt(config)
	}

	h := &Handler{
		vim:    vim,
		log:    logger,
		config: config,
		events: &eventBus{
			vim: vim,
			log: logger,
		},

		lookupWidget: make(map[core.WidgetID]*WidgetEntry),
	}

	// restore widgets of the previous session concurrently
	h.restored = make(chan struct{})
	go func() {
		defer close(h.restored)

		err := h.restoreWidgetLog()
		if err != nil {
			h.log.Infof("h.restoreWidgetLog: %s", err)
		}
	}()

	return h
}

func (h *Handler) Close() {
	<-h.restored

	// store widget log
	err := h.storeWidgetLog()
	if err != nil {
		h.log.Infof("h.storeWidgetLog: %s", err)
	}

	h.mu.Lock()
	entries := h.lookupWidget
	h.lookupWidget = make(map[core.WidgetID]*WidgetEntry)
	h.mu.Unlock()

	// render hooks of loading widgets take the lookup lock
	g := &errgroup.Group{}
	for _, e := range entries {
		g.Go(func() error {
			return closeEntry(e)
		})
	}
	if err := g.Wait(); err != nil {
		h.log.Errorf("closeEntry: %s", err)
	}
}

func closeEntry(e *WidgetEntry) error {
	e.widget.Close()
	if e.store == nil {
		return nil
	}
	if err := e.store.Close(); err != nil {
		return fmt.Errorf("store.Close: %w", err)
	}
	return nil
}

func (h *Handler) CreateWidget(params *WidgetParams) (core.WidgetID, error) {
	source, err := adapters.NewSource(params.Type, params.URL)
	if err != nil {
		return "", fmt.Errorf("adapters.NewSource: %w", err)
	}

	opts := []core.WidgetOption{
		core.WidgetWithLogger(h.log),
		core.WidgetWithStateHook(h.events.WidgetStateChanged),
		core.WidgetWithRenderer(h.renderWidget),
	}

	var st core.Store
	if params.Store != "" {
		st, err = store.New(params.Store)
		if err != nil {
			source.Close()
			return "", fmt.Errorf("store.New: %w", err)
		}
		opts = append(opts, core.WidgetWithStore(st))
	}

	// register before loading starts, so the first render finds the entry
	entry := &WidgetEntry{
		params: params,
		store:  st,
		to:     -1,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry.widget = core.NewWidget(source, opts...)
	h.lookupWidget[entry.widget.GetID()] = entry

	return entry.widget.GetID(), nil
}

func (h *Handler) getEntry(id core.WidgetID) (*WidgetEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e, ok := h.lookupWidget[id]
	if !ok {
		return nil, fmt.Errorf("unknown widget with id: %q", id)
	}
	return e, nil
}

func (h *Handler) DeleteWidget(id core.WidgetID) error {
	h.mu.Lock()
	e, ok := h.lookupWidget[id]
	delete(h.lookupWidget, id)
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("unknown widget with id: %q", id)
	}

	if err := closeEntry(e); err != nil {
		h.log.Errorf("closeEntry: %s", err)
	}
	return nil
}

// GetWidgets returns widgets with provided ids, or all widgets if ids are empty.
func (h *Handler) GetWidgets(ids []core.WidgetID) []*WidgetEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var entries []*WidgetEntry
	for id, e := range h.lookupWidget {
		if len(ids) > 0 && !slices.Contains(ids, id) {
			continue
		}
		entries = append(entries, e)
	}

	slices.SortFunc(entries, func(a, b *WidgetEntry) int {
		return a.widget.GetTimestamp().Compare(b.widget.GetTimestamp())
	})

	return entries
}

func (h *Handler) WidgetWait(id core.WidgetID, timeout time.Duration) (core.WidgetState, error) {
	e, err := h.getEntry(id)
	if err != nil {
		return core.WidgetStateUnknown, err
	}

	select {
	case <-e.widget.Done():
	case <-time.After(timeout):
	}

	return e.widget.GetState(), e.widget.Err()
}

func (h *Handler) WidgetColumns(id core.WidgetID) (core.Columns, error) {
	e, err := h.getEntry(id)
	if err != nil {
		return nil, err
	}

	return e.widget.Columns()
}

func (h *Handler) WidgetSort(id core.WidgetID, column, direction string) error {
	e, err := h.getEntry(id)
	if err != nil {
		return err
	}

	dir, err := core.DirectionFromString(direction)
	if err != nil {
		return fmt.Errorf("core.DirectionFromString: %w", err)
	}

	return e.widget.Sort(core.SortKey{Column: column, Direction: dir})
}

func (h *Handler) WidgetToggleFilter(id core.WidgetID, column string) (bool, error) {
	e, err := h.getEntry(id)
	if err != nil {
		return false, err
	}

	return e.widget.ToggleFilter(column)
}

// WidgetSearch applies the query if key is a trigger key and reports
// whether it did.
func (h *Handler) WidgetSearch(id core.WidgetID, column, key, query string) (bool, error) {
	e, err := h.getEntry(id)
	if err != nil {
		return false, err
	}

	return e.widget.HandleKey(column, key, query)
}

// WidgetDisplay attaches a buffer to the widget and renders visible rows
// from "from" to "to" into it. It returns the number of visible rows.
func (h *Handler) WidgetDisplay(id core.WidgetID, buffer nvim.Buffer, from, to int) (int, error) {
	e, err := h.getEntry(id)
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	e.buffer = &buffer
	e.from = from
	e.to = to
	e.mu.Unlock()

	if err := e.widget.Render(); err != nil {
		return 0, fmt.Errorf("widget.Render: %w", err)
	}

	return len(e.widget.Dataset().VisibleRows()), nil
}

// renderWidget is the render hook of every widget.
func (h *Handler) renderWidget(w *core.Widget) {
	e, err := h.getEntry(w.GetID())
	if err != nil {
		// widget loaded before it was registered, display will render it
		return
	}

	e.mu.Lock()
	buffer, from, to := e.buffer, e.from, e.to
	e.mu.Unlock()

	if buffer != nil && h.vim != nil {
		text, err := w.Dataset().FormatRange(format.NewTable(), from, to)
		if err != nil {
			h.log.Errorf("dataset.FormatRange: %s", err)
			return
		}

		_, err = newBufferWriter(h.vim, *buffer).Write(text)
		if err != nil {
			h.log.Errorf("buffer.Write: %s", err)
			return
		}
	}

	h.events.WidgetRendered(w)
}

func getFormatter(fmat string) (core.Formatter, error) {
	switch fmat {
	case "json":
		return format.NewJSON(), nil
	case "csv":
		return format.NewCSV(), nil
	case "table":
		return format.NewTable(), nil
	case "plain":
		return format.NewPlainTable(), nil
	default:
		return nil, fmt.Errorf("store format: %q is not supported", fmat)
	}
}

// WidgetStore writes visible rows of a widget in the given format to an output.
func (h *Handler) WidgetStore(id core.WidgetID, fmat, out string, from, to int, arg ...any) error {
	e, err := h.getEntry(id)
	if err != nil {
		return err
	}

	formatter, err := getFormatter(fmat)
	if err != nil {
		return err
	}

	writer, cleanup, err := h.getStoreWriter(out, arg...)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := e.widget.Columns(); err != nil {
		return err
	}

	text, err := e.widget.Dataset().FormatRange(formatter, from, to)
	if err != nil {
		return fmt.Errorf("dataset.FormatRange: %w", err)
	}

	_, err = writer.Write(text)
	if err != nil {
		return fmt.Errorf("writer.Write: %w", err)
	}

	return nil
}

func (h *Handler) getStoreWriter(output string, arg ...any) (writer io.Writer, cleanup func(), err error) {
	switch output {
	case "file":
		if len(arg) < 1 || arg[0] == "" {
			return nil, func() {}, fmt.Errorf("no output path provided")
		}

		path, ok := arg[0].(string)
		if !ok {
			return nil, func() {}, fmt.Errorf("invalid output path: not a string")
		}

		writer, err := os.Create(path)
		if err != nil {
			return nil, func() {}, err
		}

		return writer, func() { writer.Close() }, nil
	case "buffer":
		if h.vim == nil {
			return nil, func() {}, fmt.Errorf("buffer output needs a running editor")
		}
		if len(arg) < 1 {
			return nil, func() {}, fmt.Errorf("no buffer provided")
		}

		buf, ok := arg[0].(int64)
		if ok {
			return newBufferWriter(h.vim, nvim.Buffer(buf)), func() {}, nil
		}

		bufstr, ok := arg[0].(string)
		if ok {
			buf, err := strconv.ParseInt(bufstr, 10, 64)
			return newBufferWriter(h.vim, nvim.Buffer(buf)), func() {}, err
		}

		return nil, func() {}, fmt.Errorf("buffer number not an int")

	case "yank":
		if h.vim == nil {
			return nil, func() {}, fmt.Errorf("yank output needs a running editor")
		}
		register := ""
		if len(arg) > 0 {
			register, _ = arg[0].(string)
		}

		return newRegisterWriter(h.vim, register), func() {}, nil
	}

	return nil, func() {}, fmt.Errorf("store output: %q is not supported", output)
}
