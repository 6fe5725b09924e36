package handler_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/kndndrj/iltable/adapters"
	"github.com/kndndrj/iltable/core"
	"github.com/kndndrj/iltable/core/mock"
	"github.com/kndndrj/iltable/handler"
	"github.com/kndndrj/iltable/plugin"
)

func newHandler(t *testing.T, opts ...handler.Option) *handler.Handler {
	t.Helper()

	h := handler.New(nil, plugin.NewStreamLogger(io.Discard, zapcore.DebugLevel), opts...)
	t.Cleanup(h.Close)
	return h
}

func createReady(t *testing.T, h *handler.Handler, params *handler.WidgetParams) core.WidgetID {
	t.Helper()
	r := require.New(t)

	id, err := h.CreateWidget(params)
	r.NoError(err)

	state, err := h.WidgetWait(id, 5*time.Second)
	r.NoError(err)
	r.Equal(core.WidgetStateReady, state)

	return id
}

func TestHandler_Widget(t *testing.T) {
	r := require.New(t)

	h := newHandler(t)
	id := createReady(t, h, &handler.WidgetParams{Type: "books", Store: "memory://"})

	columns, err := h.WidgetColumns(id)
	r.NoError(err)
	r.Equal(core.Columns{"title", "author", "test"}, columns)

	r.NoError(h.WidgetSort(id, "title", "-1"))
	r.Error(h.WidgetSort(id, "title", "sideways"))
	r.ErrorIs(h.WidgetSort(id, "year", "1"), core.ErrUnknownColumn)

	open, err := h.WidgetToggleFilter(id, "author")
	r.NoError(err)
	r.True(open)

	triggered, err := h.WidgetSearch(id, "author", "a", "alexis")
	r.NoError(err)
	r.False(triggered)

	triggered, err = h.WidgetSearch(id, "author", "Enter", "alexis")
	r.NoError(err)
	r.True(triggered)

	entries := h.GetWidgets([]core.WidgetID{id})
	r.Len(entries, 1)
	visible := entries[0].Widget().Dataset().VisibleRows()
	r.Len(visible, 1)
	r.Equal(core.String("L'assomoir"), visible[0].Get("title"))

	r.NoError(h.DeleteWidget(id))
	r.Error(h.DeleteWidget(id))
	r.Empty(h.GetWidgets(nil))

	_, err = h.WidgetColumns(id)
	r.Error(err)
}

func TestHandler_WidgetStore(t *testing.T) {
	r := require.New(t)

	h := newHandler(t)
	id := createReady(t, h, &handler.WidgetParams{Type: "memory", URL: `[{"title": "Nana"}, {"title": "Germinal"}]`})

	r.NoError(h.WidgetSort(id, "title", "asc"))

	path := filepath.Join(t.TempDir(), "out.csv")
	r.NoError(h.WidgetStore(id, "csv", "file", 0, -1, path))

	b, err := os.ReadFile(path)
	r.NoError(err)
	r.Equal("title\nGerminal\nNana\n", string(b))

	r.Error(h.WidgetStore(id, "xml", "file", 0, -1, path))
	r.Error(h.WidgetStore(id, "csv", "carrier-pigeon", 0, -1))
	r.Error(h.WidgetStore(id, "csv", "file", 0, -1))
	r.Error(h.WidgetStore(id, "csv", "yank", 0, -1))
}

func TestHandler_WidgetNotReady(t *testing.T) {
	r := require.New(t)

	r.NoError(new(adapters.Mux).AddAdapter("handler-slow", mock.NewAdapter(
		mock.NewRecords(0, 3),
		mock.SourceWithSleep(10*time.Second),
	)))

	h := newHandler(t)
	id, err := h.CreateWidget(&handler.WidgetParams{Type: "handler-slow"})
	r.NoError(err)

	_, err = h.WidgetColumns(id)
	r.ErrorIs(err, core.ErrWidgetNotReady)

	_, err = h.WidgetToggleFilter(id, "name")
	r.ErrorIs(err, core.ErrWidgetNotReady)

	_, err = h.CreateWidget(&handler.WidgetParams{Type: "carrier-pigeon"})
	r.ErrorIs(err, adapters.ErrUnsupportedTypeAlias)

	_, err = h.CreateWidget(&handler.WidgetParams{Type: "books", Store: "s3://bucket"})
	r.Error(err)
}

func TestHandler_WidgetLog(t *testing.T) {
	r := require.New(t)

	logPath := filepath.Join(t.TempDir(), "widgets.json")

	h := handler.New(nil, plugin.NewStreamLogger(io.Discard, zapcore.InfoLevel), handler.WithWidgetLog(logPath))
	createReady(t, h, &handler.WidgetParams{Type: "books"})
	h.Close()

	restored := newHandler(t, handler.WithWidgetLog(logPath))
	r.Eventually(func() bool {
		return len(restored.GetWidgets(nil)) == 1
	}, 5*time.Second, 10*time.Millisecond)

	entry := restored.GetWidgets(nil)[0]
	r.Equal("books", entry.Params().Type)
}
