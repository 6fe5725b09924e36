package server_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/kndndrj/iltable/core"
	"github.com/kndndrj/iltable/core/mock"
	"github.com/kndndrj/iltable/plugin"
	"github.com/kndndrj/iltable/server"
)

func book(title string, author any) *core.Record {
	return core.NewRecord(
		core.Field{Name: "title", Value: core.String(title)},
		core.Field{Name: "author", Value: core.ValueOf(author)},
	)
}

func newServer(t *testing.T, source core.Source) (*httptest.Server, *core.Widget) {
	t.Helper()

	w := core.NewWidget(source)
	t.Cleanup(w.Close)

	srv := httptest.NewServer(server.New(w, plugin.NewStreamLogger(io.Discard, zapcore.DebugLevel)))
	t.Cleanup(srv.Close)

	return srv, w
}

// client does not follow redirects
func client() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := client().Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func post(t *testing.T, url string, form url.Values) int {
	t.Helper()

	resp, err := client().PostForm(url, form)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestServer(t *testing.T) {
	r := require.New(t)

	srv, w := newServer(t, mock.NewSource([]*core.Record{
		book("Germinal", "Emile ZOLA"),
		book("L'assomoir", "Alexis G"),
		book("La Conquête de Plassans", 1),
		book("Nana", nil),
	}))
	<-w.Done()

	code, body := get(t, srv.URL+"/")
	r.Equal(http.StatusOK, code)
	r.Contains(body, "[a-Z]")
	r.Contains(body, "[0-9]")
	r.Contains(body, "La Conquête de Plassans")
	r.Contains(body, "4 of 4 rows")

	r.Equal(http.StatusSeeOther, post(t, srv.URL+"/sort/author/desc", nil))
	code, body = get(t, srv.URL+"/export.csv")
	r.Equal(http.StatusOK, code)
	r.Equal("title,author\n"+
		"Germinal,Emile ZOLA\n"+
		"L'assomoir,Alexis G\n"+
		"La Conquête de Plassans,1\n"+
		"Nana,\n", body)

	r.Equal(http.StatusSeeOther, post(t, srv.URL+"/filter/author/toggle", nil))

	// only trigger keys apply the query
	r.Equal(http.StatusNoContent, post(t, srv.URL+"/filter/author/search", url.Values{"key": {"z"}, "query": {"zola"}}))
	_, body = get(t, srv.URL+"/export.csv")
	r.Equal(5, strings.Count(body, "\n"))

	r.Equal(http.StatusSeeOther, post(t, srv.URL+"/filter/author/search", url.Values{"key": {"Enter"}, "query": {" ZOLA "}}))
	_, body = get(t, srv.URL+"/export.csv")
	r.Equal("title,author\nGerminal,Emile ZOLA\n", body)

	_, body = get(t, srv.URL+"/")
	r.Contains(body, "1 of 4 rows")
	r.Contains(body, `value="ZOLA"`)

	code, body = get(t, srv.URL+"/export.json")
	r.Equal(http.StatusOK, code)
	r.JSONEq(`[{"title": "Germinal", "author": "Emile ZOLA"}]`, body)

	code, body = get(t, srv.URL+"/export.table")
	r.Equal(http.StatusOK, code)
	r.Contains(body, "1 of 1 rows")

	code, _ = get(t, srv.URL+"/export.xml")
	r.Equal(http.StatusNotFound, code)
}

func TestServer_EscapedColumns(t *testing.T) {
	r := require.New(t)

	srv, w := newServer(t, mock.NewSource([]*core.Record{
		core.NewRecord(
			core.Field{Name: "a%41", Value: core.String("x")},
			core.Field{Name: "A", Value: core.String("y")},
			core.Field{Name: "author/year", Value: core.String("Emile ZOLA/1885")},
		),
		core.NewRecord(
			core.Field{Name: "a%41", Value: core.String("z")},
			core.Field{Name: "A", Value: core.String("w")},
			core.Field{Name: "author/year", Value: core.String("Victor HUGO/1862")},
		),
	}))
	<-w.Done()

	r.Equal(http.StatusSeeOther, post(t, srv.URL+"/sort/"+url.PathEscape("a%41")+"/desc", nil))
	r.Equal([]core.SortKey{{Column: "a%41", Direction: core.Descending}}, w.Dataset().SortKeys())

	r.Equal(http.StatusSeeOther, post(t, srv.URL+"/sort/"+url.PathEscape("author/year")+"/asc", nil))
	r.Equal([]core.SortKey{{Column: "author/year", Direction: core.Ascending}}, w.Dataset().SortKeys())

	r.Equal(http.StatusSeeOther, post(t, srv.URL+"/filter/"+url.PathEscape("a%41")+"/toggle", nil))
	r.Equal("a%41", w.Dataset().Filter().Open)

	r.Equal(http.StatusSeeOther, post(t, srv.URL+"/filter/"+url.PathEscape("a%41")+"/search", url.Values{"key": {"Enter"}, "query": {"z"}}))
	r.Len(w.Dataset().VisibleRows(), 1)
}

func TestServer_SortSameDirection(t *testing.T) {
	r := require.New(t)

	store := mock.NewStore()
	w := core.NewWidget(mock.NewSource(mock.NewRecords(0, 3)), core.WidgetWithStore(store))
	t.Cleanup(w.Close)
	srv := httptest.NewServer(server.New(w, plugin.NewStreamLogger(io.Discard, zapcore.DebugLevel)))
	t.Cleanup(srv.Close)
	<-w.Done()

	r.Equal(http.StatusSeeOther, post(t, srv.URL+"/sort/index/desc", nil))
	_, body := get(t, srv.URL+"/")
	r.Contains(body, `action="/sort/index/desc"><button class="active">`)
	r.Contains(body, `action="/sort/index/asc"><button>`)
	r.NotContains(body, "disabled")

	// the active direction stays clickable and re-renders
	writes := store.Writes()
	r.Equal(http.StatusSeeOther, post(t, srv.URL+"/sort/index/desc", nil))
	r.Equal(writes+1, store.Writes())
}

func TestServer_Errors(t *testing.T) {
	r := require.New(t)

	srv, w := newServer(t, mock.NewSource(mock.NewRecords(0, 3)))
	<-w.Done()

	r.Equal(http.StatusNotFound, post(t, srv.URL+"/sort/year/asc", nil))
	r.Equal(http.StatusBadRequest, post(t, srv.URL+"/sort/name/sideways", nil))
	r.Equal(http.StatusNotFound, post(t, srv.URL+"/filter/year/toggle", nil))
	r.Equal(http.StatusMethodNotAllowed, post(t, srv.URL+"/", nil))
}

func TestServer_NotReady(t *testing.T) {
	r := require.New(t)

	srv, _ := newServer(t, mock.NewSource(mock.NewRecords(0, 3), mock.SourceWithSleep(10*time.Second)))

	code, body := get(t, srv.URL+"/")
	r.Equal(http.StatusServiceUnavailable, code)
	r.Contains(body, "loading")

	r.Equal(http.StatusServiceUnavailable, post(t, srv.URL+"/sort/name/asc", nil))

	code, _ = get(t, srv.URL+"/export.csv")
	r.Equal(http.StatusServiceUnavailable, code)
}
