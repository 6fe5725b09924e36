package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kndndrj/iltable/core"
	"github.com/kndndrj/iltable/core/format"
	"github.com/kndndrj/iltable/plugin"
)

// Server serves a single widget as an html page.
type Server struct {
	widget *core.Widget
	log    *plugin.Logger
	router chi.Router
}

var _ http.Handler = (*Server)(nil)

func New(widget *core.Widget, logger *plugin.Logger) *Server {
	s := &Server{
		widget: widget,
		log:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.pageHandler)
	r.Post("/sort/{column}/{direction}", s.sortHandler)
	r.Post("/filter/{column}/toggle", s.toggleFilterHandler)
	r.Post("/filter/{column}/search", s.searchHandler)
	r.Get("/export.{format}", s.exportHandler)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Debugf("%s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

func (s *Server) writeStatus(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)

	err := statusTemplate.Execute(w, struct {
		Message string
		Retry   bool
	}{
		Message: message,
		Retry:   code == http.StatusServiceUnavailable,
	})
	if err != nil {
		s.log.Errorf("statusTemplate.Execute: %s", err)
	}
}

// writeError maps widget errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrWidgetNotReady):
		msg := "widget is " + s.widget.GetState().String()
		if werr := s.widget.Err(); werr != nil {
			msg = fmt.Sprintf("loading failed: %s", werr)
			s.writeStatus(w, http.StatusInternalServerError, msg)
			return
		}
		s.writeStatus(w, http.StatusServiceUnavailable, msg)
	case errors.Is(err, core.ErrUnknownColumn):
		s.writeStatus(w, http.StatusNotFound, err.Error())
	default:
		s.writeStatus(w, http.StatusBadRequest, err.Error())
	}
}

// urlParam returns a decoded route parameter. chi matches on the raw path
// only when it differs from the decoded one, so only then is it unescaped.
func urlParam(r *http.Request, key string) string {
	param := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return param
	}
	if unescaped, err := url.PathUnescape(param); err == nil {
		return unescaped
	}
	return param
}

func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := s.widget.Columns(); err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, newPage(s.widget.Dataset())); err != nil {
		s.log.Errorf("pageTemplate.Execute: %s", err)
	}
}

func (s *Server) sortHandler(w http.ResponseWriter, r *http.Request) {
	dir, err := core.DirectionFromString(urlParam(r, "direction"))
	if err != nil {
		s.writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	err = s.widget.Sort(core.SortKey{Column: urlParam(r, "column"), Direction: dir})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.redirectHome(w, r)
}

func (s *Server) toggleFilterHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := s.widget.ToggleFilter(urlParam(r, "column")); err != nil {
		s.writeError(w, err)
		return
	}

	s.redirectHome(w, r)
}

func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	triggered, err := s.widget.HandleKey(urlParam(r, "column"), r.PostForm.Get("key"), r.PostForm.Get("query"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	if !triggered {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.redirectHome(w, r)
}

var exportFormats = map[string]struct {
	contentType string
	formatter   func() core.Formatter
}{
	"csv":   {"text/csv; charset=utf-8", func() core.Formatter { return format.NewCSV() }},
	"json":  {"application/json", func() core.Formatter { return format.NewJSON() }},
	"table": {"text/plain; charset=utf-8", func() core.Formatter { return format.NewTable() }},
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	export, ok := exportFormats[chi.URLParam(r, "format")]
	if !ok {
		s.writeStatus(w, http.StatusNotFound, fmt.Sprintf("unsupported export format: %q", chi.URLParam(r, "format")))
		return
	}

	out, err := s.widget.Format(export.formatter())
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.contentType)
	if _, err := w.Write(out); err != nil {
		s.log.Errorf("w.Write: %s", err)
	}
}
