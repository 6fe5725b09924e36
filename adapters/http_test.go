package adapters_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/iltable/adapters"
)

func TestHTTP(t *testing.T) {
	r := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/books":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"books": [{"title": "Germinal"}, {"title": "Nana", "read": true}]}`))
		default:
			http.NotFound(w, req)
		}
	}))
	defer srv.Close()

	source, err := adapters.NewSource("http", srv.URL+"/books")
	r.NoError(err)
	defer source.Close()

	records, err := source.Records(context.Background())
	r.NoError(err)
	r.Len(records, 2)

	read, ok := records[1].Get("read")
	r.True(ok)
	r.Equal("true", read.String())

	// can be fetched again
	records, err = source.Records(context.Background())
	r.NoError(err)
	r.Len(records, 2)

	missing, err := adapters.NewSource("http", srv.URL+"/missing")
	r.NoError(err)
	_, err = missing.Records(context.Background())
	r.ErrorContains(err, "404")
}

func TestHTTP_Canceled(t *testing.T) {
	r := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		<-req.Context().Done()
	}))
	defer srv.Close()

	source, err := adapters.NewSource("http", srv.URL)
	r.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = source.Records(ctx)
	r.ErrorIs(err, context.Canceled)
}
