package adapters

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/kndndrj/iltable/core"
)

// Register client
func init() {
	_ = register(&HTTP{}, "http", "https")
}

var _ core.Adapter = (*HTTP)(nil)

// HTTP fetches a json document with a GET request.
type HTTP struct {
	// Client overrides the default pooled client.
	Client *http.Client
}

func (h *HTTP) Connect(url string) (core.Source, error) {
	client := h.Client
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequest: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return &httpSource{
		client:  client,
		request: req,
	}, nil
}

type httpSource struct {
	client  *http.Client
	request *http.Request
}

func (hs *httpSource) Records(ctx context.Context) ([]*core.Record, error) {
	resp, err := hs.client.Do(hs.request.Clone(ctx))
	if err != nil {
		return nil, fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status: %s", resp.Status)
	}

	records, err := core.ReadDocument(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("core.ReadDocument: %w", err)
	}

	return records, nil
}

func (hs *httpSource) Close() {
	hs.client.CloseIdleConnections()
}
