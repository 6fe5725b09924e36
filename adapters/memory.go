package adapters

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/kndndrj/iltable/core"
)

//go:embed books.json
var booksDocument []byte

// Register client
func init() {
	_ = register(&Memory{}, "memory", "books")
}

var _ core.Adapter = (*Memory)(nil)

// Memory serves an inline json document. An empty url (or "books")
// serves the built-in books sample.
type Memory struct{}

func (*Memory) Connect(url string) (core.Source, error) {
	doc := []byte(strings.TrimSpace(url))
	if len(doc) == 0 || string(doc) == "books" {
		doc = booksDocument
	}

	// parse eagerly so malformed documents fail on connect
	records, err := core.ReadDocument(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("core.ReadDocument: %w", err)
	}

	return &memorySource{records: records}, nil
}

type memorySource struct {
	records []*core.Record
}

func (ms *memorySource) Records(ctx context.Context) ([]*core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ms.records, nil
}

func (*memorySource) Close() {}
