package adapters

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kndndrj/iltable/core"
)

// Register client
func init() {
	_ = register(&File{}, "file", "json")
}

var _ core.Adapter = (*File)(nil)

// File reads a json document from the local filesystem.
type File struct{}

func (*File) Connect(url string) (core.Source, error) {
	path := strings.TrimPrefix(url, "file://")
	if path == "" {
		return nil, fmt.Errorf("file: empty path in url %q", url)
	}

	return &fileSource{path: path}, nil
}

type fileSource struct {
	path string
}

func (fs *fileSource) Records(ctx context.Context) ([]*core.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(fs.path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	records, err := core.ReadDocument(f)
	if err != nil {
		return nil, fmt.Errorf("core.ReadDocument: %w", err)
	}

	return records, nil
}

func (*fileSource) Close() {}
