package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/kndndrj/iltable/core"
)

var _ core.Source = (*Source)(nil)

// Source is a mocked record source.
type Source struct {
	records []*core.Record
	config  *sourceConfig
	closed  bool
}

// NewSource returns a mocked source yielding provided records.
func NewSource(records []*core.Record, opts ...SourceOption) *Source {
	config := &sourceConfig{
		sleep: 0,
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Source{
		records: records,
		config:  config,
	}
}

func (s *Source) Records(ctx context.Context) ([]*core.Record, error) {
	if s.config.sleep > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.config.sleep):
		}
	}

	if s.config.sideEffect != nil {
		if err := s.config.sideEffect(ctx); err != nil {
			return nil, fmt.Errorf("side effect error: %w", err)
		}
	}

	return s.records, nil
}

func (s *Source) Close() {
	s.closed = true
}

// IsClosed reports whether Close was called.
func (s *Source) IsClosed() bool {
	return s.closed
}

var _ core.Adapter = (*Adapter)(nil)

// Adapter returns mocked sources with the same records for every url.
type Adapter struct {
	records []*core.Record
	opts    []SourceOption
}

func NewAdapter(records []*core.Record, opts ...SourceOption) *Adapter {
	return &Adapter{
		records: records,
		opts:    opts,
	}
}

func (a *Adapter) Connect(_ string) (core.Source, error) {
	return NewSource(a.records, a.opts...), nil
}

// NewRecords returns records in form of:
//
//	{ "index": <index>(number), "name": "row_<index>"(string) }
//
// where the first index is "from" and the last one is one less than "to".
func NewRecords(from, to int) []*core.Record {
	var records []*core.Record

	for i := from; i < to; i++ {
		records = append(records, core.NewRecord(
			core.Field{Name: "index", Value: core.Number(float64(i))},
			core.Field{Name: "name", Value: core.String(fmt.Sprintf("row_%d", i))},
		))
	}
	return records
}
