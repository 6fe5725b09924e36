package core

import (
	"context"
	"slices"
	"strings"
)

type (
	// FormatterOptions provide various options for formatters
	FormatterOptions struct {
		// index of the first row passed to the formatter
		ChunkStart int
		// number of rows in the dataset, regardless of visibility
		Total int
	}

	// Formatter converts columns and rows to bytes
	Formatter interface {
		Format(columns Columns, rows []*Row, opts *FormatterOptions) ([]byte, error)
	}
)

type (
	// Source yields the records a widget is loaded from.
	Source interface {
		Records(ctx context.Context) ([]*Record, error)
		Close()
	}

	// Adapter creates sources of a specific type from an url.
	Adapter interface {
		Connect(url string) (Source, error)
	}

	// AdapterFunc lets plain functions act as adapters.
	AdapterFunc func(url string) (Source, error)

	// Store is a key/value store the widget writes render snapshots to.
	Store interface {
		Set(ctx context.Context, key, value string) error
		Get(ctx context.Context, key string) (string, error)
		Close() error
	}
)

func (af AdapterFunc) Connect(url string) (Source, error) {
	return af(url)
}

// Columns is the ordered set of column names discovered in a dataset.
type Columns []string

func (c Columns) Contains(name string) bool {
	return slices.Contains(c, name)
}

// Row is a normalized record with a synthetic id.
type Row struct {
	ID int

	keys    []string
	values  map[string]Value
	visible bool
}

func newRow(id int) *Row {
	return &Row{
		ID:      id,
		values:  make(map[string]Value),
		visible: true,
	}
}

// NewRow returns a visible row with the provided values.
func NewRow(id int, fields ...Field) *Row {
	r := newRow(id)
	for _, f := range fields {
		r.set(f.Name, f.Value)
	}
	return r
}

func (r *Row) set(column string, value Value) {
	if _, ok := r.values[column]; !ok {
		r.keys = append(r.keys, column)
	}
	r.values[column] = value
}

// Has reports whether the row carries a key for the column,
// even if the value is Null.
func (r *Row) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Get returns the value for a column. Missing keys read as Null.
func (r *Row) Get(column string) Value {
	return r.values[column]
}

// Keys returns the column names the row carries, in insertion order.
func (r *Row) Keys() []string {
	return r.keys
}

// Values returns row values in the order of provided columns.
func (r *Row) Values(columns Columns) []Value {
	out := make([]Value, len(columns))
	for i, c := range columns {
		out[i] = r.Get(c)
	}
	return out
}

func (r *Row) Visible() bool {
	return r.visible
}

// extend adds Null placeholders for columns the row does not carry yet.
func (r *Row) extend(columns Columns) {
	for _, c := range columns {
		if !r.Has(c) {
			r.set(c, Null)
		}
	}
}

// String is the lossy debug form of the row.
func (r *Row) String() string {
	var sb strings.Builder
	sb.WriteString("[id:")
	sb.WriteString(Number(float64(r.ID)).String())
	for _, k := range r.keys {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString(":")
		sb.WriteString(r.values[k].String())
	}
	sb.WriteString("]")
	return sb.String()
}
