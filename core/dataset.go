package core

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var ErrUnknownColumn = errors.New("unknown column")

var errNoSortKeys = errors.New("no sort keys provided")

// Dataset is the in-memory table of a single widget: discovered columns,
// rows in their current order and the filter state.
type Dataset struct {
	columns Columns
	rows    []*Row
	filter  FilterState
	sort    []SortKey

	mu sync.RWMutex
}

func NewDataset() *Dataset {
	return &Dataset{
		columns: Columns{},
		rows:    []*Row{},
	}
}

// Load replaces the dataset contents with the provided records. Every row
// is extended with Null placeholders for columns discovered after it.
func (d *Dataset) Load(records []*Record) {
	columns, rows := Load(records)
	for _, r := range rows {
		r.extend(columns)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.columns = columns
	d.rows = rows
	d.filter = FilterState{}
	d.sort = nil
}

// Wipe clears everything.
func (d *Dataset) Wipe() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.columns = Columns{}
	d.rows = []*Row{}
	d.filter = FilterState{}
	d.sort = nil
}

func (d *Dataset) Columns() Columns {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append(Columns{}, d.columns...)
}

// Rows returns all rows in their current order, hidden ones included.
func (d *Dataset) Rows() []*Row {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append([]*Row{}, d.rows...)
}

// VisibleRows returns rows that pass the applied filter, in current order.
func (d *Dataset) VisibleRows() []*Row {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.visibleRows()
}

func (d *Dataset) visibleRows() []*Row {
	var out []*Row
	for _, r := range d.rows {
		if r.visible {
			out = append(out, r)
		}
	}
	return out
}

func (d *Dataset) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.rows)
}

// SortKeys returns the keys of the last sort.
func (d *Dataset) SortKeys() []SortKey {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append([]SortKey{}, d.sort...)
}

// Sort re-sorts the full row list in place.
func (d *Dataset) Sort(keys ...SortKey) error {
	if len(keys) < 1 {
		return errNoSortKeys
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	for _, k := range keys {
		if !d.columns.Contains(k.Column) {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, k.Column)
		}
	}

	SortRows(d.rows, keys...)
	d.sort = keys

	return nil
}

// Filter returns the current filter state.
func (d *Dataset) Filter() FilterState {
	d.mu.RLock()
	defer d.mu.RUnlock()

	state := d.filter
	if state.Applied != nil {
		f := *state.Applied
		state.Applied = &f
	}
	return state
}

// ToggleFilter opens the filter input of a column, closing and clearing
// any other. Toggling an open input closes it and shows all rows.
// It returns whether the input is open afterwards.
func (d *Dataset) ToggleFilter(column string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.columns.Contains(column) {
		return false, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	if d.filter.Open == column {
		d.filter = FilterState{}
		ApplyFilter(d.rows, nil)
		return false, nil
	}

	if d.filter.Applied != nil && d.filter.Applied.Column != column {
		d.filter.Applied = nil
		ApplyFilter(d.rows, nil)
	}
	d.filter.Open = column

	return true, nil
}

// Search applies a filter on a column, clearing any other column's filter.
func (d *Dataset) Search(column, query string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.columns.Contains(column) {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}

	query = strings.TrimSpace(query)
	f := &Filter{Column: column, Query: query}
	d.filter = FilterState{
		Open:    column,
		Applied: f,
	}
	if query == "" {
		d.filter.Applied = nil
		f = nil
	}
	ApplyFilter(d.rows, f)

	return nil
}

// ClearFilter closes any filter input and shows all rows.
func (d *Dataset) ClearFilter() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.filter = FilterState{}
	ApplyFilter(d.rows, nil)
}

// Format renders all visible rows with the formatter.
func (d *Dataset) Format(formatter Formatter) ([]byte, error) {
	return d.FormatRange(formatter, 0, -1)
}

// FormatRange renders a range of visible rows with the formatter.
// See VisibleRange for range semantics.
func (d *Dataset) FormatRange(formatter Formatter, from, to int) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rows, fromAdjusted, _, err := visibleRange(d.visibleRows(), from, to)
	if err != nil {
		return nil, fmt.Errorf("visibleRange: %w", err)
	}

	opts := &FormatterOptions{
		ChunkStart: fromAdjusted,
		Total:      len(d.rows),
	}

	f, err := formatter.Format(d.columns, rows, opts)
	if err != nil {
		return nil, fmt.Errorf("formatter.Format: %w", err)
	}

	return f, nil
}

// VisibleRange returns a range of visible rows.
func (d *Dataset) VisibleRange(from, to int) ([]*Row, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rows, _, _, err := visibleRange(d.visibleRows(), from, to)
	return rows, err
}

// Snapshot is the lossy string form of the current row list.
// It is not meant to be parsed back.
func (d *Dataset) Snapshot() string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	parts := make([]string, len(d.rows))
	for i, r := range d.rows {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}
