package core

import "strings"

// TriggerKeys are the key presses that evaluate a search query.
var TriggerKeys = []string{"Enter", "Tab"}

func IsTriggerKey(key string) bool {
	for _, k := range TriggerKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Filter is a case-insensitive substring filter on a single column.
type Filter struct {
	Column string
	Query  string
}

// Matches reports whether a row passes the filter.
func (f Filter) Matches(row *Row) bool {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query == "" {
		return true
	}

	value := row.Get(f.Column)
	if value.IsNull() {
		return false
	}

	return strings.Contains(strings.ToLower(value.String()), query)
}

// FilterState holds the single open filter control and the applied filter.
type FilterState struct {
	// column whose filter input is open, "" if none
	Open string
	// applied filter, nil if all rows are shown
	Applied *Filter
}

// ApplyFilter flags row visibility according to the filter. A nil filter
// shows every row.
func ApplyFilter(rows []*Row, filter *Filter) {
	for _, r := range rows {
		r.visible = filter == nil || filter.Matches(r)
	}
}
