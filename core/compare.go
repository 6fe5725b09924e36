package core

import (
	"fmt"
	"slices"
	"strings"
)

// Direction of a sort key.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

func DirectionFromString(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "1", "asc", "ascending", "":
		return Ascending, nil
	case "-1", "desc", "descending":
		return Descending, nil
	default:
		return 0, fmt.Errorf("invalid sort direction: %q", s)
	}
}

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortKey is a column with a direction.
type SortKey struct {
	Column    string
	Direction Direction
}

// ParseSortKey parses "column" as ascending and "-column" as descending.
func ParseSortKey(s string) SortKey {
	if strings.HasPrefix(s, "-") {
		return SortKey{Column: s[1:], Direction: Descending}
	}
	return SortKey{Column: s, Direction: Ascending}
}

func (k SortKey) String() string {
	if k.Direction == Descending {
		return "-" + k.Column
	}
	return k.Column
}

// Comparator builds a comparison function from sort keys. Keys are
// evaluated in order and the first non-zero result wins. Rows equal on
// all keys compare as 0.
func Comparator(keys ...SortKey) func(a, b *Row) int {
	return func(a, b *Row) int {
		for _, k := range keys {
			dir := k.Direction
			if dir != Descending {
				dir = Ascending
			}

			res := a.Get(k.Column).Compare(b.Get(k.Column)) * int(dir)
			if res != 0 {
				return res
			}
		}
		return 0
	}
}

// SortRows sorts rows in place. Rows that compare equal keep their
// relative order.
func SortRows(rows []*Row, keys ...SortKey) {
	slices.SortStableFunc(rows, Comparator(keys...))
}
