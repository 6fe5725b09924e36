package server

import (
	"net/url"

	"github.com/dustin/go-humanize"

	"github.com/kndndrj/iltable/core"
)

type legendItem struct {
	Kind  string
	Badge string
}

var legend = []legendItem{
	{Kind: core.KindString.String(), Badge: core.KindString.Badge()},
	{Kind: core.KindNumber.String(), Badge: core.KindNumber.Badge()},
	{Kind: core.KindBoolean.String(), Badge: core.KindBoolean.Badge()},
	{Kind: core.KindObject.String(), Badge: core.KindObject.Badge()},
	{Kind: core.KindNull.String(), Badge: core.KindNull.Badge()},
}

type pageColumn struct {
	Name       string
	Path       string
	Sort       string
	FilterOpen bool
	Query      string
}

type pageCell struct {
	Badge string
	Value string
	Null  bool
}

type pageRow struct {
	Index int
	Cells []pageCell
}

type page struct {
	Legend  []legendItem
	Columns []pageColumn
	Rows    []pageRow
	Visible string
	Total   string
}

func newPage(ds *core.Dataset) *page {
	columns := ds.Columns()
	filter := ds.Filter()

	sorted := make(map[string]string)
	for _, k := range ds.SortKeys() {
		if k.Direction == core.Descending {
			sorted[k.Column] = "desc"
		} else {
			sorted[k.Column] = "asc"
		}
	}

	p := &page{
		Legend:  legend,
		Columns: make([]pageColumn, len(columns)),
	}

	for i, c := range columns {
		pc := pageColumn{
			Name:       c,
			Path:       url.PathEscape(c),
			Sort:       sorted[c],
			FilterOpen: filter.Open == c,
		}
		if filter.Applied != nil && filter.Applied.Column == c {
			pc.Query = filter.Applied.Query
		}
		p.Columns[i] = pc
	}

	visible := ds.VisibleRows()
	p.Rows = make([]pageRow, len(visible))
	for i, row := range visible {
		cells := make([]pageCell, len(columns))
		for j, v := range row.Values(columns) {
			cells[j] = pageCell{
				Badge: v.Kind().Badge(),
				Value: v.String(),
				Null:  v.IsNull(),
			}
		}
		p.Rows[i] = pageRow{
			Index: i + 1,
			Cells: cells,
		}
	}

	p.Visible = humanize.Comma(int64(len(visible)))
	p.Total = humanize.Comma(int64(ds.Len()))

	return p
}
