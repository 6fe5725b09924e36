package format

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/kndndrj/iltable/core"
)

var _ core.Formatter = (*Table)(nil)

// Table renders rows as a text table. Every non-null cell is prefixed
// with the badge of its kind, null cells stay empty.
type Table struct {
	badges bool
}

func NewTable() *Table {
	return &Table{
		badges: true,
	}
}

// NewPlainTable returns a table formatter without badges.
func NewPlainTable() *Table {
	return &Table{}
}

func (tf *Table) cell(v core.Value) string {
	if v.IsNull() {
		return ""
	}
	if !tf.badges {
		return v.String()
	}
	return fmt.Sprintf("[%s] %s", v.Kind().Badge(), v.String())
}

func (tf *Table) Format(columns core.Columns, rows []*core.Row, opts *core.FormatterOptions) ([]byte, error) {
	tableHeaders := table.Row{""}
	for _, c := range columns {
		tableHeaders = append(tableHeaders, c)
	}

	index := 0
	total := len(rows)
	if opts != nil {
		index = opts.ChunkStart
		if opts.Total > 0 {
			total = opts.Total
		}
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		indexedRow := table.Row{index + 1}
		for _, v := range row.Values(columns) {
			indexedRow = append(indexedRow, tf.cell(v))
		}
		tableRows = append(tableRows, indexedRow)
		index++
	}

	t := table.NewWriter()
	t.AppendHeader(tableHeaders)
	t.AppendRows(tableRows)
	t.AppendSeparator()
	t.AppendFooter(table.Row{"", fmt.Sprintf("%s of %s rows", humanize.Comma(int64(len(rows))), humanize.Comma(int64(total)))})
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false
	t.SuppressTrailingSpaces()
	render := t.Render()

	return []byte(render), nil
}
