package format

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/kndndrj/iltable/core"
)

var _ core.Formatter = (*CSV)(nil)

type CSV struct{}

func NewCSV() *CSV {
	return &CSV{}
}

func (cf *CSV) parse(columns core.Columns, rows []*core.Row) [][]string {
	data := [][]string{
		columns,
	}
	for _, row := range rows {
		csvRow := make([]string, len(columns))
		for i, val := range row.Values(columns) {
			csvRow[i] = val.String()
		}
		data = append(data, csvRow)
	}

	return data
}

func (cf *CSV) Format(columns core.Columns, rows []*core.Row, _ *core.FormatterOptions) ([]byte, error) {
	data := cf.parse(columns, rows)

	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	err := w.WriteAll(data)
	if err != nil {
		return nil, fmt.Errorf("w.WriteAll: %w", err)
	}

	return b.Bytes(), nil
}
