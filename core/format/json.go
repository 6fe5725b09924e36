package format

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kndndrj/iltable/core"
)

var _ core.Formatter = (*JSON)(nil)

type JSON struct{}

func NewJSON() *JSON {
	return &JSON{}
}

// orderedRecord marshals to a json object with keys in column order.
type orderedRecord struct {
	columns core.Columns
	values  []core.Value
}

func (o orderedRecord) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, c := range o.columns {
		if i > 0 {
			b.WriteByte(',')
		}

		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')

		val, err := o.values[i].MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(val)
	}
	b.WriteByte('}')

	return b.Bytes(), nil
}

func (jf *JSON) Format(columns core.Columns, rows []*core.Row, _ *core.FormatterOptions) ([]byte, error) {
	data := make([]orderedRecord, 0, len(rows))
	for _, row := range rows {
		data = append(data, orderedRecord{
			columns: columns,
			values:  row.Values(columns),
		})
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json.MarshalIndent: %w", err)
	}

	return out, nil
}
