package core

// Load normalizes records into columns and rows.
//
// Columns are the union of record keys in first-seen order. Each accepted
// record becomes a row with id equal to its index among accepted records,
// carrying a value for every column discovered so far (Null if the record
// lacks it). Rows are not backfilled with columns discovered in later
// records. Nil records are skipped.
func Load(records []*Record) (Columns, []*Row) {
	columns := Columns{}
	seen := make(map[string]struct{})
	rows := make([]*Row, 0, len(records))

	for _, rec := range records {
		if rec == nil {
			continue
		}

		for _, f := range rec.Fields() {
			if _, ok := seen[f.Name]; ok {
				continue
			}
			seen[f.Name] = struct{}{}
			columns = append(columns, f.Name)
		}

		row := newRow(len(rows))
		for _, c := range columns {
			v, _ := rec.Get(c)
			row.set(c, v)
		}
		rows = append(rows, row)
	}

	return columns, rows
}
