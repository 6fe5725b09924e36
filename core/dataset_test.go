package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kndndrj/iltable/core"
)

func book(title, author string) *core.Record {
	return core.NewRecord(
		core.Field{Name: "title", Value: core.String(title)},
		core.Field{Name: "author", Value: core.String(author)},
	)
}

func titles(rows []*core.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Get("title").String()
	}
	return out
}

func authors(rows []*core.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Get("author").String()
	}
	return out
}

func TestDataset_Books(t *testing.T) {
	r := require.New(t)

	ds := core.NewDataset()
	ds.Load([]*core.Record{
		book("Germinal", "Emile ZOLA"),
		book("Nana", "Emile ZOLA"),
		book("L'assomoir", "Alexis G"),
	})

	r.Equal(core.Columns{"title", "author"}, ds.Columns())

	err := ds.Sort(core.SortKey{Column: "author", Direction: core.Ascending})
	r.NoError(err)
	r.Equal([]string{"Alexis G", "Emile ZOLA", "Emile ZOLA"}, authors(ds.Rows()))
	r.Equal([]string{"L'assomoir", "Germinal", "Nana"}, titles(ds.Rows()))

	err = ds.Search("title", "nana")
	r.NoError(err)
	r.Equal([]string{"Nana"}, titles(ds.VisibleRows()))
	// rows are flagged, not removed
	r.Len(ds.Rows(), 3)
}

func TestDataset_MissingKeyInEarlierRecord(t *testing.T) {
	r := require.New(t)

	ds := core.NewDataset()
	ds.Load([]*core.Record{
		book("Germinal", "Emile ZOLA"),
		core.NewRecord(
			core.Field{Name: "title", Value: core.String("Son Excellence Eugène Rougon")},
			core.Field{Name: "test", Value: core.Number(3)},
		),
	})

	r.Equal(core.Columns{"title", "author", "test"}, ds.Columns())

	rows := ds.Rows()
	r.True(rows[0].Has("test"))
	r.True(rows[0].Get("test").IsNull())
	r.True(rows[1].Has("author"))
	r.True(rows[1].Get("author").IsNull())

	for _, row := range rows {
		r.ElementsMatch([]string(ds.Columns()), row.Keys())
	}
}

func TestDataset_FilterExclusivity(t *testing.T) {
	r := require.New(t)

	ds := core.NewDataset()
	ds.Load([]*core.Record{
		book("Germinal", "Emile ZOLA"),
		book("Nana", "Emile ZOLA"),
		book("L'assomoir", "Alexis G"),
	})

	r.NoError(ds.Search("author", "alexis"))
	r.Equal([]string{"L'assomoir"}, titles(ds.VisibleRows()))

	// opening another column's filter clears the first one
	open, err := ds.ToggleFilter("title")
	r.NoError(err)
	r.True(open)
	r.Len(ds.VisibleRows(), 3)
	r.Nil(ds.Filter().Applied)
	r.Equal("title", ds.Filter().Open)

	r.NoError(ds.Search("title", "GER"))
	r.Equal([]string{"Germinal"}, titles(ds.VisibleRows()))

	// searching another column replaces the filter
	r.NoError(ds.Search("author", "zola"))
	r.Equal([]string{"Germinal", "Nana"}, titles(ds.VisibleRows()))
	r.Equal(&core.Filter{Column: "author", Query: "zola"}, ds.Filter().Applied)

	// toggling the open column closes it and shows all
	open, err = ds.ToggleFilter("author")
	r.NoError(err)
	r.False(open)
	r.Len(ds.VisibleRows(), 3)
	r.Equal(core.FilterState{}, ds.Filter())
}

func TestDataset_SortKeepsVisibility(t *testing.T) {
	r := require.New(t)

	ds := core.NewDataset()
	ds.Load([]*core.Record{
		book("Germinal", "Emile ZOLA"),
		book("Nana", "Emile ZOLA"),
		book("L'assomoir", "Alexis G"),
	})

	r.NoError(ds.Search("author", "zola"))
	r.NoError(ds.Sort(core.ParseSortKey("-title")))
	r.Equal([]string{"Nana", "Germinal"}, titles(ds.VisibleRows()))

	ds.ClearFilter()
	r.Equal([]string{"Nana", "L'assomoir", "Germinal"}, titles(ds.VisibleRows()))
}

func TestDataset_Errors(t *testing.T) {
	r := require.New(t)

	ds := core.NewDataset()
	ds.Load([]*core.Record{book("Germinal", "Emile ZOLA")})

	r.ErrorIs(ds.Sort(core.SortKey{Column: "year"}), core.ErrUnknownColumn)
	r.Error(ds.Sort())

	_, err := ds.ToggleFilter("year")
	r.Error(err)
	r.Error(ds.Search("year", "x"))
}

func TestDataset_EmptyInput(t *testing.T) {
	r := require.New(t)

	ds := core.NewDataset()
	ds.Load(nil)

	r.Empty(ds.Columns())
	r.Empty(ds.Rows())
	r.Equal("", ds.Snapshot())
}

func TestDataset_Snapshot(t *testing.T) {
	r := require.New(t)

	ds := core.NewDataset()
	ds.Load([]*core.Record{
		book("Germinal", "Emile ZOLA"),
		core.NewRecord(core.Field{Name: "title", Value: core.String("Nana")}),
	})

	r.Equal("[id:0 title:Germinal author:Emile ZOLA],[id:1 title:Nana author:]", ds.Snapshot())
}

func TestDataset_Wipe(t *testing.T) {
	r := require.New(t)

	ds := core.NewDataset()
	ds.Load([]*core.Record{book("Germinal", "Emile ZOLA")})
	ds.Wipe()

	r.Empty(ds.Columns())
	r.Zero(ds.Len())
}

type countingFormatter struct {
	columns core.Columns
	rows    []*core.Row
	opts    *core.FormatterOptions
}

func (f *countingFormatter) Format(columns core.Columns, rows []*core.Row, opts *core.FormatterOptions) ([]byte, error) {
	f.columns = columns
	f.rows = rows
	f.opts = opts
	return []byte(strings.Join(titles(rows), "\n")), nil
}

func TestDataset_FormatRange(t *testing.T) {
	r := require.New(t)

	ds := core.NewDataset()
	ds.Load([]*core.Record{
		book("Germinal", "Emile ZOLA"),
		book("Nana", "Emile ZOLA"),
		book("L'assomoir", "Alexis G"),
	})
	r.NoError(ds.Search("author", "zola"))

	f := new(countingFormatter)
	out, err := ds.FormatRange(f, 1, -1)
	r.NoError(err)
	r.Equal("Nana", string(out))
	r.Equal(1, f.opts.ChunkStart)
	r.Equal(3, f.opts.Total)

	_, err = ds.FormatRange(f, 2, 1)
	r.Error(err)
}
