package integration

import (
	"context"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tsuite "github.com/stretchr/testify/suite"
	tc "github.com/testcontainers/testcontainers-go"

	"github.com/kndndrj/iltable/core"
	"github.com/kndndrj/iltable/core/format"
	th "github.com/kndndrj/iltable/tests/testhelpers"
)

// PostgresTestSuite is the test suite for the postgres source.
type PostgresTestSuite struct {
	tsuite.Suite // inherit from testify suite
	// ctr is the postgres testcontainer
	ctr *th.PostgresContainer
	ctx context.Context
}

// TestPostgresTestSuite is the entrypoint for go test.
//
// testify/suite can't handle parallel tests, see
// https://github.com/stretchr/testify/issues/934
func TestPostgresTestSuite(t *testing.T) {
	tsuite.Run(t, new(PostgresTestSuite))
}

func (suite *PostgresTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	ctr, err := th.NewPostgresContainer(suite.ctx)
	if err != nil {
		log.Fatal(err)
	}

	suite.ctr = ctr
}

func (suite *PostgresTestSuite) TeardownSuite() {
	tc.CleanupContainer(suite.T(), suite.ctr)
}

func (suite *PostgresTestSuite) loadBooks() *core.Widget {
	t := suite.T()

	source, err := suite.ctr.NewSource("SELECT title, author, year, tags, read FROM books ORDER BY id")
	require.NoError(t, err)

	w, states, err := th.LoadWidget(t, source)
	require.NoError(t, err)
	require.Equal(t, []core.WidgetState{core.WidgetStateLoading, core.WidgetStateReady}, states, w.Err())
	t.Cleanup(w.Close)

	return w
}

func (suite *PostgresTestSuite) TestShouldLoadBooks() {
	t := suite.T()
	w := suite.loadBooks()

	columns, err := w.Columns()
	assert.NoError(t, err)
	assert.Equal(t, core.Columns{"title", "author", "year", "tags", "read"}, columns)

	rows := w.Dataset().Rows()
	assert.Len(t, rows, 5)
	assert.Equal(t, core.String("Germinal"), rows[0].Get("title"))
	assert.Equal(t, core.Number(1885), rows[0].Get("year"))
	assert.Equal(t, core.Boolean(true), rows[0].Get("read"))
	assert.Equal(t, core.KindObject, rows[0].Get("tags").Kind())
	assert.Equal(t, core.Null, rows[2].Get("tags"))
	assert.Equal(t, core.Null, rows[2].Get("read"))
}

func (suite *PostgresTestSuite) TestShouldLoadDefaultQuery() {
	t := suite.T()

	source, err := suite.ctr.NewSource("")
	assert.NoError(t, err)

	w, states, err := th.LoadWidget(t, source)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, []core.WidgetState{core.WidgetStateLoading, core.WidgetStateReady}, states)
	// SELECT * keeps the id column in table order
	columns, err := w.Columns()
	assert.NoError(t, err)
	assert.Equal(t, "id", columns[0])
	assert.Equal(t, 5, w.Dataset().Len())
}

func (suite *PostgresTestSuite) TestShouldSortBooks() {
	t := suite.T()
	w := suite.loadBooks()

	err := w.Sort(core.ParseSortKey("year"))
	assert.NoError(t, err)
	assert.Equal(t,
		[]string{"Les Misérables", "Nana", "Germinal", "Bel-Ami", "Le Rêve"},
		th.Column(t, w.Dataset().VisibleRows(), "title"),
	)

	err = w.Sort(core.ParseSortKey("-read"), core.ParseSortKey("title"))
	assert.NoError(t, err)
	assert.Equal(t,
		[]string{"Germinal", "Les Misérables", "Bel-Ami", "Nana", "Le Rêve"},
		th.Column(t, w.Dataset().VisibleRows(), "title"),
	)
}

func (suite *PostgresTestSuite) TestShouldFilterBooks() {
	t := suite.T()
	w := suite.loadBooks()

	open, err := w.ToggleFilter("author")
	assert.NoError(t, err)
	assert.True(t, open)

	triggered, err := w.HandleKey("author", "Enter", "zola")
	assert.NoError(t, err)
	assert.True(t, triggered)
	assert.Equal(t,
		[]string{"Germinal", "Nana", "Le Rêve"},
		th.Column(t, w.Dataset().VisibleRows(), "title"),
	)

	out, err := w.Format(format.NewCSV())
	assert.NoError(t, err)
	assert.Contains(t, string(out), "Le Rêve,Emile ZOLA,1888,,\n")
	assert.NotContains(t, string(out), "HUGO")
}

func (suite *PostgresTestSuite) TestShouldFailInvalidQuery() {
	t := suite.T()

	want := "syntax error"

	source, err := suite.ctr.NewSource("invalid sql")
	require.NoError(t, err)

	w, states, err := th.LoadWidget(t, source)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, []core.WidgetState{core.WidgetStateLoading, core.WidgetStateLoadingFailed}, states)
	assert.ErrorContains(t, w.Err(), want)
	assert.Zero(t, w.Dataset().Len())
}
