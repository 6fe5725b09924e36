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
	th "github.com/kndndrj/iltable/tests/testhelpers"
)

// MySQLTestSuite is the test suite for the mysql source.
type MySQLTestSuite struct {
	tsuite.Suite
	ctr *th.MySQLContainer
	ctx context.Context
}

func TestMySQLTestSuite(t *testing.T) {
	tsuite.Run(t, new(MySQLTestSuite))
}

func (suite *MySQLTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	ctr, err := th.NewMySQLContainer(suite.ctx)
	if err != nil {
		log.Fatal(err)
	}

	suite.ctr = ctr
}

func (suite *MySQLTestSuite) TeardownSuite() {
	tc.CleanupContainer(suite.T(), suite.ctr)
}

func (suite *MySQLTestSuite) TestShouldLoadAndSortBooks() {
	t := suite.T()

	source, err := suite.ctr.NewSource("SELECT title, author, tags FROM books ORDER BY id")
	assert.NoError(t, err)

	w, states, err := th.LoadWidget(t, source)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, []core.WidgetState{core.WidgetStateLoading, core.WidgetStateReady}, states, w.Err())

	columns, err := w.Columns()
	assert.NoError(t, err)
	assert.Equal(t, core.Columns{"title", "author", "tags"}, columns)

	rows := w.Dataset().Rows()
	assert.Len(t, rows, 5)
	assert.Equal(t, core.KindObject, rows[0].Get("tags").Kind())
	assert.Equal(t, core.Null, rows[2].Get("tags"))

	err = w.Sort(core.ParseSortKey("-title"))
	assert.NoError(t, err)
	assert.Equal(t,
		[]string{"Nana", "Les Misérables", "Le Rêve", "Germinal", "Bel-Ami"},
		th.Column(t, w.Dataset().VisibleRows(), "title"),
	)
}

func (suite *MySQLTestSuite) TestShouldFailInvalidQuery() {
	t := suite.T()

	source, err := suite.ctr.NewSource("invalid sql")
	require.NoError(t, err)

	w, states, err := th.LoadWidget(t, source)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, []core.WidgetState{core.WidgetStateLoading, core.WidgetStateLoadingFailed}, states)
	assert.ErrorContains(t, w.Err(), "You have an error in your SQL syntax")
}
