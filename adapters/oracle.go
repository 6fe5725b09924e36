package adapters

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/sijms/go-ora/v2"

	"github.com/kndndrj/iltable/core"
	"github.com/kndndrj/iltable/core/builders"
)

// Register client
func init() {
	_ = register(&Oracle{}, "oracle")
}

var _ core.Adapter = (*Oracle)(nil)

type Oracle struct{}

func (o *Oracle) Connect(url string) (core.Source, error) {
	dsn, query := splitQuery(url)

	// oracle doesn't accept trailing ';'
	query = strings.TrimSuffix(query, ";")

	db, err := sql.Open("oracle", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to oracle database: %w", err)
	}

	return builders.NewQuerySource(builders.NewClient(db), query), nil
}
