package adapters

import (
	"database/sql"
	"fmt"
	nurl "net/url"

	_ "github.com/lib/pq"

	"github.com/kndndrj/iltable/core"
	"github.com/kndndrj/iltable/core/builders"
)

// Register client
func init() {
	_ = register(&Postgres{}, "postgres", "postgresql", "pg")
}

var _ core.Adapter = (*Postgres)(nil)

type Postgres struct{}

// jsonProcessor keeps json columns as nested objects instead of strings.
func jsonProcessor(a any) any {
	b, ok := a.([]byte)
	if !ok {
		return a
	}

	return core.Object(string(b))
}

func (p *Postgres) Connect(url string) (core.Source, error) {
	dsn, query := splitQuery(url)

	u, err := nurl.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w", err)
	}

	db, err := sql.Open("postgres", u.String())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to postgres database: %w", err)
	}

	client := builders.NewClient(db,
		builders.WithCustomTypeProcessor("json", jsonProcessor),
		builders.WithCustomTypeProcessor("jsonb", jsonProcessor),
	)

	return builders.NewQuerySource(client, query), nil
}
