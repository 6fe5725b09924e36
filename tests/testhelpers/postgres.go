package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	tcpsql "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/kndndrj/iltable/adapters"
	"github.com/kndndrj/iltable/core"
)

type PostgresContainer struct {
	*tcpsql.PostgresContainer
	ConnURL string
}

// NewPostgresContainer creates a new postgres container seeded with the books table.
func NewPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	seedFile, err := GetTestDataFile("postgres_seed.sql")
	if err != nil {
		return nil, err
	}
	defer seedFile.Close()

	ctr, err := tcpsql.Run(
		ctx,
		"postgres:16-alpine",
		tcpsql.BasicWaitStrategies(),
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcpsql.WithInitScripts(seedFile.Name()),
		tcpsql.WithDatabase("dev"),
	)
	if err != nil {
		return nil, err
	}
	connURL, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	return &PostgresContainer{
		PostgresContainer: ctr,
		ConnURL:           connURL,
	}, nil
}

// NewSource creates a postgres source which loads the result of query.
// An empty query loads the default one.
func (p *PostgresContainer) NewSource(query string) (core.Source, error) {
	url := p.ConnURL
	if query != "" {
		url += "#query=" + query
	}
	return adapters.NewSource("postgres", url)
}
