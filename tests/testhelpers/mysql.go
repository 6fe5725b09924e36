package testhelpers

import (
	"context"

	tc "github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/kndndrj/iltable/adapters"
	"github.com/kndndrj/iltable/core"
)

type MySQLContainer struct {
	*tcmysql.MySQLContainer
	ConnURL string
}

// NewMySQLContainer creates a new MySQL container seeded with the books table.
func NewMySQLContainer(ctx context.Context) (*MySQLContainer, error) {
	seedFile, err := GetTestDataFile("mysql_seed.sql")
	if err != nil {
		return nil, err
	}
	defer seedFile.Close()

	ctr, err := tcmysql.Run(
		ctx,
		"mysql:9.2.0",
		tc.CustomizeRequest(tc.GenericContainerRequest{
			ProviderType: GetContainerProvider(),
		}),
		tcmysql.WithDatabase("dev"),
		tcmysql.WithPassword("password"),
		tcmysql.WithUsername("root"),
		tcmysql.WithScripts(seedFile.Name()),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx, "tls=skip-verify")
	if err != nil {
		return nil, err
	}

	return &MySQLContainer{
		MySQLContainer: ctr,
		ConnURL:        connURL,
	}, nil
}

// NewSource creates a mysql source which loads the result of query.
func (p *MySQLContainer) NewSource(query string) (core.Source, error) {
	url := p.ConnURL
	if query != "" {
		url += "#query=" + query
	}
	return adapters.NewSource("mysql", url)
}
