package adapters

import (
	"database/sql"
	"fmt"
	nurl "net/url"

	mssql "github.com/microsoft/go-mssqldb"

	"github.com/kndndrj/iltable/core"
	"github.com/kndndrj/iltable/core/builders"
)

// Register client
func init() {
	_ = register(&SQLServer{}, "sqlserver", "mssql")
}

var _ core.Adapter = (*SQLServer)(nil)

type SQLServer struct{}

func (s *SQLServer) Connect(url string) (core.Source, error) {
	dsn, query := splitQuery(url)

	u, err := nurl.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w", err)
	}

	db, err := sql.Open("sqlserver", u.String())
	if err != nil {
		return nil, fmt.Errorf("unable to connect to sqlserver database: %w", err)
	}

	client := builders.NewClient(db,
		builders.WithCustomTypeProcessor("uniqueidentifier", uniqueIdentifierProcessor),
	)

	return builders.NewQuerySource(client, query), nil
}

// uniqueIdentifierProcessor formats uniqueidentifier columns. SQL Server
// sends the first three groups little endian.
func uniqueIdentifierProcessor(a any) any {
	b, ok := a.([]byte)
	if !ok {
		return a
	}

	var id mssql.UniqueIdentifier
	if err := id.Scan(b); err != nil {
		return a
	}

	return id.String()
}
