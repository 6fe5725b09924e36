package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"github.com/kndndrj/iltable/core"
	"github.com/kndndrj/iltable/core/builders"
)

// Register client
func init() {
	_ = register(&Clickhouse{}, "clickhouse")
}

var _ core.Adapter = (*Clickhouse)(nil)

type Clickhouse struct{}

func (c *Clickhouse) Connect(url string) (core.Source, error) {
	dsn, query := splitQuery(url)

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db := clickhouse.OpenDB(options)
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("pinging connection failed with %w", err)
	}

	client := builders.NewClient(db,
		builders.WithCustomTypeProcessor("json", jsonProcessor),
	)

	return builders.NewQuerySource(client, query), nil
}
