package builders

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/kndndrj/iltable/core"
)

// default sql client used by the sql based sources
type Client struct {
	db             *sql.DB
	typeProcessors map[string]func(any) any
	timeLayout     string
}

func NewClient(db *sql.DB, opts ...ClientOption) *Client {
	config := clientConfig{
		typeProcessors: make(map[string]func(any) any),
		timeLayout:     time.RFC3339,
	}
	for _, opt := range opts {
		opt(&config)
	}

	return &Client{
		db:             db,
		typeProcessors: config.typeProcessors,
		timeLayout:     config.timeLayout,
	}
}

func (c *Client) Close() {
	c.db.Close()
}

func (c *Client) getTypeProcessor(typ string) func(any) any {
	proc, ok := c.typeProcessors[strings.ToLower(typ)]
	if ok {
		return proc
	}

	return c.defaultProcessor
}

func (c *Client) defaultProcessor(val any) any {
	switch v := val.(type) {
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(c.timeLayout)
	}
	return val
}

// Records executes a query on a new connection and converts every row
// of every result set to a record keyed by column name.
func (c *Client) Records(ctx context.Context, query string) ([]*core.Record, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("db.Conn: %w", err)
	}
	defer conn.Close()

	dbRows, err := conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("conn.QueryContext: %w", err)
	}
	defer dbRows.Close()

	var records []*core.Record
	for {
		rs, err := c.scanResultSet(dbRows)
		if err != nil {
			return nil, err
		}
		records = append(records, rs...)

		if !dbRows.NextResultSet() {
			break
		}
	}

	if err := dbRows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return records, nil
}

func (c *Client) scanResultSet(dbRows *sql.Rows) ([]*core.Record, error) {
	dbCols, err := dbRows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("rows.ColumnTypes: %w", err)
	}

	procs := make([]func(any) any, len(dbCols))
	for i := range dbCols {
		procs[i] = c.getTypeProcessor(dbCols[i].DatabaseTypeName())
	}

	var records []*core.Record
	for dbRows.Next() {
		columns := make([]any, len(dbCols))
		columnPointers := make([]any, len(dbCols))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}

		if err := dbRows.Scan(columnPointers...); err != nil {
			return nil, fmt.Errorf("rows.Scan: %w", err)
		}

		record := core.NewRecord()
		for i := range dbCols {
			val := *columnPointers[i].(*any)
			record.Set(dbCols[i].Name(), core.ValueOf(procs[i](val)))
		}
		records = append(records, record)
	}

	return records, nil
}

// QuerySource is a core.Source that runs a single query.
type QuerySource struct {
	client *Client
	query  string
}

var _ core.Source = (*QuerySource)(nil)

func NewQuerySource(client *Client, query string) *QuerySource {
	return &QuerySource{
		client: client,
		query:  query,
	}
}

func (qs *QuerySource) Records(ctx context.Context) ([]*core.Record, error) {
	return qs.client.Records(ctx, qs.query)
}

func (qs *QuerySource) Close() {
	qs.client.Close()
}
