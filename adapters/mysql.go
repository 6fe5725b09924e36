package adapters

import (
	"database/sql"
	"fmt"
	"regexp"

	_ "github.com/go-sql-driver/mysql"

	"github.com/kndndrj/iltable/core"
	"github.com/kndndrj/iltable/core/builders"
)

// Register client
func init() {
	_ = register(core.AdapterFunc(newMySQLSource), "mysql")
}

var hasParamsRe = regexp.MustCompile(`[\?][\w]+=[\w-]+`)

func newMySQLSource(url string) (core.Source, error) {
	dsn, query := splitQuery(url)

	// parse time columns and allow multiple statements
	sep := "?"
	if hasParamsRe.MatchString(dsn) {
		sep = "&"
	}

	db, err := sql.Open("mysql", dsn+sep+"multiStatements=true&parseTime=true")
	if err != nil {
		return nil, fmt.Errorf("unable to connect to mysql database: %w", err)
	}

	client := builders.NewClient(db,
		builders.WithCustomTypeProcessor("json", jsonProcessor),
	)

	return builders.NewQuerySource(client, query), nil
}
