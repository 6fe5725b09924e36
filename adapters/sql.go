package adapters

import (
	"net/url"
	"strings"
)

const (
	// queryMarker separates the connection string from the query to load.
	queryMarker = "#query="

	defaultQuery = "SELECT * FROM books"
)

// splitQuery cuts the query fragment off of a connection url.
// Connection strings may contain '#' themselves, so only the last marker counts.
func splitQuery(rawURL string) (dsn, query string) {
	idx := strings.LastIndex(rawURL, queryMarker)
	if idx < 0 {
		return rawURL, defaultQuery
	}

	dsn = rawURL[:idx]
	query = rawURL[idx+len(queryMarker):]
	if unescaped, err := url.PathUnescape(query); err == nil {
		query = unescaped
	}

	query = strings.TrimSpace(query)
	if query == "" {
		query = defaultQuery
	}

	return dsn, query
}
