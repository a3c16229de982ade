// Package store implements the persistence layer on Postgres. One
// repository per table; queries are built with squirrel and scanned
// with pgxscan.
package store

import sq "github.com/Masterminds/squirrel"

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// browseColumns prefixes listing columns with the listing table alias
// and appends the owner profile columns from the joined users table.
func browseColumns(alias string, cols []string) []string {
	out := make([]string, 0, len(cols)+3)
	for _, c := range cols {
		out = append(out, alias+"."+c)
	}
	return append(out, "u.full_name", "u.phone", "u.email")
}
