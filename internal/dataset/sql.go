package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

type sqlSource struct{}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

func (sqlSource) CanLoad(location string) bool {
	_, _, ok := sqlDriver(location)
	return ok
}

// sqlDriver maps a location URL onto a database/sql driver name and DSN.
func sqlDriver(location string) (driver, dsn string, ok bool) {
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return "postgres", location, true
	case strings.HasPrefix(lower, "sqlite://"):
		return "sqlite3", location[len("sqlite://"):], true
	}
	return "", "", false
}

// Records selects every row of opt.Table and returns the cells as text.
func (sqlSource) Records(ctx context.Context, location string, opt Options) ([][]string, error) {
	driver, dsn, _ := sqlDriver(location)
	table := opt.Table
	if table == "" {
		table = DefaultOptions().Table
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open DB: %w", err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	out := [][]string{cols}
	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(out), err)
		}
		rec := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				rec[i] = v.String
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return out, nil
}
