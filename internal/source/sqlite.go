package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/primex-melvin/tabledoc/internal/document"
	_ "modernc.org/sqlite"
)

// ReadSQLite runs query against the database at path. Column order follows
// the result set.
func ReadSQLite(ctx context.Context, path, query string) (*Dataset, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("a query is required to read %s", path)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return QueryRecords(ctx, db, path, query)
}

// QueryRecords runs query on db and converts every row into a record
func QueryRecords(ctx context.Context, db *sql.DB, name, query string) (*Dataset, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", name, err)
	}
	defer rows.Close()

	keys, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var records []document.Record
	for n := 1; rows.Next(); n++ {
		values := make([]any, len(keys))
		ptrs := make([]any, len(keys))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, NewParseError(name, n, err)
		}
		rec := make(document.Record, len(keys))
		for i, k := range keys {
			rec[k] = document.FromAny(values[i])
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return newDataset(name, keys, records)
}
