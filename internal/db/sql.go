package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// read-only SQL keywords; anything else goes through Exec
var readKeywords = map[string]bool{
	"select":   true,
	"with":     true,
	"pragma":   true,
	"show":     true,
	"explain":  true,
	"describe": true,
}

// IsReadQuery reports whether the operation name or the query's leading
// keyword denotes a row-returning statement
func IsReadQuery(operation, query string) bool {
	if strings.EqualFold(operation, "select") {
		return true
	}
	fields := strings.Fields(strings.ToLower(query))
	if len(fields) == 0 {
		return false
	}
	return readKeywords[fields[0]]
}

// PositionalParams coerces request parameters into positional driver arguments
func PositionalParams(params any) ([]any, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case []any:
		return p, nil
	default:
		return nil, fmt.Errorf("relational backends take a positional parameter sequence, got %T", params)
	}
}

// SQL holds the shared execution logic for database/sql backed handlers.
// Backend packages embed it and contribute Kind and Connect.
type SQL struct {
	DB *sql.DB
}

// Execute runs one SQL statement. Row-returning statements are normalized
// into an ordered sequence of column-name mappings; everything else is
// executed and reported as an affected-row count.
func (s *SQL) Execute(ctx context.Context, operation, query string, params any) (*Result, error) {
	if s.DB == nil {
		return nil, ErrNotConnected
	}
	if query == "" {
		return nil, fmt.Errorf("query text is required for relational backends")
	}

	args, err := PositionalParams(params)
	if err != nil {
		return nil, err
	}

	if IsReadQuery(operation, query) {
		rows, err := queryRows(ctx, s.DB, query, args)
		if err != nil {
			return nil, err
		}
		return Rows(rows), nil
	}

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected row count: %w", err)
	}
	return Count(affected), nil
}

// Ping checks the database connection
func (s *SQL) Ping(ctx context.Context) error {
	if s.DB == nil {
		return ErrNotConnected
	}
	return s.DB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (s *SQL) Close(ctx context.Context) error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// queryRows executes a row-returning statement and converts the driver's
// rows into maps keyed by column name, preserving row order. Byte slices
// and driver time values are normalized so results survive a JSON
// round-trip through the cache unchanged.
func queryRows(ctx context.Context, sdb *sql.DB, query string, args []any) ([]map[string]any, error) {
	rows, err := sdb.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	out := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		scanArgs := make([]any, len(columns))
		for i := range values {
			scanArgs[i] = &values[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		out = append(out, row)
	}

	return out, rows.Err()
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return v
	}
}
