// Package sql provides sequences backed by database/sql queries. Every
// traversal runs its statement again; wrap a sequence with cache.New to
// run it once and replay the rows.
package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lguimbarda/min-query/query/core"
)

// Queryer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Execer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Scanner is a function that scans the current row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// Query creates a Sequence over the rows of query. The statement runs on
// the first advance of each traversal, and closing the cursor closes the
// rows. A scan error is the fault of that row; the traversal continues.
func Query[T any](db Queryer, query string, scanner Scanner[T], args ...any) core.Sequence[T] {
	return core.Generator[T](func(ctx context.Context) core.Cursor[T] {
		var rows *sql.Rows
		failed := false
		return core.NewSourceCursor(ctx, func() core.Result[T] {
			if failed {
				return core.EndOfSequence[T]()
			}
			if rows == nil {
				var err error
				rows, err = db.QueryContext(ctx, query, args...)
				if err != nil {
					failed = true
					return core.Err[T](fmt.Errorf("query: %w", err))
				}
			}
			if !rows.Next() {
				if err := rows.Err(); err != nil {
					failed = true
					return core.Err[T](fmt.Errorf("query rows: %w", err))
				}
				return core.EndOfSequence[T]()
			}
			value, err := scanner(rows)
			if err != nil {
				return core.Err[T](err)
			}
			return core.Ok(value)
		}, func() {
			if rows != nil {
				rows.Close()
			}
		})
	})
}

// QueryRow creates a Sequence holding the single row of query. sql.ErrNoRows
// yields an empty sequence rather than a fault.
func QueryRow[T any](db Queryer, query string, scanner func(*sql.Row) (T, error), args ...any) core.Sequence[T] {
	return core.Deferred(func(ctx context.Context) ([]T, error) {
		value, err := scanner(db.QueryRowContext(ctx, query, args...))
		switch {
		case err == sql.ErrNoRows:
			return nil, nil
		case err != nil:
			return nil, fmt.Errorf("query row: %w", err)
		}
		return []T{value}, nil
	})
}

// ExecResult contains the result of an exec operation.
type ExecResult struct {
	LastInsertId int64
	RowsAffected int64
}

func execResult(result sql.Result) ExecResult {
	lastID, _ := result.LastInsertId()
	rowsAffected, _ := result.RowsAffected()
	return ExecResult{LastInsertId: lastID, RowsAffected: rowsAffected}
}

// Exec creates a Sequence that runs a statement once per traversal and
// yields its result.
func Exec(db Execer, query string, args ...any) core.Sequence[ExecResult] {
	return core.Deferred(func(ctx context.Context) ([]ExecResult, error) {
		result, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("exec: %w", err)
		}
		return []ExecResult{execResult(result)}, nil
	})
}

// ExecMany creates a Transformer that runs a statement for each element,
// using binder to turn the element into statement arguments. A failed
// statement is the fault of that element.
func ExecMany[T any](db Execer, query string, binder func(T) []any) core.Transformer[T, ExecResult] {
	return core.Transform[T, ExecResult](func(seq core.Sequence[T]) core.Sequence[ExecResult] {
		return core.Generator[ExecResult](func(ctx context.Context) core.Cursor[ExecResult] {
			return core.Map(func(v T) (ExecResult, error) {
				result, err := db.ExecContext(ctx, query, binder(v)...)
				if err != nil {
					return ExecResult{}, fmt.Errorf("exec: %w", err)
				}
				return execResult(result), nil
			}).Apply(seq).Iterate(ctx)
		})
	})
}

// ScanMap scans the current row into a map keyed by column name.
func ScanMap(rows *sql.Rows) (map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]any, len(cols))
	valuePtrs := make([]any, len(cols))
	for i := range values {
		valuePtrs[i] = &values[i]
	}
	if err := rows.Scan(valuePtrs...); err != nil {
		return nil, err
	}
	result := make(map[string]any, len(cols))
	for i, col := range cols {
		if b, ok := values[i].([]byte); ok {
			result[col] = string(b)
			continue
		}
		result[col] = values[i]
	}
	return result, nil
}

// QueryMaps creates a Sequence of rows as maps keyed by column name.
func QueryMaps(db Queryer, query string, args ...any) core.Sequence[map[string]any] {
	return Query(db, query, ScanMap, args...)
}
