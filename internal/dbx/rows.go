package dbx

import (
	"context"
	"database/sql"
	"iter"
)

// Scanner is satisfied by both *sql.Row and *sql.Rows, so one scan function
// per entity serves single-row and multi-row reads.
type Scanner interface {
	Scan(dest ...any) error
}

// Query runs query and yields one scanned value per row. Rows are closed when
// the loop finishes, including when the caller breaks out early. A query,
// scan or iteration error is yielded once and ends the sequence.
func Query[T any](ctx context.Context, db DBTX, scan func(Scanner) (T, error), query string, args ...any) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(zero, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			v, err := scan(rows)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, err)
		}
	}
}

// Collect drains seq into a slice. The result is never nil on success.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	out := make([]T, 0)
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// QueryOne scans a single row. sql.ErrNoRows is reported as (nil, nil).
func QueryOne[T any](ctx context.Context, db DBTX, scan func(Scanner) (T, error), query string, args ...any) (*T, error) {
	v, err := scan(db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
