package adapters

import "context"

// DBAdapter is the slice of a PostgreSQL connection the snapshot store works with.
// Statements arrive fully rendered by goqu, so no adapter deals with bind parameters.
type DBAdapter interface {
	Query(ctx context.Context, query string) (Rows, error)
	Exec(ctx context.Context, query string) (rowsAffected int64, err error)
	Ping(ctx context.Context) error
}

// Rows is a forward-only cursor over snapshot rows.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}
