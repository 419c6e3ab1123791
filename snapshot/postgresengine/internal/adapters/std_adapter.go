package adapters

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// stdDB is implemented by *sql.DB and, through embedding, by *sqlx.DB.
type stdDB interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PingContext(ctx context.Context) error
}

// StdAdapter implements DBAdapter on top of database/sql.
type StdAdapter struct {
	db stdDB
}

// NewSQLAdapter creates an adapter for a sql.DB.
func NewSQLAdapter(db *sql.DB) *StdAdapter {
	return &StdAdapter{db: db}
}

// NewSQLXAdapter creates an adapter for a sqlx.DB. The snapshot store only needs the plain
// database/sql surface, which sqlx exposes unchanged.
func NewSQLXAdapter(db *sqlx.DB) *StdAdapter {
	return &StdAdapter{db: db}
}

func (a *StdAdapter) Query(ctx context.Context, query string) (Rows, error) {
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (a *StdAdapter) Exec(ctx context.Context, query string) (int64, error) {
	result, err := a.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (a *StdAdapter) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}
