package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXAdapter implements DBAdapter for pgxpool.Pool.
// Reads go to the replica when one is configured, writes always go to the primary.
type PGXAdapter struct {
	primary *pgxpool.Pool
	replica *pgxpool.Pool
}

// NewPGXAdapter creates an adapter that reads and writes through one pool.
func NewPGXAdapter(primary *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{primary: primary}
}

// NewPGXAdapterWithReplica creates an adapter that reads from replica and writes to primary.
func NewPGXAdapterWithReplica(primary *pgxpool.Pool, replica *pgxpool.Pool) *PGXAdapter {
	return &PGXAdapter{primary: primary, replica: replica}
}

func (a *PGXAdapter) Query(ctx context.Context, query string) (Rows, error) {
	rows, err := a.readPool().Query(ctx, query)
	if err != nil {
		return nil, err
	}

	return pgxRows{Rows: rows}, nil
}

func (a *PGXAdapter) Exec(ctx context.Context, query string) (int64, error) {
	tag, err := a.primary.Exec(ctx, query)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// Ping checks the primary and, if configured, the replica.
func (a *PGXAdapter) Ping(ctx context.Context) error {
	if a.replica == nil {
		return a.primary.Ping(ctx)
	}

	return errors.Join(a.primary.Ping(ctx), a.replica.Ping(ctx))
}

func (a *PGXAdapter) readPool() *pgxpool.Pool {
	if a.replica != nil {
		return a.replica
	}

	return a.primary
}

// pgxRows adapts pgx.Rows, whose Close reports nothing, to Rows.
type pgxRows struct {
	pgx.Rows
}

func (r pgxRows) Close() error {
	r.Rows.Close()
	return nil
}
