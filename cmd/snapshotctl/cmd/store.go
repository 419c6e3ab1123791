package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/AntonStoeckl/detached-state-go/cmd/snapshotctl/internal/retry"
	"github.com/AntonStoeckl/detached-state-go/cmd/snapshotctl/internal/settings"
	"github.com/AntonStoeckl/detached-state-go/snapshot"
	"github.com/AntonStoeckl/detached-state-go/snapshot/caretaker"
	"github.com/AntonStoeckl/detached-state-go/snapshot/postgresengine"
)

// ErrConnectingFailed is returned when the database named by the settings can not be reached.
var ErrConnectingFailed = errors.New("connecting to the database failed")

// OpenPostgresStore connects a postgresengine.SnapshotStore with the adapter named in s
// and waits until the database answers.
func OpenPostgresStore(
	ctx context.Context,
	s settings.Settings,
	logger snapshot.Logger,
) (caretaker.SnapshotStore, func(), error) {

	store, closeDB, err := connect(ctx, s,
		postgresengine.WithTableName(s.TableName),
		postgresengine.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}

	if err = retry.WithExponentialBackoff(ctx, store.Ping, retry.WithLogger(logger)); err != nil {
		closeDB()
		return nil, nil, errors.Join(ErrConnectingFailed, err)
	}

	return store, closeDB, nil
}

func connect(
	ctx context.Context,
	s settings.Settings,
	options ...postgresengine.Option,
) (postgresengine.SnapshotStore, func(), error) {

	var (
		store   postgresengine.SnapshotStore
		closeDB func()
		err     error
	)

	switch s.Adapter {
	case settings.AdapterPGXPool:
		pool, poolErr := pgxpool.New(ctx, s.DSN)
		if poolErr != nil {
			return store, nil, errors.Join(ErrConnectingFailed, poolErr)
		}

		closeDB = pool.Close
		store, err = postgresengine.NewSnapshotStoreFromPGXPool(pool, options...)

	case settings.AdapterSQLDB:
		db, openErr := sql.Open("postgres", s.DSN)
		if openErr != nil {
			return store, nil, errors.Join(ErrConnectingFailed, openErr)
		}

		closeDB = func() { _ = db.Close() }
		store, err = postgresengine.NewSnapshotStoreFromSQLDB(db, options...)

	case settings.AdapterSQLXDB:
		db, openErr := sqlx.Open("postgres", s.DSN)
		if openErr != nil {
			return store, nil, errors.Join(ErrConnectingFailed, openErr)
		}

		closeDB = func() { _ = db.Close() }
		store, err = postgresengine.NewSnapshotStoreFromSQLX(db, options...)

	default:
		return store, nil, errors.Join(settings.ErrUnsupportedAdapter, fmt.Errorf("adapter: %q", s.Adapter))
	}

	if err != nil {
		closeDB()
		return store, nil, err
	}

	return store, closeDB, nil
}
