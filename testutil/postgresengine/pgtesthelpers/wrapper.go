package pgtesthelpers

import (
	"context"
	"database/sql"
	_ "embed" // schema file
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/detached-state-go/snapshot/postgresengine"
	"github.com/AntonStoeckl/detached-state-go/testutil/postgresengine/config"
)

// Adapter type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

//go:embed snapshots.sql
var snapshotTableSchema string

// Wrapper interface to abstract over different adapter types
type Wrapper interface {
	GetSnapshotStore() postgresengine.SnapshotStore
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store postgresengine.SnapshotStore
}

func (w *PGXPoolWrapper) GetSnapshotStore() postgresengine.SnapshotStore {
	return w.store
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db    *sql.DB
	store postgresengine.SnapshotStore
}

func (w *SQLDBWrapper) GetSnapshotStore() postgresengine.SnapshotStore {
	return w.store
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db    *sqlx.DB
	store postgresengine.SnapshotStore
}

func (w *SQLXWrapper) GetSnapshotStore() postgresengine.SnapshotStore {
	return w.store
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the appropriate wrapper based on the ADAPTER_TYPE environment variable.
// The snapshot table is created if it does not exist yet.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	adapterTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	switch adapterTypeFromEnv {
	case typePGXPool, "":
		connPool := config.PGXPool(t, config.PostgresPrimaryDSN())

		_, err := connPool.Exec(context.Background(), snapshotTableSchema)
		require.NoError(t, err, "error creating the snapshot table in test setup")

		store, err := postgresengine.NewSnapshotStoreFromPGXPool(connPool, options...)
		require.NoError(t, err, "error creating the snapshot store in test setup")

		return &PGXPoolWrapper{pool: connPool, store: store}

	case typeSQLDB:
		db := config.SQLDB(t)

		_, err := db.Exec(snapshotTableSchema)
		require.NoError(t, err, "error creating the snapshot table in test setup")

		store, err := postgresengine.NewSnapshotStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating the snapshot store in test setup")

		return &SQLDBWrapper{db: db, store: store}

	case typeSQLXDB:
		db := config.SQLXDB(t)

		_, err := db.Exec(snapshotTableSchema)
		require.NoError(t, err, "error creating the snapshot table in test setup")

		store, err := postgresengine.NewSnapshotStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating the snapshot store in test setup")

		return &SQLXWrapper{db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterTypeFromEnv))
	}
}

// CleanUp removes all snapshots from the snapshot table for the given wrapper.
func CleanUp(t testing.TB, wrapper Wrapper) {
	const query = "TRUNCATE TABLE snapshots"

	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err := w.pool.Exec(context.Background(), query)
		require.NoError(t, err, "error cleaning up the snapshots table")

	case *SQLDBWrapper:
		_, err := w.db.Exec(query)
		require.NoError(t, err, "error cleaning up the snapshots table")

	case *SQLXWrapper:
		_, err := w.db.Exec(query)
		require.NoError(t, err, "error cleaning up the snapshots table")

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}
}

// CountSnapshots returns the number of stored snapshots of ownerID for the given wrapper.
func CountSnapshots(t testing.TB, wrapper Wrapper, ownerID string) int {
	const query = "SELECT count(*) FROM snapshots WHERE owner_id = $1"

	var cnt int
	var err error

	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		err = w.pool.QueryRow(context.Background(), query, ownerID).Scan(&cnt)

	case *SQLDBWrapper:
		err = w.db.QueryRow(query, ownerID).Scan(&cnt)

	case *SQLXWrapper:
		err = w.db.Get(&cnt, query, ownerID)

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}

	require.NoError(t, err, "error counting snapshots")

	return cnt
}
