package config

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
	"github.com/stretchr/testify/require"
)

// poolLimits is shared by all adapters, so the adapters differ only in their driver.
type poolLimits struct {
	maxOpen     int
	maxIdle     int
	maxLifetime time.Duration
	maxIdleTime time.Duration
}

var testPoolLimits = poolLimits{
	maxOpen:     4,
	maxIdle:     1,
	maxLifetime: 10 * time.Minute,
	maxIdleTime: time.Minute,
}

const connectTimeout = 5 * time.Second

// PGXPool connects a pgx pool to dsn.
func PGXPool(t testing.TB, dsn string) *pgxpool.Pool {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err, "error parsing the test DSN")

	poolConfig.MaxConns = int32(testPoolLimits.maxOpen) //nolint:gosec // small constant
	poolConfig.MinConns = int32(testPoolLimits.maxIdle) //nolint:gosec // small constant
	poolConfig.MaxConnLifetime = testPoolLimits.maxLifetime
	poolConfig.MaxConnIdleTime = testPoolLimits.maxIdleTime
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	require.NoError(t, err, "error connecting the pgx pool")

	return pool
}

// SQLDB opens the primary test database through database/sql and lib/pq.
func SQLDB(t testing.TB) *sql.DB {
	db, err := sql.Open("postgres", PostgresPrimaryDSN())
	require.NoError(t, err, "error opening the sql.DB")

	return limited(t, db)
}

// SQLXDB opens the primary test database through sqlx and lib/pq.
func SQLXDB(t testing.TB) *sqlx.DB {
	return sqlx.NewDb(SQLDB(t), "postgres")
}

func limited(t testing.TB, db *sql.DB) *sql.DB {
	db.SetMaxOpenConns(testPoolLimits.maxOpen)
	db.SetMaxIdleConns(testPoolLimits.maxIdle)
	db.SetConnMaxLifetime(testPoolLimits.maxLifetime)
	db.SetConnMaxIdleTime(testPoolLimits.maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		require.NoError(t, err, "error pinging the test database")
	}

	return db
}
