// Package config provides PostgreSQL database configuration for snapshot store testing.
//
// Connections for every supported adapter (pgx.Pool, sql.DB, sqlx.DB) share one set of pool limits;
// closing them is up to the caller. The DSN defaults to a local database and can be overridden with
// TEST_PRIMARY_DSN and TEST_REPLICA_DSN.
package config
