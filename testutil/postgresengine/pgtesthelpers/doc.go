// Package pgtesthelpers provides test utilities for PostgreSQL snapshot store testing with multi-adapter support.
//
// This package enables testing across different PostgreSQL drivers (pgx, sql.DB, sqlx.DB) through
// a unified Wrapper interface. Test adapter selection is controlled via the ADAPTER_TYPE environment
// variable.
//
// Adapter Types:
//
//	PGXPoolWrapper: wraps pgx.Pool
//	SQLDBWrapper: wraps database/sql
//	SQLXWrapper: wraps sqlx.DB
//
// Utility Functions:
//
//	CreateWrapperWithTestConfig: creates the wrapper selected by ADAPTER_TYPE and ensures the snapshot table exists
//	CleanUp: removes all snapshots for test isolation
//	CountSnapshots: counts the stored snapshots of one owner
//
// Environment Variables:
//
//	ADAPTER_TYPE: selects adapter (pgx.pool, sql.db, sqlx.db)
//	TEST_PRIMARY_DSN: PostgreSQL primary instance DSN
//	TEST_REPLICA_DSN: PostgreSQL replica instance DSN
package pgtesthelpers
