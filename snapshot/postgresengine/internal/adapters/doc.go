// Package adapters hides the difference between pgx pools and database/sql connections
// (plain or sqlx) from the PostgreSQL snapshot store.
package adapters
