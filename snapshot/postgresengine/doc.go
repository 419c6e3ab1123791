// Package postgresengine provides a PostgreSQL implementation of a snapshot store.
//
// The SnapshotStore keeps serialized snapshots, as produced by snapshot.Registry.Encode,
// in a single table keyed by checkpoint id. It can be backed by a pgx pool, a database/sql DB
// or a sqlx DB; all three share the same goqu-rendered SQL.
//
// Example:
//
//	store, err := postgresengine.NewSnapshotStoreFromPGXPool(pool, postgresengine.WithLogger(slog.Default()))
//	if err != nil {
//		return err
//	}
//
//	storable, err := registry.Encode("button-1", button.Capture())
//	if err != nil {
//		return err
//	}
//
//	err = store.SaveSnapshot(ctx, storable)
package postgresengine
