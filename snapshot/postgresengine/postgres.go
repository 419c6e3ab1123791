package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/detached-state-go/snapshot"
	"github.com/AntonStoeckl/detached-state-go/snapshot/postgresengine/internal/adapters"
)

const (
	defaultSnapshotTableName = "snapshots"
	logMsgBuildQueryFailed   = "failed to build snapshot query"
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgDBExecFailed       = "database execution failed"
	logMsgCloseRowsFailed    = "failed to close database rows"
	logMsgScanRowFailed      = "failed to scan database row"
	logMsgSnapshotSaved      = "snapshot saved"
	logMsgSnapshotLoaded     = "snapshot loaded"
	logMsgSnapshotNotFound   = "snapshot not found"
	logMsgSnapshotsListed    = "snapshots listed"
	logMsgSnapshotsDeleted   = "snapshots deleted"
	logMsgSQLExecuted        = "executed sql for: "
	logAttrError             = "error"
	logAttrQuery             = "query"
	logAttrDurationMS        = "duration_ms"
	logAttrCheckpointID      = "checkpoint_id"
	logAttrOwnerID           = "owner_id"
	logAttrSnapshotType      = "snapshot_type"
	logAttrSnapshotCount     = "snapshot_count"
	logAttrRowsAffected      = "rows_affected"
	operationSave            = "save"
	operationLoad            = "load"
	operationLoadLatest      = "load_latest"
	operationList            = "list"
	operationDelete          = "delete"
	colCheckpointID          = "checkpoint_id"
	colOwnerID               = "owner_id"
	colSnapshotType          = "snapshot_type"
	colData                  = "data"
	colCapturedAt            = "captured_at"
	dialectPostgres          = "postgres"
	castUUID                 = "?::uuid"
	castJsonb                = "?::jsonb"
	selectCheckpointIDAsText = "checkpoint_id::text"
)

var (
	// ErrNilDatabaseConnection is returned when a nil database connection is supplied to a factory.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptySnapshotTableName is returned when an empty table name is supplied via WithTableName.
	ErrEmptySnapshotTableName = errors.New("snapshot table name must not be empty")

	// ErrBuildingQueryFailed is returned when goqu can not render a statement.
	ErrBuildingQueryFailed = errors.New("building query failed")

	// ErrSavingSnapshotFailed is returned when the snapshot save operation fails.
	ErrSavingSnapshotFailed = errors.New("saving snapshot failed")

	// ErrLoadingSnapshotFailed is returned when the snapshot load operation fails.
	ErrLoadingSnapshotFailed = errors.New("loading snapshot failed")

	// ErrDeletingSnapshotFailed is returned when the snapshot delete operation fails.
	ErrDeletingSnapshotFailed = errors.New("deleting snapshot failed")

	// ErrScanningRowFailed is returned when a result row does not fit the snapshot table layout.
	ErrScanningRowFailed = errors.New("scanning row failed")
)

type sqlQueryString = string

// SnapshotStore persists StorableSnapshots in a PostgreSQL table.
//
// Expected table layout:
//
//	CREATE TABLE snapshots (
//		checkpoint_id uuid PRIMARY KEY,
//		owner_id      text NOT NULL,
//		snapshot_type text NOT NULL,
//		data          jsonb NOT NULL,
//		captured_at   timestamptz NOT NULL
//	);
//	CREATE INDEX snapshots_owner_captured_idx ON snapshots (owner_id, captured_at DESC);
type SnapshotStore struct {
	db               adapters.DBAdapter
	tableName        string
	logger           Logger
	metricsCollector MetricsCollector
}

type snapshotRow struct {
	checkpointID string
	ownerID      string
	snapshotType string
	data         []byte
	capturedAt   time.Time
}

// NewSnapshotStoreFromPGXPool creates a new SnapshotStore using a pgx Pool with optional configuration.
func NewSnapshotStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (SnapshotStore, error) {
	if db == nil {
		return SnapshotStore{}, ErrNilDatabaseConnection
	}

	return newSnapshotStore(adapters.NewPGXAdapter(db), options...)
}

// NewSnapshotStoreFromPGXPoolAndReplica creates a new SnapshotStore that writes to the primary pool
// and reads from the replica pool.
func NewSnapshotStoreFromPGXPoolAndReplica(
	db *pgxpool.Pool,
	replica *pgxpool.Pool,
	options ...Option,
) (SnapshotStore, error) {

	if db == nil || replica == nil {
		return SnapshotStore{}, ErrNilDatabaseConnection
	}

	return newSnapshotStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewSnapshotStoreFromSQLDB creates a new SnapshotStore using a sql.DB with optional configuration.
func NewSnapshotStoreFromSQLDB(db *sql.DB, options ...Option) (SnapshotStore, error) {
	if db == nil {
		return SnapshotStore{}, ErrNilDatabaseConnection
	}

	return newSnapshotStore(adapters.NewSQLAdapter(db), options...)
}

// NewSnapshotStoreFromSQLX creates a new SnapshotStore using a sqlx.DB with optional configuration.
func NewSnapshotStoreFromSQLX(db *sqlx.DB, options ...Option) (SnapshotStore, error) {
	if db == nil {
		return SnapshotStore{}, ErrNilDatabaseConnection
	}

	return newSnapshotStore(adapters.NewSQLXAdapter(db), options...)
}

func newSnapshotStore(db adapters.DBAdapter, options ...Option) (SnapshotStore, error) {
	store := SnapshotStore{
		db:        db,
		tableName: defaultSnapshotTableName,
	}

	for _, option := range options {
		if err := option(&store); err != nil {
			return SnapshotStore{}, err
		}
	}

	return store, nil
}

// Ping checks that the database, and the replica if one is configured, can be reached.
func (s SnapshotStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// SaveSnapshot validates and inserts a StorableSnapshot.
func (s SnapshotStore) SaveSnapshot(ctx context.Context, storable snapshot.StorableSnapshot) error {
	start := time.Now()

	if err := storable.Validate(); err != nil {
		s.recordResult(operationSave, statusError, time.Since(start))
		return errors.Join(ErrSavingSnapshotFailed, err)
	}

	sqlQuery, err := s.buildInsertQuery(storable)
	if err != nil {
		s.recordResult(operationSave, statusError, time.Since(start))
		return errors.Join(ErrSavingSnapshotFailed, err)
	}

	rowsAffected, execErr := s.db.Exec(ctx, sqlQuery)
	s.logQueryWithDuration(sqlQuery, operationSave, time.Since(start))

	if execErr != nil {
		s.logError(logMsgDBExecFailed, execErr, logAttrOwnerID, storable.OwnerID)
		s.recordResult(operationSave, statusError, time.Since(start))

		return errors.Join(ErrSavingSnapshotFailed, execErr)
	}

	s.logOperation(
		logMsgSnapshotSaved,
		logAttrCheckpointID, storable.CheckpointID.String(),
		logAttrOwnerID, storable.OwnerID,
		logAttrSnapshotType, storable.SnapshotType,
		logAttrRowsAffected, rowsAffected,
	)
	s.recordResult(operationSave, statusSuccess, time.Since(start))

	return nil
}

// LoadSnapshot loads the snapshot with the given checkpoint id. It returns nil, nil if there is none.
func (s SnapshotStore) LoadSnapshot(ctx context.Context, checkpointID uuid.UUID) (*snapshot.StorableSnapshot, error) {
	selectStmt := s.selectSnapshots().
		Where(goqu.C(colCheckpointID).Eq(goqu.L(castUUID, checkpointID.String())))

	return s.loadOne(ctx, operationLoad, selectStmt, logAttrCheckpointID, checkpointID.String())
}

// LoadLatestSnapshot loads the most recent snapshot of ownerID. It returns nil, nil if there is none.
func (s SnapshotStore) LoadLatestSnapshot(ctx context.Context, ownerID string) (*snapshot.StorableSnapshot, error) {
	start := time.Now()

	if ownerID == "" {
		s.recordResult(operationLoadLatest, statusError, time.Since(start))
		return nil, errors.Join(ErrLoadingSnapshotFailed, snapshot.ErrEmptyOwnerID)
	}

	selectStmt := s.selectSnapshots().
		Where(goqu.C(colOwnerID).Eq(ownerID)).
		Order(goqu.I(colCapturedAt).Desc(), goqu.I(colCheckpointID).Desc()).
		Limit(1)

	return s.loadOne(ctx, operationLoadLatest, selectStmt, logAttrOwnerID, ownerID)
}

// ListSnapshots loads all snapshots of ownerID, oldest first.
func (s SnapshotStore) ListSnapshots(ctx context.Context, ownerID string) (snapshot.StorableSnapshots, error) {
	start := time.Now()

	if ownerID == "" {
		s.recordResult(operationList, statusError, time.Since(start))
		return nil, errors.Join(ErrLoadingSnapshotFailed, snapshot.ErrEmptyOwnerID)
	}

	selectStmt := s.selectSnapshots().
		Where(goqu.C(colOwnerID).Eq(ownerID)).
		Order(goqu.I(colCapturedAt).Asc(), goqu.I(colCheckpointID).Asc())

	storables, err := s.query(ctx, operationList, selectStmt)
	if err != nil {
		s.recordResult(operationList, statusError, time.Since(start))
		return nil, err
	}

	s.logOperation(logMsgSnapshotsListed, logAttrOwnerID, ownerID, logAttrSnapshotCount, len(storables))
	s.recordResult(operationList, statusSuccess, time.Since(start))

	return storables, nil
}

// DeleteSnapshots removes all snapshots of ownerID. Deleting an owner without snapshots is not an error.
func (s SnapshotStore) DeleteSnapshots(ctx context.Context, ownerID string) error {
	start := time.Now()

	if ownerID == "" {
		s.recordResult(operationDelete, statusError, time.Since(start))
		return errors.Join(ErrDeletingSnapshotFailed, snapshot.ErrEmptyOwnerID)
	}

	deleteStmt := goqu.Dialect(dialectPostgres).
		Delete(s.tableName).
		Where(goqu.C(colOwnerID).Eq(ownerID))

	sqlQuery, _, toSQLErr := deleteStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, toSQLErr)
		s.recordResult(operationDelete, statusError, time.Since(start))

		return errors.Join(ErrDeletingSnapshotFailed, ErrBuildingQueryFailed, toSQLErr)
	}

	rowsAffected, execErr := s.db.Exec(ctx, sqlQuery)
	s.logQueryWithDuration(sqlQuery, operationDelete, time.Since(start))

	if execErr != nil {
		s.logError(logMsgDBExecFailed, execErr, logAttrOwnerID, ownerID)
		s.recordResult(operationDelete, statusError, time.Since(start))

		return errors.Join(ErrDeletingSnapshotFailed, execErr)
	}

	s.logOperation(logMsgSnapshotsDeleted, logAttrOwnerID, ownerID, logAttrRowsAffected, rowsAffected)
	s.recordResult(operationDelete, statusSuccess, time.Since(start))

	return nil
}

func (s SnapshotStore) loadOne(
	ctx context.Context,
	operation string,
	selectStmt *goqu.SelectDataset,
	logArgs ...any,
) (*snapshot.StorableSnapshot, error) {

	start := time.Now()

	storables, err := s.query(ctx, operation, selectStmt)
	if err != nil {
		s.recordResult(operation, statusError, time.Since(start))
		return nil, err
	}

	if len(storables) == 0 {
		s.logOperation(logMsgSnapshotNotFound, logArgs...)
		s.recordResult(operation, statusNotFound, time.Since(start))

		return nil, nil
	}

	found := storables[0]

	s.logOperation(logMsgSnapshotLoaded, append(logArgs, logAttrSnapshotType, found.SnapshotType)...)
	s.recordResult(operation, statusSuccess, time.Since(start))

	return &found, nil
}

func (s SnapshotStore) query(
	ctx context.Context,
	operation string,
	selectStmt *goqu.SelectDataset,
) (snapshot.StorableSnapshots, error) {

	start := time.Now()

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, toSQLErr)
		return nil, errors.Join(ErrLoadingSnapshotFailed, ErrBuildingQueryFailed, toSQLErr)
	}

	rows, queryErr := s.db.Query(ctx, sqlQuery)
	s.logQueryWithDuration(sqlQuery, operation, time.Since(start))

	if queryErr != nil {
		s.logError(logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(ErrLoadingSnapshotFailed, queryErr)
	}

	defer s.closeRows(rows)

	return s.processQueryResults(rows)
}

func (s SnapshotStore) processQueryResults(rows adapters.Rows) (snapshot.StorableSnapshots, error) {
	storables := make(snapshot.StorableSnapshots, 0)

	for rows.Next() {
		var row snapshotRow
		if err := rows.Scan(&row.checkpointID, &row.ownerID, &row.snapshotType, &row.data, &row.capturedAt); err != nil {
			s.logError(logMsgScanRowFailed, err)
			return nil, errors.Join(ErrLoadingSnapshotFailed, ErrScanningRowFailed, err)
		}

		checkpointID, parseErr := uuid.Parse(row.checkpointID)
		if parseErr != nil {
			return nil, errors.Join(ErrLoadingSnapshotFailed, ErrScanningRowFailed, parseErr)
		}

		storable, buildErr := snapshot.BuildStorableSnapshotWithID(
			checkpointID,
			row.ownerID,
			row.snapshotType,
			row.data,
			row.capturedAt,
		)
		if buildErr != nil {
			return nil, errors.Join(ErrLoadingSnapshotFailed, buildErr)
		}

		storables = append(storables, storable)
	}

	if err := rows.Err(); err != nil {
		s.logError(logMsgDBQueryFailed, err)
		return nil, errors.Join(ErrLoadingSnapshotFailed, err)
	}

	return storables, nil
}

func (s SnapshotStore) closeRows(rows adapters.Rows) {
	if err := rows.Close(); err != nil {
		s.logWarn(logMsgCloseRowsFailed, logAttrError, err.Error())
	}
}

func (s SnapshotStore) selectSnapshots() *goqu.SelectDataset {
	return goqu.Dialect(dialectPostgres).
		From(s.tableName).
		Select(
			goqu.L(selectCheckpointIDAsText),
			goqu.C(colOwnerID),
			goqu.C(colSnapshotType),
			goqu.C(colData),
			goqu.C(colCapturedAt),
		)
}

func (s SnapshotStore) buildInsertQuery(storable snapshot.StorableSnapshot) (sqlQueryString, error) {
	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(s.tableName).
		Cols(colCheckpointID, colOwnerID, colSnapshotType, colData, colCapturedAt).
		Vals(goqu.Vals{
			goqu.L(castUUID, storable.CheckpointID.String()),
			storable.OwnerID,
			storable.SnapshotType,
			goqu.L(castJsonb, string(storable.DataJSON)),
			storable.CapturedAt,
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		s.logError(logMsgBuildQueryFailed, toSQLErr, logAttrOwnerID, storable.OwnerID)
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}
