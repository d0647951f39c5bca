package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // registers the "postgres" driver

	interfaces "github.com/sheikh-saqib/transactions-engine/internal/interfaces"
	"github.com/sheikh-saqib/transactions-engine/internal/models"
)

const schema = `CREATE TABLE IF NOT EXISTS account_snapshots (
	run_id     UUID           NOT NULL,
	client_id  BIGINT         NOT NULL,
	available  NUMERIC(20, 4) NOT NULL,
	held       NUMERIC(20, 4) NOT NULL,
	total      NUMERIC(20, 4) NOT NULL,
	locked     BOOLEAN        NOT NULL,
	created_at TIMESTAMPTZ    NOT NULL DEFAULT now(),
	PRIMARY KEY (run_id, client_id)
)`

type PostgresSnapshotStore struct {
	db *sql.DB
}

// Open connects to dsn with the lib/pq driver and verifies the connection
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

func NewPostgresSnapshotStore(db *sql.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{
		db: db,
	}
}

// Migrate creates the snapshot table if it does not exist
func (p *PostgresSnapshotStore) Migrate(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, schema)
	return err
}

func (p *PostgresSnapshotStore) saveRow(ctx context.Context, dbTx *sql.Tx, runID string, row models.AccountSnapshot) error {
	const query = `INSERT INTO account_snapshots (run_id, client_id, available, held, total, locked)
	VALUES ($1,$2,$3,$4,$5,$6)
	ON CONFLICT (run_id, client_id) DO UPDATE
	SET available = EXCLUDED.available, held = EXCLUDED.held, total = EXCLUDED.total, locked = EXCLUDED.locked`

	_, err := dbTx.ExecContext(ctx, query,
		runID,
		int64(row.ClientID),
		row.Available.StringFixed(models.AmountPrecision),
		row.Held.StringFixed(models.AmountPrecision),
		row.Total.StringFixed(models.AmountPrecision),
		row.Locked,
	)
	return err
}

// SaveSnapshot writes every row of a run in a single database transaction
func (p *PostgresSnapshotStore) SaveSnapshot(ctx context.Context, runID string, rows []models.AccountSnapshot) (err error) {
	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	for _, row := range rows {
		if err = p.saveRow(ctx, dbTx, runID, row); err != nil {
			return fmt.Errorf("save client %d: %w", row.ClientID, err)
		}
	}
	return dbTx.Commit()
}

func (p *PostgresSnapshotStore) GetSnapshot(ctx context.Context, runID string) ([]models.AccountSnapshot, error) {
	const query = `SELECT client_id, available, held, total, locked FROM account_snapshots
	WHERE run_id = $1 ORDER BY client_id`

	rows, err := p.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var snapshots []models.AccountSnapshot
	for rows.Next() {
		var (
			clientID int64
			row      models.AccountSnapshot
		)
		if err := rows.Scan(&clientID, &row.Available, &row.Held, &row.Total, &row.Locked); err != nil {
			return nil, err
		}
		row.ClientID = models.ClientID(clientID)
		snapshots = append(snapshots, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

var _ interfaces.SnapshotStore = (*PostgresSnapshotStore)(nil)
