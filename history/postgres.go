package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/horizon"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTable = `
	CREATE TABLE IF NOT EXISTS horizon_snapshots (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		taken_at   TIMESTAMPTZ NOT NULL,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// PGStore keeps snapshots in a Postgres table, the whole snapshot as a JSONB
// payload.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects to the database and creates the table if needed.
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := pool.Exec(ctx, createTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create snapshots table: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

// Close closes the connection pool.
func (p *PGStore) Close() { p.pool.Close() }

func (p *PGStore) Save(ctx context.Context, s horizon.Snapshot) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	query := `
		INSERT INTO horizon_snapshots (id, name, taken_at, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			taken_at = EXCLUDED.taken_at,
			payload = EXCLUDED.payload,
			updated_at = NOW()
	`
	if _, err := p.pool.Exec(ctx, query, s.ID, s.Name, s.Date, payload); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (p *PGStore) List(ctx context.Context) ([]horizon.Snapshot, error) {
	rows, err := p.pool.Query(ctx, `SELECT payload FROM horizon_snapshots ORDER BY taken_at DESC, updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []horizon.Snapshot
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var s horizon.Snapshot
		if err := json.Unmarshal(payload, &s); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

func (p *PGStore) Get(ctx context.Context, id string) (horizon.Snapshot, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx, `SELECT payload FROM horizon_snapshots WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return horizon.Snapshot{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return horizon.Snapshot{}, fmt.Errorf("failed to query snapshot: %w", err)
	}
	var s horizon.Snapshot
	if err := json.Unmarshal(payload, &s); err != nil {
		return horizon.Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return s, nil
}

func (p *PGStore) Delete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM horizon_snapshots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}
