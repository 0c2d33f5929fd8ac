package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	portsrepo "github.com/SscSPs/smart_wallet/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const upsertStateQuery = `
	INSERT INTO wallet_state (state_key, state_value, updated_at)
	VALUES ($1, $2, NOW())
	ON CONFLICT (state_key) DO UPDATE SET
		state_value = EXCLUDED.state_value,
		updated_at = EXCLUDED.updated_at;
`

// PgxKeyValueRepository keeps each wallet key in one row of wallet_state.
type PgxKeyValueRepository struct {
	BaseRepository
}

func newPgxKeyValueRepository(pool *pgxpool.Pool) *PgxKeyValueRepository {
	return &PgxKeyValueRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.KeyValueStore = (*PgxKeyValueRepository)(nil)

// Load implements portsrepo.KeyValueReader.
func (r *PgxKeyValueRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.Pool.QueryRow(ctx, `SELECT state_value FROM wallet_state WHERE state_key = $1;`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: key %s", apperrors.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return value, nil
}

// Store implements portsrepo.KeyValueWriter.
func (r *PgxKeyValueRepository) Store(ctx context.Context, key string, value []byte) error {
	if _, err := r.Pool.Exec(ctx, upsertStateQuery, key, value); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// StoreBatch implements portsrepo.KeyValueWriter. The upserts share one transaction.
func (r *PgxKeyValueRepository) StoreBatch(ctx context.Context, entries map[string][]byte) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	batch := &pgx.Batch{}
	for key, value := range entries {
		batch.Queue(upsertStateQuery, key, value)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to store wallet state: %w", err)
	}
	return r.Commit(ctx, tx)
}
