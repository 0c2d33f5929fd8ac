package bolt

import (
	"bytes"
	"context"
	"fmt"

	"github.com/SscSPs/smart_wallet/internal/apperrors"
	portsrepo "github.com/SscSPs/smart_wallet/internal/core/ports/repositories"
	bolt "go.etcd.io/bbolt"
)

// bucketWallet holds every persisted wallet key.
var bucketWallet = []byte("wallet")

// KeyValueRepository stores the wallet state in a local bbolt file.
type KeyValueRepository struct {
	db *bolt.DB
}

// Open opens (or creates) the database file and its bucket.
func Open(path string) (*KeyValueRepository, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	repo, err := New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// New wraps an already open database, creating the wallet bucket if needed.
func New(db *bolt.DB) (*KeyValueRepository, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketWallet); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketWallet, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &KeyValueRepository{db: db}, nil
}

var _ portsrepo.KeyValueStore = (*KeyValueRepository)(nil)

// Close closes the database.
func (r *KeyValueRepository) Close() error {
	return r.db.Close()
}

// Load implements portsrepo.KeyValueReader.
func (r *KeyValueRepository) Load(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketWallet).Get([]byte(key))
		if data == nil {
			return fmt.Errorf("%w: key %s", apperrors.ErrNotFound, key)
		}
		// data is only valid inside the transaction.
		value = bytes.Clone(data)
		return nil
	})
	return value, err
}

// Store implements portsrepo.KeyValueWriter.
func (r *KeyValueRepository) Store(ctx context.Context, key string, value []byte) error {
	return r.StoreBatch(ctx, map[string][]byte{key: value})
}

// StoreBatch implements portsrepo.KeyValueWriter. All entries are written in one bbolt transaction.
func (r *KeyValueRepository) StoreBatch(ctx context.Context, entries map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWallet)
		for key, value := range entries {
			if err := b.Put([]byte(key), value); err != nil {
				return fmt.Errorf("failed to store %s: %w", key, err)
			}
		}
		return nil
	})
}
