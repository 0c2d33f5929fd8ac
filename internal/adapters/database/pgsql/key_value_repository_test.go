package pgsql_test

import (
	"context"
	"os"
	"testing"

	"github.com/SscSPs/smart_wallet/internal/adapters/database/pgsql"
	"github.com/SscSPs/smart_wallet/internal/apperrors"
	portsrepo "github.com/SscSPs/smart_wallet/internal/core/ports/repositories"
	"github.com/SscSPs/smart_wallet/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a disposable database in PGSQL_TEST_URL.
func testStore(t *testing.T) portsrepo.KeyValueStore {
	t.Helper()
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		t.Skip("PGSQL_TEST_URL not set")
	}
	_, err := pgsql.RunMigrations(url)
	require.NoError(t, err)

	pool, err := database.NewPgxPool(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM wallet_state;`)
		database.ClosePgxPool(pool)
	})
	return pgsql.NewRepositoryProvider(pool).KeyValue
}

func TestPgxKeyValueRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := testStore(t)

	_, err := kv.Load(ctx, portsrepo.KeyAccounts)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, kv.StoreBatch(ctx, map[string][]byte{
		portsrepo.KeyGoals:            []byte(`[]`),
		portsrepo.KeySavingsThreshold: []byte(`100000`),
	}))
	require.NoError(t, kv.Store(ctx, portsrepo.KeyGoals, []byte(`[{"id":"goal-1"}]`)))

	got, err := kv.Load(ctx, portsrepo.KeyGoals)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"goal-1"}]`, string(got))
	got, err = kv.Load(ctx, portsrepo.KeySavingsThreshold)
	require.NoError(t, err)
	assert.Equal(t, "100000", string(got))
}
