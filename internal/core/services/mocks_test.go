package services_test

import (
	"context"

	"github.com/SscSPs/smart_wallet/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockKeyValueStore is a mock type for the KeyValueStore interface
type MockKeyValueStore struct {
	mock.Mock
}

func (m *MockKeyValueStore) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKeyValueStore) Store(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKeyValueStore) StoreBatch(ctx context.Context, entries map[string][]byte) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

// MockStatementExporter is a mock type for the StatementExporter interface
type MockStatementExporter struct {
	mock.Mock
}

func (m *MockStatementExporter) Export(ctx context.Context, stmt domain.Statement) (string, error) {
	args := m.Called(ctx, stmt)
	return args.String(0), args.Error(1)
}

// hasKeys matches a StoreBatch call writing exactly the given keys.
func hasKeys(keys ...string) any {
	return mock.MatchedBy(func(entries map[string][]byte) bool {
		if len(entries) != len(keys) {
			return false
		}
		for _, k := range keys {
			if _, ok := entries[k]; !ok {
				return false
			}
		}
		return true
	})
}
