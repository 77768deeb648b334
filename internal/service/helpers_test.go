package service

import (
	"context"
	"testing"

	"github.com/carson-networks/neofin-server/internal/auth"
	"github.com/carson-networks/neofin-server/internal/operator/actions"
	"github.com/carson-networks/neofin-server/internal/storage"
	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

type mockTables struct {
	transactions *sqlconfig.MockITransactionTable
	splits       *sqlconfig.MockISplitTable
	users        *sqlconfig.MockIUserTable
}

// inlineProcessor performs actions synchronously against the mocked tables.
type inlineProcessor struct {
	writer *storage.Writer
}

func (p *inlineProcessor) Process(ctx context.Context, action actions.IAction) error {
	return action.Perform(ctx, p.writer)
}

func newTestService(t *testing.T) (*Service, mockTables) {
	t.Helper()
	tables := mockTables{
		transactions: sqlconfig.NewMockITransactionTable(t),
		splits:       sqlconfig.NewMockISplitTable(t),
		users:        sqlconfig.NewMockIUserTable(t),
	}
	store := &storage.Storage{
		Transactions: tables.transactions,
		Splits:       tables.splits,
		Users:        tables.users,
	}
	processor := &inlineProcessor{
		writer: storage.NewWriterFor(nil, tables.transactions, tables.splits, tables.users),
	}
	svc := NewService(store, processor, auth.NewJWTManager("test-secret", 0))
	return svc, tables
}
