package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

// Committer ends the database transaction a Writer is bound to.
type Committer interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer exposes the tables inside a single database transaction.
type Writer struct {
	tx           Committer
	Transactions sqlconfig.ITransactionTable
	Splits       sqlconfig.ISplitTable
	Users        sqlconfig.IUserTable
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           tx,
		Transactions: sqlconfig.NewTransactionsTable(tx),
		Splits:       sqlconfig.NewSplitsTable(tx),
		Users:        sqlconfig.NewUsersTable(tx),
	}
}

// NewWriterFor builds a Writer over arbitrary table implementations, typically mocks.
func NewWriterFor(tx Committer, transactions sqlconfig.ITransactionTable, splits sqlconfig.ISplitTable, users sqlconfig.IUserTable) *Writer {
	return &Writer{
		tx:           tx,
		Transactions: transactions,
		Splits:       splits,
		Users:        users,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
