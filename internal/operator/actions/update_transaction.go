package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/neofin-server/internal/storage"
	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

// UpdateTransaction loads an owned transaction and replaces its mutable fields
// with the result of Merge. Merge errors abort the transaction.
type UpdateTransaction struct {
	Owner uuid.NullUUID
	ID    uuid.UUID
	Merge func(existing *sqlconfig.Transaction) (*sqlconfig.TransactionUpdate, error)

	Result *sqlconfig.Transaction
}

func (t *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	existing, err := writer.Transactions.FindByID(ctx, t.Owner, t.ID)
	if err != nil {
		return err
	}

	update, err := t.Merge(existing)
	if err != nil {
		return err
	}

	updated, err := writer.Transactions.Update(ctx, t.Owner, t.ID, update)
	if err != nil {
		return err
	}

	t.Result = updated
	return nil
}
