package actions

import (
	"context"

	"github.com/carson-networks/neofin-server/internal/storage"
	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

type CreateTransaction struct {
	Create *sqlconfig.TransactionCreate

	Result *sqlconfig.Transaction
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	created, err := writer.Transactions.Insert(ctx, t.Create)
	if err != nil {
		return err
	}

	t.Result = created
	return nil
}
