package actions

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/neofin-server/internal/storage"
	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

// SoftDeleteTransaction moves a transaction to the trash. Repeating it is a no-op.
type SoftDeleteTransaction struct {
	Owner uuid.NullUUID
	ID    uuid.UUID
	At    time.Time

	Result *sqlconfig.Transaction
}

func (t *SoftDeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	at := t.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	deleted, err := writer.Transactions.SetDeleted(ctx, t.Owner, t.ID, true, at)
	if err != nil {
		return err
	}

	t.Result = deleted
	return nil
}

// RestoreTransaction moves a trashed transaction back to the active list.
type RestoreTransaction struct {
	Owner uuid.NullUUID
	ID    uuid.UUID

	Result *sqlconfig.Transaction
}

func (t *RestoreTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	restored, err := writer.Transactions.SetDeleted(ctx, t.Owner, t.ID, false, time.Time{})
	if err != nil {
		return err
	}

	t.Result = restored
	return nil
}

// PurgeTransaction removes a transaction permanently, whatever its state.
type PurgeTransaction struct {
	Owner uuid.NullUUID
	ID    uuid.UUID
}

func (t *PurgeTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Transactions.Delete(ctx, t.Owner, t.ID)
}

// PurgeExpiredTrash removes trashed transactions deleted before Cutoff.
type PurgeExpiredTrash struct {
	Cutoff time.Time

	Purged int64
}

func (t *PurgeExpiredTrash) Perform(ctx context.Context, writer *storage.Writer) error {
	n, err := writer.Transactions.PurgeDeletedBefore(ctx, t.Cutoff)
	if err != nil {
		return err
	}

	t.Purged = n
	return nil
}
