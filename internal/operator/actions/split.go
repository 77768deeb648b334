package actions

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/neofin-server/internal/storage"
	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

type CreateSplit struct {
	Create *sqlconfig.SplitCreate

	Result *sqlconfig.Split
}

func (s *CreateSplit) Perform(ctx context.Context, writer *storage.Writer) error {
	created, err := writer.Splits.Insert(ctx, s.Create)
	if err != nil {
		return err
	}

	s.Result = created
	return nil
}

// SettleSplitShare marks one participant's share as settled. An unknown name
// leaves the split as it was. The split row stays locked until the surrounding
// transaction ends.
type SettleSplitShare struct {
	Owner uuid.NullUUID
	ID    uuid.UUID
	Name  string

	Result *sqlconfig.Split
}

func (s *SettleSplitShare) Perform(ctx context.Context, writer *storage.Writer) error {
	split, err := writer.Splits.FindByIDForUpdate(ctx, s.Owner, s.ID)
	if err != nil {
		return err
	}

	shares := make(sqlconfig.Shares, len(split.Shares))
	copy(shares, split.Shares)

	found := false
	for i := range shares {
		if shares[i].Name == s.Name {
			shares[i].IsSettled = true
			found = true
			break
		}
	}
	if !found {
		s.Result = split
		return nil
	}

	updated, err := writer.Splits.UpdateShares(ctx, split.ID, shares)
	if err != nil {
		return err
	}

	s.Result = updated
	return nil
}

// DeleteSplit removes a split. Deleting one that is already gone succeeds.
type DeleteSplit struct {
	Owner uuid.NullUUID
	ID    uuid.UUID
}

func (s *DeleteSplit) Perform(ctx context.Context, writer *storage.Writer) error {
	err := writer.Splits.Delete(ctx, s.Owner, s.ID)
	if errors.Is(err, sqlconfig.ErrNotFound) {
		return nil
	}
	return err
}
