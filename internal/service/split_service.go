package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/neofin-server/internal/operator/actions"
	"github.com/carson-networks/neofin-server/internal/storage"
	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

type SplitService struct {
	storage  *storage.Storage
	operator ActionProcessor
}

func NewSplitService(store *storage.Storage, operator ActionProcessor) *SplitService {
	return &SplitService{storage: store, operator: operator}
}

func (s *SplitService) List(ctx context.Context, owner uuid.NullUUID) ([]Split, error) {
	rows, err := s.storage.Splits.List(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list splits: %w", err)
	}
	splits := make([]Split, len(rows))
	for i, row := range rows {
		splits[i] = splitFromStorage(row)
	}
	return splits, nil
}

// Create stores a split with every share unsettled.
func (s *SplitService) Create(ctx context.Context, owner uuid.NullUUID, input SplitInput) (*Split, error) {
	v := &validator{}
	text := strings.TrimSpace(input.Text)
	v.check(text != "", "text is required")
	total, hasTotal := input.TotalAmount.Get()
	v.check(hasTotal, "totalAmount is required")

	seen := make(map[string]struct{}, len(input.Shares))
	shares := make(sqlconfig.Shares, 0, len(input.Shares))
	for _, share := range input.Shares {
		name := strings.TrimSpace(share.Name)
		v.check(name != "", "share name is required")
		_, dup := seen[name]
		v.check(!dup, "share names must be unique: "+name)
		seen[name] = struct{}{}
		shares = append(shares, sqlconfig.Share{Name: name, Amount: share.Amount.Round(2)})
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	payer := strings.TrimSpace(input.Payer.GetOr(DefaultPayer))
	if payer == "" {
		payer = DefaultPayer
	}

	action := &actions.CreateSplit{
		Create: &sqlconfig.SplitCreate{
			UserID:      owner,
			Text:        text,
			TotalAmount: total.Round(2),
			Payer:       payer,
			Shares:      shares,
			Date:        input.Date.GetOrZero(),
		},
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, fmt.Errorf("create split: %w", err)
	}

	created := splitFromStorage(action.Result)
	return &created, nil
}

// Settle marks the named participant's share as settled. Settling twice is a no-op.
func (s *SplitService) Settle(ctx context.Context, owner uuid.NullUUID, id uuid.UUID, name string) (*Split, error) {
	action := &actions.SettleSplitShare{Owner: owner, ID: id, Name: name}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, fmt.Errorf("settle split %s: %w", id, err)
	}

	settled := splitFromStorage(action.Result)
	return &settled, nil
}

func (s *SplitService) Delete(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) error {
	if err := s.operator.Process(ctx, &actions.DeleteSplit{Owner: owner, ID: id}); err != nil {
		return fmt.Errorf("delete split %s: %w", id, err)
	}
	return nil
}
