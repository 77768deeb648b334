package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/neofin-server/internal/operator/actions"
	"github.com/carson-networks/neofin-server/internal/storage"
	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage  *storage.Storage
	operator ActionProcessor
	now      func() time.Time
}

func NewTransactionService(store *storage.Storage, operator ActionProcessor) *TransactionService {
	return &TransactionService{
		storage:  store,
		operator: operator,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// List returns the owner's active transactions, newest first.
func (s *TransactionService) List(ctx context.Context, owner uuid.NullUUID) ([]Transaction, error) {
	return s.list(ctx, owner, false)
}

// ListTrash returns the owner's soft-deleted transactions, newest first.
func (s *TransactionService) ListTrash(ctx context.Context, owner uuid.NullUUID) ([]Transaction, error) {
	return s.list(ctx, owner, true)
}

func (s *TransactionService) list(ctx context.Context, owner uuid.NullUUID, deleted bool) ([]Transaction, error) {
	rows, err := s.storage.Transactions.List(ctx, &sqlconfig.TransactionFilter{
		Owner:   owner,
		Deleted: deleted,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return transactionsFromStorage(rows), nil
}

// Create validates input and stores a new active transaction.
func (s *TransactionService) Create(ctx context.Context, owner uuid.NullUUID, input TransactionInput) (*Transaction, error) {
	v := &validator{}
	v.check(input.Text.IsValue(), "text is required")
	v.check(input.Amount.IsValue(), "amount is required")
	if err := v.err(); err != nil {
		return nil, err
	}

	record, err := mergeTransaction(input, &sqlconfig.TransactionUpdate{
		Category: DefaultCategory,
		Date:     s.now(),
	})
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransaction{
		Create: &sqlconfig.TransactionCreate{
			UserID:      owner,
			Text:        record.Text,
			Amount:      record.Amount,
			Type:        record.Type,
			Category:    record.Category,
			Date:        record.Date,
			IsHidden:    record.IsHidden,
			IsFreelance: record.IsFreelance,
		},
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	created := transactionFromStorage(action.Result)
	return &created, nil
}

// Update replaces the mutable fields of an owned transaction, active or trashed.
func (s *TransactionService) Update(ctx context.Context, owner uuid.NullUUID, id uuid.UUID, input TransactionInput) (*Transaction, error) {
	action := &actions.UpdateTransaction{
		Owner: owner,
		ID:    id,
		Merge: func(existing *sqlconfig.Transaction) (*sqlconfig.TransactionUpdate, error) {
			return mergeTransaction(input, &sqlconfig.TransactionUpdate{
				Text:        existing.Text,
				Amount:      existing.Amount,
				Type:        existing.Type,
				Category:    existing.Category,
				Date:        existing.Date,
				IsHidden:    existing.IsHidden,
				IsFreelance: existing.IsFreelance,
			})
		},
	}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, fmt.Errorf("update transaction %s: %w", id, err)
	}

	updated := transactionFromStorage(action.Result)
	return &updated, nil
}

// SoftDelete moves a transaction to the trash; one already there is returned unchanged.
func (s *TransactionService) SoftDelete(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) (*Transaction, error) {
	action := &actions.SoftDeleteTransaction{Owner: owner, ID: id, At: s.now()}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, fmt.Errorf("soft delete transaction %s: %w", id, err)
	}

	deleted := transactionFromStorage(action.Result)
	return &deleted, nil
}

// Restore moves a trashed transaction back to the active list. Active
// transactions are not found.
func (s *TransactionService) Restore(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) (*Transaction, error) {
	action := &actions.RestoreTransaction{Owner: owner, ID: id}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, fmt.Errorf("restore transaction %s: %w", id, err)
	}

	restored := transactionFromStorage(action.Result)
	return &restored, nil
}

// Purge removes a transaction permanently.
func (s *TransactionService) Purge(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) error {
	if err := s.operator.Process(ctx, &actions.PurgeTransaction{Owner: owner, ID: id}); err != nil {
		return fmt.Errorf("purge transaction %s: %w", id, err)
	}
	return nil
}

// PurgeExpired removes trash older than retention across all owners.
func (s *TransactionService) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	action := &actions.PurgeExpiredTrash{Cutoff: s.now().Add(-retention)}
	if err := s.operator.Process(ctx, action); err != nil {
		return 0, fmt.Errorf("purge expired trash: %w", err)
	}
	return action.Purged, nil
}

// Summary totals the owner's active transactions, skipping hidden ones.
func (s *TransactionService) Summary(ctx context.Context, owner uuid.NullUUID, scope SummaryScope) (*Summary, error) {
	if scope != SummaryScopeAll && scope != SummaryScopeBusiness && scope != SummaryScopePersonal {
		return nil, &ValidationError{Details: []string{"scope must be business or personal"}}
	}

	transactions, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	return Summarize(transactions, scope), nil
}

// Summarize totals visible transactions within scope.
func Summarize(transactions []Transaction, scope SummaryScope) *Summary {
	summary := &Summary{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
	for _, tx := range transactions {
		if tx.IsDeleted || tx.IsHidden {
			continue
		}
		if scope == SummaryScopeBusiness && !tx.IsFreelance {
			continue
		}
		if scope == SummaryScopePersonal && tx.IsFreelance {
			continue
		}

		summary.Count++
		if tx.Amount.IsNegative() {
			summary.Expense = summary.Expense.Add(tx.Amount.Abs())
		} else {
			summary.Income = summary.Income.Add(tx.Amount)
		}
	}
	summary.Balance = summary.Income.Sub(summary.Expense)
	return summary
}

// mergeTransaction applies the set fields of input over base and validates the result.
func mergeTransaction(input TransactionInput, base *sqlconfig.TransactionUpdate) (*sqlconfig.TransactionUpdate, error) {
	merged := *base
	v := &validator{}

	if text, ok := input.Text.Get(); ok {
		merged.Text = strings.TrimSpace(text)
	}
	v.check(merged.Text != "", "text must not be empty")

	if amount, ok := input.Amount.Get(); ok {
		merged.Amount = amount.Round(2)
		merged.Type = sqlconfig.TransactionType(TypeForAmount(merged.Amount))
	}
	if typ, ok := input.Type.Get(); ok {
		merged.Type = sqlconfig.TransactionType(typ)
	}
	if merged.Type == "" {
		merged.Type = sqlconfig.TransactionType(TypeForAmount(merged.Amount))
	}
	switch TransactionType(merged.Type) {
	case TransactionTypeExpense:
		v.check(!merged.Amount.IsPositive(), "expense amount must not be positive")
	case TransactionTypeIncome:
		v.check(!merged.Amount.IsNegative(), "income amount must not be negative")
	default:
		v.check(false, "type must be income or expense")
	}

	merged.Category = input.Category.GetOr(merged.Category)
	if merged.Category == "" {
		merged.Category = DefaultCategory
	}
	v.check(IsCategory(merged.Category), "category must be one of "+strings.Join(Categories, ", "))

	if date, ok := input.Date.Get(); ok && !date.IsZero() {
		merged.Date = date
	}
	merged.IsHidden = input.IsHidden.GetOr(merged.IsHidden)
	merged.IsFreelance = input.IsFreelance.GetOr(merged.IsFreelance)

	if err := v.err(); err != nil {
		return nil, err
	}
	return &merged, nil
}
