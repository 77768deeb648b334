package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

func storedTransaction(text string, amount string) *sqlconfig.Transaction {
	a := decimal.RequireFromString(amount)
	return &sqlconfig.Transaction{
		ID:        uuid.Must(uuid.NewV4()),
		Text:      text,
		Amount:    a,
		Type:      sqlconfig.TransactionType(TypeForAmount(a)),
		Category:  DefaultCategory,
		Date:      time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

// -- Create tests --

func TestCreate_DerivesTypeAndDefaults(t *testing.T) {
	svc, tables := newTestService(t)
	owner := uuid.NullUUID{UUID: uuid.Must(uuid.NewV4()), Valid: true}

	tables.transactions.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(c *sqlconfig.TransactionCreate) bool {
		return c.UserID == owner &&
			c.Text == "Coffee" &&
			c.Amount.Equal(decimal.NewFromInt(-150)) &&
			c.Type == sqlconfig.TransactionTypeExpense &&
			c.Category == DefaultCategory &&
			!c.Date.IsZero()
	})).Return(storedTransaction("Coffee", "-150"), nil).Once()

	created, err := svc.Transaction.Create(context.Background(), owner, TransactionInput{
		Text:   omit.From("  Coffee "),
		Amount: omit.From(decimal.NewFromInt(-150)),
	})

	require.NoError(t, err)
	assert.Equal(t, "Coffee", created.Text)
	assert.False(t, created.IsDeleted)
	assert.Equal(t, TransactionTypeExpense, created.Type)
}

func TestCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		input TransactionInput
	}{
		{name: "missing text", input: TransactionInput{Amount: omit.From(decimal.NewFromInt(5))}},
		{name: "missing amount", input: TransactionInput{Text: omit.From("Salary")}},
		{name: "blank text", input: TransactionInput{Text: omit.From("   "), Amount: omit.From(decimal.NewFromInt(5))}},
		{
			name: "expense with positive amount",
			input: TransactionInput{
				Text:   omit.From("Rent"),
				Amount: omit.From(decimal.NewFromInt(500)),
				Type:   omit.From(TransactionTypeExpense),
			},
		},
		{
			name: "income with negative amount",
			input: TransactionInput{
				Text:   omit.From("Refund"),
				Amount: omit.From(decimal.NewFromInt(-5)),
				Type:   omit.From(TransactionTypeIncome),
			},
		},
		{
			name: "unknown category",
			input: TransactionInput{
				Text:     omit.From("Gift"),
				Amount:   omit.From(decimal.NewFromInt(5)),
				Category: omit.From("Gifts"),
			},
		},
		{
			name: "unknown type",
			input: TransactionInput{
				Text:   omit.From("Gift"),
				Amount: omit.From(decimal.NewFromInt(5)),
				Type:   omit.From(TransactionType("transfer")),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)

			_, err := svc.Transaction.Create(context.Background(), uuid.NullUUID{}, tt.input)

			assert.ErrorIs(t, err, ErrValidation)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.NotEmpty(t, validationErr.Details)
		})
	}
}

func TestCreate_StorageError(t *testing.T) {
	svc, tables := newTestService(t)

	tables.transactions.EXPECT().Insert(mock.Anything, mock.Anything).
		Return(nil, errors.New("insert failed")).Once()

	_, err := svc.Transaction.Create(context.Background(), uuid.NullUUID{}, TransactionInput{
		Text:   omit.From("Salary"),
		Amount: omit.From(decimal.NewFromInt(1000)),
	})

	assert.ErrorContains(t, err, "insert failed")
	assert.NotErrorIs(t, err, ErrValidation)
}

// -- Update tests --

func TestUpdate_KeepsUnsetFields(t *testing.T) {
	svc, tables := newTestService(t)
	existing := storedTransaction("Coffee", "-150")
	existing.Category = "Food"
	existing.IsHidden = true

	tables.transactions.EXPECT().FindByID(mock.Anything, uuid.NullUUID{}, existing.ID).Return(existing, nil).Once()
	tables.transactions.EXPECT().Update(mock.Anything, uuid.NullUUID{}, existing.ID, mock.MatchedBy(func(u *sqlconfig.TransactionUpdate) bool {
		return u.Text == "Coffee" &&
			u.Amount.Equal(decimal.NewFromInt(-300)) &&
			u.Type == sqlconfig.TransactionTypeExpense &&
			u.Category == "Food" &&
			u.IsHidden &&
			u.Date.Equal(existing.Date)
	})).Return(storedTransaction("Coffee", "-300"), nil).Once()

	updated, err := svc.Transaction.Update(context.Background(), uuid.NullUUID{}, existing.ID, TransactionInput{
		Amount: omit.From(decimal.NewFromInt(-300)),
	})

	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(decimal.NewFromInt(-300)))
}

func TestUpdate_TypeMustAgreeWithStoredAmount(t *testing.T) {
	svc, tables := newTestService(t)
	existing := storedTransaction("Coffee", "-150")

	tables.transactions.EXPECT().FindByID(mock.Anything, uuid.NullUUID{}, existing.ID).Return(existing, nil).Once()

	_, err := svc.Transaction.Update(context.Background(), uuid.NullUUID{}, existing.ID, TransactionInput{
		Type: omit.From(TransactionTypeIncome),
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, tables := newTestService(t)
	id := uuid.Must(uuid.NewV4())

	tables.transactions.EXPECT().FindByID(mock.Anything, uuid.NullUUID{}, id).Return(nil, sqlconfig.ErrNotFound).Once()

	_, err := svc.Transaction.Update(context.Background(), uuid.NullUUID{}, id, TransactionInput{Text: omit.From("x")})

	assert.ErrorIs(t, err, ErrNotFound)
}

// -- Lifecycle tests --

func TestLifecycle_SoftDeleteRestorePurge(t *testing.T) {
	svc, tables := newTestService(t)
	tx := storedTransaction("Coffee", "-150")

	trashed := *tx
	trashed.IsDeleted = true
	tables.transactions.EXPECT().SetDeleted(mock.Anything, uuid.NullUUID{}, tx.ID, true, mock.AnythingOfType("time.Time")).
		Return(&trashed, nil).Once()
	tables.transactions.EXPECT().SetDeleted(mock.Anything, uuid.NullUUID{}, tx.ID, false, time.Time{}).
		Return(tx, nil).Once()
	tables.transactions.EXPECT().Delete(mock.Anything, uuid.NullUUID{}, tx.ID).Return(nil).Once()

	ctx := context.Background()
	deleted, err := svc.Transaction.SoftDelete(ctx, uuid.NullUUID{}, tx.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	restored, err := svc.Transaction.Restore(ctx, uuid.NullUUID{}, tx.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assert.Equal(t, tx.Text, restored.Text)
	assert.True(t, tx.Amount.Equal(restored.Amount))

	require.NoError(t, svc.Transaction.Purge(ctx, uuid.NullUUID{}, tx.ID))
}

func TestRestore_ActiveRecordIsNotFound(t *testing.T) {
	svc, tables := newTestService(t)
	id := uuid.Must(uuid.NewV4())

	tables.transactions.EXPECT().SetDeleted(mock.Anything, uuid.NullUUID{}, id, false, time.Time{}).
		Return(nil, sqlconfig.ErrNotFound).Once()

	_, err := svc.Transaction.Restore(context.Background(), uuid.NullUUID{}, id)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPurge_Absent(t *testing.T) {
	svc, tables := newTestService(t)
	id := uuid.Must(uuid.NewV4())

	tables.transactions.EXPECT().Delete(mock.Anything, uuid.NullUUID{}, id).Return(sqlconfig.ErrNotFound).Once()

	assert.ErrorIs(t, svc.Transaction.Purge(context.Background(), uuid.NullUUID{}, id), ErrNotFound)
}

func TestPurgeExpired_UsesRetentionCutoff(t *testing.T) {
	svc, tables := newTestService(t)
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.Transaction.now = func() time.Time { return now }

	tables.transactions.EXPECT().PurgeDeletedBefore(mock.Anything, now.Add(-30*24*time.Hour)).Return(int64(2), nil).Once()

	n, err := svc.Transaction.PurgeExpired(context.Background(), 30*24*time.Hour)

	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

// -- List and Summary tests --

func TestListTrash_FiltersDeleted(t *testing.T) {
	svc, tables := newTestService(t)
	owner := uuid.NullUUID{UUID: uuid.Must(uuid.NewV4()), Valid: true}

	tables.transactions.EXPECT().List(mock.Anything, &sqlconfig.TransactionFilter{Owner: owner, Deleted: true}).
		Return([]*sqlconfig.Transaction{storedTransaction("Old", "-10")}, nil).Once()

	trash, err := svc.Transaction.ListTrash(context.Background(), owner)

	require.NoError(t, err)
	assert.Len(t, trash, 1)
}

func TestSummary_CoffeeScenario(t *testing.T) {
	svc, tables := newTestService(t)
	salary := storedTransaction("Salary", "1000")
	coffee := storedTransaction("Coffee", "-150")
	hidden := storedTransaction("Secret", "-999")
	hidden.IsHidden = true

	tables.transactions.EXPECT().List(mock.Anything, &sqlconfig.TransactionFilter{}).
		Return([]*sqlconfig.Transaction{salary, hidden}, nil).Once()
	tables.transactions.EXPECT().List(mock.Anything, &sqlconfig.TransactionFilter{}).
		Return([]*sqlconfig.Transaction{coffee, salary, hidden}, nil).Once()

	before, err := svc.Transaction.Summary(context.Background(), uuid.NullUUID{}, SummaryScopeAll)
	require.NoError(t, err)
	after, err := svc.Transaction.Summary(context.Background(), uuid.NullUUID{}, SummaryScopeAll)
	require.NoError(t, err)

	assert.True(t, after.Expense.Sub(before.Expense).Equal(decimal.NewFromInt(150)))
	assert.True(t, after.Balance.Equal(decimal.NewFromInt(850)))
	assert.Equal(t, 2, after.Count)
}

func TestSummarize_Scopes(t *testing.T) {
	gig := Transaction{Amount: decimal.NewFromInt(400), IsFreelance: true}
	rent := Transaction{Amount: decimal.NewFromInt(-300)}
	transactions := []Transaction{gig, rent}

	business := Summarize(transactions, SummaryScopeBusiness)
	assert.True(t, business.Income.Equal(decimal.NewFromInt(400)))
	assert.True(t, business.Expense.IsZero())

	personal := Summarize(transactions, SummaryScopePersonal)
	assert.True(t, personal.Expense.Equal(decimal.NewFromInt(300)))
	assert.True(t, personal.Balance.Equal(decimal.NewFromInt(-300)))
}

func TestSummary_InvalidScope(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Transaction.Summary(context.Background(), uuid.NullUUID{}, SummaryScope("everything"))

	assert.ErrorIs(t, err, ErrValidation)
}
