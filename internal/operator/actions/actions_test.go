package actions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/neofin-server/internal/storage"
	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

type tables struct {
	transactions *sqlconfig.MockITransactionTable
	splits       *sqlconfig.MockISplitTable
	users        *sqlconfig.MockIUserTable
}

func newWriter(t *testing.T) (*storage.Writer, tables) {
	tb := tables{
		transactions: sqlconfig.NewMockITransactionTable(t),
		splits:       sqlconfig.NewMockISplitTable(t),
		users:        sqlconfig.NewMockIUserTable(t),
	}
	return storage.NewWriterFor(nil, tb.transactions, tb.splits, tb.users), tb
}

func TestCreateTransaction_StoresResult(t *testing.T) {
	ctx := context.Background()
	writer, tb := newWriter(t)

	create := &sqlconfig.TransactionCreate{
		Text:     "Coffee",
		Amount:   decimal.NewFromInt(-150),
		Type:     sqlconfig.TransactionTypeExpense,
		Category: "Food",
	}
	stored := &sqlconfig.Transaction{ID: uuid.Must(uuid.NewV4()), Text: "Coffee"}
	tb.transactions.EXPECT().Insert(ctx, create).Return(stored, nil).Once()

	action := &CreateTransaction{Create: create}
	require.NoError(t, action.Perform(ctx, writer))
	assert.Equal(t, stored, action.Result)
}

func TestSoftDeleteTransaction_StampsDeletionTime(t *testing.T) {
	ctx := context.Background()
	writer, tb := newWriter(t)
	id := uuid.Must(uuid.NewV4())

	tb.transactions.EXPECT().
		SetDeleted(ctx, uuid.NullUUID{}, id, true, mock.AnythingOfType("time.Time")).
		Run(func(_ context.Context, _ uuid.NullUUID, _ uuid.UUID, _ bool, at time.Time) {
			assert.False(t, at.IsZero())
		}).
		Return(&sqlconfig.Transaction{ID: id, IsDeleted: true}, nil).Once()

	action := &SoftDeleteTransaction{ID: id}
	require.NoError(t, action.Perform(ctx, writer))
	assert.True(t, action.Result.IsDeleted)
}

func TestRestoreTransaction_NotInTrash(t *testing.T) {
	ctx := context.Background()
	writer, tb := newWriter(t)
	id := uuid.Must(uuid.NewV4())

	tb.transactions.EXPECT().SetDeleted(ctx, uuid.NullUUID{}, id, false, time.Time{}).
		Return(nil, sqlconfig.ErrNotFound).Once()

	action := &RestoreTransaction{ID: id}
	assert.ErrorIs(t, action.Perform(ctx, writer), sqlconfig.ErrNotFound)
	assert.Nil(t, action.Result)
}

func TestPurgeExpiredTrash_CountsRows(t *testing.T) {
	ctx := context.Background()
	writer, tb := newWriter(t)
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tb.transactions.EXPECT().PurgeDeletedBefore(ctx, cutoff).Return(int64(3), nil).Once()

	action := &PurgeExpiredTrash{Cutoff: cutoff}
	require.NoError(t, action.Perform(ctx, writer))
	assert.Equal(t, int64(3), action.Purged)
}

func TestSettleSplitShare(t *testing.T) {
	owner := uuid.NullUUID{UUID: uuid.Must(uuid.NewV4()), Valid: true}
	id := uuid.Must(uuid.NewV4())
	split := func() *sqlconfig.Split {
		return &sqlconfig.Split{
			ID: id,
			Shares: sqlconfig.Shares{
				{Name: "Asha", Amount: decimal.NewFromInt(100)},
				{Name: "Ravi", Amount: decimal.NewFromInt(100)},
			},
		}
	}

	t.Run("settles only the named share", func(t *testing.T) {
		ctx := context.Background()
		writer, tb := newWriter(t)
		original := split()

		tb.splits.EXPECT().FindByIDForUpdate(ctx, owner, id).Return(original, nil).Once()
		tb.splits.EXPECT().UpdateShares(ctx, id, mock.AnythingOfType("sqlconfig.Shares")).
			RunAndReturn(func(_ context.Context, _ uuid.UUID, shares sqlconfig.Shares) (*sqlconfig.Split, error) {
				assert.False(t, shares[0].IsSettled)
				assert.True(t, shares[1].IsSettled)
				return &sqlconfig.Split{ID: id, Shares: shares}, nil
			}).Once()

		action := &SettleSplitShare{Owner: owner, ID: id, Name: "Ravi"}
		require.NoError(t, action.Perform(ctx, writer))
		assert.True(t, action.Result.Shares[1].IsSettled)
		assert.False(t, original.Shares[1].IsSettled, "loaded row is not mutated in place")
	})

	t.Run("unknown participant leaves the split unchanged", func(t *testing.T) {
		ctx := context.Background()
		writer, tb := newWriter(t)
		loaded := split()

		tb.splits.EXPECT().FindByIDForUpdate(ctx, owner, id).Return(loaded, nil).Once()

		action := &SettleSplitShare{Owner: owner, ID: id, Name: "Nobody"}
		require.NoError(t, action.Perform(ctx, writer))
		assert.Same(t, loaded, action.Result)
		tb.splits.AssertNotCalled(t, "UpdateShares", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing split", func(t *testing.T) {
		ctx := context.Background()
		writer, tb := newWriter(t)

		tb.splits.EXPECT().FindByIDForUpdate(ctx, owner, id).Return(nil, sqlconfig.ErrNotFound).Once()

		action := &SettleSplitShare{Owner: owner, ID: id, Name: "Asha"}
		assert.ErrorIs(t, action.Perform(ctx, writer), sqlconfig.ErrNotFound)
	})
}

func TestDeleteSplit_AbsentIsNoOp(t *testing.T) {
	ctx := context.Background()
	writer, tb := newWriter(t)
	id := uuid.Must(uuid.NewV4())

	tb.splits.EXPECT().Delete(ctx, uuid.NullUUID{}, id).Return(sqlconfig.ErrNotFound).Once()

	assert.NoError(t, (&DeleteSplit{ID: id}).Perform(ctx, writer))
}

func TestRegisterUser_Duplicate(t *testing.T) {
	ctx := context.Background()
	writer, tb := newWriter(t)

	tb.users.EXPECT().Insert(ctx, "a@b.co", "hash").Return(nil, sqlconfig.ErrDuplicate).Once()

	action := &RegisterUser{Email: "a@b.co", PasswordHash: "hash"}
	assert.ErrorIs(t, action.Perform(ctx, writer), sqlconfig.ErrDuplicate)
}

func TestUpdateTransaction_MergesOverExisting(t *testing.T) {
	ctx := context.Background()
	writer, tb := newWriter(t)
	id := uuid.Must(uuid.NewV4())
	existing := &sqlconfig.Transaction{ID: id, Text: "Coffee", Amount: decimal.NewFromInt(-150)}

	tb.transactions.EXPECT().FindByID(ctx, uuid.NullUUID{}, id).Return(existing, nil).Once()
	tb.transactions.EXPECT().Update(ctx, uuid.NullUUID{}, id, mock.MatchedBy(func(u *sqlconfig.TransactionUpdate) bool {
		return u.Text == "Coffee beans" && u.Amount.Equal(existing.Amount)
	})).Return(&sqlconfig.Transaction{ID: id, Text: "Coffee beans"}, nil).Once()

	action := &UpdateTransaction{
		ID: id,
		Merge: func(e *sqlconfig.Transaction) (*sqlconfig.TransactionUpdate, error) {
			return &sqlconfig.TransactionUpdate{Text: e.Text + " beans", Amount: e.Amount}, nil
		},
	}
	require.NoError(t, action.Perform(ctx, writer))
	assert.Equal(t, "Coffee beans", action.Result.Text)
}

func TestUpdateTransaction_MergeErrorSkipsWrite(t *testing.T) {
	ctx := context.Background()
	writer, tb := newWriter(t)
	id := uuid.Must(uuid.NewV4())
	invalid := errors.New("invalid")

	tb.transactions.EXPECT().FindByID(ctx, uuid.NullUUID{}, id).Return(&sqlconfig.Transaction{ID: id}, nil).Once()

	action := &UpdateTransaction{
		ID: id,
		Merge: func(*sqlconfig.Transaction) (*sqlconfig.TransactionUpdate, error) {
			return nil, invalid
		},
	}
	assert.ErrorIs(t, action.Perform(ctx, writer), invalid)
}
