package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a transaction record.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.NullUUID
	Text        string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Date        time.Time
	CreatedAt   time.Time
	IsDeleted   bool
	IsHidden    bool
	IsFreelance bool
	DeletedAt   *time.Time
}

// TransactionCreate is the input for creating a new transaction.
type TransactionCreate struct {
	UserID      uuid.NullUUID
	Text        string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Date        time.Time
	IsHidden    bool
	IsFreelance bool
}

// TransactionUpdate replaces every mutable field of a transaction.
type TransactionUpdate struct {
	Text        string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Date        time.Time
	IsHidden    bool
	IsFreelance bool
}

// TransactionFilter specifies filters for listing transactions.
type TransactionFilter struct {
	Owner   uuid.NullUUID
	Deleted bool
}

// ITransactionTable defines the interface for transaction storage operations.
//
//go:generate mockery --name ITransactionTable --inpackage --with-expecter --filename mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) (*Transaction, error)
	Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	Update(ctx context.Context, owner uuid.NullUUID, id uuid.UUID, update *TransactionUpdate) (*Transaction, error)
	// SetDeleted flips the lifecycle flag. Only rows currently in the opposite state match.
	SetDeleted(ctx context.Context, owner uuid.NullUUID, id uuid.UUID, deleted bool, at time.Time) (*Transaction, error)
	Delete(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) error
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
