package service

import (
	"slices"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

const DefaultCategory = "Other"

// Categories is the closed set of transaction categories.
var Categories = []string{
	"Salary", "Freelance", "Investment", "Food", "Travel", "Entertainment",
	"Utilities", "Shopping", "Health", "Education", DefaultCategory,
}

func IsCategory(category string) bool {
	return slices.Contains(Categories, category)
}

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID          uuid.UUID
	Text        string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	Date        time.Time
	CreatedAt   time.Time
	IsDeleted   bool
	IsHidden    bool
	IsFreelance bool
}

// TransactionInput carries the writable fields of a transaction. Unset fields
// take defaults on create and keep their stored value on update.
type TransactionInput struct {
	Text        omit.Val[string]
	Amount      omit.Val[decimal.Decimal]
	Type        omit.Val[TransactionType]
	Category    omit.Val[string]
	Date        omit.Val[time.Time]
	IsHidden    omit.Val[bool]
	IsFreelance omit.Val[bool]
}

type SummaryScope string

const (
	SummaryScopeAll      SummaryScope = ""
	SummaryScopeBusiness SummaryScope = "business"
	SummaryScopePersonal SummaryScope = "personal"
)

// Summary aggregates active, visible transactions. Expense is reported as a positive total.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
	Count   int
}

// TypeForAmount derives the transaction type from the sign of amount.
func TypeForAmount(amount decimal.Decimal) TransactionType {
	if amount.IsNegative() {
		return TransactionTypeExpense
	}
	return TransactionTypeIncome
}

func transactionFromStorage(row *sqlconfig.Transaction) Transaction {
	return Transaction{
		ID:          row.ID,
		Text:        row.Text,
		Amount:      row.Amount,
		Type:        TransactionType(row.Type),
		Category:    row.Category,
		Date:        row.Date,
		CreatedAt:   row.CreatedAt,
		IsDeleted:   row.IsDeleted,
		IsHidden:    row.IsHidden,
		IsFreelance: row.IsFreelance,
	}
}

func transactionsFromStorage(rows []*sqlconfig.Transaction) []Transaction {
	converted := make([]Transaction, len(rows))
	for i, row := range rows {
		converted[i] = transactionFromStorage(row)
	}
	return converted
}
