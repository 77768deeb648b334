// Package client mirrors the server's transaction, trash and split lists in
// a local state container and keeps it in step with the REST API.
package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// TempIDPrefix marks identifiers assigned locally before the server confirms a record.
const TempIDPrefix = "tmp-"

type Transaction struct {
	ID           string          `json:"_id"`
	Text         string          `json:"text"`
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type"`
	Category     string          `json:"category"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"createdAt"`
	IsDeleted    bool            `json:"isDeleted"`
	IsHidden     bool            `json:"isHidden"`
	IsFreelance  bool            `json:"isFreelance"`
	IsOptimistic bool            `json:"isOptimistic,omitempty"`
}

// Debt is tracked on the client only.
type Debt struct {
	ID     string          `json:"id"`
	Person string          `json:"person"`
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
	Text   string          `json:"text,omitempty"`
	Date   time.Time       `json:"date"`
}

const (
	DebtLent     = "lent"
	DebtBorrowed = "borrowed"
)

type Share struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	IsSettled bool            `json:"isSettled"`
}

type Split struct {
	ID          string          `json:"_id"`
	Text        string          `json:"text"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Payer       string          `json:"payer"`
	Splits      []Share         `json:"splits"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
	Count   int             `json:"count"`
}

// Parsed is an AI draft: a transaction, or a debt when TransactionType is "debt".
type Parsed struct {
	TransactionType string          `json:"transactionType"`
	Text            string          `json:"text"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Type            string          `json:"type"`
	IsFreelance     bool            `json:"isFreelance"`
	Person          string          `json:"person"`
	DebtType        string          `json:"debtType"`
	Date            time.Time       `json:"date"`
}

func (p Parsed) IsDebt() bool {
	return p.TransactionType == "debt"
}

// FromParsed converts an AI draft into a transaction or a debt, whichever it describes.
func FromParsed(p Parsed) (*Transaction, *Debt) {
	if p.IsDebt() {
		debtType := DebtLent
		if p.DebtType == DebtBorrowed {
			debtType = DebtBorrowed
		}
		return nil, &Debt{
			Person: p.Person,
			Amount: p.Amount.Abs(),
			Type:   debtType,
			Text:   p.Text,
			Date:   p.Date,
		}
	}

	txType, amount := "expense", p.Amount.Abs().Neg()
	if p.Type == "income" {
		txType, amount = "income", p.Amount.Abs()
	}
	return &Transaction{
		Text:        p.Text,
		Amount:      amount,
		Type:        txType,
		Category:    p.Category,
		Date:        p.Date,
		IsFreelance: p.IsFreelance,
	}, nil
}
