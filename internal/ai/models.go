package ai

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/neofin-server/internal/service"
)

// Mode selects what a parse request extracts.
type Mode string

const (
	ModeTransaction Mode = "transaction"
	ModeDebt        Mode = "debt"
)

func ParseMode(s string) Mode {
	if Mode(s) == ModeDebt {
		return ModeDebt
	}
	return ModeTransaction
}

type DebtType string

const (
	DebtLent     DebtType = "lent"
	DebtBorrowed DebtType = "borrowed"
)

const (
	malformedText   = "Manual Entry Required (AI Parsing Failed)"
	chatApology     = "Sorry, I couldn't reach the AI service right now. Please try again in a moment."
	defaultFileMIME = "audio/wav"
)

// ParsedTransaction is a draft transaction. Amount carries the sign of Type.
type ParsedTransaction struct {
	Text        string
	Amount      decimal.Decimal
	Category    string
	Type        service.TransactionType
	IsFreelance bool
	Date        time.Time
}

// ParsedDebt is a draft client-local debt. Amount is always positive.
type ParsedDebt struct {
	Text   string
	Person string
	Amount decimal.Decimal
	Type   DebtType
	Date   time.Time
}

// ParseInput carries either a prompt or an attached file.
type ParseInput struct {
	Prompt   string
	File     []byte
	MIMEType string
	Mode     Mode
}

// ParseResult is the outcome of Parse. Exactly one of Transaction and Debt
// is set. Success is false only when the upstream call failed.
type ParseResult struct {
	Success     bool
	Message     string
	Transaction *ParsedTransaction
	Debt        *ParsedDebt
}

type Subscription struct {
	Name      string
	Amount    decimal.Decimal
	Frequency string
}

// TransactionDigest is the slice of a transaction the model sees.
type TransactionDigest struct {
	Text     string
	Amount   decimal.Decimal
	Category string
	Type     string
	Date     time.Time
}

type ChatResult struct {
	Success bool
	Answer  string
}

func fallbackTransaction(text string, now time.Time) *ParsedTransaction {
	return &ParsedTransaction{
		Text:     text,
		Amount:   decimal.Zero,
		Category: service.DefaultCategory,
		Type:     service.TransactionTypeExpense,
		Date:     now,
	}
}

func fallbackDebt(text string, now time.Time) *ParsedDebt {
	return &ParsedDebt{
		Text:   text,
		Amount: decimal.Zero,
		Type:   DebtLent,
		Date:   now,
	}
}
