package ai

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	aigateway "github.com/carson-networks/neofin-server/internal/ai"
)

// Gateway is the slice of the AI gateway the endpoints call.
type Gateway interface {
	Parse(ctx context.Context, input aigateway.ParseInput) (aigateway.ParseResult, error)
	DetectSubscriptions(ctx context.Context, txs []aigateway.TransactionDigest) []aigateway.Subscription
	Chat(ctx context.Context, message string, txs []aigateway.TransactionDigest) (aigateway.ChatResult, error)
}

// RegisterAll registers the AI endpoints.
func RegisterAll(api huma.API, gw Gateway) {
	NewParseHandler(gw).Register(api)
	NewDetectSubscriptionsHandler(gw).Register(api)
	NewChatHandler(gw).Register(api)
}

// TransactionRow is a client-side transaction sent as context. Unknown
// fields such as _id are accepted and ignored.
type TransactionRow struct {
	_         struct{}   `json:"-" additionalProperties:"true"`
	Text      string     `json:"text,omitempty"`
	Amount    float64    `json:"amount,omitempty"`
	Category  string     `json:"category,omitempty"`
	Type      string     `json:"type,omitempty"`
	Date      *time.Time `json:"date,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func toDigests(rows []TransactionRow) []aigateway.TransactionDigest {
	digests := make([]aigateway.TransactionDigest, len(rows))
	for i, row := range rows {
		var date time.Time
		switch {
		case row.Date != nil:
			date = *row.Date
		case row.CreatedAt != nil:
			date = *row.CreatedAt
		}
		digests[i] = aigateway.TransactionDigest{
			Text:     row.Text,
			Amount:   decimal.NewFromFloat(row.Amount),
			Category: row.Category,
			Type:     row.Type,
			Date:     date,
		}
	}
	return digests
}

// ParsedData is a draft transaction or, when TransactionType is debt, a draft debt.
type ParsedData struct {
	TransactionType string    `json:"transactionType" enum:"transaction,debt"`
	Text            string    `json:"text"`
	Amount          float64   `json:"amount" doc:"Signed by type for transactions, positive for debts"`
	Category        string    `json:"category,omitempty"`
	Type            string    `json:"type,omitempty" enum:"income,expense"`
	IsFreelance     bool      `json:"isFreelance"`
	Person          string    `json:"person,omitempty"`
	DebtType        string    `json:"debtType,omitempty" enum:"lent,borrowed"`
	Date            time.Time `json:"date"`
}

func toParsedData(result aigateway.ParseResult) ParsedData {
	if debt := result.Debt; debt != nil {
		return ParsedData{
			TransactionType: string(aigateway.ModeDebt),
			Text:            debt.Text,
			Amount:          debt.Amount.InexactFloat64(),
			Person:          debt.Person,
			DebtType:        string(debt.Type),
			Date:            debt.Date,
		}
	}

	tx := result.Transaction
	return ParsedData{
		TransactionType: string(aigateway.ModeTransaction),
		Text:            tx.Text,
		Amount:          tx.Amount.InexactFloat64(),
		Category:        tx.Category,
		Type:            string(tx.Type),
		IsFreelance:     tx.IsFreelance,
		Date:            tx.Date,
	}
}

type Subscription struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency"`
}
