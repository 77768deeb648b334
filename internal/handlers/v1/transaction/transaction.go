package transaction

import (
	"net/http"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/neofin-server/internal/service"
)

const notFoundMessage = "No transaction found"

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID          string    `json:"_id" doc:"Transaction UUID"`
	Text        string    `json:"text" doc:"Description"`
	Amount      float64   `json:"amount" doc:"Signed amount, negative for expenses"`
	Type        string    `json:"type" enum:"income,expense" doc:"Transaction type"`
	Category    string    `json:"category" doc:"Category"`
	Date        time.Time `json:"date" doc:"When the transaction happened"`
	CreatedAt   time.Time `json:"createdAt" doc:"When the transaction was recorded"`
	IsDeleted   bool      `json:"isDeleted" doc:"Whether the transaction is in the trash"`
	IsHidden    bool      `json:"isHidden" doc:"Excluded from balances in ghost mode"`
	IsFreelance bool      `json:"isFreelance" doc:"Business transaction"`
}

// TransactionBody is the request body for creating or updating a transaction.
// Unknown fields such as _id or isDeleted are accepted and ignored.
type TransactionBody struct {
	_           struct{}   `json:"-" additionalProperties:"true"`
	Text        *string    `json:"text,omitempty" doc:"Description, required on create"`
	Amount      *float64   `json:"amount,omitempty" doc:"Signed amount, required on create"`
	Type        *string    `json:"type,omitempty" enum:"income,expense" doc:"Derived from the sign of amount when omitted"`
	Category    *string    `json:"category,omitempty" doc:"Defaults to Other"`
	Date        *time.Time `json:"date,omitempty" doc:"Defaults to now"`
	IsHidden    *bool      `json:"isHidden,omitempty"`
	IsFreelance *bool      `json:"isFreelance,omitempty"`
}

// IDPath is the path parameter shared by the single-transaction endpoints.
type IDPath struct {
	ID string `path:"id" doc:"Transaction UUID"`
}

func toTransaction(tx service.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID.String(),
		Text:        tx.Text,
		Amount:      tx.Amount.InexactFloat64(),
		Type:        string(tx.Type),
		Category:    tx.Category,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
		IsDeleted:   tx.IsDeleted,
		IsHidden:    tx.IsHidden,
		IsFreelance: tx.IsFreelance,
	}
}

func toTransactions(txs []service.Transaction) []Transaction {
	converted := make([]Transaction, len(txs))
	for i, tx := range txs {
		converted[i] = toTransaction(tx)
	}
	return converted
}

// parseTransactionBody converts the wire body into service input, leaving absent fields unset.
func parseTransactionBody(body *TransactionBody) service.TransactionInput {
	input := service.TransactionInput{
		Text:        omit.FromPtr(body.Text),
		Category:    omit.FromPtr(body.Category),
		Date:        omit.FromPtr(body.Date),
		IsHidden:    omit.FromPtr(body.IsHidden),
		IsFreelance: omit.FromPtr(body.IsFreelance),
	}
	if body.Amount != nil {
		input.Amount = omit.From(decimal.NewFromFloat(*body.Amount))
	}
	if body.Type != nil {
		input.Type = omit.From(service.TransactionType(*body.Type))
	}
	return input
}

// parseID treats malformed identifiers as unknown records.
func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusNotFound, notFoundMessage)
	}
	return id, nil
}
