package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/neofin-server/internal/auth"
	"github.com/carson-networks/neofin-server/internal/handlers/v1/respond"
	"github.com/carson-networks/neofin-server/internal/logging"
	"github.com/carson-networks/neofin-server/internal/service"
)

type SummaryInput struct {
	Scope string `query:"scope" enum:"business,personal" doc:"Restrict to business (freelance) or personal transactions"`
}

type Summary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense" doc:"Total spent, as a positive number"`
	Balance float64 `json:"balance"`
	Count   int     `json:"count" doc:"Transactions included in the totals"`
}

type SummaryOutput struct {
	Body respond.Envelope[Summary]
}

type transactionSummarizer interface {
	Summary(ctx context.Context, owner uuid.NullUUID, scope service.SummaryScope) (*service.Summary, error)
}

// SummaryHandler handles GET /api/transactions/summary.
type SummaryHandler struct {
	TransactionService transactionSummarizer
}

func NewSummaryHandler(svc transactionSummarizer) *SummaryHandler {
	return &SummaryHandler{TransactionService: svc}
}

func (h *SummaryHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "transaction-summary",
		Method:      http.MethodGet,
		Path:        "/api/transactions/summary",
		Summary:     "Balance summary",
		Description: "Totals active transactions, excluding hidden ones.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *SummaryHandler) handle(ctx context.Context, input *SummaryInput) (*SummaryOutput, error) {
	var summary *service.Summary
	err := logging.Timed(logging.GetLogData(ctx), "summaryMs", func() (err error) {
		summary, err = h.TransactionService.Summary(ctx, auth.UserID(ctx), service.SummaryScope(input.Scope))
		return err
	})
	if err != nil {
		return nil, respond.FromService(ctx, err, notFoundMessage)
	}

	return &SummaryOutput{Body: respond.Envelope[Summary]{
		Success: true,
		Data: Summary{
			Income:  summary.Income.InexactFloat64(),
			Expense: summary.Expense.InexactFloat64(),
			Balance: summary.Balance.InexactFloat64(),
			Count:   summary.Count,
		},
	}}, nil
}
