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

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body TransactionBody
}

// TransactionOutput carries a single transaction.
type TransactionOutput struct {
	Body respond.Envelope[Transaction]
}

type transactionCreator interface {
	Create(ctx context.Context, owner uuid.NullUUID, input service.TransactionInput) (*service.Transaction, error)
}

// CreateTransactionHandler handles POST /api/transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          "/api/transactions",
		Summary:       "Create transaction",
		Description:   "Creates a new active transaction. The type is derived from the amount when omitted.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*TransactionOutput, error) {
	var created *service.Transaction
	err := logging.Timed(logging.GetLogData(ctx), "createTransactionMs", func() (err error) {
		created, err = h.TransactionService.Create(ctx, auth.UserID(ctx), parseTransactionBody(&input.Body))
		return err
	})
	if err != nil {
		return nil, respond.FromService(ctx, err, notFoundMessage)
	}

	return &TransactionOutput{Body: respond.Envelope[Transaction]{
		Success: true,
		Data:    toTransaction(*created),
	}}, nil
}
