package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/neofin-server/internal/auth"
	"github.com/carson-networks/neofin-server/internal/handlers/v1/respond"
	"github.com/carson-networks/neofin-server/internal/logging"
)

type PurgeTransactionInput struct {
	IDPath
}

type transactionPurger interface {
	Purge(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) error
}

// PurgeTransactionHandler handles DELETE /api/transactions/permanent/{id}.
type PurgeTransactionHandler struct {
	TransactionService transactionPurger
}

func NewPurgeTransactionHandler(svc transactionPurger) *PurgeTransactionHandler {
	return &PurgeTransactionHandler{TransactionService: svc}
}

func (h *PurgeTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "purge-transaction",
		Method:      http.MethodDelete,
		Path:        "/api/transactions/permanent/{id}",
		Summary:     "Delete transaction permanently",
		Description: "Removes a transaction whatever its state. This cannot be undone.",
		Tags:        []string{"Trash"},
	}, h.handle)
}

func (h *PurgeTransactionHandler) handle(ctx context.Context, input *PurgeTransactionInput) (*EmptyOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	err = logging.Timed(logging.GetLogData(ctx), "purgeTransactionMs", func() error {
		return h.TransactionService.Purge(ctx, auth.UserID(ctx), id)
	})
	if err != nil {
		return nil, respond.FromService(ctx, err, notFoundMessage)
	}

	return &EmptyOutput{Body: respond.Envelope[respond.Empty]{Success: true}}, nil
}
