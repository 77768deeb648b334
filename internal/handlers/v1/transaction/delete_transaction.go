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

type DeleteTransactionInput struct {
	IDPath
}

// EmptyOutput is returned by the endpoints that answer {success, data: {}}.
type EmptyOutput struct {
	Body respond.Envelope[respond.Empty]
}

type transactionSoftDeleter interface {
	SoftDelete(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) (*service.Transaction, error)
}

// DeleteTransactionHandler handles DELETE /api/transactions/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionSoftDeleter
}

func NewDeleteTransactionHandler(svc transactionSoftDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        "/api/transactions/{id}",
		Summary:     "Move transaction to trash",
		Description: "Soft-deletes an active transaction. It can be restored until purged.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *DeleteTransactionInput) (*EmptyOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	err = logging.Timed(logging.GetLogData(ctx), "softDeleteTransactionMs", func() error {
		_, err := h.TransactionService.SoftDelete(ctx, auth.UserID(ctx), id)
		return err
	})
	if err != nil {
		return nil, respond.FromService(ctx, err, notFoundMessage)
	}

	return &EmptyOutput{Body: respond.Envelope[respond.Empty]{Success: true}}, nil
}
