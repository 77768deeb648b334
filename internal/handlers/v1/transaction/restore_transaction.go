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

type RestoreTransactionInput struct {
	IDPath
}

type transactionRestorer interface {
	Restore(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) (*service.Transaction, error)
}

// RestoreTransactionHandler handles PUT /api/transactions/restore/{id}.
type RestoreTransactionHandler struct {
	TransactionService transactionRestorer
}

func NewRestoreTransactionHandler(svc transactionRestorer) *RestoreTransactionHandler {
	return &RestoreTransactionHandler{TransactionService: svc}
}

func (h *RestoreTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "restore-transaction",
		Method:      http.MethodPut,
		Path:        "/api/transactions/restore/{id}",
		Summary:     "Restore transaction",
		Description: "Moves a trashed transaction back to the active list.",
		Tags:        []string{"Trash"},
	}, h.handle)
}

func (h *RestoreTransactionHandler) handle(ctx context.Context, input *RestoreTransactionInput) (*TransactionOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	var restored *service.Transaction
	err = logging.Timed(logging.GetLogData(ctx), "restoreTransactionMs", func() (err error) {
		restored, err = h.TransactionService.Restore(ctx, auth.UserID(ctx), id)
		return err
	})
	if err != nil {
		return nil, respond.FromService(ctx, err, notFoundMessage)
	}

	return &TransactionOutput{Body: respond.Envelope[Transaction]{
		Success: true,
		Data:    toTransaction(*restored),
	}}, nil
}
