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

type trashLister interface {
	ListTrash(ctx context.Context, owner uuid.NullUUID) ([]service.Transaction, error)
}

// ListTrashHandler handles GET /api/transactions/trash/all.
type ListTrashHandler struct {
	TransactionService trashLister
}

func NewListTrashHandler(svc trashLister) *ListTrashHandler {
	return &ListTrashHandler{TransactionService: svc}
}

func (h *ListTrashHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-trash",
		Method:      http.MethodGet,
		Path:        "/api/transactions/trash/all",
		Summary:     "List trash",
		Description: "Returns every soft-deleted transaction, newest first.",
		Tags:        []string{"Trash"},
	}, h.handle)
}

func (h *ListTrashHandler) handle(ctx context.Context, _ *struct{}) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	var transactions []service.Transaction
	err := logging.Timed(logData, "listTrashMs", func() (err error) {
		transactions, err = h.TransactionService.ListTrash(ctx, auth.UserID(ctx))
		return err
	})
	if err != nil {
		return nil, respond.FromService(ctx, err, notFoundMessage)
	}

	if logData != nil {
		logData.AddData("trashCount", len(transactions))
	}

	return &ListTransactionsOutput{Body: respond.ListEnvelope[Transaction]{
		Success: true,
		Count:   len(transactions),
		Data:    toTransactions(transactions),
	}}, nil
}
