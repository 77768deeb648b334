package split

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/neofin-server/internal/service"
)

const notFoundMessage = "Not Found"

type Share struct {
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	IsSettled bool    `json:"isSettled"`
}

// Split is the API model for a shared expense.
type Split struct {
	ID          string    `json:"_id" doc:"Split UUID"`
	Text        string    `json:"text"`
	TotalAmount float64   `json:"totalAmount"`
	Payer       string    `json:"payer"`
	Splits      []Share   `json:"splits" doc:"Each participant's share"`
	Date        time.Time `json:"date"`
}

// SplitService is everything the split endpoints need.
type SplitService interface {
	List(ctx context.Context, owner uuid.NullUUID) ([]service.Split, error)
	Create(ctx context.Context, owner uuid.NullUUID, input service.SplitInput) (*service.Split, error)
	Settle(ctx context.Context, owner uuid.NullUUID, id uuid.UUID, name string) (*service.Split, error)
	Delete(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) error
}

// RegisterAll registers every split endpoint.
func RegisterAll(api huma.API, svc SplitService) {
	NewListSplitsHandler(svc).Register(api)
	NewCreateSplitHandler(svc).Register(api)
	NewSettleSplitHandler(svc).Register(api)
	NewDeleteSplitHandler(svc).Register(api)
}

func toSplit(s service.Split) Split {
	shares := make([]Share, len(s.Shares))
	for i, share := range s.Shares {
		shares[i] = Share{
			Name:      share.Name,
			Amount:    share.Amount.InexactFloat64(),
			IsSettled: share.IsSettled,
		}
	}
	return Split{
		ID:          s.ID.String(),
		Text:        s.Text,
		TotalAmount: s.TotalAmount.InexactFloat64(),
		Payer:       s.Payer,
		Splits:      shares,
		Date:        s.Date,
	}
}

func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusNotFound, notFoundMessage)
	}
	return id, nil
}
