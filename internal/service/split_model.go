package service

import (
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

const DefaultPayer = "You"

type Share struct {
	Name      string
	Amount    decimal.Decimal
	IsSettled bool
}

// Split is a shared expense. Shares are created unsettled and settled one at a time.
type Split struct {
	ID          uuid.UUID
	Text        string
	TotalAmount decimal.Decimal
	Payer       string
	Shares      []Share
	Date        time.Time
	CreatedAt   time.Time
}

type ShareInput struct {
	Name   string
	Amount decimal.Decimal
}

type SplitInput struct {
	Text        string
	TotalAmount omit.Val[decimal.Decimal]
	Payer       omit.Val[string]
	Shares      []ShareInput
	Date        omit.Val[time.Time]
}

func splitFromStorage(row *sqlconfig.Split) Split {
	shares := make([]Share, len(row.Shares))
	for i, share := range row.Shares {
		shares[i] = Share{
			Name:      share.Name,
			Amount:    share.Amount,
			IsSettled: share.IsSettled,
		}
	}
	return Split{
		ID:          row.ID,
		Text:        row.Text,
		TotalAmount: row.TotalAmount,
		Payer:       row.Payer,
		Shares:      shares,
		Date:        row.Date,
		CreatedAt:   row.CreatedAt,
	}
}
