package sqlconfig

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Share is one participant's portion of a split.
type Share struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	IsSettled bool            `json:"isSettled"`
}

// Shares is stored as a JSONB array on the split row.
type Shares []Share

func (s Shares) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *Shares) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = Shares{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("shares: unsupported source type %T", src)
	}
	return json.Unmarshal(raw, s)
}

// Split is a shared expense paid by one participant.
type Split struct {
	ID          uuid.UUID
	UserID      uuid.NullUUID
	Text        string
	TotalAmount decimal.Decimal
	Payer       string
	Shares      Shares
	Date        time.Time
	CreatedAt   time.Time
}

type SplitCreate struct {
	UserID      uuid.NullUUID
	Text        string
	TotalAmount decimal.Decimal
	Payer       string
	Shares      Shares
	Date        time.Time
}

//go:generate mockery --name ISplitTable --inpackage --with-expecter --filename mock_ISplitTable.go
type ISplitTable interface {
	List(ctx context.Context, owner uuid.NullUUID) ([]*Split, error)
	Insert(ctx context.Context, create *SplitCreate) (*Split, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) (*Split, error)
	UpdateShares(ctx context.Context, id uuid.UUID, shares Shares) (*Split, error)
	Delete(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) error
}
