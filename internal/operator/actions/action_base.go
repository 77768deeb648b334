package actions

import (
	"context"

	"github.com/carson-networks/neofin-server/internal/storage"
)

// IAction is a unit of work performed inside a single database transaction.
// Actions expose their outcome through exported result fields.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
