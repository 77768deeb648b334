package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

//go:generate mockery --name IUserTable --inpackage --with-expecter --filename mock_IUserTable.go
type IUserTable interface {
	// Insert returns ErrDuplicate when the email is already registered.
	Insert(ctx context.Context, email string, passwordHash string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}
