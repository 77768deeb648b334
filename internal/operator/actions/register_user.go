package actions

import (
	"context"

	"github.com/carson-networks/neofin-server/internal/storage"
	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

type RegisterUser struct {
	Email        string
	PasswordHash string

	Result *sqlconfig.User
}

func (u *RegisterUser) Perform(ctx context.Context, writer *storage.Writer) error {
	user, err := writer.Users.Insert(ctx, u.Email, u.PasswordHash)
	if err != nil {
		return err
	}

	u.Result = user
	return nil
}
