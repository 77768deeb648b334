package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ IUserTable = (*UsersTable)(nil)

const usersTableName = "users"

var userColumns = []any{"id", "email", "password_hash", "created_at"}

type userRow struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

type UsersTable struct {
	exec bob.Executor
}

func NewUsersTable(exec bob.Executor) *UsersTable {
	return &UsersTable{exec: exec}
}

func (t *UsersTable) Insert(ctx context.Context, email string, passwordHash string) (*User, error) {
	q := psql.Insert(
		im.Into(usersTableName, "email", "password_hash"),
		im.Values(psql.Arg(email, passwordHash)),
		im.Returning(userColumns...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*userRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toUser(), nil
}

func (t *UsersTable) FindByEmail(ctx context.Context, email string) (*User, error) {
	q := psql.Select(
		sm.Columns(userColumns...),
		sm.From(usersTableName),
		sm.Where(psql.Quote("email").EQ(psql.Arg(email))),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*userRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toUser(), nil
}

func (r *userRow) toUser() *User {
	return &User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
}
