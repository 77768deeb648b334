package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/neofin-server/internal/config"
	"github.com/carson-networks/neofin-server/internal/storage/sqlconfig"
)

// Storage is the read side of the database. Writes go through Write and a Writer.
type Storage struct {
	DB           *sql.DB
	db           bob.DB
	Transactions sqlconfig.ITransactionTable
	Splits       sqlconfig.ISplitTable
	Users        sqlconfig.IUserTable
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		return nil, err
	}

	bobDB := bob.NewDB(db)
	return &Storage{
		DB:           db,
		db:           bobDB,
		Transactions: sqlconfig.NewTransactionsTable(bobDB),
		Splits:       sqlconfig.NewSplitsTable(bobDB),
		Users:        sqlconfig.NewUsersTable(bobDB),
	}, nil
}

// Write begins a database transaction and returns a Writer bound to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
