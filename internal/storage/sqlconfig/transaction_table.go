package sqlconfig

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

const transactionsTableName = "transactions"

var transactionColumns = []any{
	"id", "user_id", "text", "amount", "type", "category", "occurred_at",
	"created_at", "is_deleted", "is_hidden", "is_freelance", "deleted_at",
}

type transactionRow struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.NullUUID   `db:"user_id"`
	Text        string          `db:"text"`
	Amount      decimal.Decimal `db:"amount"`
	Type        string          `db:"type"`
	Category    string          `db:"category"`
	OccurredAt  time.Time       `db:"occurred_at"`
	CreatedAt   time.Time       `db:"created_at"`
	IsDeleted   bool            `db:"is_deleted"`
	IsHidden    bool            `db:"is_hidden"`
	IsFreelance bool            `db:"is_freelance"`
	DeletedAt   sql.NullTime    `db:"deleted_at"`
}

type TransactionsTable struct {
	exec bob.Executor
}

func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves an owned transaction by primary key, whatever its lifecycle state.
func (t *TransactionsTable) FindByID(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) (*Transaction, error) {
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTableName),
		sm.Where(byID(id)),
		sm.Where(ownedBy(owner)),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*transactionRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toTransaction(), nil
}

// Insert creates a new active transaction and returns the stored row.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	date := create.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	q := psql.Insert(
		im.Into(transactionsTableName,
			"user_id", "text", "amount", "type", "category", "occurred_at", "is_hidden", "is_freelance"),
		im.Values(psql.Arg(
			create.UserID, create.Text, create.Amount, string(create.Type), create.Category,
			date, create.IsHidden, create.IsFreelance,
		)),
		im.Returning(transactionColumns...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*transactionRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toTransaction(), nil
}

// List returns the owner's transactions in one lifecycle state, newest occurrence first.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	if filter == nil {
		filter = &TransactionFilter{}
	}
	q := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTableName),
		sm.Where(ownedBy(filter.Owner)),
		sm.Where(psql.Quote("is_deleted").EQ(psql.Arg(filter.Deleted))),
		sm.OrderBy(psql.Quote("occurred_at")).Desc(),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[*transactionRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Transaction, len(rows))
	for i, row := range rows {
		result[i] = row.toTransaction()
	}
	return result, nil
}

// Update replaces the mutable fields of an owned transaction. The lifecycle flag is untouched.
func (t *TransactionsTable) Update(ctx context.Context, owner uuid.NullUUID, id uuid.UUID, update *TransactionUpdate) (*Transaction, error) {
	q := psql.Update(
		um.Table(transactionsTableName),
		um.SetCol("text").ToArg(update.Text),
		um.SetCol("amount").ToArg(update.Amount),
		um.SetCol("type").ToArg(string(update.Type)),
		um.SetCol("category").ToArg(update.Category),
		um.SetCol("occurred_at").ToArg(update.Date),
		um.SetCol("is_hidden").ToArg(update.IsHidden),
		um.SetCol("is_freelance").ToArg(update.IsFreelance),
		um.Where(byID(id)),
		um.Where(ownedBy(owner)),
		um.Returning(transactionColumns...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*transactionRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toTransaction(), nil
}

// SetDeleted moves an owned transaction into or out of the trash. Trashing is
// idempotent and keeps the first deleted_at; restoring only matches trashed rows.
func (t *TransactionsTable) SetDeleted(ctx context.Context, owner uuid.NullUUID, id uuid.UUID, deleted bool, at time.Time) (*Transaction, error) {
	var q bob.Query
	if deleted {
		q = psql.Update(
			um.Table(transactionsTableName),
			um.SetCol("is_deleted").ToArg(true),
			um.SetCol("deleted_at").To(psql.F("COALESCE", psql.Quote("deleted_at"), psql.Arg(at))()),
			um.Where(byID(id)),
			um.Where(ownedBy(owner)),
			um.Returning(transactionColumns...),
		)
	} else {
		q = psql.Update(
			um.Table(transactionsTableName),
			um.SetCol("is_deleted").ToArg(false),
			um.SetCol("deleted_at").ToArg(sql.NullTime{}),
			um.Where(byID(id)),
			um.Where(ownedBy(owner)),
			um.Where(psql.Quote("is_deleted").EQ(psql.Arg(true))),
			um.Returning(transactionColumns...),
		)
	}
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*transactionRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toTransaction(), nil
}

// Delete removes an owned transaction permanently.
func (t *TransactionsTable) Delete(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(transactionsTableName),
		dm.Where(byID(id)),
		dm.Where(ownedBy(owner)),
	)
	return execAffectingOne(ctx, t.exec, q)
}

// PurgeDeletedBefore removes trashed transactions of every owner deleted before cutoff.
func (t *TransactionsTable) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := psql.Delete(
		dm.From(transactionsTableName),
		dm.Where(psql.Quote("is_deleted").EQ(psql.Arg(true))),
		dm.Where(psql.Quote("deleted_at").LT(psql.Arg(cutoff))),
	)
	res, err := bob.Exec(ctx, t.exec, q)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func execAffectingOne(ctx context.Context, exec bob.Executor, q bob.Query) error {
	res, err := bob.Exec(ctx, exec, q)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *transactionRow) toTransaction() *Transaction {
	tx := &Transaction{
		ID:          r.ID,
		UserID:      r.UserID,
		Text:        r.Text,
		Amount:      r.Amount,
		Type:        TransactionType(r.Type),
		Category:    r.Category,
		Date:        r.OccurredAt,
		CreatedAt:   r.CreatedAt,
		IsDeleted:   r.IsDeleted,
		IsHidden:    r.IsHidden,
		IsFreelance: r.IsFreelance,
	}
	if r.DeletedAt.Valid {
		deletedAt := r.DeletedAt.Time
		tx.DeletedAt = &deletedAt
	}
	return tx
}
