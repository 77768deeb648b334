package sqlconfig

import (
	"context"
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

var _ ISplitTable = (*SplitsTable)(nil)

const splitsTableName = "splits"

var splitColumns = []any{
	"id", "user_id", "text", "total_amount", "payer", "shares", "occurred_at", "created_at",
}

type splitRow struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.NullUUID   `db:"user_id"`
	Text        string          `db:"text"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Payer       string          `db:"payer"`
	Shares      Shares          `db:"shares"`
	OccurredAt  time.Time       `db:"occurred_at"`
	CreatedAt   time.Time       `db:"created_at"`
}

type SplitsTable struct {
	exec bob.Executor
}

func NewSplitsTable(exec bob.Executor) *SplitsTable {
	return &SplitsTable{exec: exec}
}

func (t *SplitsTable) List(ctx context.Context, owner uuid.NullUUID) ([]*Split, error) {
	q := psql.Select(
		sm.Columns(splitColumns...),
		sm.From(splitsTableName),
		sm.Where(ownedBy(owner)),
		sm.OrderBy(psql.Quote("occurred_at")).Desc(),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
	)
	rows, err := bob.All(ctx, t.exec, q, scan.StructMapper[*splitRow]())
	if err != nil {
		return nil, err
	}
	result := make([]*Split, len(rows))
	for i, row := range rows {
		result[i] = row.toSplit()
	}
	return result, nil
}

func (t *SplitsTable) Insert(ctx context.Context, create *SplitCreate) (*Split, error) {
	date := create.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}
	q := psql.Insert(
		im.Into(splitsTableName, "user_id", "text", "total_amount", "payer", "shares", "occurred_at"),
		im.Values(psql.Arg(create.UserID, create.Text, create.TotalAmount, create.Payer, create.Shares, date)),
		im.Returning(splitColumns...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*splitRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toSplit(), nil
}

func (t *SplitsTable) FindByIDForUpdate(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) (*Split, error) {
	q := psql.Select(
		sm.Columns(splitColumns...),
		sm.From(splitsTableName),
		sm.Where(byID(id)),
		sm.Where(ownedBy(owner)),
		sm.ForUpdate(),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*splitRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toSplit(), nil
}

func (t *SplitsTable) UpdateShares(ctx context.Context, id uuid.UUID, shares Shares) (*Split, error) {
	q := psql.Update(
		um.Table(splitsTableName),
		um.SetCol("shares").ToArg(shares),
		um.Where(byID(id)),
		um.Returning(splitColumns...),
	)
	row, err := bob.One(ctx, t.exec, q, scan.StructMapper[*splitRow]())
	if err != nil {
		return nil, translateError(err)
	}
	return row.toSplit(), nil
}

func (t *SplitsTable) Delete(ctx context.Context, owner uuid.NullUUID, id uuid.UUID) error {
	q := psql.Delete(
		dm.From(splitsTableName),
		dm.Where(byID(id)),
		dm.Where(ownedBy(owner)),
	)
	return execAffectingOne(ctx, t.exec, q)
}

func (r *splitRow) toSplit() *Split {
	shares := r.Shares
	if shares == nil {
		shares = Shares{}
	}
	return &Split{
		ID:          r.ID,
		UserID:      r.UserID,
		Text:        r.Text,
		TotalAmount: r.TotalAmount,
		Payer:       r.Payer,
		Shares:      shares,
		Date:        r.OccurredAt,
		CreatedAt:   r.CreatedAt,
	}
}
