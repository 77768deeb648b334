package sqlconfig

import (
	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
)

// ownedBy scopes a query to a user's rows, or to the unowned rows when owner is not set.
func ownedBy(owner uuid.NullUUID) bob.Expression {
	if owner.Valid {
		return psql.Quote("user_id").EQ(psql.Arg(owner.UUID))
	}
	return psql.Quote("user_id").IsNull()
}

func byID(id uuid.UUID) bob.Expression {
	return psql.Quote("id").EQ(psql.Arg(id))
}
