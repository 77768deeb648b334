package client

import (
	"slices"

	"github.com/gofrs/uuid/v5"
)

const (
	ErrSyncFailed   = "Could not sync with cloud"
	ErrDeleteFailed = "Delete sync failed"
)

// State is the client's view of the server lists plus client-local debts.
type State struct {
	Transactions []Transaction `json:"transactions"`
	Trash        []Transaction `json:"trash"`
	Debts        []Debt        `json:"debts"`
	Splits       []Split       `json:"splits"`
	Error        string        `json:"error,omitempty"`
	Loading      bool          `json:"loading"`
}

// Action is a state transition understood by Reduce.
type Action interface {
	isAction()
}

type (
	GetTransactions    struct{ Transactions []Transaction }
	GetTrash           struct{ Trash []Transaction }
	AddTransaction     struct{ Transaction Transaction }
	DeleteTransaction  struct{ ID string }
	RestoreTransaction struct{ Transaction Transaction }
	DeletePermanent    struct{ ID string }
	AddDebt            struct{ Debt Debt }
	DeleteDebt         struct{ ID string }
	GetSplits          struct{ Splits []Split }
	AddSplit           struct{ Split Split }
	SettleSplit        struct{ Split Split }
	DeleteSplit        struct{ ID string }
	TransactionError   struct{ Message string }
	ClearData          struct{}
)

// EditTransaction replaces the record whose ID matches Transaction.ID or OldID.
type EditTransaction struct {
	Transaction Transaction
	OldID       string
}

func (GetTransactions) isAction()    {}
func (GetTrash) isAction()           {}
func (AddTransaction) isAction()     {}
func (EditTransaction) isAction()    {}
func (DeleteTransaction) isAction()  {}
func (RestoreTransaction) isAction() {}
func (DeletePermanent) isAction()    {}
func (AddDebt) isAction()            {}
func (DeleteDebt) isAction()         {}
func (GetSplits) isAction()          {}
func (AddSplit) isAction()           {}
func (SettleSplit) isAction()        {}
func (DeleteSplit) isAction()        {}
func (TransactionError) isAction()   {}
func (ClearData) isAction()          {}

// Reduce returns the state after action. It never modifies the slices of state.
// Actions that carry a server answer clear a previous sync error.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case ClearData:
		state.Transactions = []Transaction{}
		state.Trash = []Transaction{}
		state.Debts = []Debt{}
		state.Splits = []Split{}
		state.Error = ""
		state.Loading = false
	case GetTransactions:
		state.Transactions = slices.Clone(a.Transactions)
		state.Error = ""
		state.Loading = false
	case GetTrash:
		state.Trash = slices.Clone(a.Trash)
		state.Error = ""
		state.Loading = false
	case AddTransaction:
		state.Transactions = prepend(state.Transactions, a.Transaction)
	case EditTransaction:
		state.Transactions = replaceWhere(state.Transactions, a.Transaction, func(t Transaction) bool {
			return t.ID == a.Transaction.ID || (a.OldID != "" && t.ID == a.OldID)
		})
		state.Error = ""
	case DeleteTransaction:
		state.Transactions = removeWhere(state.Transactions, func(t Transaction) bool { return t.ID == a.ID })
	case RestoreTransaction:
		state.Trash = removeWhere(state.Trash, func(t Transaction) bool { return t.ID == a.Transaction.ID })
		active := removeWhere(state.Transactions, func(t Transaction) bool { return t.ID == a.Transaction.ID })
		state.Transactions = insertByDate(active, a.Transaction)
		state.Error = ""
	case DeletePermanent:
		state.Trash = removeWhere(state.Trash, func(t Transaction) bool { return t.ID == a.ID })
		state.Error = ""
	case AddDebt:
		state.Debts = prepend(state.Debts, a.Debt)
	case DeleteDebt:
		state.Debts = removeWhere(state.Debts, func(d Debt) bool { return d.ID == a.ID })
	case GetSplits:
		state.Splits = slices.Clone(a.Splits)
		state.Error = ""
	case AddSplit:
		state.Splits = prepend(state.Splits, a.Split)
		state.Error = ""
	case SettleSplit:
		state.Splits = replaceWhere(state.Splits, a.Split, func(s Split) bool { return s.ID == a.Split.ID })
		state.Error = ""
	case DeleteSplit:
		state.Splits = removeWhere(state.Splits, func(s Split) bool { return s.ID == a.ID })
		state.Error = ""
	case TransactionError:
		state.Error = a.Message
	}
	return state
}

// ApplyOptimisticAdd shows tx at the top of the active list under a
// temporary identifier until the server confirms it.
func ApplyOptimisticAdd(state State, tx Transaction) (State, string) {
	tempID := TempIDPrefix + uuid.Must(uuid.NewV4()).String()
	tx.ID = tempID
	tx.IsOptimistic = true
	return Reduce(state, AddTransaction{Transaction: tx}), tempID
}

// Reconcile swaps the provisional record for the server-confirmed one. When a
// refresh already dropped the provisional record and the list lacks the
// confirmed one, it is inserted at its date position.
func Reconcile(state State, tempID string, confirmed Transaction) State {
	confirmed.IsOptimistic = false
	state.Error = ""
	match := func(t Transaction) bool { return t.ID == tempID || t.ID == confirmed.ID }

	i := slices.IndexFunc(state.Transactions, match)
	if i < 0 {
		state.Transactions = insertByDate(state.Transactions, confirmed)
		return state
	}
	rest := removeWhere(state.Transactions[i+1:], match)
	state.Transactions = slices.Concat(state.Transactions[:i:i], []Transaction{confirmed}, rest)
	return state
}

// Rollback drops the provisional record and surfaces the sync failure.
func Rollback(state State, tempID string, _ error) State {
	state = Reduce(state, DeleteTransaction{ID: tempID})
	return Reduce(state, TransactionError{Message: ErrSyncFailed})
}

// HasOptimistic reports whether any provisional record is still pending.
func (s State) HasOptimistic() bool {
	return slices.ContainsFunc(s.Transactions, func(t Transaction) bool { return t.IsOptimistic })
}

func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func replaceWhere[T any](items []T, item T, match func(T) bool) []T {
	out := make([]T, len(items))
	for i, existing := range items {
		if match(existing) {
			out[i] = item
			continue
		}
		out[i] = existing
	}
	return out
}

func removeWhere[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, existing := range items {
		if !match(existing) {
			out = append(out, existing)
		}
	}
	return out
}

// insertByDate places tx ahead of the first record that is not newer, which
// keeps a date-descending list in server order.
func insertByDate(items []Transaction, tx Transaction) []Transaction {
	i := slices.IndexFunc(items, func(t Transaction) bool { return !t.Date.After(tx.Date) })
	if i < 0 {
		i = len(items)
	}
	return slices.Insert(slices.Clone(items), i, tx)
}
