package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

// Client runs each user intent as local dispatches around the matching REST
// call: optimistic for add and delete, confirmed for everything else.
type Client struct {
	api   *API
	store *Store
	log   *logrus.Logger
}

func New(api *API, store *Store, log *logrus.Logger) *Client {
	return &Client{api: api, store: store, log: log}
}

func (c *Client) State() State {
	return c.store.State()
}

// Refresh loads the active and trash lists.
func (c *Client) Refresh(ctx context.Context) error {
	active, err := c.api.ListTransactions(ctx)
	if err != nil {
		c.fail(err)
		return err
	}
	c.store.Dispatch(GetTransactions{Transactions: active})

	return c.RefreshTrash(ctx)
}

func (c *Client) RefreshTrash(ctx context.Context) error {
	trash, err := c.api.ListTrash(ctx)
	if err != nil {
		c.fail(err)
		return err
	}
	c.store.Dispatch(GetTrash{Trash: trash})
	return nil
}

// AddTransaction shows tx immediately and swaps in the server record once it
// is confirmed. On failure the provisional record is removed.
func (c *Client) AddTransaction(ctx context.Context, tx Transaction) (Transaction, error) {
	var tempID string
	c.store.Update(func(s State) State {
		s, tempID = ApplyOptimisticAdd(s, tx)
		return s
	})

	confirmed, err := c.api.CreateTransaction(ctx, tx)
	if err != nil {
		c.log.WithError(err).WithField("temp_id", tempID).Warn("Client.AddTransaction.Rollback")
		c.store.Update(func(s State) State { return Rollback(s, tempID, err) })
		return Transaction{}, err
	}

	c.store.Update(func(s State) State { return Reconcile(s, tempID, confirmed) })
	return confirmed, nil
}

// EditTransaction replaces every mutable field of tx on the server.
func (c *Client) EditTransaction(ctx context.Context, tx Transaction) (Transaction, error) {
	updated, err := c.api.UpdateTransaction(ctx, tx)
	if err != nil {
		c.fail(err)
		return Transaction{}, err
	}
	c.store.Dispatch(EditTransaction{Transaction: updated})
	return updated, nil
}

// DeleteTransaction removes id from the active list before the server
// answers. A failed call re-fetches the active list.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	c.store.Dispatch(DeleteTransaction{ID: id})

	if err := c.api.DeleteTransaction(ctx, id); err != nil {
		c.log.WithError(err).WithField("id", id).Warn("Client.DeleteTransaction.Resync")
		if active, listErr := c.api.ListTransactions(ctx); listErr == nil {
			c.store.Dispatch(GetTransactions{Transactions: active})
		}
		c.store.Dispatch(TransactionError{Message: ErrDeleteFailed})
		return err
	}

	return c.RefreshTrash(ctx)
}

func (c *Client) RestoreTransaction(ctx context.Context, id string) (Transaction, error) {
	restored, err := c.api.RestoreTransaction(ctx, id)
	if err != nil {
		c.fail(err)
		return Transaction{}, err
	}
	c.store.Dispatch(RestoreTransaction{Transaction: restored})
	return restored, nil
}

func (c *Client) DeletePermanent(ctx context.Context, id string) error {
	if err := c.api.PurgeTransaction(ctx, id); err != nil {
		c.fail(err)
		return err
	}
	c.store.Dispatch(DeletePermanent{ID: id})
	return nil
}

// AddDebt records a client-local debt, assigning an identifier when absent.
func (c *Client) AddDebt(debt Debt) Debt {
	if debt.ID == "" {
		debt.ID = uuid.Must(uuid.NewV4()).String()
	}
	if debt.Type != DebtBorrowed {
		debt.Type = DebtLent
	}
	debt.Amount = debt.Amount.Abs()
	if debt.Date.IsZero() {
		debt.Date = time.Now()
	}
	c.store.Dispatch(AddDebt{Debt: debt})
	return debt
}

func (c *Client) DeleteDebt(id string) {
	c.store.Dispatch(DeleteDebt{ID: id})
}

func (c *Client) RefreshSplits(ctx context.Context) error {
	splits, err := c.api.ListSplits(ctx)
	if err != nil {
		c.log.WithError(err).Warn("Client.RefreshSplits.Error")
		return err
	}
	c.store.Dispatch(GetSplits{Splits: splits})
	return nil
}

func (c *Client) AddSplit(ctx context.Context, split Split) (Split, error) {
	created, err := c.api.CreateSplit(ctx, split)
	if err != nil {
		c.log.WithError(err).Warn("Client.AddSplit.Error")
		return Split{}, err
	}
	c.store.Dispatch(AddSplit{Split: created})
	return created, nil
}

func (c *Client) SettleSplit(ctx context.Context, id, name string) (Split, error) {
	settled, err := c.api.SettleShare(ctx, id, name)
	if err != nil {
		c.log.WithError(err).Warn("Client.SettleSplit.Error")
		return Split{}, err
	}
	c.store.Dispatch(SettleSplit{Split: settled})
	return settled, nil
}

func (c *Client) DeleteSplit(ctx context.Context, id string) error {
	if err := c.api.DeleteSplit(ctx, id); err != nil {
		c.log.WithError(err).Warn("Client.DeleteSplit.Error")
		return err
	}
	c.store.Dispatch(DeleteSplit{ID: id})
	return nil
}

// AddParsed drafts a record through the AI gateway and adds it as a
// transaction or a debt, whichever the draft describes.
func (c *Client) AddParsed(ctx context.Context, prompt, mode string) (*Transaction, *Debt, error) {
	parsed, err := c.api.Parse(ctx, prompt, mode)
	if err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}

	tx, debt := FromParsed(parsed)
	if debt != nil {
		added := c.AddDebt(*debt)
		return nil, &added, nil
	}
	added, err := c.AddTransaction(ctx, *tx)
	if err != nil {
		return nil, nil, err
	}
	return &added, nil, nil
}

// ClearData empties local state, e.g. on sign-out.
func (c *Client) ClearData() {
	c.store.Dispatch(ClearData{})
}

// fail surfaces the server's error message, or a generic one.
func (c *Client) fail(err error) {
	msg := "Server Error"
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
	}
	c.store.Dispatch(TransactionError{Message: msg})
}
