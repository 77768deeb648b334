package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer keeps transactions in memory and answers like the REST API.
type fakeServer struct {
	mu         sync.Mutex
	records    map[string]*Transaction
	nextID     int
	failCreate bool
	failDelete bool
	failTrash  bool
	lastAuth   string
	lastCreate map[string]any
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	f := &fakeServer{records: map[string]*Transaction{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/transactions", f.list(false))
	mux.HandleFunc("GET /api/transactions/trash/all", f.list(true))
	mux.HandleFunc("POST /api/transactions", f.create)
	mux.HandleFunc("DELETE /api/transactions/{id}", f.softDelete)
	mux.HandleFunc("PUT /api/transactions/restore/{id}", f.restore)
	mux.HandleFunc("DELETE /api/transactions/permanent/{id}", f.purge)
	mux.HandleFunc("POST /api/ai/parse", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{
			"transactionType": "debt", "person": "Asha", "amount": 500, "debtType": "borrowed", "date": "2026-04-01T00:00:00Z",
		}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "No transaction found"})
}

func (f *fakeServer) list(deleted bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastAuth = r.Header.Get("Authorization")
		if deleted && f.failTrash {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Server Error"})
			return
		}

		out := []Transaction{}
		for _, rec := range f.records {
			if rec.IsDeleted == deleted {
				out = append(out, *rec)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": len(out), "data": out})
	}
}

func (f *fakeServer) create(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreate {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Server Error"})
		return
	}

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	f.lastCreate = body

	var rec Transaction
	raw, _ := json.Marshal(body)
	_ = json.Unmarshal(raw, &rec)
	f.nextID++
	rec.ID = "srv-" + string(rune('0'+f.nextID))
	rec.CreatedAt = time.Now().UTC()
	f.records[rec.ID] = &rec
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "data": rec})
}

func (f *fakeServer) softDelete(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[r.PathValue("id")]
	if f.failDelete || !ok {
		notFound(w)
		return
	}
	rec.IsDeleted = true
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
}

func (f *fakeServer) restore(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[r.PathValue("id")]
	if !ok || !rec.IsDeleted {
		notFound(w)
		return
	}
	rec.IsDeleted = false
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": rec})
}

func (f *fakeServer) purge(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.records[r.PathValue("id")]; !ok {
		notFound(w)
		return
	}
	delete(f.records, r.PathValue("id"))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
}

func newTestClient(t *testing.T, srv *httptest.Server, cache *Cache) *Client {
	log := logrus.New()
	return New(NewAPI(srv.URL+"/api", WithToken("tok")), NewStore(cache, log), log)
}

// assertMirrorsServer checks the settled-state invariant.
func assertMirrorsServer(t *testing.T, c *Client) {
	t.Helper()
	ctx := context.Background()
	active, err := c.api.ListTransactions(ctx)
	require.NoError(t, err)
	trash, err := c.api.ListTrash(ctx)
	require.NoError(t, err)

	state := c.State()
	assert.ElementsMatch(t, ids(active), ids(state.Transactions))
	assert.ElementsMatch(t, ids(trash), ids(state.Trash))
}

func TestClient_AddDeleteRestorePurge(t *testing.T) {
	f, srv := newFakeServer(t)
	c := newTestClient(t, srv, nil)
	ctx := context.Background()

	require.NoError(t, c.Refresh(ctx))
	assert.Equal(t, "Bearer tok", f.lastAuth)

	created, err := c.AddTransaction(ctx, Transaction{Text: "Coffee", Amount: decimal.NewFromInt(-150), Date: day(5)})
	require.NoError(t, err)
	assert.Equal(t, "srv-1", created.ID)
	assert.Equal(t, float64(-150), f.lastCreate["amount"], "amount is sent as a JSON number")
	assert.False(t, c.State().HasOptimistic())
	assertMirrorsServer(t, c)

	require.NoError(t, c.DeleteTransaction(ctx, created.ID))
	assert.Empty(t, c.State().Transactions)
	assert.Equal(t, []string{"srv-1"}, ids(c.State().Trash))
	assertMirrorsServer(t, c)

	restored, err := c.RestoreTransaction(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
	assertMirrorsServer(t, c)

	require.NoError(t, c.DeleteTransaction(ctx, created.ID))
	require.NoError(t, c.DeletePermanent(ctx, created.ID))
	assert.Empty(t, c.State().Trash)
	assertMirrorsServer(t, c)
}

func TestClient_FailedAddRollsBack(t *testing.T) {
	f, srv := newFakeServer(t)
	f.failCreate = true
	c := newTestClient(t, srv, nil)

	_, err := c.AddTransaction(context.Background(), Transaction{Text: "Coffee", Amount: decimal.NewFromInt(-150)})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Empty(t, c.State().Transactions, "no provisional record survives")
	assert.Equal(t, ErrSyncFailed, c.State().Error)
}

func TestClient_FailedDeleteResyncs(t *testing.T) {
	f, srv := newFakeServer(t)
	c := newTestClient(t, srv, nil)
	ctx := context.Background()

	created, err := c.AddTransaction(ctx, Transaction{Text: "Rent", Amount: decimal.NewFromInt(-900), Date: day(1)})
	require.NoError(t, err)

	f.failDelete = true
	err = c.DeleteTransaction(ctx, created.ID)
	require.Error(t, err)

	assert.Equal(t, []string{created.ID}, ids(c.State().Transactions))
	assert.Equal(t, ErrDeleteFailed, c.State().Error)
}

func TestClient_RefreshKeepsActiveWhenTrashFails(t *testing.T) {
	f, srv := newFakeServer(t)
	c := newTestClient(t, srv, nil)
	ctx := context.Background()

	created, err := c.AddTransaction(ctx, Transaction{Text: "Salary", Amount: decimal.NewFromInt(5000), Date: day(1)})
	require.NoError(t, err)
	c.ClearData()

	f.failTrash = true
	require.Error(t, c.Refresh(ctx))
	assert.Equal(t, []string{created.ID}, ids(c.State().Transactions))
	assert.Equal(t, "Server Error", c.State().Error)

	f.failTrash = false
	require.NoError(t, c.Refresh(ctx))
	assert.Empty(t, c.State().Error, "a successful sync clears the previous error")
	assertMirrorsServer(t, c)
}

func TestClient_DeleteTwiceSucceeds(t *testing.T) {
	_, srv := newFakeServer(t)
	c := newTestClient(t, srv, nil)
	ctx := context.Background()

	created, err := c.AddTransaction(ctx, Transaction{Text: "Tea", Amount: decimal.NewFromInt(-20), Date: day(2)})
	require.NoError(t, err)

	require.NoError(t, c.DeleteTransaction(ctx, created.ID))
	require.NoError(t, c.DeleteTransaction(ctx, created.ID))
	assert.Equal(t, []string{created.ID}, ids(c.State().Trash))
	assertMirrorsServer(t, c)
}

func TestClient_RestoreActiveIsNotFound(t *testing.T) {
	_, srv := newFakeServer(t)
	c := newTestClient(t, srv, nil)
	ctx := context.Background()

	created, err := c.AddTransaction(ctx, Transaction{Text: "Tea", Amount: decimal.NewFromInt(-20)})
	require.NoError(t, err)

	_, err = c.RestoreTransaction(ctx, created.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "No transaction found", c.State().Error)
}

func TestClient_AddParsedDebtStaysLocal(t *testing.T) {
	_, srv := newFakeServer(t)
	cache := NewCache(t.TempDir(), "asha@example.com")
	c := newTestClient(t, srv, cache)

	txn, debt, err := c.AddParsed(context.Background(), "borrowed 500 from Asha", "debt")
	require.NoError(t, err)
	assert.Nil(t, txn)
	require.NotNil(t, debt)
	assert.NotEmpty(t, debt.ID)
	assert.Equal(t, DebtBorrowed, debt.Type)

	cached, _, err := cache.Load()
	require.NoError(t, err)
	require.Len(t, cached.Debts, 1)
	assert.Equal(t, "Asha", cached.Debts[0].Person)

	c.DeleteDebt(debt.ID)
	assert.Empty(t, c.State().Debts)
}
