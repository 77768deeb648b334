package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/neofin-server/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func setupEnv(t *testing.T, apiURL string) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("CACHE_DIR", t.TempDir())
	if apiURL != "" {
		t.Setenv("API_URL", apiURL)
	}
}

func TestTxList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/transactions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"success":true,"count":1,"data":[
			{"_id":"11111111-1111-1111-1111-111111111111","text":"Coffee","amount":-150,"type":"expense",
			 "category":"Food","date":"2026-10-01T00:00:00Z","isHidden":true}]}`))
	})
	mux.HandleFunc("GET /api/transactions/trash/all", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"count":0,"data":[]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	setupEnv(t, srv.URL+"/api")

	out, err := run(t, "tx", "list", "--token", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "Coffee")
	assert.Contains(t, out, "-150.00")
	assert.Contains(t, out, "2026-10-01")
	assert.Contains(t, out, "hidden")

	out, err = run(t, "tx", "trash", "--token", "abc")
	require.NoError(t, err)
	assert.NotContains(t, out, "Coffee")
}

func TestTxRemove_SurfacesServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/transactions/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"No transaction found"}`))
	})
	mux.HandleFunc("GET /api/transactions", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"count":0,"data":[]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	setupEnv(t, srv.URL+"/api")

	_, err := run(t, "tx", "rm", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No transaction found")
}

func TestTxAdd_RequiresTextAndAmount(t *testing.T) {
	setupEnv(t, "")

	_, err := run(t, "tx", "add", "Coffee")
	assert.Error(t, err)

	_, err = run(t, "tx", "add", "Coffee", "not-a-number")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")
}

func TestDebtAddThenList(t *testing.T) {
	setupEnv(t, "")

	out, err := run(t, "tx", "debt", "add", "Lent", "Ravi", "500")
	require.NoError(t, err)
	assert.Contains(t, out, "recorded debt")

	out, err = run(t, "tx", "debt", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ravi")
	assert.Contains(t, out, "lent")
	assert.Contains(t, out, "500.00")
}

func TestDebtAdd_RejectsUnknownType(t *testing.T) {
	setupEnv(t, "")

	_, err := run(t, "tx", "debt", "add", "gifted", "Ravi", "500")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid debt type")

	out, err := run(t, "tx", "debt", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Ravi")
}

func TestPurgeTrash_RequiresRetention(t *testing.T) {
	setupEnv(t, "")
	t.Setenv("TRASH_RETENTION", "0s")

	_, err := run(t, "purge-trash")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no retention configured")
}

func TestServe_RequiresSecretWhenAuthRequired(t *testing.T) {
	setupEnv(t, "")
	t.Setenv("AUTH_REQUIRED", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := run(t, "serve")
	assert.ErrorIs(t, err, config.ErrJWTSecretRequired)
}
