package auth

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	userID := uuid.Must(uuid.NewV4())

	token, err := m.Generate(userID, "a@b.co")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "a@b.co", claims.Email)
}

func TestJWTManager_Rejects(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())

	expired, err := NewJWTManager("secret", -time.Minute).Generate(userID, "a@b.co")
	require.NoError(t, err)
	_, err = NewJWTManager("secret", time.Hour).Validate(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	foreign, err := NewJWTManager("other", time.Hour).Generate(userID, "a@b.co")
	require.NoError(t, err)
	_, err = NewJWTManager("secret", time.Hour).Validate(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewJWTManager("secret", time.Hour).Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = HashPassword(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = HashPassword(strings.Repeat("a", 72))
	assert.NoError(t, err)

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NoError(t, CheckPassword(hash, "correct horse"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong horse!"), ErrInvalidCredentials)
}

func TestUserID_Anonymous(t *testing.T) {
	assert.False(t, UserID(context.Background()).Valid)

	id := uuid.Must(uuid.NewV4())
	got := UserID(WithUser(context.Background(), id))
	assert.True(t, got.Valid)
	assert.Equal(t, id, got.UUID)
}

type whoAmIOutput struct {
	Body struct {
		UserID string `json:"userId"`
	}
}

func newAuthAPI(t *testing.T, m *JWTManager, required bool) humatest.TestAPI {
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(api, m, required))

	handler := func(ctx context.Context, _ *struct{}) (*whoAmIOutput, error) {
		out := &whoAmIOutput{}
		if id := UserID(ctx); id.Valid {
			out.Body.UserID = id.UUID.String()
		}
		return out, nil
	}
	huma.Register(api, huma.Operation{
		OperationID: "whoami",
		Method:      http.MethodGet,
		Path:        "/whoami",
	}, handler)
	huma.Register(api, huma.Operation{
		OperationID: "public",
		Method:      http.MethodGet,
		Path:        "/public",
		Metadata:    map[string]any{PublicMetadataKey: true},
	}, handler)
	return api
}

func TestMiddleware(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	userID := uuid.Must(uuid.NewV4())
	token, err := m.Generate(userID, "a@b.co")
	require.NoError(t, err)

	t.Run("optional without token is anonymous", func(t *testing.T) {
		api := newAuthAPI(t, m, false)
		resp := api.Get("/whoami")
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"userId":""`)
	})

	t.Run("valid token attaches user", func(t *testing.T) {
		api := newAuthAPI(t, m, true)
		resp := api.Get("/whoami", "Authorization: Bearer "+token)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), userID.String())
	})

	t.Run("required without token", func(t *testing.T) {
		api := newAuthAPI(t, m, true)
		resp := api.Get("/whoami")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		api := newAuthAPI(t, m, false)
		resp := api.Get("/whoami", "Authorization: Bearer garbage")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("public operation ignores auth", func(t *testing.T) {
		api := newAuthAPI(t, m, true)
		resp := api.Get("/public", "Authorization: Bearer garbage")
		assert.Equal(t, http.StatusOK, resp.Code)
	})
}
