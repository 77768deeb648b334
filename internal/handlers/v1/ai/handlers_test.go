package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	aigateway "github.com/carson-networks/neofin-server/internal/ai"
	"github.com/carson-networks/neofin-server/internal/service"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Parse(ctx context.Context, input aigateway.ParseInput) (aigateway.ParseResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(aigateway.ParseResult), args.Error(1)
}

func (m *mockGateway) DetectSubscriptions(ctx context.Context, txs []aigateway.TransactionDigest) []aigateway.Subscription {
	args := m.Called(ctx, txs)
	subs, _ := args.Get(0).([]aigateway.Subscription)
	return subs
}

func (m *mockGateway) Chat(ctx context.Context, message string, txs []aigateway.TransactionDigest) (aigateway.ChatResult, error) {
	args := m.Called(ctx, message, txs)
	return args.Get(0).(aigateway.ChatResult), args.Error(1)
}

var draftDate = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

func setup(t *testing.T) (humatest.TestAPI, *mockGateway) {
	_, api := humatest.New(t)
	gw := &mockGateway{}
	RegisterAll(api, gw)
	t.Cleanup(func() { gw.AssertExpectations(t) })
	return api, gw
}

func decode(t *testing.T, body []byte) map[string]any {
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestParse_JSONPrompt(t *testing.T) {
	api, gw := setup(t)

	gw.On("Parse", mock.Anything, aigateway.ParseInput{Prompt: "lunch 250", Mode: aigateway.ModeTransaction}).
		Return(aigateway.ParseResult{Success: true, Transaction: &aigateway.ParsedTransaction{
			Text:     "Lunch",
			Amount:   decimal.NewFromInt(-250),
			Category: "Food",
			Type:     service.TransactionTypeExpense,
			Date:     draftDate,
		}}, nil).Once()

	resp := api.Post("/api/ai/parse", map[string]any{"prompt": "lunch 250"})
	require.Equal(t, http.StatusOK, resp.Code)

	body := decode(t, resp.Body.Bytes())
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "message")
	data := body["data"].(map[string]any)
	assert.Equal(t, "transaction", data["transactionType"])
	assert.Equal(t, "Lunch", data["text"])
	assert.Equal(t, float64(-250), data["amount"])
	assert.Equal(t, "expense", data["type"])
	assert.Equal(t, "2026-02-01T00:00:00Z", data["date"])
}

func TestParse_MultipartFileWithDebtMode(t *testing.T) {
	api, gw := setup(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="memo.webm"`)
	header.Set("Content-Type", "audio/webm")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("voice"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("mode", "debt"))
	require.NoError(t, writer.Close())

	gw.On("Parse", mock.Anything, aigateway.ParseInput{
		File:     []byte("voice"),
		MIMEType: "audio/webm",
		Mode:     aigateway.ModeDebt,
	}).Return(aigateway.ParseResult{Success: true, Debt: &aigateway.ParsedDebt{
		Person: "Asha",
		Amount: decimal.NewFromInt(500),
		Type:   aigateway.DebtBorrowed,
		Date:   draftDate,
	}}, nil).Once()

	resp := api.Post("/api/ai/parse", "Content-Type: "+writer.FormDataContentType(), &buf)
	require.Equal(t, http.StatusOK, resp.Code)

	data := decode(t, resp.Body.Bytes())["data"].(map[string]any)
	assert.Equal(t, "debt", data["transactionType"])
	assert.Equal(t, "Asha", data["person"])
	assert.Equal(t, "borrowed", data["debtType"])
	assert.Equal(t, float64(500), data["amount"])
}

func TestParse_UpstreamFailureStill200(t *testing.T) {
	api, gw := setup(t)

	gw.On("Parse", mock.Anything, mock.Anything).
		Return(aigateway.ParseResult{
			Success:     false,
			Message:     "AI Error: quota",
			Transaction: &aigateway.ParsedTransaction{Text: "Error: quota", Category: "Other", Type: service.TransactionTypeExpense, Date: draftDate},
		}, nil).Once()

	resp := api.Post("/api/ai/parse", map[string]any{"prompt": "x"})
	require.Equal(t, http.StatusOK, resp.Code)

	body := decode(t, resp.Body.Bytes())
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "AI Error: quota", body["message"])
	assert.Equal(t, float64(0), body["data"].(map[string]any)["amount"])
}

func TestParse_NoInput(t *testing.T) {
	api, gw := setup(t)

	gw.On("Parse", mock.Anything, aigateway.ParseInput{Mode: aigateway.ModeTransaction}).
		Return(aigateway.ParseResult{}, aigateway.ErrNoInput).Once()

	resp := api.Post("/api/ai/parse", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "No input provided")
}

func TestParse_InvalidJSON(t *testing.T) {
	api, _ := setup(t)

	resp := api.Post("/api/ai/parse", "Content-Type: application/json", bytes.NewReader([]byte("{nope")))
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDetectSubscriptions(t *testing.T) {
	api, gw := setup(t)

	created := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	gw.On("DetectSubscriptions", mock.Anything, mock.MatchedBy(func(txs []aigateway.TransactionDigest) bool {
		return len(txs) == 1 &&
			txs[0].Text == "Netflix" &&
			txs[0].Amount.Equal(decimal.NewFromInt(-649)) &&
			txs[0].Type == "expense" &&
			txs[0].Date.Equal(created)
	})).Return([]aigateway.Subscription{
		{Name: "Netflix", Amount: decimal.NewFromInt(649), Frequency: "monthly"},
	}).Once()

	resp := api.Post("/api/ai/detect-subscriptions", map[string]any{
		"transactions": []map[string]any{{
			"_id":       "abc",
			"text":      "Netflix",
			"amount":    -649,
			"type":      "expense",
			"category":  "Entertainment",
			"createdAt": created.Format(time.RFC3339),
		}},
	})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[{"name":"Netflix","amount":649,"frequency":"monthly"}]`, resp.Body.String())
}

func TestDetectSubscriptions_EmptyIsArray(t *testing.T) {
	api, gw := setup(t)

	gw.On("DetectSubscriptions", mock.Anything, []aigateway.TransactionDigest{}).
		Return([]aigateway.Subscription{}).Once()

	resp := api.Post("/api/ai/detect-subscriptions", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[]`, resp.Body.String())
}

func TestDetectSubscriptions_MalformedBodyIsEmpty(t *testing.T) {
	api, gw := setup(t)

	for _, body := range []string{"{nope", `{"transactions":"netflix"}`} {
		resp := api.Post("/api/ai/detect-subscriptions", "Content-Type: application/json", bytes.NewReader([]byte(body)))
		require.Equal(t, http.StatusOK, resp.Code, body)
		assert.JSONEq(t, `[]`, resp.Body.String())
	}
	gw.AssertNotCalled(t, "DetectSubscriptions", mock.Anything, mock.Anything)
}

func TestChat(t *testing.T) {
	api, gw := setup(t)

	gw.On("Chat", mock.Anything, "how am I doing?", mock.Anything).
		Return(aigateway.ChatResult{Success: true, Answer: "Great."}, nil).Once()

	resp := api.Post("/api/ai/chat", map[string]any{"message": "how am I doing?"})
	require.Equal(t, http.StatusOK, resp.Code)

	body := decode(t, resp.Body.Bytes())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Great.", body["answer"])
}

func TestChat_MissingMessage(t *testing.T) {
	api, gw := setup(t)

	gw.On("Chat", mock.Anything, "", mock.Anything).
		Return(aigateway.ChatResult{}, aigateway.ErrNoMessage).Once()

	resp := api.Post("/api/ai/chat", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "No message provided")
}
