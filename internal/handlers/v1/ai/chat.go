package ai

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	aigateway "github.com/carson-networks/neofin-server/internal/ai"
	"github.com/carson-networks/neofin-server/internal/handlers/v1/respond"
	"github.com/carson-networks/neofin-server/internal/logging"
)

type ChatInput struct {
	Body struct {
		Message      string           `json:"message,omitempty" doc:"Question about the transactions"`
		Transactions []TransactionRow `json:"transactions,omitempty"`
	}
}

type ChatOutput struct {
	Body struct {
		Success bool   `json:"success"`
		Answer  string `json:"answer"`
	}
}

type ChatHandler struct {
	Gateway Gateway
}

func NewChatHandler(gw Gateway) *ChatHandler {
	return &ChatHandler{Gateway: gw}
}

func (h *ChatHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "ai-chat",
		Method:      http.MethodPost,
		Path:        "/api/ai/chat",
		Summary:     "Ask the finance assistant",
		Tags:        []string{"AI"},
	}, h.handle)
}

func (h *ChatHandler) handle(ctx context.Context, input *ChatInput) (*ChatOutput, error) {
	var result aigateway.ChatResult
	err := logging.Timed(logging.GetLogData(ctx), "aiChatMs", func() (err error) {
		result, err = h.Gateway.Chat(ctx, input.Body.Message, toDigests(input.Body.Transactions))
		return err
	})
	if errors.Is(err, aigateway.ErrNoMessage) {
		return nil, respond.NewError(http.StatusBadRequest, "No message provided")
	}
	if err != nil {
		return nil, respond.NewError(http.StatusInternalServerError, "AI chat failed", err)
	}

	out := &ChatOutput{}
	out.Body.Success = result.Success
	out.Body.Answer = result.Answer
	return out, nil
}
