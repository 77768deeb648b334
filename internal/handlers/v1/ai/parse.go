package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	aigateway "github.com/carson-networks/neofin-server/internal/ai"
	"github.com/carson-networks/neofin-server/internal/handlers/v1/respond"
	"github.com/carson-networks/neofin-server/internal/logging"
)

const maxUploadBytes = 10 << 20

// ParseInput accepts either a JSON body {prompt, mode} or a multipart form
// with a file field and an optional mode field.
type ParseInput struct {
	ContentType string `header:"Content-Type"`
	RawBody     []byte
}

type ParseOutput struct {
	Body struct {
		Success bool       `json:"success"`
		Message string     `json:"message,omitempty"`
		Data    ParsedData `json:"data"`
	}
}

type parseJSONBody struct {
	Prompt string `json:"prompt"`
	Mode   string `json:"mode"`
}

type ParseHandler struct {
	Gateway Gateway
}

func NewParseHandler(gw Gateway) *ParseHandler {
	return &ParseHandler{Gateway: gw}
}

func (h *ParseHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:  "ai-parse",
		Method:       http.MethodPost,
		Path:         "/api/ai/parse",
		Summary:      "Parse a transaction",
		Description:  "Drafts a transaction or debt from text, voice or an image. Model failures answer 200 with a fallback draft.",
		Tags:         []string{"AI"},
		MaxBodyBytes: maxUploadBytes,
	}, h.handle)
}

func (h *ParseHandler) handle(ctx context.Context, input *ParseInput) (*ParseOutput, error) {
	parseInput, err := decodeParseRequest(input.ContentType, input.RawBody)
	if err != nil {
		return nil, respond.NewError(http.StatusBadRequest, err.Error())
	}

	var result aigateway.ParseResult
	err = logging.Timed(logging.GetLogData(ctx), "aiParseMs", func() (err error) {
		result, err = h.Gateway.Parse(ctx, parseInput)
		return err
	})
	if errors.Is(err, aigateway.ErrNoInput) {
		return nil, respond.NewError(http.StatusBadRequest, "No input provided")
	}
	if err != nil {
		return nil, respond.NewError(http.StatusInternalServerError, "AI parse failed", err)
	}

	out := &ParseOutput{}
	out.Body.Success = result.Success
	out.Body.Message = result.Message
	out.Body.Data = toParsedData(result)
	return out, nil
}

func decodeParseRequest(contentType string, body []byte) (aigateway.ParseInput, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		var req parseJSONBody
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				return aigateway.ParseInput{}, fmt.Errorf("invalid JSON body: %w", err)
			}
		}
		return aigateway.ParseInput{Prompt: req.Prompt, Mode: aigateway.ParseMode(req.Mode)}, nil
	}

	var input aigateway.ParseInput
	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return aigateway.ParseInput{}, fmt.Errorf("invalid multipart body: %w", err)
		}

		data, err := io.ReadAll(part)
		if err != nil {
			return aigateway.ParseInput{}, fmt.Errorf("invalid multipart body: %w", err)
		}

		switch part.FormName() {
		case "file":
			input.File = data
			input.MIMEType = part.Header.Get("Content-Type")
			if input.MIMEType == "application/octet-stream" {
				input.MIMEType = ""
			}
		case "mode":
			input.Mode = aigateway.ParseMode(strings.TrimSpace(string(data)))
		case "prompt":
			input.Prompt = string(data)
		}
	}
	return input, nil
}
