package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	aigateway "github.com/carson-networks/neofin-server/internal/ai"
	"github.com/carson-networks/neofin-server/internal/logging"
)

// DetectSubscriptionsInput is decoded by hand so a malformed body still gets
// the empty answer instead of a validation error.
type DetectSubscriptionsInput struct {
	RawBody []byte `contentType:"application/json"`
}

type detectSubscriptionsBody struct {
	Transactions []TransactionRow `json:"transactions,omitempty"`
}

type DetectSubscriptionsOutput struct {
	Body []Subscription
}

type DetectSubscriptionsHandler struct {
	Gateway Gateway
}

func NewDetectSubscriptionsHandler(gw Gateway) *DetectSubscriptionsHandler {
	return &DetectSubscriptionsHandler{Gateway: gw}
}

func (h *DetectSubscriptionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "ai-detect-subscriptions",
		Method:      http.MethodPost,
		Path:        "/api/ai/detect-subscriptions",
		Summary:     "Detect recurring subscriptions",
		Description: "Returns an empty list on any failure.",
		Tags:        []string{"AI"},
	}, h.handle)
}

func (h *DetectSubscriptionsHandler) handle(ctx context.Context, input *DetectSubscriptionsInput) (*DetectSubscriptionsOutput, error) {
	var body detectSubscriptionsBody
	if len(bytes.TrimSpace(input.RawBody)) > 0 {
		if err := json.Unmarshal(input.RawBody, &body); err != nil {
			if logData := logging.GetLogData(ctx); logData != nil {
				logData.AddData("aiSubscriptionsBodyError", err.Error())
			}
			return &DetectSubscriptionsOutput{Body: []Subscription{}}, nil
		}
	}

	var subs []aigateway.Subscription
	_ = logging.Timed(logging.GetLogData(ctx), "aiSubscriptionsMs", func() error {
		subs = h.Gateway.DetectSubscriptions(ctx, toDigests(body.Transactions))
		return nil
	})

	out := &DetectSubscriptionsOutput{Body: make([]Subscription, len(subs))}
	for i, s := range subs {
		out.Body[i] = Subscription{
			Name:      s.Name,
			Amount:    s.Amount.InexactFloat64(),
			Frequency: s.Frequency,
		}
	}
	return out, nil
}
