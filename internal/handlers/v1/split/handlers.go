package split

import (
	"context"
	"net/http"
	"time"

	"github.com/aarondl/opt/omit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/neofin-server/internal/auth"
	"github.com/carson-networks/neofin-server/internal/handlers/v1/respond"
	"github.com/carson-networks/neofin-server/internal/logging"
	"github.com/carson-networks/neofin-server/internal/service"
)

type ListSplitsOutput struct {
	Body []Split
}

type ListSplitsHandler struct {
	SplitService SplitService
}

func NewListSplitsHandler(svc SplitService) *ListSplitsHandler {
	return &ListSplitsHandler{SplitService: svc}
}

func (h *ListSplitsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-splits",
		Method:      http.MethodGet,
		Path:        "/api/splits",
		Summary:     "List splits",
		Tags:        []string{"Splits"},
	}, h.handle)
}

func (h *ListSplitsHandler) handle(ctx context.Context, _ *struct{}) (*ListSplitsOutput, error) {
	splits, err := h.SplitService.List(ctx, auth.UserID(ctx))
	if err != nil {
		return nil, respond.FromService(ctx, err, notFoundMessage)
	}

	out := &ListSplitsOutput{Body: make([]Split, len(splits))}
	for i, s := range splits {
		out.Body[i] = toSplit(s)
	}
	return out, nil
}

type ShareBody struct {
	Name   string  `json:"name" minLength:"1"`
	Amount float64 `json:"amount"`
}

type CreateSplitBody struct {
	Text        string      `json:"text" doc:"What the expense was for"`
	TotalAmount *float64    `json:"totalAmount,omitempty"`
	Payer       *string     `json:"payer,omitempty" doc:"Defaults to You"`
	Splits      []ShareBody `json:"splits,omitempty"`
	Date        *time.Time  `json:"date,omitempty"`
}

type CreateSplitInput struct {
	Body CreateSplitBody
}

type SplitOutput struct {
	Body Split
}

type CreateSplitHandler struct {
	SplitService SplitService
}

func NewCreateSplitHandler(svc SplitService) *CreateSplitHandler {
	return &CreateSplitHandler{SplitService: svc}
}

func (h *CreateSplitHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-split",
		Method:      http.MethodPost,
		Path:        "/api/splits",
		Summary:     "Create split",
		Description: "Records a shared expense with every share unsettled.",
		Tags:        []string{"Splits"},
	}, h.handle)
}

func (h *CreateSplitHandler) handle(ctx context.Context, input *CreateSplitInput) (*SplitOutput, error) {
	body := input.Body
	splitInput := service.SplitInput{
		Text:   body.Text,
		Payer:  omit.FromPtr(body.Payer),
		Date:   omit.FromPtr(body.Date),
		Shares: make([]service.ShareInput, len(body.Splits)),
	}
	if body.TotalAmount != nil {
		splitInput.TotalAmount = omit.From(decimal.NewFromFloat(*body.TotalAmount))
	}
	for i, share := range body.Splits {
		splitInput.Shares[i] = service.ShareInput{
			Name:   share.Name,
			Amount: decimal.NewFromFloat(share.Amount),
		}
	}

	var created *service.Split
	err := logging.Timed(logging.GetLogData(ctx), "createSplitMs", func() (err error) {
		created, err = h.SplitService.Create(ctx, auth.UserID(ctx), splitInput)
		return err
	})
	if err != nil {
		return nil, respond.FromService(ctx, err, notFoundMessage)
	}

	return &SplitOutput{Body: toSplit(*created)}, nil
}

type SettleSplitInput struct {
	ID   string `path:"id"`
	Name string `path:"name" doc:"Participant whose share is settled"`
}

type SettleSplitHandler struct {
	SplitService SplitService
}

func NewSettleSplitHandler(svc SplitService) *SettleSplitHandler {
	return &SettleSplitHandler{SplitService: svc}
}

func (h *SettleSplitHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "settle-split",
		Method:      http.MethodPut,
		Path:        "/api/splits/{id}/settle/{name}",
		Summary:     "Settle a share",
		Description: "Marks one participant's share as settled.",
		Tags:        []string{"Splits"},
	}, h.handle)
}

func (h *SettleSplitHandler) handle(ctx context.Context, input *SettleSplitInput) (*SplitOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	var settled *service.Split
	err = logging.Timed(logging.GetLogData(ctx), "settleSplitMs", func() (err error) {
		settled, err = h.SplitService.Settle(ctx, auth.UserID(ctx), id, input.Name)
		return err
	})
	if err != nil {
		return nil, respond.FromService(ctx, err, notFoundMessage)
	}

	return &SplitOutput{Body: toSplit(*settled)}, nil
}

type DeleteSplitInput struct {
	ID string `path:"id"`
}

type DeleteSplitOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

type DeleteSplitHandler struct {
	SplitService SplitService
}

func NewDeleteSplitHandler(svc SplitService) *DeleteSplitHandler {
	return &DeleteSplitHandler{SplitService: svc}
}

func (h *DeleteSplitHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-split",
		Method:      http.MethodDelete,
		Path:        "/api/splits/{id}",
		Summary:     "Delete split",
		Tags:        []string{"Splits"},
	}, h.handle)
}

func (h *DeleteSplitHandler) handle(ctx context.Context, input *DeleteSplitInput) (*DeleteSplitOutput, error) {
	id, err := parseID(input.ID)
	if err != nil {
		return nil, err
	}

	if err := h.SplitService.Delete(ctx, auth.UserID(ctx), id); err != nil {
		return nil, respond.FromService(ctx, err, notFoundMessage)
	}

	out := &DeleteSplitOutput{}
	out.Body.Message = "Deleted"
	return out, nil
}
