package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// API is a thin REST client for the /api routes.
type API struct {
	baseURL string
	token   string
	http    *http.Client
}

type APIOption func(*API)

func WithToken(token string) APIOption {
	return func(a *API) { a.token = token }
}

func WithHTTPClient(c *http.Client) APIOption {
	return func(a *API) { a.http = c }
}

// NewAPI targets baseURL, the server's /api root (for example http://localhost:5000/api).
func NewAPI(baseURL string, opts ...APIOption) *API {
	a := &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// transactionRequest sends amount as a JSON number.
type transactionRequest struct {
	Text        string      `json:"text"`
	Amount      json.Number `json:"amount"`
	Type        string      `json:"type,omitempty"`
	Category    string      `json:"category,omitempty"`
	Date        *time.Time  `json:"date,omitempty"`
	IsHidden    bool        `json:"isHidden"`
	IsFreelance bool        `json:"isFreelance"`
}

func newTransactionRequest(tx Transaction) transactionRequest {
	req := transactionRequest{
		Text:        tx.Text,
		Amount:      json.Number(tx.Amount.String()),
		Type:        tx.Type,
		Category:    tx.Category,
		IsHidden:    tx.IsHidden,
		IsFreelance: tx.IsFreelance,
	}
	if !tx.Date.IsZero() {
		req.Date = &tx.Date
	}
	return req
}

func (a *API) ListTransactions(ctx context.Context) ([]Transaction, error) {
	var out envelope[[]Transaction]
	err := a.do(ctx, http.MethodGet, "/transactions", nil, &out)
	return out.Data, err
}

func (a *API) ListTrash(ctx context.Context) ([]Transaction, error) {
	var out envelope[[]Transaction]
	err := a.do(ctx, http.MethodGet, "/transactions/trash/all", nil, &out)
	return out.Data, err
}

func (a *API) CreateTransaction(ctx context.Context, tx Transaction) (Transaction, error) {
	var out envelope[Transaction]
	err := a.do(ctx, http.MethodPost, "/transactions", newTransactionRequest(tx), &out)
	return out.Data, err
}

func (a *API) UpdateTransaction(ctx context.Context, tx Transaction) (Transaction, error) {
	var out envelope[Transaction]
	err := a.do(ctx, http.MethodPut, "/transactions/"+url.PathEscape(tx.ID), newTransactionRequest(tx), &out)
	return out.Data, err
}

func (a *API) DeleteTransaction(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil)
}

func (a *API) RestoreTransaction(ctx context.Context, id string) (Transaction, error) {
	var out envelope[Transaction]
	err := a.do(ctx, http.MethodPut, "/transactions/restore/"+url.PathEscape(id), nil, &out)
	return out.Data, err
}

func (a *API) PurgeTransaction(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/transactions/permanent/"+url.PathEscape(id), nil, nil)
}

// Summary totals active, visible transactions. scope is "", "business" or "personal".
func (a *API) Summary(ctx context.Context, scope string) (Summary, error) {
	path := "/transactions/summary"
	if scope != "" {
		path += "?scope=" + url.QueryEscape(scope)
	}
	var out envelope[Summary]
	err := a.do(ctx, http.MethodGet, path, nil, &out)
	return out.Data, err
}

func (a *API) ListSplits(ctx context.Context) ([]Split, error) {
	var out []Split
	err := a.do(ctx, http.MethodGet, "/splits", nil, &out)
	return out, err
}

type shareRequest struct {
	Name   string      `json:"name"`
	Amount json.Number `json:"amount"`
}

type splitRequest struct {
	Text        string         `json:"text"`
	TotalAmount json.Number    `json:"totalAmount"`
	Payer       string         `json:"payer,omitempty"`
	Splits      []shareRequest `json:"splits"`
	Date        *time.Time     `json:"date,omitempty"`
}

func (a *API) CreateSplit(ctx context.Context, split Split) (Split, error) {
	req := splitRequest{
		Text:        split.Text,
		TotalAmount: json.Number(split.TotalAmount.String()),
		Payer:       split.Payer,
		Splits:      make([]shareRequest, len(split.Splits)),
	}
	for i, share := range split.Splits {
		req.Splits[i] = shareRequest{Name: share.Name, Amount: json.Number(share.Amount.String())}
	}
	if !split.Date.IsZero() {
		req.Date = &split.Date
	}

	var out Split
	err := a.do(ctx, http.MethodPost, "/splits", req, &out)
	return out, err
}

func (a *API) SettleShare(ctx context.Context, id, name string) (Split, error) {
	var out Split
	err := a.do(ctx, http.MethodPut, "/splits/"+url.PathEscape(id)+"/settle/"+url.PathEscape(name), nil, &out)
	return out, err
}

func (a *API) DeleteSplit(ctx context.Context, id string) error {
	return a.do(ctx, http.MethodDelete, "/splits/"+url.PathEscape(id), nil, nil)
}

type parseResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    Parsed `json:"data"`
}

// Parse asks the AI gateway to draft a record from free text. mode is "" or "debt".
func (a *API) Parse(ctx context.Context, prompt, mode string) (Parsed, error) {
	var out parseResponse
	body := map[string]string{"prompt": prompt}
	if mode != "" {
		body["mode"] = mode
	}
	if err := a.do(ctx, http.MethodPost, "/ai/parse", body, &out); err != nil {
		return Parsed{}, err
	}
	if !out.Success {
		return out.Data, &APIError{Status: http.StatusOK, Message: out.Message}
	}
	return out.Data, nil
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is a signed-in user.
type Session struct {
	Token string `json:"token"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// Login signs in and uses the issued token for every later call.
func (a *API) Login(ctx context.Context, email, password string) (Session, error) {
	var out Session
	if err := a.do(ctx, http.MethodPost, "/auth/login", authRequest{Email: email, Password: password}, &out); err != nil {
		return Session{}, err
	}
	a.token = out.Token
	return out, nil
}

func (a *API) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody errorBody
		_ = json.Unmarshal(data, &errBody)
		msg := errBody.Error
		if msg == "" {
			msg = errBody.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
