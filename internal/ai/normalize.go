package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/neofin-server/internal/service"
)

var ErrMalformed = errors.New("ai: malformed model output")

const maxUnwrapDepth = 4

// envelope covers the wrappers models and proxies put around the payload.
type envelope struct {
	Data       json.RawMessage `json:"data"`
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// unwrap reduces raw model output to the JSON payload it carries: fences are
// stripped, {data} and {candidates} wrappers are peeled off.
func unwrap(raw string) (json.RawMessage, error) {
	return unwrapDepth(raw, 0)
}

func unwrapDepth(raw string, depth int) (json.RawMessage, error) {
	if depth > maxUnwrapDepth {
		return nil, fmt.Errorf("%w: nested too deeply", ErrMalformed)
	}

	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}
	if payload[0] != '{' {
		return payload, nil
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(env.Candidates) > 0 {
		var text strings.Builder
		for _, part := range env.Candidates[0].Content.Parts {
			text.WriteString(part.Text)
		}
		return unwrapDepth(text.String(), depth+1)
	}
	if data := bytes.TrimSpace(env.Data); len(data) > 0 && !bytes.Equal(data, []byte("null")) {
		if data[0] == '"' {
			var inner string
			if err := json.Unmarshal(data, &inner); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			return unwrapDepth(inner, depth+1)
		}
		return unwrapDepth(string(data), depth+1)
	}
	return payload, nil
}

// extractJSON strips markdown fences and any prose around the outermost JSON
// object or array.
func extractJSON(raw string) (json.RawMessage, error) {
	text := strings.TrimSpace(raw)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty output", ErrMalformed)
	}
	if json.Valid([]byte(text)) && (text[0] == '{' || text[0] == '[') {
		return json.RawMessage(text), nil
	}

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return nil, fmt.Errorf("%w: no JSON in output", ErrMalformed)
	}
	closer := byte('}')
	if text[start] == '[' {
		closer = ']'
	}
	end := strings.LastIndexByte(text, closer)
	if end <= start || !json.Valid([]byte(text[start:end+1])) {
		return nil, fmt.Errorf("%w: no JSON in output", ErrMalformed)
	}
	return json.RawMessage(text[start : end+1]), nil
}

// firstObject returns payload, or its first element when it is an array.
func firstObject(payload json.RawMessage) (json.RawMessage, error) {
	if payload[0] != '[' {
		return payload, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrMalformed)
	}
	return bytes.TrimSpace(items[0]), nil
}

type rawParsed struct {
	TransactionType string              `json:"transactionType"`
	Text            string              `json:"text"`
	Amount          decimal.NullDecimal `json:"amount"`
	Category        string              `json:"category"`
	Type            string              `json:"type"`
	IsFreelance     bool                `json:"isFreelance"`
	Date            string              `json:"date"`
	Person          string              `json:"person"`
	DebtType        string              `json:"debtType"`
}

func decodeParsed(raw string) (*rawParsed, error) {
	payload, err := unwrap(raw)
	if err != nil {
		return nil, err
	}
	obj, err := firstObject(payload)
	if err != nil {
		return nil, err
	}
	if len(obj) == 0 || obj[0] != '{' {
		return nil, fmt.Errorf("%w: expected an object", ErrMalformed)
	}

	var parsed rawParsed
	if err := json.Unmarshal(obj, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if strings.TrimSpace(parsed.Text) == "" && !parsed.Amount.Valid {
		return nil, fmt.Errorf("%w: neither text nor amount present", ErrMalformed)
	}
	return &parsed, nil
}

// NormalizeParse turns raw parse output into a transaction or, when mode is
// ModeDebt or the model classified the input as a debt, a debt.
func NormalizeParse(raw string, mode Mode, now time.Time) (ParseResult, error) {
	parsed, err := decodeParsed(raw)
	if err != nil {
		return ParseResult{}, err
	}
	if mode == ModeDebt || strings.EqualFold(parsed.TransactionType, string(ModeDebt)) {
		return ParseResult{Success: true, Debt: parsed.debt(now)}, nil
	}
	return ParseResult{Success: true, Transaction: parsed.transaction(now)}, nil
}

// NormalizeTransaction is NormalizeParse restricted to transactions.
func NormalizeTransaction(raw string, now time.Time) (*ParsedTransaction, error) {
	parsed, err := decodeParsed(raw)
	if err != nil {
		return nil, err
	}
	return parsed.transaction(now), nil
}

func NormalizeDebt(raw string, now time.Time) (*ParsedDebt, error) {
	parsed, err := decodeParsed(raw)
	if err != nil {
		return nil, err
	}
	return parsed.debt(now), nil
}

func (p *rawParsed) transaction(now time.Time) *ParsedTransaction {
	amount := p.Amount.Decimal.Abs().Round(2)

	txType := service.TransactionTypeExpense
	if strings.EqualFold(strings.TrimSpace(p.Type), string(service.TransactionTypeIncome)) {
		txType = service.TransactionTypeIncome
	}
	if txType == service.TransactionTypeExpense {
		amount = amount.Neg()
	}

	category := matchCategory(p.Category)
	if category == "" {
		category = service.DefaultCategory
	}

	return &ParsedTransaction{
		Text:        strings.TrimSpace(p.Text),
		Amount:      amount,
		Category:    category,
		Type:        txType,
		IsFreelance: p.IsFreelance,
		Date:        parseDate(p.Date, now),
	}
}

func (p *rawParsed) debt(now time.Time) *ParsedDebt {
	debtType := DebtLent
	kind := p.DebtType
	if kind == "" {
		kind = p.Type
	}
	if strings.EqualFold(strings.TrimSpace(kind), string(DebtBorrowed)) {
		debtType = DebtBorrowed
	}

	return &ParsedDebt{
		Text:   strings.TrimSpace(p.Text),
		Person: strings.TrimSpace(p.Person),
		Amount: p.Amount.Decimal.Abs().Round(2),
		Type:   debtType,
		Date:   parseDate(p.Date, now),
	}
}

// matchCategory maps a model category onto the closed set, ignoring case.
func matchCategory(category string) string {
	category = strings.TrimSpace(category)
	for _, c := range service.Categories {
		if strings.EqualFold(c, category) {
			return c
		}
	}
	return ""
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
}

func parseDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return now
}

type rawSubscription struct {
	Name      string              `json:"name"`
	Amount    decimal.NullDecimal `json:"amount"`
	Frequency string              `json:"frequency"`
}

// NormalizeSubscriptions accepts a JSON array, optionally wrapped, and drops
// entries without a name.
func NormalizeSubscriptions(raw string) ([]Subscription, error) {
	payload, err := unwrap(raw)
	if err != nil {
		return nil, err
	}
	if payload[0] != '[' {
		return nil, fmt.Errorf("%w: expected an array", ErrMalformed)
	}

	var items []rawSubscription
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	subs := make([]Subscription, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		frequency := strings.ToLower(strings.TrimSpace(item.Frequency))
		if frequency == "" {
			frequency = "monthly"
		}
		subs = append(subs, Subscription{
			Name:      name,
			Amount:    item.Amount.Decimal.Abs(),
			Frequency: frequency,
		})
	}
	return subs, nil
}

// NormalizeChat strips surrounding whitespace and fences from a chat answer.
func NormalizeChat(raw string) (string, error) {
	answer := strings.TrimSpace(raw)
	if strings.HasPrefix(answer, "```") {
		answer = strings.TrimPrefix(answer, "```markdown")
		answer = strings.TrimPrefix(answer, "```")
		answer = strings.TrimSuffix(answer, "```")
		answer = strings.TrimSpace(answer)
	}
	if answer == "" {
		return "", fmt.Errorf("%w: empty answer", ErrMalformed)
	}
	return answer, nil
}
