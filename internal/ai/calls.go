package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

var (
	ErrNoInput   = errors.New("ai: no input provided")
	ErrNoMessage = errors.New("ai: no message provided")
)

const (
	reasonUpstream  = "upstream"
	reasonMalformed = "malformed"
)

// Parse drafts a transaction, or a debt, from a prompt or an attached file.
// Only missing input is returned as an error.
func (g *Gateway) Parse(ctx context.Context, input ParseInput) (ParseResult, error) {
	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" && len(input.File) == 0 {
		return ParseResult{}, ErrNoInput
	}

	parts := []llms.ContentPart{llms.TextPart(parsePrompt(prompt, input.Mode))}
	if prompt == "" {
		mimeType := input.MIMEType
		if mimeType == "" {
			mimeType = defaultFileMIME
		}
		parts = append(parts, llms.BinaryPart(mimeType, input.File))
	}

	raw, err := g.complete(ctx, "parse", parts...)
	if err != nil {
		g.fallback(ctx, "parse", reasonUpstream, err)
		result := ParseResult{Success: false, Message: "AI Error: " + err.Error()}
		g.fillFallback(&result, input.Mode, "Error: "+err.Error())
		return result, nil
	}

	result, err := NormalizeParse(raw, input.Mode, g.now().UTC())
	if err != nil {
		g.fallback(ctx, "parse", reasonMalformed, err)
		result = ParseResult{Success: true}
		g.fillFallback(&result, input.Mode, malformedText)
	}
	return result, nil
}

func (g *Gateway) fillFallback(result *ParseResult, mode Mode, text string) {
	now := g.now().UTC()
	if mode == ModeDebt {
		result.Debt = fallbackDebt(text, now)
		return
	}
	result.Transaction = fallbackTransaction(text, now)
}

// DetectSubscriptions lists recurring expenses. Any failure yields an empty list.
func (g *Gateway) DetectSubscriptions(ctx context.Context, txs []TransactionDigest) []Subscription {
	lines := expenseLines(txs)
	if len(lines) == 0 {
		return []Subscription{}
	}

	raw, err := g.complete(ctx, "subscriptions", llms.TextPart(subscriptionsPrompt(lines)))
	if err != nil {
		g.fallback(ctx, "subscriptions", reasonUpstream, err)
		return []Subscription{}
	}

	subs, err := NormalizeSubscriptions(raw)
	if err != nil {
		g.fallback(ctx, "subscriptions", reasonMalformed, err)
		return []Subscription{}
	}
	return subs
}

// Chat answers a question over the most recent transactions.
func (g *Gateway) Chat(ctx context.Context, message string, txs []TransactionDigest) (ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatResult{}, ErrNoMessage
	}

	prompt, err := chatPrompt(message, txs)
	if err != nil {
		g.fallback(ctx, "chat", reasonMalformed, err)
		return ChatResult{Success: false, Answer: chatApology}, nil
	}

	raw, err := g.complete(ctx, "chat", llms.TextPart(prompt))
	if err != nil {
		g.fallback(ctx, "chat", reasonUpstream, err)
		return ChatResult{Success: false, Answer: chatApology}, nil
	}

	answer, err := NormalizeChat(raw)
	if err != nil {
		g.fallback(ctx, "chat", reasonMalformed, err)
		return ChatResult{Success: false, Answer: chatApology}, nil
	}
	return ChatResult{Success: true, Answer: answer}, nil
}
