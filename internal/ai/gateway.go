// Package ai proxies transaction parsing, subscription detection and chat to
// an OpenAI-compatible model. Every call degrades to a fixed fallback payload
// instead of returning a hard failure to the HTTP layer.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"golang.org/x/time/rate"

	"github.com/carson-networks/neofin-server/internal/config"
	"github.com/carson-networks/neofin-server/internal/logging"
	"github.com/carson-networks/neofin-server/internal/metrics"
)

const (
	temperature    = 0.5
	defaultBurst   = 3
	requestTimeout = 60 * time.Second
)

var (
	ErrNotConfigured = errors.New("ai: OPENROUTER_API_KEY is not configured")
	ErrEmptyResponse = errors.New("ai: model returned no text")
)

// Gateway is safe for concurrent use.
type Gateway struct {
	model   llms.Model
	limiter *rate.Limiter
	metrics *metrics.Metrics
	log     *logrus.Logger
	now     func() time.Time
}

type Option func(*Gateway)

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

func WithLogger(log *logrus.Logger) Option {
	return func(g *Gateway) { g.log = log }
}

// WithRequestsPerMinute replaces the upstream token bucket. Zero disables it.
func WithRequestsPerMinute(n int) Option {
	return func(g *Gateway) {
		if n <= 0 {
			g.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		g.limiter = rate.NewLimiter(rate.Limit(float64(n)/60.0), defaultBurst)
	}
}

func withClock(now func() time.Time) Option {
	return func(g *Gateway) { g.now = now }
}

// New wraps model. A nil model makes every call answer with its fallback.
func New(model llms.Model, opts ...Option) *Gateway {
	g := &Gateway{
		model:   model,
		limiter: rate.NewLimiter(rate.Inf, 0),
		log:     logrus.StandardLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewFromConfig builds the OpenRouter-backed gateway. Without an API key the
// gateway still serves requests, answering every call with its fallback.
func NewFromConfig(env *config.Config, m *metrics.Metrics, log *logrus.Logger) (*Gateway, error) {
	opts := []Option{
		WithMetrics(m),
		WithLogger(log),
		WithRequestsPerMinute(env.AIRequestsPerMinute),
	}
	if env.OpenRouterAPIKey == "" {
		log.Warn("AI.Gateway.NotConfigured")
		return New(nil, opts...), nil
	}

	llm, err := openai.New(
		openai.WithToken(env.OpenRouterAPIKey),
		openai.WithModel(env.AIModel),
		openai.WithBaseURL(env.AIBaseURL),
		openai.WithHTTPClient(&http.Client{
			Timeout:   requestTimeout,
			Transport: attributionTransport{next: http.DefaultTransport},
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}

	return New(llm, opts...), nil
}

// attributionTransport adds the OpenRouter app attribution headers.
type attributionTransport struct {
	next http.RoundTripper
}

func (t attributionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("HTTP-Referer", "https://neofin.app")
	req.Header.Set("X-Title", "NeoFin")
	return t.next.RoundTrip(req)
}

// complete sends a single user turn and returns the model's raw text.
func (g *Gateway) complete(ctx context.Context, call string, parts ...llms.ContentPart) (string, error) {
	if g.model == nil {
		return "", ErrNotConfigured
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("ai rate limiter: %w", err)
	}

	var resp *llms.ContentResponse
	err := logging.Timed(logging.GetLogData(ctx), "ai_"+call, func() error {
		var err error
		resp, err = g.model.GenerateContent(ctx, []llms.MessageContent{{
			Role:  schema.ChatMessageTypeHuman,
			Parts: parts,
		}}, llms.WithTemperature(temperature))
		return err
	})
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", ErrEmptyResponse
	}

	text := resp.Choices[0].Content
	if g.log.IsLevelEnabled(logrus.DebugLevel) {
		g.log.WithField("call", call).Debugf("AI.%v.Raw\n%s", call, spew.Sdump(text))
	}
	return text, nil
}

// fallback records a degraded answer.
func (g *Gateway) fallback(ctx context.Context, call, reason string, err error) {
	g.metrics.AIFallback(call, reason)

	entry := g.log.WithField("call", call).WithField("reason", reason)
	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("ai_fallback", reason)
		entry = logData.Log().WithField("call", call)
	}
	entry.WithError(err).Warnf("AI.%v.Fallback", call)
}
