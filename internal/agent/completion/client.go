// Package completion is the external completion tier. It is an eino chain
// of the support prompt template and a chat model.
package completion

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/stor-a-gentic/server/internal/agent/model"
	errx "github.com/stor-a-gentic/server/internal/core/error"
	"github.com/stor-a-gentic/server/internal/metrics"
	logx "github.com/stor-a-gentic/server/pkg/logger"
)

const defaultTimeout = 20 * time.Second

// Client is safe for concurrent use. The zero value is an unavailable client.
type Client struct {
	runnable  compose.Runnable[map[string]any, *schema.Message]
	prompt    model.ResponsePromptConfig
	modelName string
	timeout   time.Duration
	metrics   *metrics.Metrics
}

type Option func(*Client)

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithModelName sets the name used for cost accounting in logs.
func WithModelName(name string) Option {
	return func(c *Client) { c.modelName = name }
}

// New builds the client from cfg. Without an API key the client is returned
// unavailable and no error is reported.
func New(ctx context.Context, cfg Config, promptCfg model.ResponsePromptConfig, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		logx.Warn().Msg("completion API key not configured, completion tier disabled")
		return &Client{}, nil
	}
	cm, err := NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithTimeout(cfg.Timeout), WithModelName(cfg.ModelName())}, opts...)
	c, err := NewWithModel(ctx, cm, promptCfg, opts...)
	if err != nil {
		return nil, err
	}
	logx.Info().Str("provider", cfg.Provider).Str("model", cfg.ModelName()).Msg("completion tier ready")
	return c, nil
}

// NewWithModel compiles the prompt → model chain around cm.
func NewWithModel(ctx context.Context, cm einomodel.BaseChatModel, promptCfg model.ResponsePromptConfig, opts ...Option) (*Client, error) {
	if cm == nil {
		return nil, errors.New("chat model is nil")
	}
	runnable, err := compose.NewChain[map[string]any, *schema.Message]().
		AppendChatTemplate(newChatTemplate()).
		AppendChatModel(cm).
		Compile(ctx)
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling completion chain")
		return nil, errx.New(err, http.StatusInternalServerError, "error compiling completion chain")
	}

	c := &Client{runnable: runnable, prompt: promptCfg, timeout: defaultTimeout}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Available reports whether a credential was configured.
func (c *Client) Available() bool {
	return c != nil && c.runnable != nil
}

// Complete sends query to the completion service. It does not retry and
// does not cache.
func (c *Client) Complete(ctx context.Context, query string) (string, error) {
	if !c.Available() {
		return "", errx.Absent("completion service not configured")
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	out, err := c.runnable.Invoke(callCtx, templateVars(c.prompt, query), compose.WithCallbacks(newObserver(c.modelName)))
	c.metrics.ObserveCompletion(time.Since(start).Seconds())
	if err != nil {
		return "", errx.WrapCompletion(err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", errx.Malformed(errors.New("completion returned empty content"))
	}
	return strings.TrimSpace(out.Content), nil
}
