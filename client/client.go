// Package client provides a unified chat client across providers.
// The model identifier on each request selects the backend; provider
// clients are lazily initialized from configured API keys, and
// transient failures are retried with exponential backoff.
package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	ai "github.com/toolweave/toolweave"
	"github.com/toolweave/toolweave/model"
	"github.com/toolweave/toolweave/provider/anthropic"
	"github.com/toolweave/toolweave/provider/google"
	"github.com/toolweave/toolweave/provider/openai"
	"github.com/toolweave/toolweave/retry"
)

// APIKeys holds API keys per provider. Only configure keys for providers
// you intend to use; an unconfigured provider fails with ErrMissingAPIKey
// when a request routes to it.
type APIKeys struct {
	Anthropic string
	OpenAI    string
	Google    string
}

// Config configures a unified client.
type Config struct {
	// APIKeys contains authentication keys for each provider.
	APIKeys APIKeys

	// DefaultModel is used when a request does not set a model.
	DefaultModel string

	// RetryConfig configures retry behavior for transient errors.
	// If nil, uses the default retry configuration.
	RetryConfig *retry.Config

	// Events is an optional channel for request lifecycle events.
	// Events are sent non-blocking; if the channel is full they are dropped.
	Events chan<- Event
}

// ErrMissingAPIKey is returned when a request routes to a provider with
// no configured key.
type ErrMissingAPIKey struct {
	Provider string
	Model    string
}

func (e *ErrMissingAPIKey) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("no API key configured for %s (required by model %q)", e.Provider, e.Model)
	}
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// ErrNoModel is returned when no model is specified and no default is configured.
type ErrNoModel struct{}

func (e *ErrNoModel) Error() string {
	return "no model specified: set client.Config.DefaultModel or use toolweave.WithModel()"
}

// ErrUnknownModel is returned when a model identifier maps to no known provider.
type ErrUnknownModel struct {
	Model string
}

func (e *ErrUnknownModel) Error() string {
	return fmt.Sprintf("cannot determine provider for model %q", e.Model)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultTemperature sets the default temperature for chat requests.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithTemperature(t))
	}
}

// WithDefaultMaxTokens sets the default max tokens for chat requests.
// Per-request options override this default.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithMaxTokens(n))
	}
}

// WithDefaultChatOptions sets default options for all chat requests.
// Per-request options override these defaults.
func WithDefaultChatOptions(opts ...ai.Option) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, opts...)
	}
}

// lazy defers provider construction to first use and remembers the
// outcome, including a construction failure.
type lazy struct {
	once sync.Once
	p    ai.ChatProvider
	err  error
}

func (l *lazy) get(build func() (ai.ChatProvider, error)) (ai.ChatProvider, error) {
	l.once.Do(func() {
		l.p, l.err = build()
	})
	return l.p, l.err
}

// Client routes chat requests to the provider owning the requested model.
type Client struct {
	apiKeys         APIKeys
	defaultModel    string
	retryConfig     retry.Config
	events          chan<- Event
	defaultChatOpts []ai.Option

	anthropicP lazy
	openaiP    lazy
	googleP    lazy
}

// New creates a unified client with the given configuration.
func New(cfg Config, opts ...ClientOption) *Client {
	retryConfig := retry.DefaultConfig()
	if cfg.RetryConfig != nil {
		retryConfig = *cfg.RetryConfig
	}

	c := &Client{
		apiKeys:      cfg.APIKeys,
		defaultModel: cfg.DefaultModel,
		retryConfig:  retryConfig,
		events:       cfg.Events,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// chatProviderFor resolves the provider owning the given model,
// constructing its client on first use.
func (c *Client) chatProviderFor(ctx context.Context, modelID string) (ai.ChatProvider, ai.Provider, error) {
	provider := model.ProviderFor(modelID)

	var p ai.ChatProvider
	var err error

	switch provider {
	case ai.ProviderAnthropic:
		p, err = c.anthropicP.get(func() (ai.ChatProvider, error) {
			if c.apiKeys.Anthropic == "" {
				return nil, &ErrMissingAPIKey{Provider: "anthropic"}
			}
			return anthropic.New(c.apiKeys.Anthropic), nil
		})
	case ai.ProviderOpenAI:
		p, err = c.openaiP.get(func() (ai.ChatProvider, error) {
			if c.apiKeys.OpenAI == "" {
				return nil, &ErrMissingAPIKey{Provider: "openai"}
			}
			return openai.New(c.apiKeys.OpenAI), nil
		})
	case ai.ProviderGoogle:
		p, err = c.googleP.get(func() (ai.ChatProvider, error) {
			if c.apiKeys.Google == "" {
				return nil, &ErrMissingAPIKey{Provider: "google"}
			}
			cl, err := google.New(ctx, c.apiKeys.Google)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize Google client: %w", err)
			}
			return cl, nil
		})
	default:
		return nil, "", &ErrUnknownModel{Model: modelID}
	}

	if err != nil {
		return nil, "", err
	}
	return p, provider, nil
}

// Chat sends a conversation and returns a complete response.
// The model can be set via toolweave.WithModel, or the configured default
// is used. Transient errors are retried per the client's retry configuration.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	// Prepend defaults so per-request options override them
	opts = append(c.defaultChatOpts, opts...)
	options := ai.ApplyOptions(opts...)

	modelID := options.Model
	if modelID == "" {
		modelID = c.defaultModel
	}
	if modelID == "" {
		return nil, &ErrNoModel{}
	}

	chatProvider, provider, err := c.chatProviderFor(ctx, modelID)
	if err != nil {
		return nil, err
	}

	if options.Model == "" {
		opts = append([]ai.Option{ai.WithModel(modelID)}, opts...)
	}

	start := time.Now()
	emit(c.events, Event{
		Type:     EventRequestStart,
		Provider: provider,
		Model:    modelID,
	})

	resp, err := retry.Do(ctx, c.retryConfig, func() (*ai.Response, error) {
		return chatProvider.Chat(ctx, messages, opts...)
	})

	if err != nil {
		emit(c.events, Event{
			Type:     EventRequestError,
			Provider: provider,
			Model:    modelID,
			Duration: time.Since(start),
			Error:    err,
		})
		return nil, err
	}

	var usage *ai.Usage
	if resp != nil {
		usage = &resp.Usage
	}
	emit(c.events, Event{
		Type:     EventRequestComplete,
		Provider: provider,
		Model:    modelID,
		Duration: time.Since(start),
		Usage:    usage,
	})
	return resp, nil
}

var _ ai.ChatProvider = (*Client)(nil)
