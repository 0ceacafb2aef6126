package agent

import (
	"log/slog"
	"time"

	ai "github.com/toolweave/toolweave"
	"github.com/toolweave/toolweave/cache"
	"github.com/toolweave/toolweave/executor"
)

// DefaultMaxIterations is the reasoning-iteration limit used when none is
// configured.
const DefaultMaxIterations = 3

// Options contains configuration for a single agent run.
type Options struct {
	// MaxIterations limits the number of model queries per run.
	// Default is 3. When the model still requests tools on the final
	// iteration the run terminates with a best-effort answer.
	MaxIterations int

	// WorkerCount sets the executor's worker pool width. Default is 4.
	WorkerCount int

	// CacheTTL is the lifetime of cached tool results. Default is one
	// hour. Ignored when Cache is set.
	CacheTTL time.Duration

	// Cache supplies a pre-built result store, shared across runs.
	// When nil the run builds its own store from CacheTTL and CacheDir.
	Cache *cache.Store

	// CacheDir enables durable persistence of tool results under the
	// given directory. Ignored when Cache is set.
	CacheDir string

	// InvokeTimeout bounds each individual tool invocation.
	// Zero means no per-call timeout.
	InvokeTimeout time.Duration

	// ChatOptions are passed through to the chat provider on every
	// model query.
	ChatOptions []ai.Option

	// Logger receives run diagnostics. Default is slog.Default.
	Logger *slog.Logger
}

// Option is a functional option for configuring an agent run.
type Option func(*Options)

// WithMaxIterations sets the maximum number of model queries per run.
// Default is 3.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		o.MaxIterations = n
	}
}

// WithWorkerCount sets the tool executor's worker pool width.
// Default is 4. A non-positive value selects sequential execution.
func WithWorkerCount(n int) Option {
	return func(o *Options) {
		o.WorkerCount = n
	}
}

// WithCacheTTL sets the lifetime of cached tool results. Default is one
// hour.
func WithCacheTTL(d time.Duration) Option {
	return func(o *Options) {
		o.CacheTTL = d
	}
}

// WithCache supplies a pre-built result store. Useful for sharing one
// cache across runs or agents.
func WithCache(s *cache.Store) Option {
	return func(o *Options) {
		o.Cache = s
	}
}

// WithCacheDir persists tool results as JSON files under dir so they
// survive process restarts.
func WithCacheDir(dir string) Option {
	return func(o *Options) {
		o.CacheDir = dir
	}
}

// WithInvokeTimeout bounds each individual tool invocation. A timed-out
// call resolves to an error result for that call alone.
func WithInvokeTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.InvokeTimeout = d
	}
}

// WithChatOptions passes options through to the chat provider.
// These options are applied to every model query the agent makes.
func WithChatOptions(opts ...ai.Option) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, opts...)
	}
}

// WithModel is a convenience option to set the model for chat calls.
func WithModel(model string) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, ai.WithModel(model))
	}
}

// WithMaxTokens is a convenience option to set max tokens for chat calls.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, ai.WithMaxTokens(n))
	}
}

// WithTemperature is a convenience option to set temperature for chat calls.
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, ai.WithTemperature(t))
	}
}

// WithLogger sets the logger for run diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// ApplyOptions applies functional options to an Options struct with defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		MaxIterations: DefaultMaxIterations,
		WorkerCount:   executor.DefaultWorkerCount,
		CacheTTL:      cache.DefaultTTL,
		Logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
