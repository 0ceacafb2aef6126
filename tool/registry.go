package tool

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	ai "github.com/toolweave/toolweave"
)

// entry pairs a tool definition with the handler that executes it.
type entry struct {
	tool    ai.Tool
	handler Handler
}

// Registry maps tool names to definitions and handlers. It is the single
// lookup point for everything the agent may execute; safe for concurrent
// use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]entry
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]entry)}
}

// Register adds a tool with its handler. Registering a name twice is an
// error; use Unregister first to replace a tool.
func (r *Registry) Register(tool ai.Tool, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name]; exists {
		return &ErrToolAlreadyRegistered{Name: tool.Name}
	}
	r.tools[tool.Name] = entry{tool: tool, handler: handler}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(tool ai.Tool, handler Handler) {
	if err := r.Register(tool, handler); err != nil {
		panic(err)
	}
}

// Unregister removes a tool. Unknown names are a no-op.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tools, name)
}

// Get returns the handler for a tool name.
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tools[name]
	return e.handler, ok
}

// GetTool returns the definition for a tool name.
func (r *Registry) GetTool(name string) (ai.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.tools[name]
	return e.tool, ok
}

// Tools returns every registered definition, for advertising the toolset
// to a chat provider.
func (r *Registry) Tools() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]ai.Tool, 0, len(r.tools))
	for _, e := range r.tools {
		out = append(out, e.tool)
	}
	return out
}

// Names returns the registered tool names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// RegisterFunc registers a typed handler. The arguments JSON is
// unmarshaled into T before the handler runs, and T's struct tags drive
// the generated parameter schema.
//
// Example:
//
//	type SearchArgs struct {
//	    Query string `json:"query" desc:"Search query" required:"true"`
//	}
//
//	tool.RegisterFunc(registry, "search", "Search the web",
//	    func(ctx context.Context, args SearchArgs) (string, error) {
//	        return doSearch(args.Query), nil
//	    },
//	)
func RegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) error {
	schema, err := SchemaFor[T]()
	if err != nil {
		return err
	}
	return r.Register(ai.Tool{
		Name:        name,
		Description: description,
		Parameters:  schema,
	}, typedHandler(fn))
}

// MustRegisterFunc is like RegisterFunc but panics on error.
func MustRegisterFunc[T any](r *Registry, name, description string, fn TypedHandler[T]) {
	if err := RegisterFunc(r, name, description, fn); err != nil {
		panic(err)
	}
}

func typedHandler[T any](fn TypedHandler[T]) Handler {
	return func(ctx context.Context, call ai.ToolCall) (string, error) {
		var args T
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return "", err
		}
		return fn(ctx, args)
	}
}

// Execute runs the handler for a single call. An unknown name returns
// ErrToolNotFound. A handler error is not an Execute error: it comes back
// as an IsError result so the model can see what went wrong and recover.
func (r *Registry) Execute(ctx context.Context, call ai.ToolCall) (ai.ToolResult, error) {
	handler, ok := r.Get(call.Name)
	if !ok {
		return ai.ToolResult{}, &ErrToolNotFound{Name: call.Name}
	}

	content, err := handler(ctx, call)
	if err != nil {
		return ai.ToolResult{
			ToolCallID: call.ID,
			Content:    err.Error(),
			IsError:    true,
			Source:     ai.SourceLive,
		}, nil
	}
	return ai.ToolResult{
		ToolCallID: call.ID,
		Content:    content,
		Source:     ai.SourceLive,
	}, nil
}

// Invoker returns an invocation function bound to this registry, suitable
// for [github.com/toolweave/toolweave/executor.Executor.ExecuteBatch].
// An unknown tool name yields an ErrToolNotFound error, which the executor
// converts into an isolated error result.
func (r *Registry) Invoker() func(ctx context.Context, call ai.ToolCall) (string, error) {
	return func(ctx context.Context, call ai.ToolCall) (string, error) {
		handler, ok := r.Get(call.Name)
		if !ok {
			return "", &ErrToolNotFound{Name: call.Name}
		}
		return handler(ctx, call)
	}
}

// Registration holds a tool and its handler for fluent registration.
type Registration struct {
	Tool    ai.Tool
	Handler Handler
}

// Func creates a Registration with automatic schema generation from the typed handler.
// Panics if schema generation fails.
//
// Example:
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("weather", "Get weather", func(ctx context.Context, args WeatherArgs) (string, error) {
//	        return getWeather(args.Location), nil
//	    }),
//	    tool.Func("search", "Search web", searchHandler),
//	)
func Func[T any](name, description string, fn TypedHandler[T]) Registration {
	return Registration{
		Tool: ai.Tool{
			Name:        name,
			Description: description,
			Parameters:  MustSchemaFor[T](),
		},
		Handler: typedHandler(fn),
	}
}

// WithHandler creates a Registration from a Handler and schema.
// Use this when you have a pre-built Handler implementation.
func WithHandler(name, description string, schema json.RawMessage, h Handler) Registration {
	return Registration{
		Tool: ai.Tool{
			Name:        name,
			Description: description,
			Parameters:  schema,
		},
		Handler: h,
	}
}

// WithTool creates a Registration from an existing Tool and Handler.
// Use this when you have pre-built tool definitions.
func WithTool(t ai.Tool, h Handler) Registration {
	return Registration{Tool: t, Handler: h}
}

// Add registers one or more tools to the registry.
// Panics if any tool is already registered.
// Returns the registry for fluent chaining.
func (r *Registry) Add(regs ...Registration) *Registry {
	for _, reg := range regs {
		r.MustRegister(reg.Tool, reg.Handler)
	}
	return r
}
