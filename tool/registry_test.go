package tool

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	ai "github.com/toolweave/toolweave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testArgs struct {
	Query string `json:"query" desc:"Search query" required:"true"`
}

type calcArgs struct {
	A int `json:"a" required:"true"`
	B int `json:"b" required:"true"`
}

func TestRegistryAdd(t *testing.T) {
	t.Run("registers single tool with Func", func(t *testing.T) {
		registry := NewRegistry().Add(
			Func("search", "Search the web", func(ctx context.Context, args testArgs) (string, error) {
				return "result: " + args.Query, nil
			}),
		)

		assert.Equal(t, 1, registry.Len())
		handler, ok := registry.Get("search")
		assert.True(t, ok)
		assert.NotNil(t, handler)

		tool, ok := registry.GetTool("search")
		assert.True(t, ok)
		assert.Equal(t, "search", tool.Name)
		assert.Equal(t, "Search the web", tool.Description)
	})

	t.Run("registers multiple tools in single Add call", func(t *testing.T) {
		registry := NewRegistry().Add(
			Func("search", "Search the web", func(ctx context.Context, args testArgs) (string, error) {
				return "search result", nil
			}),
			Func("calc", "Calculate sum", func(ctx context.Context, args calcArgs) (string, error) {
				return "calc result", nil
			}),
		)

		assert.Equal(t, 2, registry.Len())
		assert.Contains(t, registry.Names(), "search")
		assert.Contains(t, registry.Names(), "calc")
	})

	t.Run("panics on duplicate name", func(t *testing.T) {
		registry := NewRegistry().Add(
			Func("dup", "First", func(ctx context.Context, args testArgs) (string, error) {
				return "", nil
			}),
		)

		assert.Panics(t, func() {
			registry.Add(Func("dup", "Second", func(ctx context.Context, args testArgs) (string, error) {
				return "", nil
			}))
		})
	})
}

func TestRegistryRegister(t *testing.T) {
	t.Run("returns error for duplicate registration", func(t *testing.T) {
		r := NewRegistry()
		testTool := ai.Tool{Name: "test_tool", Description: "A test tool"}
		handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
			return "result", nil
		}

		require.NoError(t, r.Register(testTool, handler))
		err := r.Register(testTool, handler)

		var dup *ErrToolAlreadyRegistered
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "test_tool", dup.Name)
	})

	t.Run("unregister removes tool", func(t *testing.T) {
		r := NewRegistry().Add(
			Func("temp", "Temporary", func(ctx context.Context, args testArgs) (string, error) {
				return "", nil
			}),
		)

		r.Unregister("temp")

		assert.Equal(t, 0, r.Len())
		_, ok := r.Get("temp")
		assert.False(t, ok)
	})
}

func TestRegistryExecute(t *testing.T) {
	t.Run("executes handler and returns live result", func(t *testing.T) {
		r := NewRegistry().Add(
			Func("echo", "Echo the query", func(ctx context.Context, args testArgs) (string, error) {
				return "echo: " + args.Query, nil
			}),
		)

		result, err := r.Execute(context.Background(), ai.ToolCall{
			ID:        "call-1",
			Name:      "echo",
			Arguments: `{"query":"hello"}`,
		})

		require.NoError(t, err)
		assert.Equal(t, "call-1", result.ToolCallID)
		assert.Equal(t, "echo: hello", result.Content)
		assert.False(t, result.IsError)
		assert.Equal(t, ai.SourceLive, result.Source)
	})

	t.Run("captures handler error as error result", func(t *testing.T) {
		r := NewRegistry().Add(
			Func("boom", "Always fails", func(ctx context.Context, args testArgs) (string, error) {
				return "", errors.New("upstream unavailable")
			}),
		)

		result, err := r.Execute(context.Background(), ai.ToolCall{
			ID:        "call-2",
			Name:      "boom",
			Arguments: `{"query":"x"}`,
		})

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "upstream unavailable")
	})

	t.Run("returns ErrToolNotFound for unknown tool", func(t *testing.T) {
		r := NewRegistry()

		_, err := r.Execute(context.Background(), ai.ToolCall{
			ID:   "call-3",
			Name: "missing",
		})

		var notFound *ErrToolNotFound
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "missing", notFound.Name)
	})
}

func TestRegistryInvoker(t *testing.T) {
	t.Run("invokes registered handler", func(t *testing.T) {
		r := NewRegistry().Add(
			Func("echo", "Echo", func(ctx context.Context, args testArgs) (string, error) {
				return args.Query, nil
			}),
		)

		invoke := r.Invoker()
		content, err := invoke(context.Background(), ai.ToolCall{
			ID:        "call-1",
			Name:      "echo",
			Arguments: `{"query":"ping"}`,
		})

		require.NoError(t, err)
		assert.Equal(t, "ping", content)
	})

	t.Run("unknown tool yields ErrToolNotFound", func(t *testing.T) {
		invoke := NewRegistry().Invoker()

		_, err := invoke(context.Background(), ai.ToolCall{ID: "x", Name: "nope"})

		var notFound *ErrToolNotFound
		assert.ErrorAs(t, err, &notFound)
	})
}

func TestRegisterFunc(t *testing.T) {
	t.Run("generates schema from typed args", func(t *testing.T) {
		r := NewRegistry()
		err := RegisterFunc(r, "calc", "Add two numbers", func(ctx context.Context, args calcArgs) (string, error) {
			return "ok", nil
		})
		require.NoError(t, err)

		tool, ok := r.GetTool("calc")
		require.True(t, ok)

		var schema map[string]any
		require.NoError(t, json.Unmarshal(tool.Parameters, &schema))
		assert.Equal(t, "object", schema["type"])
		assert.ElementsMatch(t, []any{"a", "b"}, schema["required"].([]any))
	})

	t.Run("handler rejects malformed arguments", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, RegisterFunc(r, "calc", "Add", func(ctx context.Context, args calcArgs) (string, error) {
			return "ok", nil
		}))

		result, err := r.Execute(context.Background(), ai.ToolCall{
			ID:        "call-1",
			Name:      "calc",
			Arguments: `{not json`,
		})

		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}

func TestHTTPFetchTool(t *testing.T) {
	t.Run("fetches response body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("payload"))
		}))
		defer srv.Close()

		r := NewRegistry().Add(NewHTTPFetchTool())
		result, err := r.Execute(context.Background(), ai.ToolCall{
			ID:        "call-1",
			Name:      "http_fetch",
			Arguments: `{"url":"` + srv.URL + `"}`,
		})

		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Equal(t, "payload", result.Content)
	})

	t.Run("rejects disallowed host", func(t *testing.T) {
		r := NewRegistry().Add(NewHTTPFetchTool(WithAllowedHosts("example.com")))

		result, err := r.Execute(context.Background(), ai.ToolCall{
			ID:        "call-2",
			Name:      "http_fetch",
			Arguments: `{"url":"http://127.0.0.1:1/"}`,
		})

		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "not allowed")
	})

	t.Run("error status becomes error result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		r := NewRegistry().Add(NewHTTPFetchTool())
		result, err := r.Execute(context.Background(), ai.ToolCall{
			ID:        "call-3",
			Name:      "http_fetch",
			Arguments: `{"url":"` + srv.URL + `"}`,
		})

		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}
