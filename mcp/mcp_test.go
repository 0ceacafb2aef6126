package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	ai "github.com/toolweave/toolweave"
	"github.com/toolweave/toolweave/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMCPTool(t *testing.T) {
	t.Run("converts tool with schema", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object","properties":{"name":{"type":"string"}}}`)
		src := ai.Tool{
			Name:        "greet",
			Description: "Greet someone",
			Parameters:  schema,
		}

		mcpTool := ToMCPTool(src)

		assert.Equal(t, "greet", mcpTool.Name)
		assert.Equal(t, "Greet someone", mcpTool.Description)
		assert.Equal(t, schema, mcpTool.RawInputSchema)
	})

	t.Run("handles nil parameters", func(t *testing.T) {
		mcpTool := ToMCPTool(ai.Tool{Name: "simple", Description: "Simple tool"})

		assert.Equal(t, "simple", mcpTool.Name)
	})
}

func TestFromMCPTool(t *testing.T) {
	t.Run("converts MCP tool with raw schema", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object"}`)
		mcpTool := mcp.NewToolWithRawSchema("weather", "Get weather", schema)

		converted := FromMCPTool(mcpTool)

		assert.Equal(t, "weather", converted.Name)
		assert.Equal(t, "Get weather", converted.Description)
		assert.JSONEq(t, `{"type":"object"}`, string(converted.Parameters))
	})

	t.Run("converts MCP tool with structured schema", func(t *testing.T) {
		mcpTool := mcp.NewTool("search",
			mcp.WithDescription("Search the web"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		)

		converted := FromMCPTool(mcpTool)

		assert.Equal(t, "search", converted.Name)
		assert.NotNil(t, converted.Parameters)
	})
}

func TestToMCPCallToolRequest(t *testing.T) {
	t.Run("parses JSON arguments", func(t *testing.T) {
		req := ToMCPCallToolRequest(ai.ToolCall{
			ID:        "call_123",
			Name:      "calculate",
			Arguments: `{"a": 10, "b": 5}`,
		})

		assert.Equal(t, "calculate", req.Params.Name)
		args, ok := req.Params.Arguments.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(10), args["a"])
		assert.Equal(t, float64(5), args["b"])
	})

	t.Run("handles empty arguments", func(t *testing.T) {
		req := ToMCPCallToolRequest(ai.ToolCall{ID: "call_456", Name: "noargs"})

		assert.Equal(t, "noargs", req.Params.Name)
		assert.Nil(t, req.Params.Arguments)
	})
}

func TestFromMCPCallToolResult(t *testing.T) {
	t.Run("converts text result", func(t *testing.T) {
		result := FromMCPCallToolResult("call_123", mcp.NewToolResultText("Hello, World!"))

		assert.Equal(t, "call_123", result.ToolCallID)
		assert.Equal(t, "Hello, World!", result.Content)
		assert.False(t, result.IsError)
		assert.Equal(t, ai.SourceLive, result.Source)
	})

	t.Run("converts error result", func(t *testing.T) {
		result := FromMCPCallToolResult("call_456", mcp.NewToolResultError("something went wrong"))

		assert.Equal(t, "something went wrong", result.Content)
		assert.True(t, result.IsError)
	})

	t.Run("handles nil result", func(t *testing.T) {
		result := FromMCPCallToolResult("call_789", nil)

		assert.Equal(t, "", result.Content)
		assert.True(t, result.IsError)
	})
}

func TestToMCPCallToolResult(t *testing.T) {
	success := ToMCPCallToolResult(ai.ToolResult{ToolCallID: "c1", Content: "ok"})
	assert.False(t, success.IsError)
	require.Len(t, success.Content, 1)

	failure := ToMCPCallToolResult(ai.ToolResult{ToolCallID: "c2", Content: "bad", IsError: true})
	assert.True(t, failure.IsError)
}

func newTestRemote(t *testing.T, registry *tool.Registry) *RemoteRegistry {
	t.Helper()

	srv := NewServer(registry, WithName("test-server"), WithVersion("1.0.0"))
	c, err := client.NewInProcessClient(srv)
	require.NoError(t, err)

	remote, err := NewRemoteRegistryFromClient(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(func() { remote.Close() })
	return remote
}

func TestServerIntegration(t *testing.T) {
	t.Run("exposes registry tools", func(t *testing.T) {
		registry := tool.NewRegistry().Add(
			tool.Func("echo", "Echo text", func(ctx context.Context, args struct {
				Text string `json:"text"`
			}) (string, error) {
				return args.Text, nil
			}),
			tool.Func("add", "Add numbers", func(ctx context.Context, args struct {
				A int `json:"a"`
				B int `json:"b"`
			}) (string, error) {
				data, err := json.Marshal(args.A + args.B)
				return string(data), err
			}),
		)

		remote := newTestRemote(t, registry)

		assert.Equal(t, 2, remote.Len())
		assert.ElementsMatch(t, []string{"echo", "add"}, remote.Names())

		echoTool, ok := remote.GetTool("echo")
		assert.True(t, ok)
		assert.Equal(t, "Echo text", echoTool.Description)
	})

	t.Run("executes remote tools", func(t *testing.T) {
		registry := tool.NewRegistry().Add(
			tool.Func("add", "Add numbers", func(ctx context.Context, args struct {
				A int `json:"a"`
				B int `json:"b"`
			}) (string, error) {
				data, err := json.Marshal(args.A + args.B)
				return string(data), err
			}),
		)

		remote := newTestRemote(t, registry)

		result, err := remote.Execute(context.Background(), ai.ToolCall{
			ID:        "call_123",
			Name:      "add",
			Arguments: `{"a": 10, "b": 5}`,
		})
		require.NoError(t, err)

		assert.Equal(t, "call_123", result.ToolCallID)
		assert.Equal(t, "15", result.Content)
		assert.False(t, result.IsError)
	})

	t.Run("reports tool errors as error results", func(t *testing.T) {
		registry := tool.NewRegistry().Add(
			tool.Func("fail", "Always fails", func(ctx context.Context, args struct{}) (string, error) {
				return "", assert.AnError
			}),
		)

		remote := newTestRemote(t, registry)

		result, err := remote.Execute(context.Background(), ai.ToolCall{ID: "c", Name: "fail", Arguments: "{}"})
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})

	t.Run("refreshes tool list", func(t *testing.T) {
		registry := tool.NewRegistry().Add(
			tool.Func("initial", "Initial tool", func(ctx context.Context, args struct{}) (string, error) {
				return "ok", nil
			}),
		)

		remote := newTestRemote(t, registry)
		require.Equal(t, 1, remote.Len())

		require.NoError(t, remote.Refresh(context.Background()))
		assert.Equal(t, 1, remote.Len())
	})
}

func TestMountTools(t *testing.T) {
	source := tool.NewRegistry().Add(
		tool.Func("ping", "Ping pong", func(ctx context.Context, args struct{}) (string, error) {
			return "pong", nil
		}),
	)
	remote := newTestRemote(t, source)

	local := tool.NewRegistry()
	require.NoError(t, remote.MountTools(local))
	require.True(t, local.Len() == 1)

	result, err := local.Execute(context.Background(), ai.ToolCall{ID: "c1", Name: "ping", Arguments: "{}"})
	require.NoError(t, err)
	assert.Equal(t, "pong", result.Content)
	assert.False(t, result.IsError)
}
