package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	ai "github.com/toolweave/toolweave"
	"github.com/toolweave/toolweave/tool"
)

// RemoteRegistry provides access to tools hosted on an MCP server.
// Tool calls are proxied to the remote server; the tool list is cached
// locally and can be refreshed with [RemoteRegistry.Refresh].
//
// RemoteRegistry is safe for concurrent use.
type RemoteRegistry struct {
	client *client.Client
	mu     sync.RWMutex
	tools  map[string]ai.Tool
}

// NewRemoteRegistry creates a RemoteRegistry connected to an MCP server
// via stdio. The command is the path to the server executable.
func NewRemoteRegistry(ctx context.Context, command string, env []string, args ...string) (*RemoteRegistry, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}

	return newRemoteRegistryFromClient(ctx, c)
}

// NewRemoteRegistrySSE creates a RemoteRegistry connected to an MCP
// server via SSE.
func NewRemoteRegistrySSE(ctx context.Context, baseURL string) (*RemoteRegistry, error) {
	c, err := client.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSE MCP client: %w", err)
	}

	return newRemoteRegistryFromClient(ctx, c)
}

// NewRemoteRegistryFromClient creates a RemoteRegistry from an existing
// MCP client. The client is started, initialized, and its tools fetched.
func NewRemoteRegistryFromClient(ctx context.Context, c *client.Client) (*RemoteRegistry, error) {
	return newRemoteRegistryFromClient(ctx, c)
}

func newRemoteRegistryFromClient(ctx context.Context, c *client.Client) (*RemoteRegistry, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "toolweave-mcp-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	r := &RemoteRegistry{
		client: c,
		tools:  make(map[string]ai.Tool),
	}

	if err := r.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	return r, nil
}

// Close closes the connection to the MCP server.
func (r *RemoteRegistry) Close() error {
	return r.client.Close()
}

// Refresh fetches the current list of tools from the MCP server.
func (r *RemoteRegistry) Refresh(ctx context.Context) error {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools = make(map[string]ai.Tool, len(result.Tools))
	for _, t := range result.Tools {
		r.tools[t.Name] = FromMCPTool(t)
	}

	return nil
}

// Tools returns all tools available from the MCP server.
func (r *RemoteRegistry) Tools() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ai.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	return tools
}

// GetTool retrieves a tool definition by name.
func (r *RemoteRegistry) GetTool(name string) (ai.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	return t, ok
}

// Names returns the names of all available tools.
func (r *RemoteRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Len returns the number of available tools.
func (r *RemoteRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Has returns true if the registry has a tool with the given name.
func (r *RemoteRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Execute calls a tool on the remote MCP server. Transport failures are
// reported as error results rather than returned errors, matching the
// local registry's isolation behavior.
func (r *RemoteRegistry) Execute(ctx context.Context, call ai.ToolCall) (ai.ToolResult, error) {
	result, err := r.client.CallTool(ctx, ToMCPCallToolRequest(call))
	if err != nil {
		return ai.ToolResult{
			ToolCallID: call.ID,
			Content:    err.Error(),
			IsError:    true,
			Source:     ai.SourceLive,
		}, nil
	}

	return FromMCPCallToolResult(call.ID, result), nil
}

// MountTools registers every remote tool into a local tool.Registry,
// proxying execution to the MCP server. Local tools and remote tools can
// then be offered to the model through one registry.
func (r *RemoteRegistry) MountTools(registry *tool.Registry) error {
	for _, t := range r.Tools() {
		name := t.Name
		handler := func(ctx context.Context, call ai.ToolCall) (string, error) {
			result, err := r.Execute(ctx, call)
			if err != nil {
				return "", err
			}
			if result.IsError {
				return "", &tool.ErrToolExecution{Name: name, Err: fmt.Errorf("%s", result.Content)}
			}
			return result.Content, nil
		}
		if err := registry.Register(t, handler); err != nil {
			return err
		}
	}
	return nil
}
