package toolweave

import "github.com/google/uuid"

// Role identifies who produced a message in a conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// Message is one turn of a conversation. Besides plain text a message can
// carry tool traffic: an assistant turn may request tool calls, and a tool
// turn carries their results back to the model.
type Message struct {
	// ID is an optional unique identifier for the message.
	ID      string `json:"id,omitempty"`
	Role    Role   `json:"role"`
	Content string `json:"content,omitempty"`
	// ToolCalls holds invocation requests. Set only on assistant turns.
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
	// ToolResults holds execution results. Set only on tool turns.
	ToolResults []ToolResult `json:"toolResults,omitempty"`
}

// GenerateMessageID creates a unique message identifier.
func GenerateMessageID() string {
	return "msg-" + uuid.New().String()
}

// NewUserMessage creates a user message with the given text content.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewSystemMessage creates a system message with the given text content.
func NewSystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// Response is what a chat provider returned for one query: either final
// text, or a set of requested tool calls, or both. An empty ToolCalls
// slice means the model considers the conversation answered.
type Response struct {
	Content      string `json:"content,omitempty"`
	FinishReason string `json:"finishReason,omitempty"`
	Usage        Usage  `json:"usage"`
	// ToolCalls contains the tool invocations the model wants executed
	// before it can continue.
	ToolCalls []ToolCall `json:"toolCalls,omitempty"`
}

// Usage counts the tokens consumed by a request.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}
