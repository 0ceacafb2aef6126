package toolweave

import "context"

// ChatProvider defines the interface for AI chat providers.
// A provider is the reasoning channel of the tool loop: given a
// conversation it returns either final text or tool invocation requests.
type ChatProvider interface {
	// Chat sends a conversation and returns a complete response.
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}
