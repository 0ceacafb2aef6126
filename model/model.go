// Package model catalogs known chat models and maps model identifiers
// to their provider. The catalog is a convenience; any model id string
// accepted by a provider works even when it is not listed here.
package model

import (
	"strings"

	ai "github.com/toolweave/toolweave"
)

// ChatModel represents a chat/completion model from any provider.
type ChatModel struct {
	id       string
	provider ai.Provider
}

// String returns the API identifier for this model.
func (m ChatModel) String() string { return m.id }

// Provider returns which provider this model belongs to.
func (m ChatModel) Provider() ai.Provider { return m.provider }

// Anthropic Claude models
var (
	ClaudeOpus45   = ChatModel{id: "claude-opus-4-5", provider: ai.ProviderAnthropic}
	ClaudeSonnet45 = ChatModel{id: "claude-sonnet-4-5", provider: ai.ProviderAnthropic}
	ClaudeHaiku45  = ChatModel{id: "claude-haiku-4-5", provider: ai.ProviderAnthropic}

	// DefaultClaudeModel is the recommended default Anthropic model.
	DefaultClaudeModel = ClaudeSonnet45
)

// OpenAI GPT models
var (
	GPT52    = ChatModel{id: "gpt-5.2", provider: ai.ProviderOpenAI}
	GPT51    = ChatModel{id: "gpt-5.1", provider: ai.ProviderOpenAI}
	GPT5Mini = ChatModel{id: "gpt-5-mini", provider: ai.ProviderOpenAI}
	O4Mini   = ChatModel{id: "o4-mini", provider: ai.ProviderOpenAI}

	// DefaultGPTModel is the recommended default OpenAI model.
	DefaultGPTModel = GPT52
)

// Google Gemini models
var (
	Gemini3Pro        = ChatModel{id: "gemini-3.0-pro", provider: ai.ProviderGoogle}
	Gemini25Pro       = ChatModel{id: "gemini-2.5-pro", provider: ai.ProviderGoogle}
	Gemini25Flash     = ChatModel{id: "gemini-2.5-flash", provider: ai.ProviderGoogle}
	Gemini25FlashLite = ChatModel{id: "gemini-2.5-flash-lite", provider: ai.ProviderGoogle}

	// DefaultGeminiModel is the recommended default Google model.
	DefaultGeminiModel = Gemini25Flash
)

var catalog = []ChatModel{
	ClaudeOpus45, ClaudeSonnet45, ClaudeHaiku45,
	GPT52, GPT51, GPT5Mini, O4Mini,
	Gemini3Pro, Gemini25Pro, Gemini25Flash, Gemini25FlashLite,
}

// Lookup returns the cataloged model for an API identifier.
func Lookup(id string) (ChatModel, bool) {
	for _, m := range catalog {
		if m.id == id {
			return m, true
		}
	}
	return ChatModel{}, false
}

// ProviderFor maps a model identifier to its provider. Cataloged models
// resolve exactly; unknown identifiers fall back to naming conventions
// (claude-*, gpt-*/o*-*, gemini-*). Returns "" when the identifier
// matches no known convention.
func ProviderFor(id string) ai.Provider {
	if m, ok := Lookup(id); ok {
		return m.provider
	}
	switch {
	case strings.HasPrefix(id, "claude"):
		return ai.ProviderAnthropic
	case strings.HasPrefix(id, "gpt"), strings.HasPrefix(id, "o1"),
		strings.HasPrefix(id, "o3"), strings.HasPrefix(id, "o4"):
		return ai.ProviderOpenAI
	case strings.HasPrefix(id, "gemini"), strings.HasPrefix(id, "models/gemini"):
		return ai.ProviderGoogle
	}
	return ""
}
