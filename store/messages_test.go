package store

import (
	"context"
	"testing"

	ai "github.com/toolweave/toolweave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageStoreAppendAndRead(t *testing.T) {
	ms := NewMessageStore(nil)

	ms.Append(ai.NewSystemMessage("you are helpful"))
	ms.Append(ai.NewUserMessage("hello"), ai.Message{Role: ai.RoleAssistant, Content: "hi"})

	assert.Equal(t, 3, ms.Len())
	msgs := ms.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, ai.RoleSystem, msgs[0].Role)
	assert.Equal(t, "hello", msgs[1].Content)

	// Returned slice is a copy
	msgs[0].Content = "mutated"
	assert.Equal(t, "you are helpful", ms.Messages()[0].Content)
}

func TestMessageStoreLast(t *testing.T) {
	ms := NewMessageStore(nil)
	ms.Append(
		ai.NewUserMessage("one"),
		ai.NewUserMessage("two"),
		ai.NewUserMessage("three"),
	)

	last := ms.Last(2)
	require.Len(t, last, 2)
	assert.Equal(t, "two", last[0].Content)
	assert.Equal(t, "three", last[1].Content)

	assert.Len(t, ms.Last(10), 3)
	assert.Nil(t, ms.Last(0))
}

func TestMessageStoreClear(t *testing.T) {
	ms := NewMessageStoreFrom([]ai.Message{ai.NewUserMessage("hello")}, nil)
	require.Equal(t, 1, ms.Len())

	ms.Clear()
	assert.Equal(t, 0, ms.Len())
}

func TestMessageStoreSyncReload(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	ms := NewMessageStore(adapter)
	ms.Append(ai.NewUserMessage("persist me"))
	require.NoError(t, ms.Sync(ctx, "conv-1"))

	restored := NewMessageStore(adapter)
	require.NoError(t, restored.Reload(ctx, "conv-1"))
	require.Equal(t, 1, restored.Len())
	assert.Equal(t, "persist me", restored.Messages()[0].Content)
}

func TestMessageStoreReloadMissingKey(t *testing.T) {
	ms := NewMessageStore(nil)

	err := ms.Reload(context.Background(), "absent")

	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMessageStorePreservesToolTraffic(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	ms := NewMessageStore(adapter)
	ms.Append(ai.Message{
		Role: ai.RoleAssistant,
		ToolCalls: []ai.ToolCall{
			{ID: "call-1", Name: "lookup", Arguments: `{"q":"rebar"}`},
		},
	})
	ms.Append(ai.NewToolResultMessage(ai.ToolResult{
		ToolCallID: "call-1",
		Content:    "found it",
		Source:     ai.SourceLive,
	}))
	require.NoError(t, ms.Sync(ctx, "conv-2"))

	restored := NewMessageStore(adapter)
	require.NoError(t, restored.Reload(ctx, "conv-2"))

	msgs := restored.Messages()
	require.Len(t, msgs, 2)
	require.Len(t, msgs[0].ToolCalls, 1)
	assert.Equal(t, "lookup", msgs[0].ToolCalls[0].Name)
	require.Len(t, msgs[1].ToolResults, 1)
	assert.Equal(t, "call-1", msgs[1].ToolResults[0].ToolCallID)
}
