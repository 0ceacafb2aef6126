package toolweave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions(t *testing.T) {
	t.Run("defaults are zero values", func(t *testing.T) {
		opts := ApplyOptions()

		assert.Empty(t, opts.Model)
		assert.Zero(t, opts.MaxTokens)
		assert.Nil(t, opts.Temperature)
		assert.Empty(t, opts.Tools)
		assert.Empty(t, opts.ToolChoice)
	})

	t.Run("applies all options", func(t *testing.T) {
		tools := []Tool{{Name: "lookup"}}

		opts := ApplyOptions(
			WithModel("gemini-2.0-flash"),
			WithMaxTokens(512),
			WithTemperature(0.3),
			WithTools(tools),
			WithToolChoice(ToolChoiceAuto),
		)

		assert.Equal(t, "gemini-2.0-flash", opts.Model)
		assert.Equal(t, 512, opts.MaxTokens)
		require.NotNil(t, opts.Temperature)
		assert.Equal(t, 0.3, *opts.Temperature)
		assert.Equal(t, tools, opts.Tools)
		assert.Equal(t, ToolChoiceAuto, opts.ToolChoice)
	})
}
