package google

import (
	"encoding/json"
	"fmt"
	"strings"

	ai "github.com/toolweave/toolweave"
	"google.golang.org/genai"
)

func convertMessages(messages []ai.Message) []*genai.Content {
	var contents []*genai.Content

	for _, msg := range messages {
		role := "user"
		switch msg.Role {
		case ai.RoleUser:
			role = "user"
		case ai.RoleAssistant:
			role = "model"
		case ai.RoleSystem:
			// Gemini has no dedicated system role in contents; send as user.
			role = "user"
		case ai.RoleTool:
			// Tool results travel as user messages with FunctionResponse parts.
			role = "user"
		}

		var parts []*genai.Part
		if msg.Content != "" {
			parts = append(parts, &genai.Part{Text: msg.Content})
		}

		for _, tc := range msg.ToolCalls {
			var args map[string]any
			json.Unmarshal([]byte(tc.Arguments), &args)
			parts = append(parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					Name: tc.Name,
					Args: args,
				},
			})
		}

		for _, tr := range msg.ToolResults {
			var result map[string]any
			if err := json.Unmarshal([]byte(tr.Content), &result); err != nil {
				result = map[string]any{"result": tr.Content}
			}
			if tr.IsError {
				result = map[string]any{"error": tr.Content}
			}
			parts = append(parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					Name:     functionNameFromCallID(tr.ToolCallID),
					Response: result,
				},
			})
		}

		if len(parts) > 0 {
			contents = append(contents, &genai.Content{
				Role:  role,
				Parts: parts,
			})
		}
	}

	return contents
}

// extractToolCalls pulls FunctionCall parts out of a response. Gemini does
// not assign call IDs, so one is synthesized from the position and the
// function name; functionNameFromCallID reverses the mapping when results
// are sent back.
func extractToolCalls(parts []*genai.Part) []ai.ToolCall {
	var calls []ai.ToolCall
	for i, part := range parts {
		if part.FunctionCall != nil {
			args, _ := json.Marshal(part.FunctionCall.Args)
			calls = append(calls, ai.ToolCall{
				ID:        fmt.Sprintf("call_%d_%s", i, part.FunctionCall.Name),
				Name:      part.FunctionCall.Name,
				Arguments: string(args),
			})
		}
	}
	return calls
}

func functionNameFromCallID(id string) string {
	// Synthesized IDs look like "call_<index>_<name>".
	if parts := strings.SplitN(id, "_", 3); len(parts) == 3 && parts[0] == "call" {
		return parts[2]
	}
	return id
}
