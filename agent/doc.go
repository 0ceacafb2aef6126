// Package agent provides the autonomous tool-calling loop.
//
// An agent orchestrates a conversation in which the model can request tool
// calls. Requested batches are executed concurrently with per-call error
// isolation and result caching, the results are fed back to the model, and
// the loop repeats until the model produces a final answer or the iteration
// limit is reached.
//
// # Basic Usage
//
// Create a registry, register tools with their handlers, then create an
// agent:
//
//	type WeatherArgs struct {
//	    Location string `json:"location" desc:"City name" required:"true"`
//	}
//
//	registry := tool.NewRegistry()
//	tool.MustRegisterFunc(registry, "get_weather", "Get current weather",
//	    func(ctx context.Context, args WeatherArgs) (string, error) {
//	        return fmt.Sprintf(`{"temp": 72, "location": %q}`, args.Location), nil
//	    },
//	)
//
//	a := agent.New(client, registry)
//	result, err := a.Run(ctx, messages, agent.WithMaxIterations(5))
//
// # Iteration Limit
//
// Each run makes at most MaxIterations model queries (default 3). When the
// model still requests tools on the final iteration the run ends with a
// best-effort answer and Result.Truncated set, so callers can tell a
// natural completion from a forced one.
//
// # Streaming Events
//
// RunStream returns a channel of lifecycle events (run, step, and tool call
// boundaries, including cache hits) for driving progress output:
//
//	for ev := range a.RunStream(ctx, messages) {
//	    switch ev.Type {
//	    case event.ToolCallStart:
//	        fmt.Printf("calling %s\n", ev.ToolCall.Name)
//	    case event.RunEnd:
//	        fmt.Println("done")
//	    }
//	}
package agent
