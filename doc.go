// Package toolweave provides a bounded tool-calling orchestration loop for
// LLM agents, with concurrent tool execution and TTL-based result caching.
//
// The library abstracts provider-specific chat APIs behind a common
// [ChatProvider] interface, so the same agent loop runs against Anthropic
// (Claude), OpenAI (GPT), or Google (Gemini) backends.
//
// # Core pieces
//
//   - [github.com/toolweave/toolweave/agent]: the iterative "ask model,
//     execute requested tools, feed results back" loop, bounded by a hard
//     iteration cap.
//   - [github.com/toolweave/toolweave/executor]: concurrent execution of a
//     batch of tool calls on a bounded worker pool, with per-call error
//     isolation and a sequential fallback.
//   - [github.com/toolweave/toolweave/cache]: a deterministic-keyed,
//     TTL-bounded store for tool results with optional durable backing.
//   - [github.com/toolweave/toolweave/tool]: the tool registry that maps
//     tool names to handlers.
//
// # Basic usage
//
// Register tools and run the agent loop:
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("get_market_data", "Fetch market rates for a trade scope",
//	        func(ctx context.Context, args MarketArgs) (string, error) {
//	            return fetchMarketData(args.Scope), nil
//	        }),
//	)
//
//	a := agent.New(chatClient, registry)
//
//	result, err := a.Run(ctx, []toolweave.Message{
//	    toolweave.NewUserMessage("Compare bids for project P-123"),
//	},
//	    agent.WithMaxIterations(3),
//	    agent.WithWorkerCount(4),
//	    agent.WithCacheTTL(time.Hour),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.FinalAnswer)
//
// Tool handler failures never abort the loop; each failing call is converted
// into an error result the model can see. Only a failure of the reasoning
// channel itself terminates a run abnormally.
//
// # Tool calling
//
// Tool parameter schemas are generated from Go structs:
//
//	type MarketArgs struct {
//	    Scope string `json:"scope" desc:"Trade scope, e.g. excavation" required:"true"`
//	}
//
// See [SchemaFor] for the supported struct tags.
//
// # Caching
//
// Expensive tool results are cached under a key derived from the tool name
// and its canonicalized arguments; repeat requests within the TTL are served
// from the cache without invoking the handler. Cache persistence to disk is
// best-effort: an unavailable cache directory degrades the store to
// memory-only operation without failing any call.
package toolweave
