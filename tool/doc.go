// Package tool provides the tool registry used by the agent loop.
//
// A registry maps tool names to handler functions and carries the tool
// definitions (name, description, JSON schema) that are offered to the
// model. Registries are safe for concurrent use.
//
// Register tools with typed argument structs:
//
//	registry := tool.NewRegistry().Add(
//	    tool.Func("get_market_data", "Fetch market rates for a trade scope",
//	        func(ctx context.Context, args MarketArgs) (string, error) {
//	            return fetchMarketData(args.Scope)
//	        }),
//	)
//
// The JSON schema for MarketArgs is generated via reflection; see
// [github.com/toolweave/toolweave.SchemaFor] for the supported struct tags.
//
// Handler errors are captured as error results rather than propagated, so a
// failing tool never aborts the calling loop. An unregistered tool name
// surfaces as [ErrToolNotFound], which callers are expected to convert into
// an error result as well.
package tool
