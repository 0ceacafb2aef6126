// Command demo runs a construction-procurement assistant against Gemini.
// The model plans a small procurement task with mock market-data, cost
// estimate, and subcontractor-bid tools. Tool results are cached, so a
// second identical run answers from the cache without re-invoking tools.
//
// Configure GOOGLE_API_KEY in the environment or a .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	ai "github.com/toolweave/toolweave"
	"github.com/toolweave/toolweave/agent"
	"github.com/toolweave/toolweave/cache"
	"github.com/toolweave/toolweave/client"
	"github.com/toolweave/toolweave/event"
	"github.com/toolweave/toolweave/model"
)

const prompt = "I'm pricing a 2-story, 4800 sq ft office build in the pacific northwest. " +
	"Get current structural steel pricing, estimate the foundation and framing cost, " +
	"and pull roofing bids. Then summarize a procurement recommendation."

func main() {
	godotenv.Load()
	ctx := context.Background()

	key := os.Getenv("GOOGLE_API_KEY")
	if key == "" {
		fmt.Fprintln(os.Stderr, "GOOGLE_API_KEY is not set")
		os.Exit(1)
	}

	c := client.New(client.Config{
		APIKeys:      client.APIKeys{Google: key},
		DefaultModel: model.DefaultGeminiModel.String(),
	})

	// Shared across both runs so the second run hits the cache.
	results := cache.New(cache.WithTTL(time.Hour))

	a := agent.New(c, newProcurementRegistry())

	fmt.Println("=== Run 1 (live tools) ===")
	runOnce(ctx, a, results)

	fmt.Println("\n=== Run 2 (cached tools) ===")
	runOnce(ctx, a, results)
}

func runOnce(ctx context.Context, a *agent.Agent, results *cache.Store) {
	fmt.Printf("\nUser: %s\n\n", prompt)

	events := a.RunStream(ctx, []ai.Message{ai.NewUserMessage(prompt)},
		agent.WithMaxIterations(5),
		agent.WithWorkerCount(4),
		agent.WithInvokeTimeout(30*time.Second),
		agent.WithCache(results),
		agent.WithTemperature(0.2),
	)

	for ev := range events {
		switch ev.Type {
		case event.StepStart:
			fmt.Printf("[iteration %d]\n", ev.Step)

		case event.ToolCallStart:
			fmt.Printf("  -> %s(%s)\n", ev.ToolCall.Name, ev.ToolCall.Arguments)

		case event.ToolCallResult:
			status := "ok"
			if ev.ToolResult.IsError {
				status = "error"
			}
			fmt.Printf("  <- [%s] %s\n", status, truncate(ev.ToolResult.Content, 100))

		case event.ToolCallCached:
			fmt.Printf("  <- [cached] %s\n", truncate(ev.ToolResult.Content, 100))

		case event.StepEnd:
			fmt.Printf("  [tokens: %d in, %d out]\n",
				ev.Response.Usage.InputTokens, ev.Response.Usage.OutputTokens)

		case event.RunEnd:
			fmt.Printf("\nTermination: %s\n", ev.Message)
			if ev.Response != nil && ev.Response.Content != "" {
				fmt.Printf("\n%s\n", ev.Response.Content)
			}

		case event.RunError:
			fmt.Fprintf(os.Stderr, "run failed: %v\n", ev.Error)
			return
		}
	}

	stats := results.Stats()
	fmt.Printf("\ncache: %d entries, %d hits, %d misses\n", stats.Entries, stats.Hits, stats.Misses)
}
