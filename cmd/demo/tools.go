package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/toolweave/toolweave/tool"
)

// Tool argument types with schema tags
type MarketDataArgs struct {
	Material string `json:"material" desc:"Construction material, e.g. structural steel, ready-mix concrete" required:"true"`
	Region   string `json:"region" desc:"Market region, e.g. pacific northwest"`
}

type CostEstimateArgs struct {
	Scope    string  `json:"scope" desc:"Work scope to estimate, e.g. foundation, framing, electrical rough-in" required:"true"`
	AreaSqFt float64 `json:"area_sq_ft" desc:"Built area in square feet" required:"true"`
	Stories  int     `json:"stories" desc:"Number of stories"`
	Finish   string  `json:"finish" desc:"Finish grade" enum:"economy,standard,premium"`
}

type SubcontractorBidArgs struct {
	Trade  string `json:"trade" desc:"Trade to solicit, e.g. plumbing, roofing, hvac" required:"true"`
	Region string `json:"region" desc:"Project region"`
}

// unit prices per material, dollars
var marketPrices = map[string]string{
	"structural steel":   `{"material": "structural steel", "unit": "ton", "price": 1180, "trend": "down 2% this quarter"}`,
	"ready-mix concrete": `{"material": "ready-mix concrete", "unit": "cubic yard", "price": 165, "trend": "flat"}`,
	"lumber":             `{"material": "lumber", "unit": "thousand board feet", "price": 485, "trend": "up 4% this quarter"}`,
	"rebar":              `{"material": "rebar", "unit": "ton", "price": 920, "trend": "down 1% this quarter"}`,
}

var scopeRates = map[string]float64{
	"foundation":          28,
	"framing":             42,
	"electrical rough-in": 14,
	"plumbing rough-in":   16,
	"roofing":             11,
}

var tradeBids = map[string]string{
	"plumbing": `{"trade": "plumbing", "bids": [{"firm": "Cascade Mechanical", "amount": 184000}, {"firm": "Sound Plumbing Co", "amount": 197500}]}`,
	"roofing":  `{"trade": "roofing", "bids": [{"firm": "Summit Roofing", "amount": 96000}, {"firm": "Rainier Exteriors", "amount": 89900}]}`,
	"hvac":     `{"trade": "hvac", "bids": [{"firm": "Evergreen Air", "amount": 232000}, {"firm": "Pacific Climate", "amount": 218400}]}`,
}

// newProcurementRegistry builds the mock procurement toolset. Handlers
// return canned JSON so the demo runs without any external data feeds.
func newProcurementRegistry() *tool.Registry {
	registry := tool.NewRegistry()

	tool.MustRegisterFunc(registry, "get_market_data", "Get current market pricing for a construction material",
		func(ctx context.Context, args MarketDataArgs) (string, error) {
			if data, ok := marketPrices[strings.ToLower(args.Material)]; ok {
				return data, nil
			}
			return "", fmt.Errorf("no market data for material %q", args.Material)
		},
	)

	tool.MustRegisterFunc(registry, "estimate_cost", "Estimate cost for a work scope given built area",
		func(ctx context.Context, args CostEstimateArgs) (string, error) {
			rate, ok := scopeRates[strings.ToLower(args.Scope)]
			if !ok {
				return "", fmt.Errorf("no rate table for scope %q", args.Scope)
			}
			multiplier := 1.0
			switch args.Finish {
			case "economy":
				multiplier = 0.85
			case "premium":
				multiplier = 1.35
			}
			total := rate * args.AreaSqFt * multiplier
			return fmt.Sprintf(`{"scope": %q, "area_sq_ft": %.0f, "estimate": %.0f, "basis": "unit rate %.0f/sqft"}`,
				args.Scope, args.AreaSqFt, total, rate), nil
		},
	)

	tool.MustRegisterFunc(registry, "get_subcontractor_bids", "Fetch current subcontractor bids for a trade",
		func(ctx context.Context, args SubcontractorBidArgs) (string, error) {
			if bids, ok := tradeBids[strings.ToLower(args.Trade)]; ok {
				return bids, nil
			}
			return "", fmt.Errorf("no open bids for trade %q", args.Trade)
		},
	)

	return registry
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
