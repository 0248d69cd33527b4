// Package cost - result structures.
//
// A Result nests per-route records under per-rate-card keys:
//
//	{
//	  "rate_card_rate_card_a": {
//	    "route_A--B": {"length": "50", "material": "verge", "cost": "3600"},
//	    "rate_card_rate_card_a_routes_total": "3600"
//	  }
//	}
//
// Results are constructed fresh on every calculation and never mutated after
// being returned.
package cost

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ResultKey returns the top-level result key for a normalized rate card key.
func ResultKey(cardKey string) string {
	return "rate_card_" + cardKey
}

// RouteDetail records the priced attributes of one route under one rate card.
type RouteDetail struct {
	Length   decimal.Decimal `json:"length"`
	Material string          `json:"material"`
	Cost     decimal.Decimal `json:"cost"`
}

// Breakdown is the per-rate-card fragment of a Result: every route's detail
// plus the summed total. For a graph with zero edges, Routes is empty and
// only the total (zero) survives into the marshaled form.
type Breakdown struct {
	// Key is the top-level result key, "rate_card_<normalized name>".
	Key string

	// Routes maps "route_<start>--<end>" keys to details.
	Routes map[string]RouteDetail

	// Total is the sum of all route costs under this card.
	Total decimal.Decimal
}

// TotalKey returns the summary key, "<key>_routes_total".
func (b *Breakdown) TotalKey() string {
	return b.Key + "_routes_total"
}

// MarshalJSON flattens the breakdown into a single mapping containing one
// entry per route and the "_routes_total" summary entry. Key order in the
// encoded form is lexicographic, so identical inputs produce byte-identical
// output.
func (b *Breakdown) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(b.Routes)+1)
	for key, detail := range b.Routes {
		flat[key] = detail
	}
	flat[b.TotalKey()] = b.Total
	return json.Marshal(flat)
}

// Result maps "rate_card_<normalized name>" keys to breakdowns, one entry
// per rate card evaluated.
type Result map[string]*Breakdown

// Merge copies every fragment entry of other into r.
func (r Result) Merge(other Result) {
	for key, breakdown := range other {
		r[key] = breakdown
	}
}

// BatchResult is the outcome of computing every loaded rate card: the merged
// result fragments of the cards that succeeded, and a per-card error map for
// the cards that failed. One card's failure never hides another card's
// result.
type BatchResult struct {
	Results Result
	Errors  map[string]error
}
