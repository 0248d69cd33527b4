// Package cost implements the network build cost engine.
//
// The engine is pure computation over a loaded topology graph and a set of
// rate cards: it performs no I/O and never mutates its inputs. Per route
// (one graph edge), the build cost is
//
//	nodePrice(start type) + length × trenchRate(material) + nodePrice(end type)
//
// with price lookups defaulting to zero for keys the card does not price.
// The shape of an edge itself is not permissive: a route missing its length
// or material attribute is a data integrity error.
package cost

import (
	"context"
	"runtime"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"netcost/core/graph"
	"netcost/core/ratecard"
	"netcost/internal/errors"
)

// Route is one graph edge considered as a priceable unit of construction:
// two endpoint nodes plus a trench segment between them.
type Route struct {
	From  string
	To    string
	Attrs graph.Attrs
}

// Key returns the route's result key, "route_<from>--<to>".
func (r Route) Key() string {
	return "route_" + r.From + "--" + r.To
}

// Length returns the route's length in meters. A missing or non-numeric
// length attribute is a data integrity error.
func (r Route) Length() (decimal.Decimal, error) {
	raw, ok := r.Attrs["length"]
	if !ok {
		return decimal.Zero, errors.Integrity("edge " + r.From + "--" + r.To + " has no length attribute")
	}
	length, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.Newf(errors.TypeIntegrity,
			"edge %s--%s has non-numeric length %q", r.From, r.To, raw)
	}
	return length, nil
}

// Material returns the route's trench material. A missing material attribute
// is a data integrity error.
func (r Route) Material() (string, error) {
	material, ok := r.Attrs["material"]
	if !ok {
		return "", errors.Integrity("edge " + r.From + "--" + r.To + " has no material attribute")
	}
	return material, nil
}

// Engine computes build costs for a graph against a set of rate cards.
type Engine struct {
	graph   *graph.Graph
	cards   *ratecard.Set
	log     *zap.Logger
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the number of concurrent route cost workers.
// Values below one fall back to one worker per CPU.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// New constructs an Engine over a loaded graph and rate card set.
// The logger is injected by the enclosing application; nil means no logging.
func New(g *graph.Graph, cards *ratecard.Set, log *zap.Logger, opts ...Option) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		graph: g,
		cards: cards,
		log:   log,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers < 1 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e
}

// Routes enumerates every edge of the graph exactly once as a Route, in the
// graph's stable edge order, so route keys are deterministic per run.
func (e *Engine) Routes() []Route {
	edges := e.graph.Edges()
	routes := make([]Route, len(edges))
	for i, edge := range edges {
		routes[i] = Route{From: edge.From, To: edge.To, Attrs: edge.Attrs}
	}
	return routes
}

// RouteCost computes the build cost of a single route under a rate card.
// Endpoint types and materials unknown to the card price at zero; a route
// without length or material fails with a data integrity error.
func (e *Engine) RouteCost(card *ratecard.Card, r Route) (decimal.Decimal, error) {
	detail, err := e.routeDetail(card, r)
	if err != nil {
		return decimal.Zero, err
	}
	return detail.Cost, nil
}

func (e *Engine) routeDetail(card *ratecard.Card, r Route) (RouteDetail, error) {
	length, err := r.Length()
	if err != nil {
		return RouteDetail{}, err
	}
	material, err := r.Material()
	if err != nil {
		return RouteDetail{}, err
	}

	startPrice := card.NodePrice(e.graph.NodeType(r.From))
	endPrice := card.NodePrice(e.graph.NodeType(r.To))
	trench := length.Mul(card.TrenchRate(material))

	return RouteDetail{
		Length:   length,
		Material: material,
		Cost:     startPrice.Add(trench).Add(endPrice),
	}, nil
}

// TotalCost computes the cost of every route under the named rate card and
// returns the result fragment for that card: one entry per route plus a
// "<key>_routes_total" summary. The name is normalized before lookup; an
// unknown card fails with a not found error and no partial result.
//
// Route costs are independent, so they are computed once across a bounded
// worker pool; both the per-route breakdown and the total derive from that
// single pass. A data integrity error on any route aborts the whole card's
// computation.
func (e *Engine) TotalCost(ctx context.Context, name string) (Result, error) {
	card, ok := e.cards.Get(name)
	if !ok {
		return nil, errors.NotFound("rate card", name)
	}

	routes := e.Routes()
	details := make([]RouteDetail, len(routes))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(e.workers)
	for i, route := range routes {
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			detail, err := e.routeDetail(card, route)
			if err != nil {
				return err
			}
			details[i] = detail
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	breakdown := &Breakdown{
		Key:    ResultKey(card.Key()),
		Routes: make(map[string]RouteDetail, len(routes)),
		Total:  decimal.Zero,
	}
	for i, route := range routes {
		breakdown.Routes[route.Key()] = details[i]
		breakdown.Total = breakdown.Total.Add(details[i].Cost)
	}

	e.log.Debug("rate card computed",
		zap.String("rate_card", card.Key()),
		zap.Int("routes", len(routes)),
		zap.String("total", breakdown.Total.String()))

	return Result{breakdown.Key: breakdown}, nil
}

// ProcessAll computes TotalCost for every loaded rate card, in sorted key
// order, and merges the fragments. A card that fails lands in the batch's
// per-card error map; it never aborts another card's computation and is
// never silently dropped.
func (e *Engine) ProcessAll(ctx context.Context) *BatchResult {
	batch := &BatchResult{
		Results: Result{},
		Errors:  make(map[string]error),
	}
	for _, key := range e.cards.Keys() {
		fragment, err := e.TotalCost(ctx, key)
		if err != nil {
			e.log.Error("rate card computation failed",
				zap.String("rate_card", key), zap.Error(err))
			batch.Errors[key] = err
			continue
		}
		e.log.Info("calculated costs for rate card", zap.String("rate_card", key))
		batch.Results.Merge(fragment)
	}
	return batch
}
