// Package router finds and prices multi-hop trade routes over a set of
// pools. A Table is an immutable snapshot: build one from current pool
// states, quote against it, and rebuild it when states change. Quoting a
// route never mutates the table; the returned RouteQuote carries the
// post-trade pool states instead.
package router

import (
	"sort"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/crestswap/crest/pricing"
	"github.com/crestswap/crest/types"
)

// Route finding bounds.
const (
	// MaxHops is the longest route a quote will price.
	MaxHops = 5

	// MaxRouteCandidates caps how many candidate routes a search evaluates.
	MaxRouteCandidates = 10

	// DefaultMaxHops applies when a caller passes a hop limit outside
	// [1, MaxHops].
	DefaultMaxHops = 3
)

// Hop is one leg of a route: which pool to trade through and in which
// direction.
type Hop struct {
	Pool     string
	AssetIn  types.Asset
	AssetOut types.Asset
}

// RouteQuote is the result of pricing a route hop by hop.
type RouteQuote struct {
	AmountIn  types.Amount
	AmountOut types.Amount

	// HopAmounts holds the input followed by each hop's output, so it is one
	// longer than the route.
	HopAmounts []types.Amount

	// Pools maps each touched pool name to its post-trade state.
	Pools map[string]pricing.Pool
}

// edge is one direction of a pool in the asset graph.
type edge struct {
	pool     string
	assetOut types.Asset
}

// Table is an immutable snapshot of named pools plus the asset connectivity
// graph derived from them. Safe for concurrent use.
type Table struct {
	logger  log.Logger
	pools   map[string]pricing.Pool
	edges   map[types.Asset][]edge
	names   []string
	metrics *Metrics
}

// NewTable builds a snapshot from the given pools. The map is copied; later
// changes to it do not affect the table. Edges are laid out in sorted pool
// name order so searches are deterministic.
func NewTable(logger log.Logger, pools map[string]pricing.Pool) *Table {
	if logger == nil {
		logger = log.NewNopLogger()
	}

	t := &Table{
		logger:  logger,
		pools:   make(map[string]pricing.Pool, len(pools)),
		edges:   make(map[types.Asset][]edge),
		names:   make([]string, 0, len(pools)),
		metrics: GetMetrics(),
	}
	for name, pool := range pools {
		t.pools[name] = pool
		t.names = append(t.names, name)
	}
	sort.Strings(t.names)

	for _, name := range t.names {
		assetA, assetB := t.pools[name].Assets()
		t.edges[assetA] = append(t.edges[assetA], edge{pool: name, assetOut: assetB})
		t.edges[assetB] = append(t.edges[assetB], edge{pool: name, assetOut: assetA})
	}
	return t
}

// Pool returns the snapshot state of a named pool.
func (t *Table) Pool(name string) (pricing.Pool, bool) {
	pool, ok := t.pools[name]
	return pool, ok
}

// Names returns the pool names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// Len returns the number of pools in the table.
func (t *Table) Len() int { return len(t.pools) }

// QuoteRoute prices amountIn through the hops in order. Each hop trades
// against the accumulated state, so a route touching the same pool twice
// prices the second visit against the post-hop reserves. The hop chain must
// be continuous and the input amount must carry the first hop's input asset.
func (t *Table) QuoteRoute(hops []Hop, amountIn types.Amount) (*RouteQuote, error) {
	if len(hops) == 0 {
		return nil, types.ErrInvalidRoute.Wrap("route needs at least one hop")
	}
	if len(hops) > MaxHops {
		return nil, types.ErrInvalidRoute.Wrapf("route of %d hops exceeds the maximum of %d", len(hops), MaxHops)
	}
	if !amountIn.Asset.Equal(hops[0].AssetIn) {
		return nil, types.ErrAssetMismatch.Wrapf("input amount is %s, route starts with %s",
			amountIn.Asset, hops[0].AssetIn)
	}
	for i := 0; i < len(hops)-1; i++ {
		if !hops[i].AssetOut.Equal(hops[i+1].AssetIn) {
			return nil, types.ErrInvalidRoute.Wrapf("hop chain broken at hop %d: %s != %s",
				i, hops[i].AssetOut, hops[i+1].AssetIn)
		}
	}

	states := make(map[string]pricing.Pool, len(hops))
	hopAmounts := make([]types.Amount, 0, len(hops)+1)
	hopAmounts = append(hopAmounts, amountIn)

	carry := amountIn
	for i, hop := range hops {
		pool, ok := states[hop.Pool]
		if !ok {
			pool, ok = t.pools[hop.Pool]
			if !ok {
				return nil, types.ErrInvalidRoute.Wrapf("hop %d references unknown pool %q", i, hop.Pool)
			}
		}

		assetA, assetB := pool.Assets()
		match := hop.AssetIn.Equal(assetA) && hop.AssetOut.Equal(assetB) ||
			hop.AssetIn.Equal(assetB) && hop.AssetOut.Equal(assetA)
		if !match {
			return nil, types.ErrInvalidRoute.Wrapf("hop %d: pool %q holds %s/%s, not %s/%s",
				i, hop.Pool, assetA, assetB, hop.AssetIn, hop.AssetOut)
		}

		quote, next, err := pool.QuoteOutput(carry)
		if err != nil {
			t.metrics.QuoteFailures.Inc()
			return nil, errorsmod.Wrapf(err, "hop %d (pool %q)", i, hop.Pool)
		}

		states[hop.Pool] = next
		carry = quote.AmountOut
		hopAmounts = append(hopAmounts, carry)
	}

	return &RouteQuote{
		AmountIn:   amountIn,
		AmountOut:  carry,
		HopAmounts: hopAmounts,
		Pools:      states,
	}, nil
}

// FindBestRoute returns the route from assetIn to assetOut that delivers the
// most output for amountIn. A direct pool that accepts the trade wins over
// any multi-hop route; otherwise candidates found by breadth-first search
// (shortest first, up to MaxRouteCandidates) are simulated and the best
// final output is picked. maxHops outside [1, MaxHops] falls back to
// DefaultMaxHops.
func (t *Table) FindBestRoute(assetIn, assetOut types.Asset, amountIn types.Amount, maxHops int) ([]Hop, error) {
	start := time.Now()
	defer func() {
		t.metrics.BestRouteLatency.Observe(time.Since(start).Seconds())
	}()

	if maxHops <= 0 || maxHops > MaxHops {
		maxHops = DefaultMaxHops
	}
	if err := assetIn.Validate(); err != nil {
		return nil, err
	}
	if err := assetOut.Validate(); err != nil {
		return nil, err
	}
	if assetIn.Equal(assetOut) {
		return nil, types.ErrInvalidRoute.Wrap("route endpoints must differ")
	}
	if !amountIn.IsPositive() {
		return nil, types.ErrInvalidAmount.Wrap("route input must be positive")
	}
	if !amountIn.Asset.Equal(assetIn) {
		return nil, types.ErrAssetMismatch.Wrapf("input amount is %s, route starts at %s",
			amountIn.Asset, assetIn)
	}

	if route := t.bestDirect(assetIn, assetOut, amountIn); route != nil {
		return route, nil
	}

	if _, ok := t.edges[assetIn]; !ok {
		return nil, types.ErrRouteNotFound.Wrapf("no pools contain asset %s", assetIn)
	}
	if _, ok := t.edges[assetOut]; !ok {
		return nil, types.ErrRouteNotFound.Wrapf("no pools contain asset %s", assetOut)
	}

	candidates := t.routesBFS(assetIn, assetOut, maxHops)
	if len(candidates) == 0 {
		return nil, types.ErrRouteNotFound.Wrapf("no route from %s to %s within %d hops",
			assetIn, assetOut, maxHops)
	}

	var best []Hop
	var bestOut math.Int
	for _, route := range candidates {
		t.metrics.RoutesEvaluated.Inc()
		result, err := t.QuoteRoute(route, amountIn)
		if err != nil {
			t.logger.Debug("route simulation failed", "hops", len(route), "err", err)
			continue
		}
		if best == nil || result.AmountOut.Amount.GT(bestOut) {
			best = route
			bestOut = result.AmountOut.Amount
		}
	}
	if best == nil {
		return nil, types.ErrRouteNotFound.Wrapf("no viable route from %s to %s", assetIn, assetOut)
	}
	return best, nil
}

// bestDirect quotes every pool holding the pair and returns the single-hop
// route with the highest output, or nil when no direct pool accepts the
// trade.
func (t *Table) bestDirect(assetIn, assetOut types.Asset, amountIn types.Amount) []Hop {
	var best []Hop
	var bestOut math.Int
	for _, e := range t.edges[assetIn] {
		if !e.assetOut.Equal(assetOut) {
			continue
		}
		t.metrics.RoutesEvaluated.Inc()
		quote, _, err := t.pools[e.pool].QuoteOutput(amountIn)
		if err != nil {
			t.metrics.QuoteFailures.Inc()
			t.logger.Debug("direct pool rejected quote", "pool", e.pool, "err", err)
			continue
		}
		if best == nil || quote.AmountOut.Amount.GT(bestOut) {
			best = []Hop{{Pool: e.pool, AssetIn: assetIn, AssetOut: assetOut}}
			bestOut = quote.AmountOut.Amount
		}
	}
	return best
}

// FindAllRoutes enumerates routes from assetIn to assetOut up to maxHops,
// shortest first, capped at MaxRouteCandidates. Useful for display and
// analysis; the routes are not simulated.
func (t *Table) FindAllRoutes(assetIn, assetOut types.Asset, maxHops int) ([][]Hop, error) {
	if maxHops <= 0 || maxHops > MaxHops {
		maxHops = DefaultMaxHops
	}
	if assetIn.Equal(assetOut) {
		return nil, types.ErrInvalidRoute.Wrap("route endpoints must differ")
	}

	routes := t.routesBFS(assetIn, assetOut, maxHops)
	if len(routes) == 0 {
		return nil, types.ErrRouteNotFound.Wrapf("no routes from %s to %s within %d hops",
			assetIn, assetOut, maxHops)
	}
	return routes, nil
}

// routeNode is one frontier entry in the breadth-first search.
type routeNode struct {
	asset types.Asset
	hops  []Hop
}

// routesBFS walks the asset graph breadth-first and collects acyclic routes
// from assetIn to assetOut, up to maxHops legs and MaxRouteCandidates
// routes. Breadth-first order means shorter routes surface first.
func (t *Table) routesBFS(assetIn, assetOut types.Asset, maxHops int) [][]Hop {
	var routes [][]Hop
	queue := []routeNode{{asset: assetIn}}

	for len(queue) > 0 && len(routes) < MaxRouteCandidates {
		current := queue[0]
		queue = queue[1:]

		if len(current.hops) >= maxHops {
			continue
		}

		// Assets already on this path; stepping onto one again would cycle.
		visited := map[types.Asset]bool{assetIn: true}
		for _, hop := range current.hops {
			visited[hop.AssetOut] = true
		}

		for _, e := range t.edges[current.asset] {
			if visited[e.assetOut] {
				continue
			}

			path := make([]Hop, len(current.hops)+1)
			copy(path, current.hops)
			path[len(current.hops)] = Hop{Pool: e.pool, AssetIn: current.asset, AssetOut: e.assetOut}

			if e.assetOut.Equal(assetOut) {
				routes = append(routes, path)
				if len(routes) >= MaxRouteCandidates {
					break
				}
				continue
			}
			queue = append(queue, routeNode{asset: e.assetOut, hops: path})
		}
	}
	return routes
}
