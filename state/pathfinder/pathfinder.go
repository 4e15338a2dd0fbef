package pathfinder

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"weft/engine/actors"
	"weft/engine/library"
	"weft/state/trustgraph"
)

// FindPath searches the trust graph for a hop sequence that moves
// request.Value from request.From to request.To. Ford-Fulkerson over a cloned
// working snapshot: breadth-first augmenting paths, push the bottleneck,
// update the simulated balances, repeat until the requested value is covered
// or the hop budget runs out. The snapshot handed in is never modified.
func FindPath(request Request, snapshot trustgraph.Snapshot) ([]library.Hop, error) {
	if len(request.From) == 0 || len(request.To) == 0 {
		return nil, library.NewTransferError(library.ErrInvalidOptions, "a transfer request needs both a from and a to account")
	}
	if request.From == request.To {
		return nil, library.NewTransferError(library.ErrInvalidOptions, "from and to are both %s", request.From)
	}
	if request.Value.Sign() <= 0 {
		return nil, library.NewTransferError(library.ErrInvalidOptions, "value must be positive, got %s", request.Value.String())
	}
	return findPath(request, snapshot, maxHops())
}

func maxHops() int {
	if c := actors.MakeOrGetConfig(); c != nil {
		if m := int(c.GetInt64("maxHops")); m > 0 {
			return m
		}
	}
	return DefaultMaxHops
}

func findPath(request Request, snapshot trustgraph.Snapshot, maxHops int) ([]library.Hop, error) {
	work := snapshot.Clone()
	var hops []library.Hop
	remaining := request.Value
	for remaining.Sign() > 0 {
		path, ok := augmentingPath(work, request.From, request.To, maxHops-len(hops))
		if !ok {
			// a path beyond the hop budget is a different failure than no path at all
			if _, reachable := augmentingPath(work, request.From, request.To, len(work.Accounts())); reachable {
				return nil, library.NewTransferError(library.ErrTooComplex, "moving the remaining %s from %s to %s takes more than %d hops", remaining.String(), request.From, request.To, maxHops).
					With("requested", request.Value.String()).
					With("remaining", remaining.String())
			}
			return nil, library.NewTransferError(library.ErrNotFound, "no path can move the remaining %s from %s to %s", remaining.String(), request.From, request.To).
				With("requested", request.Value.String()).
				With("found", request.Value.Sub(remaining).String())
		}
		flow := bottleneck(path)
		// cap the last push so the total equals the requested value exactly
		if flow.GreaterThan(remaining) {
			flow = remaining
		}
		src := request.From
		for _, e := range path {
			hop := library.Hop{Issuer: e.issuer, Src: src, Dest: e.dest, Amount: flow}
			if err := work.ApplyHop(hop); err != nil {
				return nil, library.NewTransferError(library.ErrNotFound, "simulating hop from %s to %s: %s", hop.Src, hop.Dest, err.Error())
			}
			hops = append(hops, hop)
			src = e.dest
		}
		remaining = remaining.Sub(flow)
	}
	return hops, nil
}

// augmentingPath finds the shortest chain of positive-capacity edges from
// `from` to `to` using at most maxDepth hops. Edge ordering is deterministic:
// descending residual capacity, then ascending destination account, so
// identical snapshots always produce identical paths.
func augmentingPath(work trustgraph.Snapshot, from, to library.Account, maxDepth int) ([]edge, bool) {
	if maxDepth <= 0 {
		return nil, false
	}
	accounts := work.Accounts()
	issuers := issuerList(work)
	parents := make(map[library.Account]parentEdge)
	visited := map[library.Account]bool{from: true}
	frontier := []library.Account{from}
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		var next []library.Account
		for _, u := range frontier {
			for _, e := range neighbours(work, u, accounts, issuers) {
				if visited[e.dest] {
					continue
				}
				visited[e.dest] = true
				parents[e.dest] = parentEdge{from: u, issuer: e.issuer, capacity: e.capacity}
				if e.dest == to {
					return unwind(parents, from, to), true
				}
				next = append(next, e.dest)
			}
		}
		frontier = next
	}
	return nil, false
}

func neighbours(work trustgraph.Snapshot, src library.Account, accounts, issuers []library.Account) []edge {
	var edges []edge
	for _, dest := range accounts {
		if dest == src {
			continue
		}
		if e, ok := bestIssuer(work, src, dest, issuers); ok {
			edges = append(edges, e)
		}
	}
	slices.SortFunc(edges, func(a, b edge) bool {
		switch a.capacity.Cmp(b.capacity) {
		case 1:
			return true
		case -1:
			return false
		}
		return a.dest < b.dest
	})
	return edges
}

// bestIssuer collapses the multi-unit overlay onto a single edge: of all the
// units that could move between src and dest right now, take the one with the
// most capacity. Ties keep the lowest issuer account, issuers is sorted.
func bestIssuer(work trustgraph.Snapshot, src, dest library.Account, issuers []library.Account) (edge, bool) {
	var best edge
	var found bool
	for _, issuer := range issuers {
		capacity := residual(work, issuer, src, dest)
		if capacity.Sign() <= 0 {
			continue
		}
		if !found || capacity.GreaterThan(best.capacity) {
			best = edge{issuer: issuer, dest: dest, capacity: capacity}
			found = true
		}
	}
	return best, found
}

// residual bounds the send limit by what src actually holds of the unit: the
// ledger would reject a hop overdrawing src even when dest would accept more.
func residual(work trustgraph.Snapshot, issuer, src, dest library.Account) library.Amount {
	limit := trustgraph.SendLimit(work, issuer, src, dest)
	if limit.Sign() <= 0 {
		return limit
	}
	return decimal.Min(limit, work.Balance(issuer, src))
}

func issuerList(work trustgraph.Snapshot) []library.Account {
	issuers := maps.Keys(work.Issuers)
	slices.Sort(issuers)
	return issuers
}

func unwind(parents map[library.Account]parentEdge, from, to library.Account) []edge {
	var path []edge
	node := to
	for node != from {
		p := parents[node]
		path = append(path, edge{issuer: p.issuer, dest: node, capacity: p.capacity})
		node = p.from
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func bottleneck(path []edge) library.Amount {
	flow := path[0].capacity
	for _, e := range path[1:] {
		if e.capacity.LessThan(flow) {
			flow = e.capacity
		}
	}
	return flow
}
