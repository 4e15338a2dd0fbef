package pathfinder

import (
	"weft/engine/library"
)

// DefaultMaxHops bounds the total number of hops across all augmenting paths
// of one transfer. The ledger contract has a complexity limit due to block
// gas limits, settlements beyond this many hops cannot be included.
const DefaultMaxHops = 5

// Request asks for Value of any combination of units to move from From to To
// along the trust graph.
type Request struct {
	From  library.Account
	To    library.Account
	Value library.Amount
}

// edge is one candidate hop during the search: the issuer whose unit moves,
// the destination, and the residual capacity right now.
type edge struct {
	issuer   library.Account
	dest     library.Account
	capacity library.Amount
}

type parentEdge struct {
	from     library.Account
	issuer   library.Account
	capacity library.Amount
}
