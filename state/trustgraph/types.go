package trustgraph

import (
	"golang.org/x/exp/slices"
	"weft/engine/library"
)

// Snapshot is an in-memory copy of the trust network: who has issued a
// personal unit, which accounts are organizations, the directed weighted
// trust edges, and the balances of every issued unit. The engine only ever
// computes against snapshots; the live ledger is mutated by the collaborator
// services, never by us.
type Snapshot struct {
	Issuers       map[library.Account]bool                               `json:"issuers"`
	Organizations map[library.Account]bool                               `json:"organizations"`
	Limits        map[library.Account]map[library.Account]int64          `json:"limits"`
	Balances      map[library.Account]map[library.Account]library.Amount `json:"balances"`
}

func NewSnapshot() Snapshot {
	return Snapshot{
		Issuers:       make(map[library.Account]bool),
		Organizations: make(map[library.Account]bool),
		Limits:        make(map[library.Account]map[library.Account]int64),
		Balances:      make(map[library.Account]map[library.Account]library.Amount),
	}
}

// Trust returns the percentage of its own balance that truster is willing to
// hold of issuer's unit. An absent edge is 0.
func (s Snapshot) Trust(truster, issuer library.Account) int64 {
	if edges, ok := s.Limits[truster]; ok {
		return edges[issuer]
	}
	return 0
}

// Balance returns holder's balance of issuer's unit.
func (s Snapshot) Balance(issuer, holder library.Account) library.Amount {
	if balances, ok := s.Balances[issuer]; ok {
		return balances[holder]
	}
	return library.NewAmount(0)
}

// Clone returns a deep copy so that simulated balance changes never leak into
// the snapshot the caller handed us.
func (s Snapshot) Clone() Snapshot {
	c := NewSnapshot()
	for account, issued := range s.Issuers {
		c.Issuers[account] = issued
	}
	for account, org := range s.Organizations {
		c.Organizations[account] = org
	}
	for truster, edges := range s.Limits {
		c.Limits[truster] = make(map[library.Account]int64)
		for issuer, percent := range edges {
			c.Limits[truster][issuer] = percent
		}
	}
	for issuer, balances := range s.Balances {
		c.Balances[issuer] = make(map[library.Account]library.Amount)
		for holder, amount := range balances {
			c.Balances[issuer][holder] = amount
		}
	}
	return c
}

// Accounts returns every account the snapshot knows about, sorted, so that
// iteration order is reproducible for identical snapshots.
func (s Snapshot) Accounts() []library.Account {
	seen := make(map[library.Account]struct{})
	for account := range s.Issuers {
		seen[account] = struct{}{}
	}
	for account := range s.Organizations {
		seen[account] = struct{}{}
	}
	for truster, edges := range s.Limits {
		seen[truster] = struct{}{}
		for issuer := range edges {
			seen[issuer] = struct{}{}
		}
	}
	for issuer, balances := range s.Balances {
		seen[issuer] = struct{}{}
		for holder := range balances {
			seen[holder] = struct{}{}
		}
	}
	var accounts []library.Account
	for account := range seen {
		accounts = append(accounts, account)
	}
	slices.Sort(accounts)
	return accounts
}
