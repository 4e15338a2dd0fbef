package trustgraph

import (
	"github.com/shopspring/decimal"
	"weft/engine/library"
)

// SendLimit returns the maximum amount of issuer's unit that src can send to
// dest right now. Pure and deterministic: the ledger runs the same rule
// against live balances at acceptance time and the two must agree
// bit-for-bit, so this function must never be "improved" unilaterally.
func SendLimit(s Snapshot, issuer, src, dest library.Account) library.Amount {
	// there is no trust
	if s.Trust(dest, issuer) == 0 {
		return library.NewAmount(0)
	}
	// an account that has not issued a unit cannot hold anything, organizations excepted
	if !s.Issuers[dest] && !s.Organizations[dest] {
		return library.NewAmount(0)
	}
	// if the unit doesn't exist, it can't be sent or accepted
	if !s.Issuers[issuer] {
		return library.NewAmount(0)
	}
	srcBalance := s.Balance(issuer, src)
	// sending dest's own unit to dest, src can send 100% of their holdings;
	// same for organizations, their trust is binary
	if issuer == dest || s.Organizations[dest] {
		return srcBalance
	}
	destBalance := s.Balance(issuer, dest)
	// the maximum dest is willing to hold, based on their trust limit for this unit
	max := s.Balance(dest, dest).Mul(decimal.NewFromInt(s.Trust(dest, issuer)))
	max, _ = max.QuoRem(decimal.NewFromInt(100), 0)
	// a limit already overridden by direct transfers leaves no capacity. The
	// ledger treats this the same way, so it stays.
	if max.LessThan(destBalance) {
		return library.NewAmount(0)
	}
	return max.Sub(destBalance)
}
