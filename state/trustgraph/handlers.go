package trustgraph

import (
	"fmt"

	"weft/engine/library"
)

// TrustLimitCeiling is the upper bound for trust edge weights.
const TrustLimitCeiling int64 = 100

// Issue marks the account as having issued its personal unit and sets the
// self-trust edge at 100. The self edge is set here and can never be changed.
func (s Snapshot) Issue(account library.Account) error {
	if s.Organizations[account] {
		return library.NewTransferError(library.ErrInvalidOptions, "organization %s cannot issue a unit", account)
	}
	if s.Issuers[account] {
		return library.NewTransferError(library.ErrInvalidOptions, "%s has already issued a unit", account)
	}
	s.Issuers[account] = true
	if _, ok := s.Limits[account]; !ok {
		s.Limits[account] = make(map[library.Account]int64)
	}
	s.Limits[account][account] = TrustLimitCeiling
	return nil
}

// SetOrganization marks the account as an organization. Organizations never
// issue a unit and only hold binary trust.
func (s Snapshot) SetOrganization(account library.Account) error {
	if s.Issuers[account] {
		return library.NewTransferError(library.ErrInvalidOptions, "%s has issued a unit and cannot become an organization", account)
	}
	s.Organizations[account] = true
	return nil
}

// SetTrust creates, changes or revokes the directed trust edge allowing
// truster to hold issuer's unit up to the given percentage of its own
// balance. Percent 0 revokes the edge and is equivalent to its absence.
func (s Snapshot) SetTrust(truster, issuer library.Account, percent int64) error {
	if percent < 0 || percent > TrustLimitCeiling {
		return library.NewTransferError(library.ErrInvalidOptions, "trust limit %d is outside 0-%d", percent, TrustLimitCeiling)
	}
	if truster == issuer && s.Issuers[truster] {
		return library.NewTransferError(library.ErrInvalidOptions, "the self-trust edge of %s is set at issuance and cannot be changed", truster)
	}
	if s.Organizations[truster] && percent != 0 && percent != TrustLimitCeiling {
		return library.NewTransferError(library.ErrInvalidOptions, "organization %s holds binary trust, limit must be 0 or %d, got %d", truster, TrustLimitCeiling, percent)
	}
	if percent == 0 {
		if edges, ok := s.Limits[truster]; ok {
			delete(edges, issuer)
		}
		return nil
	}
	if _, ok := s.Limits[truster]; !ok {
		s.Limits[truster] = make(map[library.Account]int64)
	}
	s.Limits[truster][issuer] = percent
	return nil
}

// SetBalance installs a balance as reported by the snapshot source.
func (s Snapshot) SetBalance(issuer, holder library.Account, amount library.Amount) error {
	if amount.Sign() < 0 {
		return library.NewTransferError(library.ErrInvalidOptions, "balance of %s held by %s cannot be negative", issuer, holder)
	}
	if !s.Issuers[issuer] {
		return library.NewTransferError(library.ErrInvalidOptions, "%s has not issued a unit, nobody can hold a balance of it", issuer)
	}
	if _, ok := s.Balances[issuer]; !ok {
		s.Balances[issuer] = make(map[library.Account]library.Amount)
	}
	s.Balances[issuer][holder] = amount
	return nil
}

// ApplyHop moves hop.Amount of hop.Issuer's unit from hop.Src to hop.Dest
// within this snapshot. Simulation only, the real ledger applies its own
// transfers.
func (s Snapshot) ApplyHop(hop library.Hop) error {
	srcBalance := s.Balance(hop.Issuer, hop.Src)
	if srcBalance.LessThan(hop.Amount) {
		return fmt.Errorf("%s holds %s of %s's unit, cannot move %s", hop.Src, srcBalance.String(), hop.Issuer, hop.Amount.String())
	}
	if _, ok := s.Balances[hop.Issuer]; !ok {
		s.Balances[hop.Issuer] = make(map[library.Account]library.Amount)
	}
	s.Balances[hop.Issuer][hop.Src] = srcBalance.Sub(hop.Amount)
	s.Balances[hop.Issuer][hop.Dest] = s.Balance(hop.Issuer, hop.Dest).Add(hop.Amount)
	return nil
}
