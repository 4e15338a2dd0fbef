package trustgraph

import (
	"fmt"

	"weft/engine/library"
	"weft/state/validator"
)

// Settle walks a hop sequence the way the ledger does at acceptance time:
// every hop is checked against the send limit computed over the progressively
// updated balances, applied, and the whole sequence must then collapse to
// exactly one net sender and one net receiver. Returns the settled snapshot
// and the validated net transfer. The input snapshot is not modified.
func Settle(s Snapshot, originator library.Account, hops []library.Hop) (Snapshot, validator.Result, error) {
	work := s.Clone()
	for i, hop := range hops {
		if hop.Amount.Sign() <= 0 {
			return Snapshot{}, validator.Result{}, library.NewTransferError(library.ErrInvalidOptions, "hop %d: amount must be positive", i)
		}
		max := SendLimit(work, hop.Issuer, hop.Src, hop.Dest)
		if hop.Amount.GreaterThan(max) {
			return Snapshot{}, validator.Result{}, library.NewTransferError(library.ErrTrustLimitExceeded, "hop %d moves %s of %s's unit from %s to %s but the send limit is %s", i, hop.Amount.String(), hop.Issuer, hop.Src, hop.Dest, max.String()).
				With("hop", fmt.Sprintf("%d", i)).
				With("amount", hop.Amount.String()).
				With("sendLimit", max.String())
		}
		if err := work.ApplyHop(hop); err != nil {
			return Snapshot{}, validator.Result{}, library.NewTransferError(library.ErrInvalidTransfer, "hop %d: %s", i, err.Error())
		}
	}
	result, err := validator.Validate(originator, hops)
	if err != nil {
		return Snapshot{}, validator.Result{}, err
	}
	return work, result, nil
}
