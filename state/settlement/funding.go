package settlement

import (
	"context"
	"fmt"
	"time"

	"weft/engine/library"
)

// AwaitFunding blocks until the ticket has reached the head of its account's
// queue and the observed funding balance covers costEstimate. There is no
// hard timeout: the poll runs until it succeeds or ctx is cancelled.
// Cancellation leaves the ticket Queued at its original position, so it keeps
// its claim on the next nonce without blocking other accounts.
func (c *Coordinator) AwaitFunding(ctx context.Context, t *Ticket, costEstimate library.Amount, observer BalanceObserver) error {
	// the nonce may only be reserved once this ticket is at the head, waiting
	// out the funding poll for a non-head ticket could allocate nonces out of
	// arrival order
	select {
	case <-t.turn:
	case <-ctx.Done():
		return ctx.Err()
	}
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		balance, err := observer.BalanceOf(t.Account)
		if err != nil {
			library.LogCLI(fmt.Sprintf("funding observer for %s: %s", t.Account, err.Error()), 2)
		} else if balance.GreaterThanOrEqual(costEstimate) {
			return nil
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
