package validator

import (
	"fmt"

	"weft/engine/library"
)

// Result is the net transfer a valid hop sequence collapses to.
type Result struct {
	Sender   library.Account
	Receiver library.Account
	Amount   library.Amount
}

type tally struct {
	sent     library.Amount
	received library.Amount
}

// Validate checks that a hop sequence collapses to exactly one net sender and
// one net receiver, and that the declared originator is that sender. The
// ledger runs the same rule to decide acceptance, so a sequence rejected here
// would also be rejected there. Pure function: all working state is local, a
// second call with the same hops returns the same result.
func Validate(originator library.Account, hops []library.Hop) (Result, error) {
	tallies := make(map[library.Account]tally)
	var touched []library.Account
	for _, hop := range hops {
		src, ok := tallies[hop.Src]
		if !ok {
			touched = append(touched, hop.Src)
		}
		src.sent = src.sent.Add(hop.Amount)
		tallies[hop.Src] = src

		dest, ok := tallies[hop.Dest]
		if !ok {
			touched = append(touched, hop.Dest)
		}
		dest.received = dest.received.Add(hop.Amount)
		tallies[hop.Dest] = dest
	}

	var sender, receiver library.Account
	for _, account := range touched {
		t := tallies[account]
		if t.sent.GreaterThan(t.received) {
			if sender != "" {
				return Result{}, library.NewTransferError(library.ErrInvalidTransfer, "path sends from more than one account").
					With("firstSender", senderContext(sender, tallies)).
					With("secondSender", senderContext(account, tallies))
			}
			sender = account
		}
		if t.received.GreaterThan(t.sent) {
			if receiver != "" {
				return Result{}, library.NewTransferError(library.ErrInvalidTransfer, "path sends to more than one account").
					With("firstReceiver", senderContext(receiver, tallies)).
					With("secondReceiver", senderContext(account, tallies))
			}
			receiver = account
		}
	}
	if sender == "" {
		return Result{}, library.NewTransferError(library.ErrInvalidTransfer, "transaction must have a net sender")
	}
	if receiver == "" {
		return Result{}, library.NewTransferError(library.ErrInvalidTransfer, "transaction must have a net receiver")
	}
	if sender != originator {
		return Result{}, library.NewTransferError(library.ErrUnauthorizedSender, "path sends from %s, not from the declared originator %s", sender, originator)
	}
	if !tallies[sender].received.IsZero() {
		return Result{}, library.NewTransferError(library.ErrInvalidTransfer, "net sender %s is also receiving", sender).
			With("received", tallies[sender].received.String())
	}
	if !tallies[receiver].sent.IsZero() {
		return Result{}, library.NewTransferError(library.ErrInvalidTransfer, "net receiver %s is also sending", receiver).
			With("sent", tallies[receiver].sent.String())
	}
	if !tallies[sender].sent.Equal(tallies[receiver].received) {
		return Result{}, library.NewTransferError(library.ErrInvalidTransfer, "sent and received amounts are unequal").
			With("sent", tallies[sender].sent.String()).
			With("received", tallies[receiver].received.String())
	}
	if len(touched) > len(hops)+1 {
		return Result{}, library.NewTransferError(library.ErrTooManyParticipants, "%d accounts touched by %d hops", len(touched), len(hops))
	}
	return Result{
		Sender:   sender,
		Receiver: receiver,
		Amount:   tallies[sender].sent,
	}, nil
}

func senderContext(account library.Account, tallies map[library.Account]tally) string {
	t := tallies[account]
	return fmt.Sprintf("%s sent=%s received=%s", account, t.sent.String(), t.received.String())
}
