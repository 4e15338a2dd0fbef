package settlement

import (
	"github.com/google/uuid"
	"weft/engine/library"
)

type TicketState int

const (
	Queued TicketState = iota
	Locked
	Completed
	Failed
)

func (s TicketState) String() string {
	switch s {
	case Queued:
		return "Queued"
	case Locked:
		return "Locked"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	}
	return "Unknown"
}

// Ticket is a per-account, ordered claim on the right to allocate the next
// submission nonce. Nonce is populated at Lock time, TxRef when the
// settlement completes. The state field is guarded by the owning account
// queue's mutex.
type Ticket struct {
	ID      uuid.UUID
	Account library.Account
	Nonce   int64
	TxRef   library.TxRef

	state TicketState
	turn  chan struct{} // closed when this ticket reaches the head of its account's queue
}

// BalanceObserver reports the funding balance of an account, polled while a
// ticket waits to lock.
type BalanceObserver interface {
	BalanceOf(account library.Account) (library.Amount, error)
}
