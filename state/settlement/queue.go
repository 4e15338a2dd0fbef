package settlement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
	"weft/engine/actors"
	"weft/engine/library"
)

// Coordinator serializes settlement submission per originating account. Each
// account gets its own ticket FIFO, created on first use and pruned when
// empty; the coordinator mutex guards only the table, so settlement flows for
// distinct accounts never contend.
type Coordinator struct {
	mutex        *deadlock.Mutex
	accounts     map[library.Account]*accountQueue
	pollInterval time.Duration
}

type accountQueue struct {
	mutex   *deadlock.Mutex
	tickets *TicketQueue
}

func NewCoordinator() *Coordinator {
	return &Coordinator{
		mutex:        &deadlock.Mutex{},
		accounts:     make(map[library.Account]*accountQueue),
		pollInterval: pollInterval(),
	}
}

func pollInterval() time.Duration {
	if c := actors.MakeOrGetConfig(); c != nil {
		if ms := c.GetInt64("fundingPollIntervalMs"); ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return 500 * time.Millisecond
}

// Enqueue creates a Queued ticket at the back of the account's FIFO. The
// ticket's turn arrives when every earlier ticket for this account has been
// completed or failed.
func (c *Coordinator) Enqueue(account library.Account) *Ticket {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	q, ok := c.accounts[account]
	if !ok {
		q = &accountQueue{
			mutex:   &deadlock.Mutex{},
			tickets: NewTicketQueue(1),
		}
		c.accounts[account] = q
	}
	q.mutex.Lock()
	defer q.mutex.Unlock()
	t := &Ticket{
		ID:      uuid.New(),
		Account: account,
		state:   Queued,
		turn:    make(chan struct{}),
	}
	q.tickets.Push(t)
	if head, _ := q.tickets.Peek(); head == t {
		close(t.turn)
	}
	return t
}

// Lock transitions the ticket from Queued to Locked with the reserved nonce.
// Only the head ticket of its account may lock, so at most one ticket per
// account is ever Locked and nonces are allocated in ticket arrival order.
func (c *Coordinator) Lock(t *Ticket, nonce int64) error {
	q, ok := c.lookup(t.Account)
	if !ok {
		return fmt.Errorf("no settlement queue for %s, ticket %s was already removed", t.Account, t.ID)
	}
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if head, _ := q.tickets.Peek(); head != t {
		return fmt.Errorf("ticket %s is not at the head of the settlement queue for %s", t.ID, t.Account)
	}
	if t.state != Queued {
		return fmt.Errorf("ticket %s is %s, only a Queued ticket can lock", t.ID, t.state)
	}
	t.state = Locked
	t.Nonce = nonce
	return nil
}

// Complete removes a Locked ticket after confirmed acceptance, records the
// ledger transaction reference, and unblocks the next ticket for the account.
func (c *Coordinator) Complete(t *Ticket, txRef library.TxRef) error {
	err := c.finish(t, Completed)
	if err == nil {
		t.TxRef = txRef
	}
	return err
}

// Fail removes the ticket after rejection, timeout, or abandonment and
// unblocks the next ticket for the account. The core never retries a failed
// submission, retry policy belongs to the caller.
func (c *Coordinator) Fail(t *Ticket) error {
	return c.finish(t, Failed)
}

func (c *Coordinator) finish(t *Ticket, terminal TicketState) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	q, ok := c.accounts[t.Account]
	if !ok {
		return fmt.Errorf("no settlement queue for %s, ticket %s was already removed", t.Account, t.ID)
	}
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if head, _ := q.tickets.Peek(); head != t {
		return fmt.Errorf("ticket %s is not at the head of the settlement queue for %s", t.ID, t.Account)
	}
	if terminal == Completed && t.state != Locked {
		return fmt.Errorf("ticket %s is %s, only a Locked ticket can complete", t.ID, t.state)
	}
	if terminal == Failed && t.state != Locked && t.state != Queued {
		return fmt.Errorf("ticket %s is already %s", t.ID, t.state)
	}
	q.tickets.Pop()
	t.state = terminal
	if next, ok := q.tickets.Peek(); ok {
		close(next.turn)
	}
	if q.tickets.Count() == 0 {
		delete(c.accounts, t.Account)
	}
	return nil
}

// StateOf reports the ticket's current state.
func (c *Coordinator) StateOf(t *Ticket) TicketState {
	q, ok := c.lookup(t.Account)
	if !ok {
		// the queue is gone, the ticket is terminal and can't change anymore
		return t.state
	}
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return t.state
}

func (c *Coordinator) lookup(account library.Account) (*accountQueue, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	q, ok := c.accounts[account]
	return q, ok
}
