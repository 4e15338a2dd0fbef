package settlement

// NewTicketQueue returns a new Ticket queue (FIFO) with the given initial size.
func NewTicketQueue(size int) *TicketQueue {
	return &TicketQueue{
		nodes: make([]*Ticket, size),
		size:  size,
	}
}

// TicketQueue is a FIFO queue that resizes as needed.
type TicketQueue struct {
	nodes []*Ticket
	size  int
	head  int
	tail  int
	count int
}

// Push adds a Ticket to the queue.
func (q *TicketQueue) Push(n *Ticket) {
	if q.head == q.tail && q.count > 0 {
		nodes := make([]*Ticket, len(q.nodes)+q.size)
		copy(nodes, q.nodes[q.head:])
		copy(nodes[len(q.nodes)-q.head:], q.nodes[:q.head])
		q.head = 0
		q.tail = len(q.nodes)
		q.nodes = nodes
	}
	q.nodes[q.tail] = n
	q.tail = (q.tail + 1) % len(q.nodes)
	q.count++
}

// Pop removes and returns a Ticket from the queue in first to last order.
func (q *TicketQueue) Pop() (*Ticket, bool) {
	if q.count == 0 {
		return nil, false
	}
	node := q.nodes[q.head]
	q.head = (q.head + 1) % len(q.nodes)
	q.count--
	return node, true
}

// Peek returns the head Ticket without removing it.
func (q *TicketQueue) Peek() (*Ticket, bool) {
	if q.count == 0 {
		return nil, false
	}
	return q.nodes[q.head], true
}

// Count returns the number of queued Tickets.
func (q *TicketQueue) Count() int {
	return q.count
}
