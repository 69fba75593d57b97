package game

// commandQueue holds pending commands. The front of the queue is the end of
// the slice so popping and pushing to the front are cheap.
type commandQueue struct {
	items []CommandEntry
}

func newCommandQueue(initial []CommandEntry) *commandQueue {
	q := &commandQueue{items: make([]CommandEntry, 0, len(initial)+8)}
	q.pushFront(initial)
	return q
}

// pushFront places entries at the front, keeping their relative order.
func (q *commandQueue) pushFront(entries []CommandEntry) {
	for i := len(entries) - 1; i >= 0; i-- {
		q.items = append(q.items, entries[i])
	}
}

// pop removes the front entry.
func (q *commandQueue) pop() (CommandEntry, bool) {
	if len(q.items) == 0 {
		return CommandEntry{}, false
	}
	idx := len(q.items) - 1
	entry := q.items[idx]
	q.items = q.items[:idx]
	return entry, true
}

// drain returns the remaining entries front first and empties the queue.
func (q *commandQueue) drain() []CommandEntry {
	out := make([]CommandEntry, 0, len(q.items))
	for i := len(q.items) - 1; i >= 0; i-- {
		out = append(out, q.items[i])
	}
	q.items = q.items[:0]
	return out
}

func (q *commandQueue) isEmpty() bool { return len(q.items) == 0 }
