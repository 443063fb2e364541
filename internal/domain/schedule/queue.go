// Package schedule holds the time-ordered action queue driving the simulation.
package schedule

import "container/heap"

// Ticket identifies one inserted entry. Tickets are never reused.
type Ticket uint64

type Entry[T any] struct {
	Ticket  Ticket
	Tick    int64
	Payload T
}

// Queue orders entries by (tick, insertion sequence). Equal ticks pop in
// insertion order.
type Queue[T any] struct {
	items entryHeap[T]
	next  Ticket
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{items: entryHeap[T]{index: map[Ticket]int{}}}
}

func (q *Queue[T]) Len() int {
	return len(q.items.entries)
}

func (q *Queue[T]) Insert(payload T, tick int64) Ticket {
	q.next++
	e := &Entry[T]{Ticket: q.next, Tick: tick, Payload: payload}
	heap.Push(&q.items, e)
	return e.Ticket
}

// Remove cancels a pending entry. Removing a ticket that already fired or was
// never issued returns false and changes nothing.
func (q *Queue[T]) Remove(t Ticket) bool {
	i, ok := q.items.index[t]
	if !ok {
		return false
	}
	heap.Remove(&q.items, i)
	return true
}

func (q *Queue[T]) Contains(t Ticket) bool {
	_, ok := q.items.index[t]
	return ok
}

// Get looks up a pending entry without removing it.
func (q *Queue[T]) Get(t Ticket) (Entry[T], bool) {
	i, ok := q.items.index[t]
	if !ok {
		return Entry[T]{}, false
	}
	return *q.items.entries[i], true
}

func (q *Queue[T]) Peek() (Entry[T], bool) {
	if len(q.items.entries) == 0 {
		return Entry[T]{}, false
	}
	return *q.items.entries[0], true
}

func (q *Queue[T]) Pop() (Entry[T], bool) {
	if len(q.items.entries) == 0 {
		return Entry[T]{}, false
	}
	e := heap.Pop(&q.items).(*Entry[T])
	return *e, true
}

type entryHeap[T any] struct {
	entries []*Entry[T]
	index   map[Ticket]int
}

func (h entryHeap[T]) Len() int { return len(h.entries) }

func (h entryHeap[T]) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if a.Tick != b.Tick {
		return a.Tick < b.Tick
	}
	return a.Ticket < b.Ticket
}

func (h entryHeap[T]) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.index[h.entries[i].Ticket] = i
	h.index[h.entries[j].Ticket] = j
}

func (h *entryHeap[T]) Push(x any) {
	e := x.(*Entry[T])
	h.index[e.Ticket] = len(h.entries)
	h.entries = append(h.entries, e)
}

func (h *entryHeap[T]) Pop() any {
	old := h.entries
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	h.entries = old[:n-1]
	delete(h.index, e.Ticket)
	return e
}
