package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(q *Queue[string]) []string {
	var out []string
	for {
		e, ok := q.Pop()
		if !ok {
			return out
		}
		out = append(out, e.Payload)
	}
}

func TestQueuePopsByTickThenInsertionOrder(t *testing.T) {
	q := NewQueue[string]()
	q.Insert("c", 30)
	q.Insert("a1", 10)
	q.Insert("b", 20)
	q.Insert("a2", 10)
	q.Insert("a3", 10)

	assert.Equal(t, []string{"a1", "a2", "a3", "b", "c"}, drain(q))
	assert.Equal(t, 0, q.Len())
}

func TestQueueRemoveByIdentity(t *testing.T) {
	q := NewQueue[string]()
	a := q.Insert("a", 5)
	b := q.Insert("b", 5)
	c := q.Insert("c", 1)

	require.True(t, q.Remove(b))
	require.False(t, q.Remove(b), "second cancel must be a no-op")
	require.False(t, q.Contains(b))
	require.True(t, q.Contains(a))

	e, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, c, e.Ticket)

	assert.Equal(t, []string{"c", "a"}, drain(q))
	assert.False(t, q.Remove(a), "cancel after firing must be a no-op")
}

func TestQueueRemoveUnknownTicket(t *testing.T) {
	q := NewQueue[int]()
	assert.False(t, q.Remove(Ticket(42)))
	_, ok := q.Peek()
	assert.False(t, ok)
	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestQueueMixedInsertRemoveKeepsOrder(t *testing.T) {
	q := NewQueue[int]()
	var tickets []Ticket
	for i := 0; i < 50; i++ {
		tickets = append(tickets, q.Insert(i, int64((i*7)%11)))
	}
	for i := 0; i < 50; i += 3 {
		require.True(t, q.Remove(tickets[i]))
	}

	lastTick := int64(-1)
	lastTicket := Ticket(0)
	count := 0
	for {
		e, ok := q.Pop()
		if !ok {
			break
		}
		count++
		require.GreaterOrEqual(t, e.Tick, lastTick)
		if e.Tick == lastTick {
			require.Greater(t, e.Ticket, lastTicket, "ties must pop FIFO")
		}
		require.NotEqual(t, 0, e.Payload%3, "removed entry %d popped", e.Payload)
		lastTick, lastTicket = e.Tick, e.Ticket
	}
	assert.Equal(t, 33, count)
}

func TestQueueGet(t *testing.T) {
	q := NewQueue[string]()
	a := q.Insert("a", 7)
	e, ok := q.Get(a)
	require.True(t, ok)
	assert.Equal(t, int64(7), e.Tick)
	assert.Equal(t, "a", e.Payload)

	q.Pop()
	_, ok = q.Get(a)
	assert.False(t, ok)
}
