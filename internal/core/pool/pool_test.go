package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBorrow(t *testing.T) {
	p := New[string]()
	h := p.Add("hello")

	assert.False(t, h.IsNone())
	assert.True(t, p.Alive(h))

	v, ok := p.Borrow(h)
	require.True(t, ok)
	assert.Equal(t, "hello", *v)
}

func TestTakeReservePutBackKeepsHandle(t *testing.T) {
	p := New[int]()
	h := p.Add(42)

	ticket, v := p.TakeReserve(h)
	assert.Equal(t, 42, v)
	assert.False(t, p.Alive(h))
	assert.True(t, p.Reserved(h))

	// A reserved slot must not be handed out to unrelated adds.
	other := p.Add(7)
	assert.NotEqual(t, h.Index(), other.Index())

	back := p.PutBack(ticket, v)
	assert.Equal(t, h, back)
	assert.True(t, p.Alive(h))
}

func TestForgetRecyclesSlot(t *testing.T) {
	p := New[int]()
	h := p.Add(1)

	ticket, _ := p.TakeReserve(h)
	p.Forget(ticket)

	assert.False(t, p.Alive(h))
	assert.False(t, p.Reserved(h))

	// The slot index is reused with a newer generation; the old handle stays dead.
	h2 := p.Add(2)
	assert.Equal(t, h.Index(), h2.Index())
	assert.Greater(t, h2.Generation(), h.Generation())
	assert.False(t, p.Alive(h))
	assert.True(t, p.Alive(h2))
}

func TestStaleHandleAfterReuse(t *testing.T) {
	p := New[int]()
	h := p.Add(1)
	ticket, _ := p.TakeReserve(h)
	p.Forget(ticket)
	p.Add(2)

	_, ok := p.Borrow(h)
	assert.False(t, ok)
}

func TestTicketDoubleUsePanics(t *testing.T) {
	p := New[int]()
	h := p.Add(1)
	ticket, v := p.TakeReserve(h)
	p.PutBack(ticket, v)

	assert.Panics(t, func() { p.PutBack(ticket, v) })
	assert.Panics(t, func() { p.Forget(ticket) })
}

func TestTakeReserveDeadHandlePanics(t *testing.T) {
	p := New[int]()
	assert.Panics(t, func() { p.TakeReserve(NewHandle(0, 1)) })
}

func TestLenAndEach(t *testing.T) {
	p := New[int]()
	a := p.Add(1)
	p.Add(2)
	p.Add(3)
	assert.Equal(t, 3, p.Len())

	ticket, _ := p.TakeReserve(a)
	assert.Equal(t, 2, p.Len())

	seen := map[Handle]int{}
	p.Each(func(h Handle, v *int) { seen[h] = *v })
	assert.Len(t, seen, 2)

	p.Forget(ticket)
	assert.Equal(t, 2, p.Len())
}
