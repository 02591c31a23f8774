package pool

import "fmt"

// Handle encodes a 32-bit slot index in the lower bits and a 32-bit generation
// in the upper bits. Generations start at 1 and increment when a slot is
// permanently freed, so stale handles never match a reused slot and the zero
// Handle is never valid.
type Handle uint64

// None is the invalid handle.
const None Handle = 0

func NewHandle(index uint32, generation uint32) Handle {
	return Handle(uint64(generation)<<32 | uint64(index))
}

func (h Handle) Index() uint32      { return uint32(h) }
func (h Handle) Generation() uint32 { return uint32(h >> 32) }
func (h Handle) IsNone() bool       { return h == None }

func (h Handle) String() string {
	return fmt.Sprintf("%d:%d", h.Index(), h.Generation())
}

// Ticket proves that a specific slot has been provisionally vacated via
// TakeReserve. It is consumed exactly once, by PutBack or Forget.
type Ticket struct {
	handle Handle
}

// Handle returns the handle the ticket was issued for.
func (t Ticket) Handle() Handle { return t.handle }

type slot[T any] struct {
	generation uint32
	payload    *T
	reserved   bool
}

// Pool is a generational-index object pool. A slot is either free, occupied,
// or reserved (payload taken out, an outstanding Ticket keeps the generation
// alive so PutBack reissues the exact same Handle).
type Pool[T any] struct {
	slots    []slot[T]
	freeList []uint32
}

func New[T any]() *Pool[T] {
	return &Pool[T]{
		slots:    make([]slot[T], 0, 64),
		freeList: make([]uint32, 0, 16),
	}
}

// Add stores value in a fresh or recycled slot and returns its handle.
func (p *Pool[T]) Add(value T) Handle {
	var idx uint32
	if n := len(p.freeList); n > 0 {
		idx = p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
	} else {
		idx = uint32(len(p.slots))
		p.slots = append(p.slots, slot[T]{generation: 1})
	}
	s := &p.slots[idx]
	s.payload = &value
	return NewHandle(idx, s.generation)
}

// Borrow returns a pointer to the payload at handle, or false if the handle
// is stale, reserved, or free.
func (p *Pool[T]) Borrow(handle Handle) (*T, bool) {
	s, ok := p.at(handle)
	if !ok || s.payload == nil {
		return nil, false
	}
	return s.payload, true
}

// MustBorrow is Borrow for handles the caller knows are alive. A dead handle
// here means command history and pool state have diverged.
func (p *Pool[T]) MustBorrow(handle Handle) *T {
	v, ok := p.Borrow(handle)
	if !ok {
		panic(fmt.Sprintf("pool: dead handle %v", handle))
	}
	return v
}

// Alive reports whether handle refers to an occupied slot.
func (p *Pool[T]) Alive(handle Handle) bool {
	s, ok := p.at(handle)
	return ok && s.payload != nil
}

// Reserved reports whether handle refers to a slot with an outstanding ticket.
func (p *Pool[T]) Reserved(handle Handle) bool {
	s, ok := p.at(handle)
	return ok && s.reserved
}

// TakeReserve vacates the slot at handle, returning its payload and a ticket
// that must later be consumed by PutBack or Forget. The slot is not freed:
// its generation stays live until the ticket is resolved.
func (p *Pool[T]) TakeReserve(handle Handle) (Ticket, T) {
	s, ok := p.at(handle)
	if !ok || s.payload == nil {
		panic(fmt.Sprintf("pool: take-reserve of dead handle %v", handle))
	}
	value := *s.payload
	s.payload = nil
	s.reserved = true
	return Ticket{handle: handle}, value
}

// PutBack restores a previously reserved slot. The returned handle is always
// the one the ticket was issued for.
func (p *Pool[T]) PutBack(ticket Ticket, value T) Handle {
	s := p.reservedSlot(ticket, "put-back")
	s.payload = &value
	s.reserved = false
	return ticket.handle
}

// Forget permanently frees a reserved slot. The generation bumps so every
// handle ever issued for the slot goes stale, and the index is recycled.
func (p *Pool[T]) Forget(ticket Ticket) {
	s := p.reservedSlot(ticket, "forget")
	s.reserved = false
	s.generation++
	p.freeList = append(p.freeList, ticket.handle.Index())
}

// Len returns the number of occupied slots.
func (p *Pool[T]) Len() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].payload != nil {
			n++
		}
	}
	return n
}

// Each visits every occupied slot.
func (p *Pool[T]) Each(fn func(Handle, *T)) {
	for i := range p.slots {
		s := &p.slots[i]
		if s.payload != nil {
			fn(NewHandle(uint32(i), s.generation), s.payload)
		}
	}
}

func (p *Pool[T]) at(handle Handle) (*slot[T], bool) {
	idx := handle.Index()
	if int(idx) >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[idx]
	if s.generation != handle.Generation() {
		return nil, false
	}
	return s, true
}

func (p *Pool[T]) reservedSlot(ticket Ticket, op string) *slot[T] {
	s, ok := p.at(ticket.handle)
	if !ok || !s.reserved {
		panic(fmt.Sprintf("pool: %s with a ticket for non-reserved slot %v", op, ticket.handle))
	}
	return s
}
