package sim

// Handle is a generation-checked reference into the entity arena. The zero
// Handle never refers to a live entity.
type Handle struct {
	Index uint32
	Gen   uint32
}

func (h Handle) IsZero() bool {
	return h == Handle{}
}

type slot struct {
	gen uint32
	ent *Entity
}

type arena struct {
	slots []slot
	free  []uint32
}

func (a *arena) alloc(e *Entity) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	s := &a.slots[idx]
	s.gen++
	s.ent = e
	h := Handle{Index: idx, Gen: s.gen}
	e.Handle = h
	return h
}

func (a *arena) get(h Handle) *Entity {
	if h.IsZero() || int(h.Index) >= len(a.slots) {
		return nil
	}
	s := a.slots[h.Index]
	if s.gen != h.Gen {
		return nil
	}
	return s.ent
}

func (a *arena) release(h Handle) {
	if a.get(h) == nil {
		return
	}
	s := &a.slots[h.Index]
	s.ent = nil
	s.gen++
	a.free = append(a.free, h.Index)
}

func (a *arena) live() int {
	return len(a.slots) - len(a.free)
}
