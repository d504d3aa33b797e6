package text

// Handle refers to an entry in a Pool. A handle whose entry was freed, or
// that was issued before the last Clear, no longer resolves.
type Handle struct {
	index   uint32
	version uint32
}

type poolEntry[T any] struct {
	version uint32
	free    bool
	next    int // next free slot plus one, 0 for none
	val     T
}

// Pool is a generational allocator. Slots are reused after Free or Clear so
// a frame-by-frame rebuild does not grow memory, and version numbers make
// handles from earlier frames miss instead of aliasing new entries.
//
// The zero Pool is empty and ready to use.
type Pool[T any] struct {
	entries   []poolEntry[T]
	firstFree int // slot plus one, 0 for none
	live      int
}

// Allocate stores v and returns its handle.
func (p *Pool[T]) Allocate(v T) Handle {
	p.live++
	if p.firstFree > 0 {
		i := p.firstFree - 1
		e := &p.entries[i]
		p.firstFree = e.next
		e.free, e.next, e.val = false, 0, v
		return Handle{index: uint32(i), version: e.version}
	}
	p.entries = append(p.entries, poolEntry[T]{version: 1, val: v})
	return Handle{index: uint32(len(p.entries) - 1), version: 1}
}

// Get returns the value for h.
func (p *Pool[T]) Get(h Handle) (T, bool) {
	e, ok := p.entry(h)
	if !ok {
		var zero T
		return zero, false
	}
	return e.val, true
}

// Set replaces the value for h. It reports false for a stale handle.
func (p *Pool[T]) Set(h Handle, v T) bool {
	e, ok := p.entry(h)
	if ok {
		e.val = v
	}
	return ok
}

// Free releases h. Freeing a stale handle does nothing.
func (p *Pool[T]) Free(h Handle) {
	e, ok := p.entry(h)
	if !ok {
		return
	}
	var zero T
	e.val = zero
	e.free = true
	e.version++
	if e.version == 0 {
		e.version = 1
	}
	e.next = p.firstFree
	p.firstFree = int(h.index) + 1
	p.live--
}

// Clear frees every entry while keeping the backing storage.
func (p *Pool[T]) Clear() {
	for i := range p.entries {
		if !p.entries[i].free {
			p.Free(Handle{index: uint32(i), version: p.entries[i].version})
		}
	}
}

// Len returns the number of live entries.
func (p *Pool[T]) Len() int { return p.live }

func (p *Pool[T]) entry(h Handle) (*poolEntry[T], bool) {
	if int(h.index) >= len(p.entries) {
		return nil, false
	}
	e := &p.entries[h.index]
	if e.free || e.version != h.version {
		return nil, false
	}
	return e, true
}
