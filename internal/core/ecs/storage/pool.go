package storage

// DefaultPageSize is the page size used for component pools that have not
// registered an explicit trait override.
const DefaultPageSize = 1024

// slotFlags packs two bits per slot: locked and enabled. Both Pool and
// EmptyPool share this representation so the "enabled" bit means the same
// thing, and is addressed the same way, regardless of whether the
// component carries a value (see DESIGN.md Open Question on the
// empty-component bitfield).
type slotFlags []byte

const (
	flagLocked  = 1 << 0
	flagEnabled = 1 << 1
)

func newSlotFlags(n int) slotFlags {
	return make(slotFlags, n)
}

func (f slotFlags) get(i int, bit byte) bool {
	return f[i]&bit != 0
}

func (f slotFlags) set(i int, bit byte, v bool) {
	if v {
		f[i] |= bit
	} else {
		f[i] &^= bit
	}
}

// Pool is the paged, typed component storage for a non-empty component
// type T. Positions map 1:1 onto the owning EntitySet's dense positions.
type Pool[T any] struct {
	pageSize int
	pages    [][]T
	flags    []slotFlags
}

// NewPool returns a Pool with the given page size, or DefaultPageSize
// when pageSize is not positive.
func NewPool[T any](pageSize int) *Pool[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pool[T]{pageSize: pageSize}
}

func (p *Pool[T]) pageOf(i int) (page, slot int) {
	return i / p.pageSize, i % p.pageSize
}

// Reserve ensures pages exist up to position n (exclusive).
func (p *Pool[T]) Reserve(n int) {
	needed := 0
	if n > 0 {
		needed = (n-1)/p.pageSize + 1
	}
	for len(p.pages) < needed {
		p.pages = append(p.pages, make([]T, p.pageSize))
		p.flags = append(p.flags, newSlotFlags(p.pageSize))
	}
}

func (p *Pool[T]) ensurePage(page int) {
	for len(p.pages) <= page {
		p.pages = append(p.pages, make([]T, p.pageSize))
		p.flags = append(p.flags, newSlotFlags(p.pageSize))
	}
}

// Emplace stores value at position i, allocating its page lazily. New
// slots default to disabled.
func (p *Pool[T]) Emplace(i int, value T) {
	page, slot := p.pageOf(i)
	p.ensurePage(page)
	p.pages[page][slot] = value
	p.flags[page].set(slot, flagEnabled, false)
	p.flags[page].set(slot, flagLocked, false)
}

// Erase clears the value at position i back to its zero value.
func (p *Pool[T]) Erase(i int) {
	page, slot := p.pageOf(i)
	if page >= len(p.pages) {
		return
	}
	var zero T
	p.pages[page][slot] = zero
	p.flags[page].set(slot, flagEnabled, false)
	p.flags[page].set(slot, flagLocked, false)
}

// Get returns the value stored at position i.
func (p *Pool[T]) Get(i int) T {
	page, slot := p.pageOf(i)
	return p.pages[page][slot]
}

// GetPtr returns a pointer to the value stored at position i, suitable
// for in-place mutation.
func (p *Pool[T]) GetPtr(i int) *T {
	page, slot := p.pageOf(i)
	return &p.pages[page][slot]
}

// Set overwrites the value at position i without touching its flags.
func (p *Pool[T]) Set(i int, value T) {
	page, slot := p.pageOf(i)
	p.pages[page][slot] = value
}

// IsLocked reports whether the slot at i is locked.
func (p *Pool[T]) IsLocked(i int) bool {
	page, slot := p.pageOf(i)
	if page >= len(p.flags) {
		return false
	}
	return p.flags[page].get(slot, flagLocked)
}

// SetLocked sets the lock bit at i and returns its previous value.
func (p *Pool[T]) SetLocked(i int, locked bool) bool {
	page, slot := p.pageOf(i)
	p.ensurePage(page)
	prev := p.flags[page].get(slot, flagLocked)
	p.flags[page].set(slot, flagLocked, locked)
	return prev
}

// IsEnabled reports whether the slot at i is enabled.
func (p *Pool[T]) IsEnabled(i int) bool {
	page, slot := p.pageOf(i)
	if page >= len(p.flags) {
		return false
	}
	return p.flags[page].get(slot, flagEnabled)
}

// SetEnabled sets the enabled bit at i and returns its previous value.
func (p *Pool[T]) SetEnabled(i int, enabled bool) bool {
	page, slot := p.pageOf(i)
	p.ensurePage(page)
	prev := p.flags[page].get(slot, flagEnabled)
	p.flags[page].set(slot, flagEnabled, enabled)
	return prev
}

// MoveValue assigns the value and enabled bit at `from` onto `to`; used
// by swap-and-pop erase to relocate the last slot into the erased one.
func (p *Pool[T]) MoveValue(to, from int) {
	p.Set(to, p.Get(from))
	pPage, pSlot := p.pageOf(to)
	fPage, fSlot := p.pageOf(from)
	p.flags[pPage].set(pSlot, flagEnabled, p.flags[fPage].get(fSlot, flagEnabled))
}

// SwapValue exchanges the values and enabled bits stored at a and b;
// lock bits stay in place.
func (p *Pool[T]) SwapValue(a, b int) {
	va, vb := p.Get(a), p.Get(b)
	p.Set(a, vb)
	p.Set(b, va)
	aPage, aSlot := p.pageOf(a)
	bPage, bSlot := p.pageOf(b)
	ae, be := p.flags[aPage].get(aSlot, flagEnabled), p.flags[bPage].get(bSlot, flagEnabled)
	p.flags[aPage].set(aSlot, flagEnabled, be)
	p.flags[bPage].set(bSlot, flagEnabled, ae)
}

// EmptyPool is the zero-cost specialization for empty (zero-size)
// component types: only the enabled bitfield is kept, and locking is
// always a no-op reporting false.
type EmptyPool struct {
	pageSize int
	flags    []slotFlags
}

// NewEmptyPool returns an EmptyPool with the given page size.
func NewEmptyPool(pageSize int) *EmptyPool {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &EmptyPool{pageSize: pageSize}
}

func (p *EmptyPool) pageOf(i int) (page, slot int) {
	return i / p.pageSize, i % p.pageSize
}

func (p *EmptyPool) ensurePage(page int) {
	for len(p.flags) <= page {
		p.flags = append(p.flags, newSlotFlags(p.pageSize))
	}
}

// Emplace marks position i present (disabled by default).
func (p *EmptyPool) Emplace(i int) {
	page, slot := p.pageOf(i)
	p.ensurePage(page)
	p.flags[page].set(slot, flagEnabled, false)
}

// Erase clears position i's flags.
func (p *EmptyPool) Erase(i int) {
	page, slot := p.pageOf(i)
	if page >= len(p.flags) {
		return
	}
	p.flags[page].set(slot, flagEnabled, false)
}

// IsLocked always reports false: locking is disallowed for empty types.
func (p *EmptyPool) IsLocked(int) bool { return false }

// SetLocked is a no-op for empty components and always returns false.
func (p *EmptyPool) SetLocked(int, bool) bool { return false }

// IsEnabled reports whether the slot at i is enabled.
func (p *EmptyPool) IsEnabled(i int) bool {
	page, slot := p.pageOf(i)
	if page >= len(p.flags) {
		return false
	}
	return p.flags[page].get(slot, flagEnabled)
}

// SetEnabled sets the enabled bit at i and returns its previous value.
func (p *EmptyPool) SetEnabled(i int, enabled bool) bool {
	page, slot := p.pageOf(i)
	p.ensurePage(page)
	prev := p.flags[page].get(slot, flagEnabled)
	p.flags[page].set(slot, flagEnabled, enabled)
	return prev
}

// MoveValue is a no-op for empty components beyond the enabled bit.
func (p *EmptyPool) MoveValue(to, from int) {
	toPage, toSlot := p.pageOf(to)
	fromPage, fromSlot := p.pageOf(from)
	p.ensurePage(toPage)
	p.flags[toPage].set(toSlot, flagEnabled, p.flags[fromPage].get(fromSlot, flagEnabled))
}

// SwapValue exchanges the enabled bits at a and b.
func (p *EmptyPool) SwapValue(a, b int) {
	aPage, aSlot := p.pageOf(a)
	bPage, bSlot := p.pageOf(b)
	p.ensurePage(aPage)
	p.ensurePage(bPage)
	ae, be := p.flags[aPage].get(aSlot, flagEnabled), p.flags[bPage].get(bSlot, flagEnabled)
	p.flags[aPage].set(aSlot, flagEnabled, be)
	p.flags[bPage].set(bSlot, flagEnabled, ae)
}
