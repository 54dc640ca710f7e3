package memapi

import "unsafe"

// DefaultChunkSize is the default chunk size for new arenas (64 KiB).
const DefaultChunkSize = 1 << 16

// chunk is a single backing region within an arena.
type chunk struct {
	buf    []byte  // backing memory
	offset uintptr // bump cursor within buf
}

// take carves layout.Size bytes at layout.Align alignment out of the
// chunk, or returns nil when it does not fit. Alignment is applied to
// the absolute address: the chunk's base carries only the Go heap's
// natural alignment.
func (c *chunk) take(layout Layout) unsafe.Pointer {
	base := uintptr(unsafe.Pointer(unsafe.SliceData(c.buf)))
	mask := layout.Align - 1
	off := ((base + c.offset + mask) &^ mask) - base
	if off+layout.Size > uintptr(len(c.buf)) {
		return nil
	}
	p := unsafe.Pointer(&c.buf[off])
	c.offset = off + layout.Size
	return p
}

// Arena is a chunked bump allocator implementing Allocator. Deallocate
// is a no-op: memory is reclaimed in bulk with Reset or Release, which
// invalidates every handle produced from the arena. Not goroutine-safe;
// wrap in a SafeAllocator for concurrent use.
type Arena struct {
	chunks    []chunk
	chunkSize int
	fixed     bool // never grow; fail with ErrAllocFailed instead
	current   *chunk
	peak      int
}

// NewArena creates a growable arena with the given chunk size.
// If chunkSize <= 0, DefaultChunkSize is used.
func NewArena(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	a := &Arena{chunkSize: chunkSize}
	a.grow(chunkSize)
	return a
}

// NewFixedArena creates an arena backed by a single chunk of exactly
// capacity bytes that never grows: once the chunk is exhausted,
// Allocate fails with ErrAllocFailed.
func NewFixedArena(capacity int) *Arena {
	if capacity <= 0 {
		capacity = DefaultChunkSize
	}
	a := &Arena{chunkSize: capacity, fixed: true}
	a.grow(capacity)
	return a
}

// zerobase backs every zero-size allocation, the same trick the Go
// runtime uses: a unique, valid, never-dereferenced address.
var zerobase byte

// Allocate returns a block of layout.Size bytes aligned to layout.Align
// from the current chunk, growing the arena when it does not fit (or
// failing, for a fixed arena).
func (a *Arena) Allocate(layout Layout) (unsafe.Pointer, error) {
	a.panicIfReleased()
	if !layout.Valid() {
		return nil, &LayoutError{Size: layout.Size, Align: layout.Align}
	}
	if layout.Size == 0 {
		return unsafe.Pointer(&zerobase), nil
	}
	if p := a.current.take(layout); p != nil {
		a.notePeak()
		return p, nil
	}
	return a.allocateSlow(layout)
}

// allocateSlow handles allocation when the current chunk is full.
func (a *Arena) allocateSlow(layout Layout) (unsafe.Pointer, error) {
	if a.fixed {
		return nil, ErrAllocFailed
	}
	// Over-provision by the alignment so the aligned cursor still fits.
	padded := layout.Size + layout.Align - 1
	if padded < layout.Size || padded > maxBlockSize {
		return nil, ErrAllocFailed
	}
	need := int(padded)
	a.grow(need)
	p := a.current.take(layout)
	if p == nil {
		return nil, ErrAllocFailed
	}
	a.notePeak()
	return p, nil
}

// Deallocate is a no-op: a bump allocator reclaims in bulk only.
func (a *Arena) Deallocate(ptr unsafe.Pointer, layout Layout) {}

// Reset rewinds every chunk's cursor to zero, keeping the chunks for
// reuse. O(number of chunks). Every handle produced so far becomes
// invalid.
func (a *Arena) Reset() {
	a.panicIfReleased()
	for i := range a.chunks {
		a.chunks[i].offset = 0
	}
	a.current = &a.chunks[0]
}

// Release drops all chunks and makes the arena unusable. Any subsequent
// operation panics.
func (a *Arena) Release() {
	a.chunks = nil
	a.current = nil
}

// grow appends a new chunk of at least min bytes.
func (a *Arena) grow(min int) {
	size := a.chunkSize
	if min > size {
		size = min
	}
	a.chunks = append(a.chunks, chunk{buf: make([]byte, size)})
	a.current = &a.chunks[len(a.chunks)-1]
}

func (a *Arena) notePeak() {
	if used := a.SizeInUse(); used > a.peak {
		a.peak = used
	}
}

func (a *Arena) panicIfReleased() {
	if a.chunks == nil {
		panic("memapi: arena used after Release")
	}
}
