package memapi

import "unsafe"

// HeapAllocator satisfies allocations from the Go heap. Each block is
// over-allocated by its alignment and the start address rounded up to
// the next aligned boundary; the backing slice is retained until
// Deallocate so the garbage collector keeps the block live. Reclamation
// itself is the collector's job. Not goroutine-safe; wrap in a
// SafeAllocator for concurrent use.
type HeapAllocator struct {
	blocks map[uintptr][]byte
}

// NewHeapAllocator creates an empty heap-backed allocator.
func NewHeapAllocator() *HeapAllocator {
	return &HeapAllocator{blocks: make(map[uintptr][]byte)}
}

// Allocate returns a zeroed block of layout.Size bytes aligned to
// layout.Align.
func (h *HeapAllocator) Allocate(layout Layout) (unsafe.Pointer, error) {
	if !layout.Valid() {
		return nil, &LayoutError{Size: layout.Size, Align: layout.Align}
	}
	if layout.Size == 0 {
		return unsafe.Pointer(&zerobase), nil
	}
	padded := layout.Size + layout.Align - 1
	if padded < layout.Size || padded > maxBlockSize {
		return nil, ErrAllocFailed
	}
	raw := make([]byte, padded)
	base := uintptr(unsafe.Pointer(&raw[0]))
	addr := (base + layout.Align - 1) &^ (layout.Align - 1)
	h.blocks[addr] = raw
	return unsafe.Pointer(&raw[addr-base]), nil
}

// Deallocate drops the retained reference so the collector may reclaim
// the block. Unknown pointers (including zero-size allocations) are
// ignored; a pointer not at the start of a live block is a caller bug.
func (h *HeapAllocator) Deallocate(ptr unsafe.Pointer, layout Layout) {
	delete(h.blocks, uintptr(ptr))
}

// Live returns the number of blocks currently retained.
func (h *HeapAllocator) Live() int {
	return len(h.blocks)
}
