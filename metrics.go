package memapi

import "unsafe"

// SizeInUse returns the number of bytes currently allocated from the
// arena, including internal fragmentation due to alignment.
func (a *Arena) SizeInUse() int {
	sum := 0
	for i := range a.chunks {
		sum += int(a.chunks[i].offset)
	}
	return sum
}

// Capacity returns the total capacity in bytes of all chunks.
func (a *Arena) Capacity() int {
	sum := 0
	for i := range a.chunks {
		sum += len(a.chunks[i].buf)
	}
	return sum
}

// NumChunks returns the number of chunks currently backing the arena.
func (a *Arena) NumChunks() int {
	return len(a.chunks)
}

// ChunkSize returns the chunk size the arena grows by.
func (a *Arena) ChunkSize() int {
	return a.chunkSize
}

// Peak returns the high-water mark of bytes in use. Not rewound by
// Reset, so it tracks the worst case across reuse cycles.
func (a *Arena) Peak() int {
	return a.peak
}

// Utilization returns the ratio of bytes in use to total capacity,
// 0.0 to 1.0. Returns 0.0 for an arena with no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.SizeInUse()) / float64(capacity)
}

// ArenaMetrics is a snapshot of arena statistics.
type ArenaMetrics struct {
	SizeInUse   int     // bytes currently allocated
	Capacity    int     // total capacity in bytes
	NumChunks   int     // number of chunks
	ChunkSize   int     // growth chunk size
	Peak        int     // high-water mark of bytes in use
	Utilization float64 // used-to-capacity ratio, 0.0-1.0
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() ArenaMetrics {
	return ArenaMetrics{
		SizeInUse:   a.SizeInUse(),
		Capacity:    a.Capacity(),
		NumChunks:   a.NumChunks(),
		ChunkSize:   a.ChunkSize(),
		Peak:        a.Peak(),
		Utilization: a.Utilization(),
	}
}

// CountingAllocator wraps an Allocator and tracks allocation traffic:
// how many blocks and bytes were handed out and how many came back.
// Tests use it to assert that every block handed out was released.
// Counters are unsynchronized, like the helper layer itself; wrap the
// counting layer in a SafeAllocator if concurrent callers need it.
type CountingAllocator struct {
	base     Allocator
	allocs   int
	deallocs int
	bytes    int
}

// NewCountingAllocator wraps base with traffic counters.
func NewCountingAllocator(base Allocator) *CountingAllocator {
	return &CountingAllocator{base: base}
}

// Allocate forwards to the base allocator, counting only successes.
func (c *CountingAllocator) Allocate(layout Layout) (unsafe.Pointer, error) {
	p, err := c.base.Allocate(layout)
	if err != nil {
		return nil, err
	}
	c.allocs++
	c.bytes += int(layout.Size)
	return p, nil
}

// Deallocate forwards to the base allocator and counts the release.
func (c *CountingAllocator) Deallocate(ptr unsafe.Pointer, layout Layout) {
	c.base.Deallocate(ptr, layout)
	c.deallocs++
	c.bytes -= int(layout.Size)
}

// Allocs returns the number of successful Allocate calls.
func (c *CountingAllocator) Allocs() int { return c.allocs }

// Deallocs returns the number of Deallocate calls.
func (c *CountingAllocator) Deallocs() int { return c.deallocs }

// Outstanding returns the number of blocks allocated but not yet
// released. Zero means nothing leaked.
func (c *CountingAllocator) Outstanding() int { return c.allocs - c.deallocs }

// BytesInUse returns the bytes allocated but not yet released.
func (c *CountingAllocator) BytesInUse() int { return c.bytes }
