// Package memapi provides typed allocation helpers over a minimal raw
// allocator contract.
//
// # Overview
//
// The package turns a raw Allocate/Deallocate pair (the Allocator
// interface) into safe, type-aware operations for three value shapes:
//
//   - Fixed-size values: AllocWrite moves a value into fresh memory.
//   - Dynamically-sized and polymorphic values: Dyn handles carry a
//     runtime Shape descriptor alongside the address, and the
//     duplication helpers propagate it on every path.
//   - Contiguous sequences: AllocCloneSlice duplicates a source
//     sequence element by element, AllocSliceFunc fills a fresh
//     sequence from a per-index generator.
//
// Duplication strategy is capability-selected. A type implements Clone
// (construct a duplicate elsewhere) and may additionally implement
// CloneInto (construct the duplicate directly at the destination, which
// the helpers prefer). Types that are safe to duplicate byte-for-byte
// assert the ByteCopier marker and get the cheaper AllocCopy path;
// AllocCopyUnchecked bypasses the marker for callers who can prove the
// property themselves.
//
// # Basic Usage
//
//	a := memapi.NewArena(0) // or any Allocator implementation
//	defer a.Release()
//
//	p, err := memapi.AllocWrite(a, 42)
//	s, err := memapi.AllocSliceFunc(a, 10, func(i int) int32 { return int32(i) })
//
//	memapi.DeallocSlice(a, s)
//	memapi.Dealloc(a, p)
//
// # Footprints and Errors
//
// Every operation computes its footprint with the Layout helpers before
// touching the allocator. An element count whose total size would
// overflow the addressable range fails with *LayoutError and no
// allocation is attempted; a declined allocation fails with
// ErrAllocFailed and nothing is written. No partial allocation is ever
// left behind on a failure path.
//
// # Handles and Ownership
//
// Handles (*T, []T, Dyn) are capabilities to read, write, and release —
// not managed resources. Nothing tracks them and nothing releases them
// implicitly. DeallocSlice releases a sequence's memory only;
// DestroySlice runs each element's Destroy first, in index order, for
// sequences whose elements own resources. Releasing a handle through
// the wrong allocator or after disposing it twice is undefined
// behavior, not a reported error.
//
// # Important Notes
//
// The bundled allocators hand out untyped memory: the garbage collector
// does not scan it for pointers. Values that contain Go pointers
// (slices, maps, strings, pointers) must stay reachable from ordinary
// GC-visible storage for as long as the allocation is alive, or be
// avoided in favor of pointer-free element types. The ByteCopier marker
// and the checked Dyn copy path enforce pointer-freedom; the clone and
// write paths leave it to the caller.
//
// # Thread Safety
//
// The helpers add no synchronization: concurrent use is exactly as safe
// as the underlying Allocator. The bundled Arena is not goroutine-safe;
// wrap any base allocator in a SafeAllocator when sharing it:
//
//	safe := memapi.NewSafeAllocator(memapi.NewArena(0))
//
// # Bundled Allocators
//
// Arena (chunked bump allocation, bulk reclaim via Reset/Release, with
// a fixed-capacity mode that fails instead of growing), HeapAllocator
// (Go-heap-backed, per-block release), and CountingAllocator (wraps any
// allocator with outstanding-block accounting for leak checks). All
// stay strictly behind the Allocator interface; the helper layer never
// assumes a reclamation strategy.
package memapi
