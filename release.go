package memapi

import "unsafe"

// Destroyer is the per-element teardown capability: release whatever
// resources the value owns. Run before the backing memory goes away.
type Destroyer interface {
	Destroy()
}

// Dealloc releases the memory of a single value without running any
// teardown. ptr must have come from an allocate call on a with a
// single-T layout, and the value must not own resources (or they must
// already be disposed); violating that is undefined behavior.
func Dealloc[T any](a Allocator, ptr *T) {
	a.Deallocate(unsafe.Pointer(ptr), LayoutOf[T]())
}

// DeallocSlice releases a sequence's backing memory without running any
// teardown, recomputing the layout from the handle's recorded length.
// Same preconditions as Dealloc, for the whole block. A zero-length
// slice is a no-op.
func DeallocSlice[T any](a Allocator, s []T) {
	n := len(s)
	if n == 0 {
		return
	}
	el := LayoutOf[T]()
	layout := Layout{Size: el.Size * uintptr(n), Align: el.Align}
	a.Deallocate(unsafe.Pointer(&s[0]), layout)
}

// DeallocDyn releases the memory behind a dynamic handle using its
// recorded shape. Same preconditions as Dealloc.
func DeallocDyn(a Allocator, d Dyn) {
	a.Deallocate(d.Ptr, d.Shape.Layout)
}

// DestroySlice runs each element's teardown exactly once, in index
// order, then releases the backing memory. The safe composite release
// for sequences whose elements own resources.
func DestroySlice[T Destroyer](a Allocator, s []T) {
	for i := range s {
		s[i].Destroy()
	}
	DeallocSlice(a, s)
}
