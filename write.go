package memapi

import "unsafe"

// AllocWrite allocates space for a single T and moves v into it. v is
// consumed by the call either way: on success it lives in the returned
// allocation, on failure it is dropped with the ordinary lifetime of a
// Go value, so no copy survives next to a half-allocated block.
func AllocWrite[T any](a Allocator, v T) (*T, error) {
	p, err := a.Allocate(LayoutOf[T]())
	if err != nil {
		return nil, err
	}
	dst := (*T)(p)
	*dst = v
	return dst, nil
}

// memmove copies n bytes from src to dst. The regions must not overlap
// in a way copy cannot handle; callers in this package always copy into
// freshly allocated memory.
func memmove(dst, src unsafe.Pointer, n uintptr) {
	if n == 0 {
		return
	}
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}
