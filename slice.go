package memapi

import "unsafe"

// AllocSliceFunc allocates a contiguous run of n elements and fills slot
// i with f(i). The layout is computed and validated first — an invalid
// count surfaces a *LayoutError before any allocation attempt — and f
// is then invoked exactly once per index in strictly increasing order
// 0, 1, …, n-1, a contract side-effecting generators may rely on.
//
// If f panics partway through, the elements already generated are torn
// down (when T implements Destroyer), the block is deallocated, and the
// panic resumes.
func AllocSliceFunc[T any](a Allocator, n int, f func(int) T) ([]T, error) {
	layout, err := SliceLayoutOf[T](n)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []T{}, nil
	}
	p, err := a.Allocate(layout)
	if err != nil {
		return nil, err
	}
	dst := unsafe.Slice((*T)(p), n)
	filled := 0
	defer func() {
		if r := recover(); r != nil {
			abortFill(a, dst, filled, layout)
			panic(r)
		}
	}()
	for i := 0; i < n; i++ {
		dst[i] = f(i)
		filled = i + 1
	}
	return dst, nil
}

// abortFill tears down the filled prefix of dst and releases the block.
// Shared by the fill loops when a clone or generator panics mid-way.
func abortFill[T any](a Allocator, dst []T, filled int, layout Layout) {
	for i := 0; i < filled; i++ {
		if d, ok := any(&dst[i]).(Destroyer); ok {
			d.Destroy()
		}
	}
	a.Deallocate(unsafe.Pointer(&dst[0]), layout)
}
