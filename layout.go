package memapi

import (
	"math"
	"unsafe"
)

// maxBlockSize bounds a single backing block at a length every
// supported architecture's runtime can hand out; padded requests past
// it fail with ErrAllocFailed instead of tripping makeslice's length
// check.
const maxBlockSize = math.MaxInt32

// Layout describes a memory footprint: a size in bytes and a required
// alignment. Align must be a nonzero power of two; Size has no padding
// requirement of its own but products with element counts must stay
// within the int-addressable range.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// LayoutOf returns the footprint of a single value of type T.
func LayoutOf[T any]() Layout {
	var z T
	return Layout{Size: unsafe.Sizeof(z), Align: unsafe.Alignof(z)}
}

// SliceLayoutOf returns the footprint of n contiguous elements of type T.
// n == 0 yields a valid zero-size layout. A negative n or a total size
// that overflows the addressable range returns a *LayoutError; no
// allocation is ever attempted with such a count.
func SliceLayoutOf[T any](n int) (Layout, error) {
	return LayoutOf[T]().Repeat(n)
}

// Valid reports whether Align is a nonzero power of two and Size fits
// the addressable range.
func (l Layout) Valid() bool {
	if l.Align == 0 || l.Align&(l.Align-1) != 0 {
		return false
	}
	return l.Size <= math.MaxInt
}

// Repeat returns the footprint of n contiguous copies of l. Pure and
// deterministic: the same inputs always produce the same result, and
// invalid combinations (negative n, invalid l, size*n overflow) return
// a *LayoutError instead of a wrapped-around footprint.
func (l Layout) Repeat(n int) (Layout, error) {
	if n < 0 || !l.Valid() {
		return Layout{}, &LayoutError{Size: l.Size, Align: l.Align}
	}
	if n == 0 || l.Size == 0 {
		return Layout{Size: 0, Align: l.Align}, nil
	}
	total := l.Size * uintptr(n)
	if total/l.Size != uintptr(n) || total > math.MaxInt {
		return Layout{}, &LayoutError{Size: l.Size, Align: l.Align}
	}
	return Layout{Size: total, Align: l.Align}, nil
}
