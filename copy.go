package memapi

import (
	"reflect"
	"unsafe"
)

// ByteCopier is the marker capability asserting that a value may be
// duplicated by a verbatim byte copy: it owns no resources and holds no
// internal self-reference that copying would leave dangling. The marker
// method is never called; implementing it is the assertion.
type ByteCopier interface {
	ByteCopyable()
}

// AllocCopy duplicates *src by byte-for-byte copy, skipping constructor
// logic entirely. The ByteCopier bound makes the caller's claim that
// this is safe a compile-time requirement; use AllocCopyUnchecked to
// assert it yourself.
func AllocCopy[T ByteCopier](a Allocator, src *T) (*T, error) {
	return AllocCopyUnchecked(a, src)
}

// AllocCopyUnchecked duplicates *src by byte copy without requiring the
// ByteCopier marker. The caller must guarantee T is safe to duplicate
// verbatim: no owned resources, no self-references, and no Go pointers
// when the allocator's memory is invisible to the garbage collector.
// Violating that is undefined behavior, not a reported error.
func AllocCopyUnchecked[T any](a Allocator, src *T) (*T, error) {
	p, err := a.Allocate(LayoutOf[T]())
	if err != nil {
		return nil, err
	}
	memmove(p, unsafe.Pointer(src), unsafe.Sizeof(*src))
	return (*T)(p), nil
}

// AllocCopySlice duplicates a whole sequence with a single byte copy and
// reattaches the length to the returned handle.
func AllocCopySlice[T ByteCopier](a Allocator, src []T) ([]T, error) {
	return AllocCopySliceUnchecked(a, src)
}

// AllocCopySliceUnchecked is AllocCopySlice without the marker bound.
// Same caller obligations as AllocCopyUnchecked, for every element.
func AllocCopySliceUnchecked[T any](a Allocator, src []T) ([]T, error) {
	n := len(src)
	if n == 0 {
		return []T{}, nil
	}
	layout, err := SliceLayoutOf[T](n)
	if err != nil {
		return nil, err
	}
	p, err := a.Allocate(layout)
	if err != nil {
		return nil, err
	}
	memmove(p, unsafe.Pointer(&src[0]), layout.Size)
	return unsafe.Slice((*T)(p), n), nil
}

// AllocCopyDyn duplicates the value behind d by byte copy, sized to its
// runtime footprint, and propagates the shape descriptor. The handle's
// static type is erased, so the marker capability becomes a structural
// check: the dispatch descriptor is walked and any pointer-bearing kind
// panics. Use AllocCopyDynUnchecked to skip the walk.
func AllocCopyDyn(a Allocator, d Dyn) (Dyn, error) {
	if d.Shape.Type == nil || !byteCopyable(d.Shape.Type) {
		panic("memapi: dynamic value is not byte-copyable")
	}
	return AllocCopyDynUnchecked(a, d)
}

// AllocCopyDynUnchecked duplicates the value behind d by byte copy
// without inspecting its type. Same caller obligations as
// AllocCopyUnchecked.
func AllocCopyDynUnchecked(a Allocator, d Dyn) (Dyn, error) {
	p, err := a.Allocate(d.Shape.Layout)
	if err != nil {
		return Dyn{}, err
	}
	memmove(p, d.Ptr, d.Shape.Layout.Size)
	return Dyn{Ptr: p, Shape: d.Shape}, nil
}

// byteCopyable reports whether t contains no pointer-bearing kinds, so
// a verbatim copy cannot dangle and cannot hide pointers from the
// garbage collector.
func byteCopyable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return byteCopyable(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !byteCopyable(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		// Chan, Func, Interface, Map, Pointer, Slice, String, UnsafePointer.
		return false
	}
}
