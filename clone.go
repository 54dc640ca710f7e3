package memapi

import (
	"reflect"
	"unsafe"
)

// Cloner is the baseline duplication capability: construct a semantic
// duplicate of the receiver elsewhere. Types with non-trivial internal
// structure should additionally implement CloneInto so the duplicate is
// constructed directly in allocator memory instead of built on the Go
// heap and relocated.
type Cloner[T any] interface {
	Clone() T
}

// CloneInto is the preferred duplication capability: construct a
// duplicate of the receiver directly at dst, which points to
// uninitialized memory of T's exact footprint. When a type implements
// both, AllocClone and AllocCloneSlice use CloneInto.
type CloneInto[T any] interface {
	CloneInto(dst *T)
}

// DynCloner mirrors Cloner for type-erased handles: return a duplicate
// boxed in an interface. The duplicate's dynamic type must equal the
// receiver's.
type DynCloner interface {
	CloneDyn() any
}

// DynCloneInto mirrors CloneInto for type-erased handles: construct a
// duplicate of the receiver at dst, uninitialized memory of the
// receiver's exact runtime footprint.
type DynCloneInto interface {
	CloneIntoRaw(dst unsafe.Pointer)
}

// AllocClone allocates space for one T and duplicates *src into it.
// Fails with ErrAllocFailed before touching src if allocation fails.
func AllocClone[T Cloner[T]](a Allocator, src *T) (*T, error) {
	p, err := a.Allocate(LayoutOf[T]())
	if err != nil {
		return nil, err
	}
	dst := (*T)(p)
	cloneOne(src, dst)
	return dst, nil
}

// cloneOne duplicates one element, preferring in-place construction.
func cloneOne[T Cloner[T]](src, dst *T) {
	if ci, ok := any(src).(CloneInto[T]); ok {
		ci.CloneInto(dst)
		return
	}
	*dst = (*src).Clone()
}

// AllocCloneSlice allocates a contiguous run of len(src) elements and
// duplicates src[i] into slot i for each i in increasing order. The
// returned slice carries the sequence length; release it with
// DeallocSlice or DestroySlice.
//
// If a clone panics partway through, the elements already duplicated are
// torn down (when T implements Destroyer), the block is deallocated, and
// the panic resumes; no partially initialized sequence survives.
func AllocCloneSlice[T Cloner[T]](a Allocator, src []T) ([]T, error) {
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
	dst := unsafe.Slice((*T)(p), n)
	filled := 0
	defer func() {
		if r := recover(); r != nil {
			abortFill(a, dst, filled, layout)
			panic(r)
		}
	}()
	for i := range src {
		cloneOne(&src[i], &dst[i])
		filled = i + 1
	}
	return dst, nil
}

// AllocCloneDyn allocates a block sized to d's runtime footprint and
// duplicates the value there, propagating the shape descriptor to the
// returned handle. The value must implement DynCloneInto or DynCloner;
// DynCloneInto wins when both are present. A value with neither
// capability panics: duplication semantics cannot be guessed for an
// erased type.
func AllocCloneDyn(a Allocator, d Dyn) (Dyn, error) {
	v := reflect.NewAt(d.Shape.Type, d.Ptr).Interface()
	var ci DynCloneInto
	var c DynCloner
	switch impl := v.(type) {
	case DynCloneInto:
		ci = impl
	case DynCloner:
		c = impl
	default:
		panic("memapi: value does not implement DynCloneInto or DynCloner")
	}

	p, err := a.Allocate(d.Shape.Layout)
	if err != nil {
		return Dyn{}, err
	}
	if ci != nil {
		ci.CloneIntoRaw(p)
	} else {
		dup := c.CloneDyn()
		rd := reflect.ValueOf(dup)
		if rd.Type() != d.Shape.Type {
			a.Deallocate(p, d.Shape.Layout)
			panic("memapi: CloneDyn returned a different dynamic type")
		}
		reflect.NewAt(d.Shape.Type, p).Elem().Set(rd)
	}
	return Dyn{Ptr: p, Shape: d.Shape}, nil
}
