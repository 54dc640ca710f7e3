package memapi

import (
	"reflect"
	"unsafe"
)

// Allocator is the raw allocation collaborator this package builds on.
// Implementations choose the reclamation strategy (bump, slab,
// free-list) and whether concurrent calls are safe; this package adds
// neither reclamation nor synchronization of its own.
type Allocator interface {
	// Allocate returns memory satisfying layout's size and alignment,
	// or fails with ErrAllocFailed.
	Allocate(layout Layout) (unsafe.Pointer, error)

	// Deallocate releases a block previously returned by Allocate on
	// the same allocator. layout must match the allocating call, or be
	// an equivalent recomputation describing the same region; behavior
	// for mismatched pointer/layout pairs is undefined.
	Deallocate(ptr unsafe.Pointer, layout Layout)
}

// ShapeKind discriminates the runtime shape of an allocated value.
type ShapeKind uint8

const (
	// ShapeFixed is a single value of statically known footprint.
	ShapeFixed ShapeKind = iota
	// ShapeSeq is a contiguous sequence of Len elements.
	ShapeSeq
	// ShapeDyn is a polymorphic value whose concrete type is known only
	// at runtime through the Type dispatch descriptor.
	ShapeDyn
)

// Shape is the runtime shape descriptor carried by handles whose
// footprint is not statically known. Every duplication path propagates
// the source's Shape to the destination handle unchanged.
type Shape struct {
	Kind   ShapeKind
	Layout Layout       // footprint of the whole value
	Len    int          // element count, ShapeSeq only
	Elem   Layout       // per-element footprint, ShapeSeq only
	Type   reflect.Type // dispatch descriptor, ShapeDyn only
}

// Dyn is a handle to a value addressed through its runtime shape: a raw
// address plus the Shape describing what lives there. Like every handle
// in this package it carries no ownership tracking — release is an
// explicit, caller-driven operation.
type Dyn struct {
	Ptr   unsafe.Pointer
	Shape Shape
}

// DynOf erases ptr into a Dyn handle, capturing T's concrete type as
// the dispatch descriptor.
func DynOf[T any](ptr *T) Dyn {
	return Dyn{
		Ptr: unsafe.Pointer(ptr),
		Shape: Shape{
			Kind:   ShapeDyn,
			Layout: LayoutOf[T](),
			Type:   reflect.TypeFor[T](),
		},
	}
}

// As recovers a typed pointer from d. It fails if d does not carry a
// dispatch descriptor for exactly T.
func As[T any](d Dyn) (*T, bool) {
	if d.Shape.Type != reflect.TypeFor[T]() {
		return nil, false
	}
	return (*T)(d.Ptr), true
}

// Interface boxes the value d points at into an interface. The value is
// copied out; mutating the result does not affect the allocation.
func (d Dyn) Interface() any {
	return reflect.NewAt(d.Shape.Type, d.Ptr).Elem().Interface()
}
