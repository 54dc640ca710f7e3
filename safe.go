package memapi

import (
	"sync"
	"unsafe"
)

// SafeAllocator serializes access to a base Allocator with a mutex.
// The helper functions in this package add no synchronization of their
// own, so concurrent callers sharing a non-thread-safe base allocator
// should route it through a SafeAllocator. Ordering within a single
// call (element duplication order, generator invocation order) holds
// regardless.
type SafeAllocator struct {
	mu   sync.Mutex
	base Allocator
}

// NewSafeAllocator wraps base so Allocate and Deallocate may be called
// from multiple goroutines.
func NewSafeAllocator(base Allocator) *SafeAllocator {
	return &SafeAllocator{base: base}
}

// Allocate thread-safely forwards to the base allocator.
func (s *SafeAllocator) Allocate(layout Layout) (unsafe.Pointer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.base.Allocate(layout)
}

// Deallocate thread-safely forwards to the base allocator.
func (s *SafeAllocator) Deallocate(ptr unsafe.Pointer, layout Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.base.Deallocate(ptr, layout)
}
