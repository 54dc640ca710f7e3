package memapi

import (
	"errors"
	"testing"
)

func TestAllocSliceFunc(t *testing.T) {
	a := NewArena(1024)
	defer a.Release()

	var calls []int
	s, err := AllocSliceFunc(a, 10, func(i int) int32 {
		calls = append(calls, i)
		return int32(i * i)
	})
	if err != nil {
		t.Fatalf("AllocSliceFunc error = %v", err)
	}
	if len(s) != 10 {
		t.Fatalf("len(s) = %d, want 10", len(s))
	}
	for i := range s {
		if s[i] != int32(i*i) {
			t.Errorf("s[%d] = %d, want %d", i, s[i], i*i)
		}
	}

	// generator invoked exactly once per index, strictly increasing
	if len(calls) != 10 {
		t.Fatalf("generator calls = %d, want 10", len(calls))
	}
	for i, got := range calls {
		if got != i {
			t.Fatalf("generator call order = %v, want 0..9", calls)
		}
	}
}

func TestAllocSliceFuncZeroLength(t *testing.T) {
	var events []string
	a := recordingAllocator{base: NewArena(1024), events: &events}

	s, err := AllocSliceFunc(a, 0, func(i int) int { return i })
	if err != nil {
		t.Fatalf("AllocSliceFunc(0) error = %v", err)
	}
	if s == nil || len(s) != 0 {
		t.Errorf("AllocSliceFunc(0) = %v, want empty non-nil slice", s)
	}
	if len(events) != 0 {
		t.Errorf("zero-length generate touched the allocator: %v", events)
	}
}

func TestAllocSliceFuncLayoutError(t *testing.T) {
	var events []string
	a := recordingAllocator{base: NewArena(1024), events: &events}

	type big [1 << 20]byte
	_, err := AllocSliceFunc(a, 100_000_000_000_000, func(i int) big { return big{} })
	var le *LayoutError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want *LayoutError", err)
	}

	// layout rejected before any allocation attempt
	if len(events) != 0 {
		t.Errorf("allocator was consulted despite invalid layout: %v", events)
	}
}

func TestAllocSliceFuncFailure(t *testing.T) {
	called := false
	_, err := AllocSliceFunc(failAllocator{}, 4, func(i int) int {
		called = true
		return i
	})
	if !errors.Is(err, ErrAllocFailed) {
		t.Errorf("error = %v, want ErrAllocFailed", err)
	}
	if called {
		t.Error("generator ran despite allocation failure")
	}
}

// resource logs teardown order.
type resource struct {
	id        int
	destroyed *[]int
}

func (r resource) Destroy() {
	*r.destroyed = append(*r.destroyed, r.id)
}

func (r resource) Clone() resource { return r }

func TestAllocSliceFuncPanicReleasesBlock(t *testing.T) {
	counting := NewCountingAllocator(NewHeapAllocator())
	var destroyed []int

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected the generator panic to resume")
			}
		}()
		AllocSliceFunc(counting, 5, func(i int) resource {
			if i == 3 {
				panic("generator fault")
			}
			return resource{id: i, destroyed: &destroyed}
		})
	}()

	// completed prefix torn down in order, then the block released
	if len(destroyed) != 3 || destroyed[0] != 0 || destroyed[1] != 1 || destroyed[2] != 2 {
		t.Errorf("teardown log = %v, want [0 1 2]", destroyed)
	}
	if counting.Outstanding() != 0 {
		t.Errorf("outstanding blocks after aborted fill = %d, want 0", counting.Outstanding())
	}
}

func TestAllocCloneSlicePanicReleasesBlock(t *testing.T) {
	counting := NewCountingAllocator(NewHeapAllocator())
	var destroyed []int

	src := make([]faultyClone, 4)
	for i := range src {
		src[i] = faultyClone{resource: resource{id: i, destroyed: &destroyed}, faultAt: 2}
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected the clone panic to resume")
			}
		}()
		AllocCloneSlice(counting, src)
	}()

	if len(destroyed) != 2 || destroyed[0] != 0 || destroyed[1] != 1 {
		t.Errorf("teardown log = %v, want [0 1]", destroyed)
	}
	if counting.Outstanding() != 0 {
		t.Errorf("outstanding blocks after aborted fill = %d, want 0", counting.Outstanding())
	}
}

// faultyClone panics when cloning the element whose id equals faultAt.
type faultyClone struct {
	resource
	faultAt int
}

func (f faultyClone) Clone() faultyClone {
	if f.id == f.faultAt {
		panic("clone fault")
	}
	return f
}
