package memapi

import (
	"sync"
	"testing"
)

func TestSafeAllocatorConcurrentAllocate(t *testing.T) {
	s := NewSafeAllocator(NewArena(0))

	const workers = 8
	const perWorker = 200

	var wg sync.WaitGroup
	results := make([][]*int64, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				p, err := AllocWrite(s, int64(w*perWorker+i))
				if err != nil {
					t.Errorf("worker %d: AllocWrite error = %v", w, err)
					return
				}
				results[w] = append(results[w], p)
			}
		}(w)
	}
	wg.Wait()

	// every handle distinct and holding its own value
	seen := make(map[*int64]bool, workers*perWorker)
	for w := range results {
		for i, p := range results[w] {
			if seen[p] {
				t.Fatalf("duplicate handle for worker %d index %d", w, i)
			}
			seen[p] = true
			if *p != int64(w*perWorker+i) {
				t.Errorf("worker %d index %d: value = %d, want %d", w, i, *p, w*perWorker+i)
			}
		}
	}
	if len(seen) != workers*perWorker {
		t.Errorf("distinct handles = %d, want %d", len(seen), workers*perWorker)
	}
}

func TestSafeAllocatorForwardsErrors(t *testing.T) {
	s := NewSafeAllocator(NewFixedArena(16))

	if _, err := s.Allocate(Layout{Size: 64, Align: 8}); err == nil {
		t.Error("oversized Allocate on fixed arena succeeded through SafeAllocator")
	}
}

func TestSafeAllocatorDeallocateForwards(t *testing.T) {
	c := NewCountingAllocator(NewHeapAllocator())
	s := NewSafeAllocator(c)

	p, err := AllocWrite(s, 1)
	if err != nil {
		t.Fatal(err)
	}
	Dealloc(s, p)
	if c.Outstanding() != 0 {
		t.Errorf("outstanding = %d, want 0", c.Outstanding())
	}
}
