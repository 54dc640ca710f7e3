package memapi

import (
	"testing"
)

func TestArenaMetrics(t *testing.T) {
	a := NewArena(1024)
	defer a.Release()

	if _, err := a.Allocate(Layout{Size: 100, Align: 4}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Allocate(Layout{Size: 50, Align: 4}); err != nil {
		t.Fatal(err)
	}

	m := a.Metrics()
	if m.SizeInUse < 150 {
		t.Errorf("SizeInUse = %d, want >= 150", m.SizeInUse)
	}
	if m.Capacity != 1024 {
		t.Errorf("Capacity = %d, want 1024", m.Capacity)
	}
	if m.NumChunks != 1 {
		t.Errorf("NumChunks = %d, want 1", m.NumChunks)
	}
	if m.ChunkSize != 1024 {
		t.Errorf("ChunkSize = %d, want 1024", m.ChunkSize)
	}
	if m.Utilization <= 0 || m.Utilization > 1 {
		t.Errorf("Utilization = %f, want in (0, 1]", m.Utilization)
	}
}

func TestArenaPeakSurvivesReset(t *testing.T) {
	a := NewArena(1024)
	defer a.Release()

	if _, err := a.Allocate(Layout{Size: 200, Align: 8}); err != nil {
		t.Fatal(err)
	}
	peak := a.Peak()
	if peak < 200 {
		t.Fatalf("Peak = %d, want >= 200", peak)
	}

	a.Reset()
	if a.SizeInUse() != 0 {
		t.Error("SizeInUse not rewound by Reset")
	}
	if a.Peak() != peak {
		t.Errorf("Peak after Reset = %d, want %d", a.Peak(), peak)
	}

	// a smaller cycle does not lower the high-water mark
	if _, err := a.Allocate(Layout{Size: 8, Align: 8}); err != nil {
		t.Fatal(err)
	}
	if a.Peak() != peak {
		t.Errorf("Peak after smaller cycle = %d, want %d", a.Peak(), peak)
	}
}

func TestCountingAllocator(t *testing.T) {
	c := NewCountingAllocator(NewHeapAllocator())

	layout := Layout{Size: 64, Align: 8}
	p1, err := c.Allocate(layout)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := c.Allocate(layout)
	if err != nil {
		t.Fatal(err)
	}

	if c.Allocs() != 2 || c.Outstanding() != 2 {
		t.Errorf("allocs = %d, outstanding = %d, want 2 and 2", c.Allocs(), c.Outstanding())
	}
	if c.BytesInUse() != 128 {
		t.Errorf("BytesInUse = %d, want 128", c.BytesInUse())
	}

	c.Deallocate(p1, layout)
	c.Deallocate(p2, layout)
	if c.Outstanding() != 0 || c.BytesInUse() != 0 {
		t.Errorf("outstanding = %d, bytes = %d after release, want 0 and 0", c.Outstanding(), c.BytesInUse())
	}
	if c.Deallocs() != 2 {
		t.Errorf("deallocs = %d, want 2", c.Deallocs())
	}
}

func TestCountingAllocatorIgnoresFailures(t *testing.T) {
	c := NewCountingAllocator(failAllocator{})

	if _, err := c.Allocate(Layout{Size: 8, Align: 8}); err == nil {
		t.Fatal("expected failure from base allocator")
	}
	if c.Allocs() != 0 || c.Outstanding() != 0 {
		t.Errorf("failed allocation was counted: allocs = %d", c.Allocs())
	}
}
