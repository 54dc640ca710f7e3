package memapi

import (
	"errors"
	"fmt"
)

// ErrAllocFailed is returned when the base allocator declines a request.
var ErrAllocFailed = errors.New("memapi: allocation failed")

// LayoutError reports an invalid footprint computation, typically an
// arithmetic overflow from an excessive element count or element size.
// It is returned before any allocation attempt is made.
type LayoutError struct {
	Size  uintptr // element or total size that produced the failure
	Align uintptr // requested alignment
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("memapi: invalid layout (size=%d, align=%d)", e.Size, e.Align)
}
