package colmem

import (
	"github.com/hupe1980/colmem/memory"
	"github.com/hupe1980/colmem/offset"
	"github.com/hupe1980/colmem/resource"
)

var (
	// ErrOffsetOverflow is returned when an item length or a running total
	// does not fit the offset type.
	ErrOffsetOverflow = offset.ErrOverflow

	// ErrMemoryLimit is returned when an allocation would exceed a memory budget.
	ErrMemoryLimit = memory.ErrMemoryLimit

	// ErrAllocationFailed is returned when an allocator cannot provide memory.
	ErrAllocationFailed = memory.ErrAllocationFailed

	// ErrLimitExceeded is returned by resource.Controller when a reservation
	// does not fit its limit.
	ErrLimitExceeded = resource.ErrLimitExceeded
)

// OverflowError describes the item that overflowed the offset type.
type OverflowError = offset.OverflowError
