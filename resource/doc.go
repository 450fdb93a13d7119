// Package resource provides a goroutine-safe memory budget.
//
// A Controller tracks bytes reserved by allocations and, when configured with
// a limit, refuses reservations that would exceed it. memory.NewLimitedAllocator
// uses a Controller to bound the buffers a set of builders may hold.
package resource
