// Package memory defines the allocation layer underneath every buffer.
//
// # Allocators
//
// An Allocator hands out zeroed, Alignment-aligned byte blocks and takes them
// back. Buffers never call make directly; they go through the allocator chosen
// with WithAllocator:
//
//   - DefaultAllocator: the Go heap (Free is a no-op, the GC reclaims blocks)
//   - NewMmapAllocator: anonymous off-heap mappings, freed on Release
//   - NewArenaAllocator: bump allocation from large mappings, freed by Reset or Close
//   - NewCountingAllocator: decorator that counts calls and bytes
//   - NewLimitedAllocator: decorator that charges a memory budget
//
// Decorators compose:
//
//	ctl := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	alloc := memory.NewCountingAllocator(memory.NewLimitedAllocator(memory.DefaultAllocator, ctl))
//	bm, err := bitmap.New(src, memory.WithAllocator(alloc))
//
// # Growth
//
// Builders pre-size from the source size hint and, when more items arrive than
// predicted, grow according to a GrowthPolicy. GrowExact (the default) grows by
// exactly what is missing, one byte or one element at a time. GrowDouble trades
// slack for fewer reallocations. Either way, published buffers are shrunk to
// their exact length.
package memory
