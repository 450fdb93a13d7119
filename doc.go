// Package colmem provides the memory layout building blocks of a columnar,
// Arrow-compatible array library.
//
// The layouts live in sub-packages:
//
//   - bitmap: bit-packed validity bitmaps, least-significant bit first.
//   - validity: compile-time choice between plain and nullable storage.
//   - offset: variable-length items as N+1 offsets into one data buffer.
//   - array: typed primitive and string columns built on the above.
//   - memory: allocators, growth policies and construction options.
//   - resource: a memory budget shared by many builders.
//
// # Quick Start
//
//	bm, _ := bitmap.New(source.Of(true, false, true))
//	strs, _ := array.NewNullableString[int32](source.Of(
//		validity.Some("a"), validity.None[string](), validity.Some("bc"),
//	))
//	strs.OffsetBuffer() // [0 1 1 3]
//
// # Memory
//
// Every buffer is 64-byte aligned and owned by the allocator it came from.
// Construction options select the allocator and growth policy:
//
//	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	alloc := memory.NewLimitedAllocator(memory.NewMmapAllocator(), ctrl)
//	arr, err := array.NewPrimitive(src, memory.WithAllocator(alloc))
//	if errors.Is(err, colmem.ErrMemoryLimit) {
//		// over budget
//	}
//	defer arr.Release()
//
// # Observability
//
// Logger and MetricsCollector observe every construction:
//
//	obs := memory.Observers(colmem.NewJSONLogger(slog.LevelDebug), colmem.ObserveMetrics(mc))
//	bm, _ := bitmap.New(src, memory.WithObserver(obs))
//
// Built values are immutable and safe for concurrent reads. Construction is
// single-threaded per value; allocators may be shared across goroutines.
package colmem
