package colmem_test

import (
	"errors"
	"fmt"

	"github.com/hupe1980/colmem"
	"github.com/hupe1980/colmem/array"
	"github.com/hupe1980/colmem/memory"
	"github.com/hupe1980/colmem/resource"
	"github.com/hupe1980/colmem/source"
	"github.com/hupe1980/colmem/validity"
)

func Example() {
	strs, err := array.NewNullableString[int32](source.Of(
		validity.Some("a"),
		validity.None[string](),
		validity.Some("bc"),
	))
	if err != nil {
		panic(err)
	}
	defer strs.Release()

	fmt.Println(strs.OffsetBuffer())
	fmt.Println(strs.ValidityBitmap())
	fmt.Println(strs.NullCount(), strs.Value(2))
	// Output:
	// [0 1 1 3]
	// 101
	// 1 bc
}

func Example_memoryLimit() {
	ctrl := resource.NewController(resource.Config{MemoryLimitBytes: 16})
	alloc := memory.NewLimitedAllocator(nil, ctrl)

	_, err := array.NewPrimitive(source.Of[int64](1, 2, 3), memory.WithAllocator(alloc))
	fmt.Println(errors.Is(err, colmem.ErrMemoryLimit))
	// Output: true
}

func Example_metrics() {
	mc := &colmem.BasicMetricsCollector{}
	obs := memory.Observers(colmem.NoopLogger(), colmem.ObserveMetrics(mc))

	for _, s := range [][]string{{"x"}, {"y", "z"}} {
		arr, err := array.NewString[int64](source.Slice(s), memory.WithObserver(obs))
		if err != nil {
			panic(err)
		}
		arr.Release()
	}

	stats := mc.GetStats()
	fmt.Println(stats.BuildCount, stats.ElementsBuilt)
	// Output: 2 3
}
