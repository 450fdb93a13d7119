package bitmap_test

import (
	"fmt"

	"github.com/hupe1980/colmem/bitmap"
	"github.com/hupe1980/colmem/source"
)

func ExampleNew() {
	bm, err := bitmap.New(source.Of(true, false, true, true))
	if err != nil {
		panic(err)
	}

	fmt.Println(bm.Len(), bm.IsValid(0), bm.IsNull(1))
	fmt.Printf("%08b\n", bm.Bytes()[0])
	// Output:
	// 4 true true
	// 00001101
}
