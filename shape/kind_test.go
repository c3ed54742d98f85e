package shape_test

import (
	"fmt"
	"reflect"
	"time"

	"typedcsv/shape"
)

func ExampleKindOf() {
	fmt.Println(shape.KindOf(reflect.TypeFor[uint32]()))
	fmt.Println(shape.KindOf(reflect.TypeFor[string]()))
	fmt.Println(shape.KindOf(reflect.TypeFor[time.Time]()))
	fmt.Println(shape.KindOf(reflect.TypeFor[time.Duration]()))
	fmt.Println(shape.KindOf(reflect.TypeFor[shape.OneOf2[int64, float64]]()))
	fmt.Println(shape.KindOf(reflect.TypeFor[struct{ A int }]()))
	// Output:
	// KindUint32
	// KindString
	// KindTime
	// KindDuration
	// KindUnion
	// Kind(0)
}
