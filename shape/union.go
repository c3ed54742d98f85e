package shape

import "reflect"

// Union is a tagged choice among a fixed list of variants, each carrying at
// most one scalar payload. Decoding tries the variants in declaration order
// against the same raw field and keeps the first one whose payload parses; a
// payload-free variant matches when the raw field equals its name exactly.
// Encoding renders the selected variant's payload, or its bare name when it
// has none.
//
// Implement Union on a pointer receiver so Choose can mutate the value.
// OneOf2 and OneOf3 are ready-made implementations for the common cases.
type Union interface {
	// NumVariant returns the number of declared variants.
	NumVariant() int
	// VariantName returns the declared name of variant i.
	VariantName(i int) string
	// Variant returns a pointer to variant i's payload, or nil when the
	// variant carries none.
	Variant(i int) any
	// Which returns the index of the selected variant.
	Which() int
	// Choose selects variant i.
	Choose(i int)
}

// OneOf2 is a two-variant union. Decoding tries A before B; the zero value
// selects A.
type OneOf2[A, B any] struct {
	Tag int // selected variant: 0 for A, 1 for B
	A   A
	B   B
}

func (o *OneOf2[A, B]) NumVariant() int { return 2 }

func (o *OneOf2[A, B]) VariantName(i int) string {
	if i == 0 {
		return reflect.TypeFor[A]().Name()
	}
	return reflect.TypeFor[B]().Name()
}

func (o *OneOf2[A, B]) Variant(i int) any {
	if i == 0 {
		return &o.A
	}
	return &o.B
}

func (o *OneOf2[A, B]) Which() int { return o.Tag }

func (o *OneOf2[A, B]) Choose(i int) { o.Tag = i }

// OneOf3 is a three-variant union tried in declaration order A, B, C.
type OneOf3[A, B, C any] struct {
	Tag int
	A   A
	B   B
	C   C
}

func (o *OneOf3[A, B, C]) NumVariant() int { return 3 }

func (o *OneOf3[A, B, C]) VariantName(i int) string {
	switch i {
	case 0:
		return reflect.TypeFor[A]().Name()
	case 1:
		return reflect.TypeFor[B]().Name()
	default:
		return reflect.TypeFor[C]().Name()
	}
}

func (o *OneOf3[A, B, C]) Variant(i int) any {
	switch i {
	case 0:
		return &o.A
	case 1:
		return &o.B
	default:
		return &o.C
	}
}

func (o *OneOf3[A, B, C]) Which() int { return o.Tag }

func (o *OneOf3[A, B, C]) Choose(i int) { o.Tag = i }
