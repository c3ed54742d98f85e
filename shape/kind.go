package shape

import (
	"encoding"
	"reflect"
	"time"
)

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind identifies the scalar category of a leaf field.
type Kind int

const (
	_ Kind = iota // skip zero value, use it as a default (invalid) value for Kind

	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindBool
	KindString
	KindTime
	KindDuration
	KindText  // handled through encoding.TextMarshaler / encoding.TextUnmarshaler
	KindUnion // tagged choice, decoded by trying variants in declaration order

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k Kind) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k Kind) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

func (k Kind) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

var (
	timeType            = reflect.TypeOf(time.Time{})
	durationType        = reflect.TypeOf(time.Duration(0))
	unionType           = reflect.TypeOf((*Union)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// KindOf classifies a type as a leaf scalar. It returns the zero Kind for
// types that cannot occupy a single column on their own.
func KindOf(rtype reflect.Type) Kind { return leafKind(rtype) }

// leafKind classifies a type as a leaf scalar. It returns the zero Kind for
// types that cannot occupy a single column.
func leafKind(rtype reflect.Type) Kind {
	if rtype == nil {
		return 0
	}

	// exact types first: time.Duration is an int64 underneath and time.Time
	// is a struct that also implements encoding.TextMarshaler
	switch rtype {
	case timeType:
		return KindTime
	case durationType:
		return KindDuration
	}

	if reflect.PointerTo(rtype).Implements(unionType) {
		return KindUnion
	}

	if reflect.PointerTo(rtype).Implements(textMarshalerType) &&
		reflect.PointerTo(rtype).Implements(textUnmarshalerType) {
		return KindText
	}

	switch rtype.Kind() {
	default:
		return 0
	case reflect.Int:
		return KindInt
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Uint:
		return KindUint
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindString
	}
}
