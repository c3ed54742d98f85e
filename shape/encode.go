package shape

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// rowEncoder is the encode-mode visitor: it renders every leaf, anonymous
// positions included, as one raw field in declaration order.
type rowEncoder struct {
	row []string
}

func (e *rowEncoder) Leaf(l *Leaf, v reflect.Value) error {
	field, err := encodeLeaf(l, v)
	if err != nil {
		return &LeafError{Path: l.FieldPath, Err: err}
	}
	e.row = append(e.row, field)
	return nil
}

// EncodeRow renders src, a value of the shape's type, into a row of raw
// fields whose length equals NumLeaf. Leaf failures surface as *LeafError
// and nothing is emitted for the record.
func (s *Shape) EncodeRow(src reflect.Value) ([]string, error) {
	if src.Type() != s.rtype {
		return nil, fmt.Errorf("shape: encoding %s, want %s", src.Type(), s.rtype)
	}
	if !src.CanAddr() {
		// unions and text marshallers need an addressable receiver
		copied := reflect.New(s.rtype).Elem()
		copied.Set(src)
		src = copied
	}

	enc := rowEncoder{row: make([]string, 0, len(s.leaves))}
	if err := Walk(s, src, &enc); err != nil {
		return nil, err
	}
	return enc.row, nil
}

func encodeLeaf(l *Leaf, v reflect.Value) (string, error) {
	switch l.Container {
	case ContainerSlice:
		if v.Len() != 1 {
			return "", fmt.Errorf("single-element container holds %d elements", v.Len())
		}
		v = v.Index(0)
	case ContainerArray:
		v = v.Index(0)
	}

	if l.Optional {
		if v.IsNil() {
			return "", nil
		}
		v = v.Elem()
	}

	return renderScalar(l.Kind, v)
}

func renderScalar(kind Kind, v reflect.Value) (string, error) {
	switch kind {
	default:
		return "", fmt.Errorf("unsupported kind %s", kind)

	case KindUnion:
		return encodeUnion(v)

	case KindText:
		b, err := v.Addr().Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", err
		}
		return string(b), nil

	case KindTime:
		return v.Convert(timeType).Interface().(time.Time).Format(time.RFC3339), nil

	case KindDuration:
		return time.Duration(v.Int()).String(), nil

	case KindString:
		return v.String(), nil

	case KindBool:
		return strconv.FormatBool(v.Bool()), nil

	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(v.Int(), 10), nil

	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return strconv.FormatUint(v.Uint(), 10), nil

	case KindFloat32, KindFloat64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()), nil
	}
}

// encodeUnion renders the selected variant: its payload when it has one, its
// bare name otherwise.
func encodeUnion(v reflect.Value) (string, error) {
	u := v.Addr().Interface().(Union)

	i := u.Which()
	if i < 0 || i >= u.NumVariant() {
		return "", fmt.Errorf("selected variant %d of %s out of range", i, v.Type())
	}

	payload := u.Variant(i)
	if payload == nil {
		return u.VariantName(i), nil
	}

	pv := reflect.ValueOf(payload).Elem()
	kind := leafKind(pv.Type())
	if kind == 0 || kind == KindUnion {
		return "", fmt.Errorf("variant %s: unsupported payload type %s", u.VariantName(i), pv.Type())
	}
	return renderScalar(kind, pv)
}
