package shape

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// LeafError reports a failure at a single leaf during decode or encode.
type LeafError struct {
	Path string
	Err  error
}

func (e *LeafError) Error() string { return fmt.Sprintf("field %s: %v", e.Path, e.Err) }

func (e *LeafError) Unwrap() error { return e.Err }

// rowDecoder is the decode-mode visitor. It consumes one already-reordered
// row of raw fields, indexed by leaf position; leaves that no column feeds
// hold the synthesized empty field.
type rowDecoder struct {
	fields []string
}

func (d *rowDecoder) Leaf(l *Leaf, v reflect.Value) error {
	raw := ""
	if l.Index < len(d.fields) {
		raw = d.fields[l.Index]
	}
	if err := decodeLeaf(l, v, raw); err != nil {
		return &LeafError{Path: l.FieldPath, Err: err}
	}
	return nil
}

// DecodeRow fills dst, a settable value of the shape's type, from a row of
// raw fields indexed by leaf position. Leaf failures surface as *LeafError;
// dst should be discarded when an error is returned.
func (s *Shape) DecodeRow(fields []string, dst reflect.Value) error {
	if dst.Type() != s.rtype {
		return fmt.Errorf("shape: decoding into %s, want %s", dst.Type(), s.rtype)
	}
	return Walk(s, dst, &rowDecoder{fields: fields})
}

func decodeLeaf(l *Leaf, v reflect.Value, raw string) error {
	switch l.Container {
	case ContainerSlice:
		v.Set(reflect.MakeSlice(v.Type(), 1, 1))
		v = v.Index(0)
	case ContainerArray:
		v = v.Index(0)
	}

	if l.Optional {
		if raw == "" {
			v.SetZero()
			return nil
		}
		inner := reflect.New(v.Type().Elem())
		if err := parseScalar(l.Kind, inner.Elem(), raw); err != nil {
			// non-empty data that fails the inner parse decodes as absent
			// instead of failing the row; see the package documentation
			v.SetZero()
			return nil
		}
		v.Set(inner)
		return nil
	}

	return parseScalar(l.Kind, v, raw)
}

// parseScalar parses raw into the leaf storage v according to kind.
func parseScalar(kind Kind, v reflect.Value, raw string) error {
	switch kind {
	default:
		return fmt.Errorf("unsupported kind %s", kind)

	case KindUnion:
		return decodeUnion(v, raw)

	case KindText:
		return v.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw))

	case KindTime:
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(t).Convert(v.Type()))
		return nil

	case KindDuration:
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil

	case KindString:
		v.SetString(raw)
		return nil

	case KindBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		v.SetBool(b)
		return nil

	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		n, err := strconv.ParseInt(raw, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
		return nil

	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		n, err := strconv.ParseUint(raw, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)
		return nil

	case KindFloat32, KindFloat64:
		f, err := strconv.ParseFloat(raw, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
		return nil
	}
}

// decodeUnion tries the variants in declaration order against the same raw
// field and selects the first that accepts it.
func decodeUnion(v reflect.Value, raw string) error {
	u := v.Addr().Interface().(Union)

	for i := 0; i < u.NumVariant(); i++ {
		payload := u.Variant(i)
		if payload == nil {
			// payload-free variant decodes from its bare name
			if raw == u.VariantName(i) {
				u.Choose(i)
				return nil
			}
			continue
		}

		pv := reflect.ValueOf(payload).Elem()
		kind := leafKind(pv.Type())
		if kind == 0 || kind == KindUnion {
			return fmt.Errorf("variant %s: unsupported payload type %s", u.VariantName(i), pv.Type())
		}
		if parseScalar(kind, pv, raw) == nil {
			u.Choose(i)
			return nil
		}
	}

	return fmt.Errorf("no variant of %s accepts %q", v.Type(), raw)
}
