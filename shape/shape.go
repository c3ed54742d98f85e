// Package shape derives the structural description of a record type and
// provides the traversal protocol the marshalling layer is built on.
//
// A record type composes through struct embedding and fixed-size arrays; its
// leaves are scalars, optional (pointer-wrapped) scalars, single-element
// containers, and tagged unions. Every leaf corresponds to exactly one raw
// text column.
//
// Key entry points:
//   - Of: derives (and caches) the Shape of a record type
//   - Walk: drives a Visitor over the shape's leaves in declaration order
//   - (*Shape).FieldNames: the ordered declared leaf names
package shape

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"sync"
)

// Container describes the single-element wrapper around a leaf scalar, if any.
type Container int

const (
	ContainerNone Container = iota
	ContainerSlice
	ContainerArray
)

// Leaf is one scalar position of a record shape. It corresponds to exactly
// one raw text field in a row.
type Leaf struct {
	// Name is the declared field name. It is empty for anonymous
	// (tuple-positional) leaves, which are counted toward the row width but
	// excluded from the field-name list.
	Name string
	// Index is the leaf's position in declaration order.
	Index int
	// Kind classifies the leaf's scalar storage after unwrapping Optional
	// and Container.
	Kind Kind
	// Optional marks pointer-wrapped leaves: an empty raw field decodes to
	// nil, and a nil value encodes to an empty field.
	Optional bool
	// Container marks a single-element slice or array wrapper.
	Container Container
	// FieldPath locates the leaf for diagnostics, e.g. "[1].Count".
	FieldPath string

	steps []int // child indexes from the record root to the leaf storage
}

// Anonymous reports whether the leaf occupies a position without a declared
// name.
func (l *Leaf) Anonymous() bool { return l.Name == "" }

// storage resolves the leaf's backing value inside a record value.
func (l *Leaf) storage(root reflect.Value) reflect.Value {
	v := root
	for _, i := range l.steps {
		if v.Kind() == reflect.Array {
			v = v.Index(i)
		} else {
			v = v.Field(i)
		}
	}
	return v
}

// Shape is the immutable structural description of a record type. It is
// built once per type and shared by every session that marshals the type.
type Shape struct {
	rtype  reflect.Type
	leaves []Leaf
	named  []int // leaf indexes of the non-anonymous leaves, in order
}

// Type returns the record type the shape was derived from.
func (s *Shape) Type() reflect.Type { return s.rtype }

// NumLeaf returns the row width of the shape: the total number of leaves,
// anonymous positions included.
func (s *Shape) NumLeaf() int { return len(s.leaves) }

// NamedLeaves returns the leaf indexes of the named leaves, in declaration
// order. Entry i locates the leaf that field name i refers to.
func (s *Shape) NamedLeaves() []int { return s.named }

var shapes sync.Map // reflect.Type -> shapeEntry

type shapeEntry struct {
	shape *Shape
	err   error
}

// Of derives the Shape of a record type. Shapes are cached: repeated calls
// for the same type return the same instance.
//
// The record type must be a struct or a fixed-size array of record types.
// Named struct fields must hold exactly one leaf; records nest only through
// embedding and arrays.
func Of(rtype reflect.Type) (*Shape, error) {
	if e, ok := shapes.Load(rtype); ok {
		entry := e.(shapeEntry)
		return entry.shape, entry.err
	}

	s, err := build(rtype)
	shapes.Store(rtype, shapeEntry{shape: s, err: err})
	return s, err
}

func build(rtype reflect.Type) (*Shape, error) {
	if rtype == nil {
		return nil, fmt.Errorf("shape: record type is nil")
	}
	if leafKind(rtype) != 0 || (rtype.Kind() != reflect.Struct && rtype.Kind() != reflect.Array) {
		return nil, fmt.Errorf("shape: record type must be a struct or an array of records, got %s", rtype)
	}

	s := &Shape{rtype: rtype}
	if err := s.container(rtype, nil, ""); err != nil {
		return nil, err
	}
	for i := range s.leaves {
		if !s.leaves[i].Anonymous() {
			s.named = append(s.named, i)
		}
	}
	return s, nil
}

// container descends into a record-level node: a struct with named children
// or an array whose elements are visited positionally.
func (s *Shape) container(rtype reflect.Type, steps []int, where string) error {
	switch rtype.Kind() {
	default:
		return fmt.Errorf("shape: %s: records nest only through embedding and arrays, got %s", where, rtype)

	case reflect.Struct:
		for i := 0; i < rtype.NumField(); i++ {
			f := rtype.Field(i)
			if !f.IsExported() {
				continue
			}
			name, skip := fieldName(f, i)
			if skip {
				continue
			}

			path := joinPath(where, f.Name)
			_, tagged := f.Tag.Lookup("csv")
			if f.Anonymous && !tagged && leafKind(f.Type) == 0 &&
				(f.Type.Kind() == reflect.Struct || f.Type.Kind() == reflect.Array) {
				// embedded record: inlined, keeps its own field names
				if err := s.container(f.Type, slices.Concat(steps, []int{i}), path); err != nil {
					return err
				}
				continue
			}

			if err := s.leaf(f.Type, slices.Concat(steps, []int{i}), path, name); err != nil {
				return err
			}
		}
		return nil

	case reflect.Array:
		elem := rtype.Elem()
		for i := 0; i < rtype.Len(); i++ {
			path := fmt.Sprintf("%s[%d]", where, i)
			sub := slices.Concat(steps, []int{i})
			if leafKind(elem) == 0 && (elem.Kind() == reflect.Struct || elem.Kind() == reflect.Array) {
				if err := s.container(elem, sub, path); err != nil {
					return err
				}
				continue
			}
			// scalar array element: anonymous positional leaf
			if err := s.leaf(elem, sub, path, ""); err != nil {
				return err
			}
		}
		return nil
	}
}

// leaf records one leaf position. rtype must unwrap to a single scalar:
// optionally a single-element slice/array, optionally a pointer, then a leaf
// kind.
func (s *Shape) leaf(rtype reflect.Type, steps []int, where, name string) error {
	l := Leaf{
		Name:      name,
		Index:     len(s.leaves),
		FieldPath: where,
		steps:     steps,
	}

	t := rtype
	switch t.Kind() {
	case reflect.Slice:
		l.Container = ContainerSlice
		t = t.Elem()
	case reflect.Array:
		if t.Len() != 1 {
			return fmt.Errorf("shape: field %s: only single-element containers keep the row width well-defined, got %s", where, rtype)
		}
		l.Container = ContainerArray
		t = t.Elem()
	}

	if t.Kind() == reflect.Pointer {
		l.Optional = true
		t = t.Elem()
	}

	k := leafKind(t)
	if k == 0 {
		return fmt.Errorf("shape: field %s: unsupported leaf type %s (records nest only through embedding and arrays)", where, rtype)
	}
	l.Kind = k

	s.leaves = append(s.leaves, l)
	return nil
}

// fieldName resolves the declared name of a struct field, honoring the csv
// tag. skip is true for fields tagged "-".
//
// A field whose effective name is exactly "_field<i>" for its position i is
// treated as anonymous. The placeholder pattern cannot be told apart from a
// field genuinely named that way; avoid it in real field names.
func fieldName(f reflect.StructField, index int) (name string, skip bool) {
	name = f.Name
	if tag, ok := f.Tag.Lookup("csv"); ok {
		if tag == "-" {
			return "", true
		}
		if tag != "" {
			name = tag
		}
	}
	if name == "_field"+strconv.Itoa(index) {
		return "", false
	}
	return name, false
}

func joinPath(where, name string) string {
	if where == "" {
		return name
	}
	return where + "." + name
}
