package shape

import "reflect"

// Visitor observes the leaves of a record shape in declaration order. The
// three traversal modes of the engine (name collection, decode, encode) are
// visitor implementations.
type Visitor interface {
	// Leaf is called once per leaf. value is the leaf's backing storage
	// inside the record being walked; during name collection no record
	// exists and value is the zero reflect.Value.
	//
	// A non-nil error aborts the traversal. Leaf values touched before the
	// abort are discarded by the caller, so a failed walk never leaves a
	// half-applied record visible.
	Leaf(leaf *Leaf, value reflect.Value) error
}

// Walk drives v over every leaf of s. record must be a value of the shape's
// type, or the zero reflect.Value for structure-only traversals.
func Walk(s *Shape, record reflect.Value, v Visitor) error {
	for i := range s.leaves {
		l := &s.leaves[i]
		var lv reflect.Value
		if record.IsValid() {
			lv = l.storage(record)
		}
		if err := v.Leaf(l, lv); err != nil {
			return err
		}
	}
	return nil
}
