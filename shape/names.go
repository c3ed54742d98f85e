package shape

import "reflect"

// nameCollector is the name-collection visitor: it gathers declared leaf
// names and skips anonymous positions. No record value is needed.
type nameCollector struct {
	names []string
}

func (c *nameCollector) Leaf(l *Leaf, _ reflect.Value) error {
	if !l.Anonymous() {
		c.names = append(c.names, l.Name)
	}
	return nil
}

// FieldNames returns the declared leaf-field names in declaration order.
// Anonymous (positional) leaves are excluded from the list but still count
// toward the row width reported by NumLeaf. Duplicate names are permitted
// and preserved, e.g. when the same record shape repeats inside an array.
func (s *Shape) FieldNames() []string {
	c := nameCollector{}
	_ = Walk(s, reflect.Value{}, &c) // the collector never fails
	return c.names
}
