package shape_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typedcsv/shape"
)

type Animal struct {
	Count uint   `csv:"count"`
	Name  string `csv:"animal"`
}

type zooRow struct {
	Animal
	Description *string `csv:"description"`
}

func TestFieldNames(t *testing.T) {
	tests := []struct {
		name     string
		rtype    reflect.Type
		names    []string
		numLeaf  int
	}{
		{
			"flat struct",
			reflect.TypeOf(Animal{}),
			[]string{"count", "animal"}, 2,
		},
		{
			"embedded struct keeps its names",
			reflect.TypeOf(zooRow{}),
			[]string{"count", "animal", "description"}, 3,
		},
		{
			"array of records repeats names",
			reflect.TypeOf([2]Animal{}),
			[]string{"count", "animal", "count", "animal"}, 4,
		},
		{
			"array of scalars is anonymous",
			reflect.TypeOf([3]uint{}),
			nil, 3,
		},
		{
			"untagged fields use the Go name",
			reflect.TypeOf(struct{ A, B int }{}),
			[]string{"A", "B"}, 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := shape.Of(tt.rtype)
			require.NoError(t, err)
			assert.Equal(t, tt.names, s.FieldNames())
			assert.Equal(t, tt.numLeaf, s.NumLeaf())
			assert.Len(t, s.NamedLeaves(), len(tt.names))
		})
	}
}

func TestFieldNamesSkipTag(t *testing.T) {
	type rec struct {
		A int
		B int `csv:"-"`
		C int
	}

	s, err := shape.Of(reflect.TypeOf(rec{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, s.FieldNames())
	assert.Equal(t, 2, s.NumLeaf())
}

func TestFieldNamesPlaceholderHeuristic(t *testing.T) {
	// a field whose effective name matches the synthetic positional pattern
	// is indistinguishable from an anonymous position and drops out of the
	// name list while still occupying a column
	type rec struct {
		A int `csv:"_field0"`
		B int `csv:"b"`
	}

	s, err := shape.Of(reflect.TypeOf(rec{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, s.FieldNames())
	assert.Equal(t, 2, s.NumLeaf())
	assert.Equal(t, []int{1}, s.NamedLeaves())
}

func TestFieldNamesPlaceholderWrongPosition(t *testing.T) {
	// the pattern only bites at its own position
	type rec struct {
		A int `csv:"_field1"`
	}

	s, err := shape.Of(reflect.TypeOf(rec{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"_field1"}, s.FieldNames())
}

func TestOfCaches(t *testing.T) {
	s1, err := shape.Of(reflect.TypeOf(Animal{}))
	require.NoError(t, err)
	s2, err := shape.Of(reflect.TypeOf(Animal{}))
	require.NoError(t, err)
	assert.Same(t, s1, s2)
}

func TestOfRejectsUnsupportedShapes(t *testing.T) {
	tests := []struct {
		name  string
		rtype reflect.Type
	}{
		{"scalar", reflect.TypeOf(0)},
		{"pointer to struct", reflect.TypeOf(&Animal{})},
		{"map", reflect.TypeOf(map[string]string{})},
		{"named nested struct field", reflect.TypeOf(struct{ Inner Animal }{})},
		{"multi-element array field", reflect.TypeOf(struct{ A [2]int }{})},
		{"map field", reflect.TypeOf(struct{ M map[string]int }{})},
		{"slice of structs field", reflect.TypeOf(struct{ S []Animal }{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := shape.Of(tt.rtype)
			assert.Error(t, err)
		})
	}
}

func TestLeafDescriptors(t *testing.T) {
	type rec struct {
		Name string  `csv:"name"`
		Dist *uint32 `csv:"dist"`
		Seen []bool  `csv:"seen"`
	}

	s, err := shape.Of(reflect.TypeOf(rec{}))
	require.NoError(t, err)

	var leaves []*shape.Leaf
	err = shape.Walk(s, reflect.Value{}, visitorFunc(func(l *shape.Leaf, _ reflect.Value) error {
		leaves = append(leaves, l)
		return nil
	}))
	require.NoError(t, err)
	require.Len(t, leaves, 3)

	assert.Equal(t, shape.KindString, leaves[0].Kind)
	assert.Equal(t, "Name", leaves[0].FieldPath)

	assert.True(t, leaves[1].Optional)
	assert.Equal(t, shape.KindUint32, leaves[1].Kind)

	assert.Equal(t, shape.ContainerSlice, leaves[2].Container)
	assert.Equal(t, shape.KindBool, leaves[2].Kind)
}

type visitorFunc func(l *shape.Leaf, v reflect.Value) error

func (f visitorFunc) Leaf(l *shape.Leaf, v reflect.Value) error { return f(l, v) }
