package typedcsv_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"typedcsv"
)

func TestEncodeSimple(t *testing.T) {
	var buf bytes.Buffer
	w := typedcsv.NewWriter[pairRow](&buf)

	require.NoError(t, w.Encode(pairRow{A: 0, B: 1}))
	require.NoError(t, w.Encode(pairRow{A: 3, B: 4}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "a,b\n0,1\n3,4\n", buf.String())
}

func TestEncodeArrayOfRecords(t *testing.T) {
	var buf bytes.Buffer
	w := typedcsv.NewWriter[[2]pairRow](&buf)

	require.NoError(t, w.Encode([2]pairRow{{A: 0, B: 1}, {A: 2, B: 3}}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "a,b,a,b\n0,1,2,3\n", buf.String())
}

func TestEncodeEmbeddedOptionalUnion(t *testing.T) {
	type Animal struct {
		Count uint   `csv:"count"`
		Name  string `csv:"animal"`
	}
	type zooRow struct {
		Animal
		Habitat     habitat `csv:"habitat"`
		Description *string `csv:"description"`
	}

	var buf bytes.Buffer
	w := typedcsv.NewWriter[zooRow](&buf)

	aquatic := "flightless"
	require.NoError(t, w.Encode(zooRow{
		Animal:      Animal{Count: 7, Name: "penguin"},
		Habitat:     habitat{tag: 1},
		Description: &aquatic,
	}))
	require.NoError(t, w.Encode(zooRow{
		Animal:  Animal{Count: 2, Name: "lion"},
		Habitat: habitat{tag: 0},
	}))
	require.NoError(t, w.Flush())

	assert.Equal(t,
		"count,animal,habitat,description\n"+
			"7,penguin,Sea,flightless\n"+
			"2,lion,Land,\n",
		buf.String())
}

func TestEncodeSingleElementContainers(t *testing.T) {
	type row struct {
		A [1]uint `csv:"a"`
		B []uint  `csv:"b"`
		C uint    `csv:"c"`
	}

	var buf bytes.Buffer
	w := typedcsv.NewWriter[row](&buf)

	require.NoError(t, w.Encode(row{A: [1]uint{1}, B: []uint{2}, C: 3}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "a,b,c\n1,2,3\n", buf.String())
}

func TestEncodeSliceLengthError(t *testing.T) {
	type row struct {
		B []uint `csv:"b"`
	}

	var buf bytes.Buffer
	w := typedcsv.NewWriter[row](&buf)

	err := w.Encode(row{B: []uint{1, 2}})
	var encodeErr *typedcsv.EncodeError
	require.ErrorAs(t, err, &encodeErr)
	assert.Equal(t, "B", encodeErr.Path)

	// a failing record emits nothing, not even the header
	require.NoError(t, w.Flush())
	assert.Empty(t, buf.String())

	// the failure is not sticky
	require.NoError(t, w.Encode(row{B: []uint{1}}))
	require.NoError(t, w.Flush())
	assert.Equal(t, "b\n1\n", buf.String())
}

func TestEncodeNoLeaves(t *testing.T) {
	var buf bytes.Buffer
	w := typedcsv.NewWriter[struct{}](&buf)

	require.NoError(t, w.Encode(struct{}{}))
	require.NoError(t, w.Encode(struct{}{}))
	require.NoError(t, w.Flush())

	// the empty row is quoted so it survives a round trip as a record
	assert.Equal(t, "\"\"\n\"\"\n\"\"\n", buf.String())
}

func TestEncodeDelimiter(t *testing.T) {
	var buf bytes.Buffer
	w := typedcsv.NewWriter[pairRow](&buf).Delimiter(';')

	require.NoError(t, w.Encode(pairRow{A: 0, B: 1}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "a;b\n0;1\n", buf.String())
}

func TestEncodeCRLF(t *testing.T) {
	var buf bytes.Buffer
	w := typedcsv.NewWriter[pairRow](&buf).UseCRLF(true)

	require.NoError(t, w.Encode(pairRow{A: 0, B: 1}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "a,b\r\n0,1\r\n", buf.String())
}

func TestEncodeQuoting(t *testing.T) {
	type row struct {
		Note string `csv:"note"`
	}

	var buf bytes.Buffer
	w := typedcsv.NewWriter[row](&buf)

	require.NoError(t, w.Encode(row{Note: "eats, shoots and leaves"}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "note\n\"eats, shoots and leaves\"\n", buf.String())
}

func TestCreateWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")

	w, err := typedcsv.CreateWriter[pairRow](path)
	require.NoError(t, err)
	require.NoError(t, w.Encode(pairRow{A: 7, B: 11}))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n7,11\n", string(data))
}
