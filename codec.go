package typedcsv

import (
	"github.com/oleg578/swiftcsv"
)

// RowReader is the reading half of the external tabular-text codec. The
// engine never parses delimited text itself; it consumes whole records of
// raw fields and reports io.EOF on a clean end of input.
type RowReader interface {
	ReadRow() ([]string, error)
}

// RowWriter is the writing half of the external codec. Flush hands all
// buffered output to the underlying writer.
type RowWriter interface {
	WriteRow(record []string) error
	Flush() error
}

// swiftRowReader adapts a swiftcsv.Reader to RowReader.
type swiftRowReader struct {
	r *swiftcsv.Reader
}

func (c *swiftRowReader) ReadRow() ([]string, error) {
	// Row-width policy belongs to the marshalling layer, so the codec's own
	// fixed-width enforcement stays disabled.
	c.r.FieldsPerRecord = -1
	return c.r.Read()
}

// swiftRowWriter adapts a swiftcsv.Writer to RowWriter.
type swiftRowWriter struct {
	w *swiftcsv.Writer
}

func (c *swiftRowWriter) WriteRow(record []string) error { return c.w.Write(record) }

func (c *swiftRowWriter) Flush() error { return c.w.Flush() }
