package typedcsv

import (
	"errors"
	"io"
	"os"
	"reflect"

	"github.com/oleg578/swiftcsv"

	"typedcsv/options"
	"typedcsv/shape"
)

// Writer encodes records of type T as CSV data, writing the header row from
// the record's field names before the first record.
//
// A record whose shape has no leaves still writes a single empty field, so
// the row cannot be mistaken for a blank line by codecs that collapse
// consecutive record terminators.
//
//	type Record struct {
//		Count  uint   `csv:"count"`
//		Animal string `csv:"animal"`
//	}
//
//	var buf bytes.Buffer
//	w := typedcsv.NewWriter[Record](&buf)
//	err := w.Encode(Record{Count: 7, Animal: "penguin"})
//	...
//	err = w.Flush()
type Writer[T any] struct {
	codec  RowWriter
	swift  *swiftcsv.Writer // nil when a custom codec was supplied
	closer io.Closer

	shape       *shape.Shape
	fieldNames  []string
	wroteHeader bool
	err         error // sticky codec failure
}

// NewWriter creates a Writer that emits CSV data to w. The underlying codec
// buffers; call Flush (or Close) to hand buffered output to w.
func NewWriter[T any](w io.Writer) *Writer[T] {
	cw := swiftcsv.NewWriter(w)
	return &Writer[T]{codec: &swiftRowWriter{w: cw}, swift: cw}
}

// NewWriterCodec creates a Writer on top of an arbitrary row codec.
func NewWriterCodec[T any](c RowWriter) *Writer[T] {
	return &Writer[T]{codec: c}
}

// CreateWriter creates a Writer for the file at path, truncating it if it
// exists. Close flushes and releases the file.
func CreateWriter[T any](path string) (*Writer[T], error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := NewWriter[T](f)
	w.closer = f
	return w, nil
}

// Delimiter sets the field delimiter of the built-in codec. The default is
// ','.
func (w *Writer[T]) Delimiter(b byte) *Writer[T] {
	if w.swift != nil {
		w.swift.Comma = b
	}
	return w
}

// Quote sets the quote character of the built-in codec. The default is '"'.
func (w *Writer[T]) Quote(b byte) *Writer[T] {
	if w.swift != nil {
		w.swift.Quote = b
	}
	return w
}

// UseCRLF terminates records with \r\n instead of \n.
func (w *Writer[T]) UseCRLF(yes bool) *Writer[T] {
	if w.swift != nil {
		w.swift.UseCRLF = yes
	}
	return w
}

// AlwaysQuote forces quoting of every field.
func (w *Writer[T]) AlwaysQuote(yes bool) *Writer[T] {
	if w.swift != nil {
		w.swift.AlwaysQuote = yes
	}
	return w
}

// Configure applies a loaded configuration to the writer.
func (w *Writer[T]) Configure(cfg *options.Config) *Writer[T] {
	w.Delimiter(cfg.DelimiterByte())
	w.Quote(cfg.QuoteByte())
	w.UseCRLF(cfg.CRLF)
	w.AlwaysQuote(cfg.AlwaysQuote)
	return w
}

// Encode writes one record. The first call of a session writes the header
// row first. The whole record is rendered before anything is written, so a
// failing record emits nothing; codec failures are sticky and make every
// later call fail.
func (w *Writer[T]) Encode(record T) error {
	if w.err != nil {
		return w.err
	}

	if w.shape == nil {
		s, err := shape.Of(reflect.TypeFor[T]())
		if err != nil {
			return w.fail(err)
		}
		w.shape = s
		w.fieldNames = s.FieldNames()
	}

	row, err := w.shape.EncodeRow(reflect.ValueOf(record))
	if err != nil {
		return w.wrapEncode(err)
	}

	if !w.wroteHeader {
		if err := w.writeRow(w.fieldNames); err != nil {
			return w.fail(err)
		}
		w.wroteHeader = true
	}
	if err := w.writeRow(row); err != nil {
		return w.fail(err)
	}
	return nil
}

// writeRow hands one record to the codec, padding an empty record to a
// single empty field so it survives round-tripping.
func (w *Writer[T]) writeRow(row []string) error {
	if len(row) == 0 {
		row = []string{""}
	}
	if len(row) == 1 && row[0] == "" && w.swift != nil {
		// force `""` so the record does not come out as a blank line
		restore := w.swift.AlwaysQuote
		w.swift.AlwaysQuote = true
		err := w.codec.WriteRow(row)
		w.swift.AlwaysQuote = restore
		return err
	}
	return w.codec.WriteRow(row)
}

// Flush hands all buffered output to the underlying writer.
func (w *Writer[T]) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.codec.Flush()
}

// Error reports the sticky failure of the session, if any.
func (w *Writer[T]) Error() error { return w.err }

// Close flushes the writer and releases the resources it owns. It is safe
// to defer next to CreateWriter so buffered output is handed over on every
// exit path.
func (w *Writer[T]) Close() error {
	flushErr := w.Flush()
	if w.closer != nil {
		if err := w.closer.Close(); flushErr == nil {
			flushErr = err
		}
	}
	return flushErr
}

func (w *Writer[T]) fail(err error) error {
	w.err = err
	return err
}

// wrapEncode converts a leaf failure into an EncodeError. Record-level
// failures are not sticky: nothing was written, and the caller may encode a
// corrected record.
func (w *Writer[T]) wrapEncode(err error) error {
	rtype := reflect.TypeFor[T]()
	var leaf *shape.LeafError
	if errors.As(err, &leaf) {
		return &EncodeError{Type: rtype, Path: leaf.Path, Err: leaf.Err}
	}
	return &EncodeError{Type: rtype, Err: err}
}
