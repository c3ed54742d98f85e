package typedcsv

import (
	"errors"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/oleg578/swiftcsv"

	"typedcsv/internal/match"
	"typedcsv/options"
	"typedcsv/shape"
)

// Reader reads CSV data whose header row corresponds to the field names of
// a record type. By default the headers must equal the field names exactly,
// including their order; Reorder, IgnoreUnusedColumns, and HeaderEquals
// relax the match. All options are session setup: they take effect when the
// first row is processed and are immutable afterwards.
//
// Construct a Reader, configure it, then call Decode to start the decoding
// session:
//
//	type Record struct {
//		Count  uint   `csv:"count"`
//		Animal string `csv:"animal"`
//	}
//
//	rdr := typedcsv.NewReaderString("count,animal\n7,penguin\n")
//	records, err := typedcsv.Decode[Record](rdr).ReadAll()
type Reader struct {
	codec  RowReader
	swift  *swiftcsv.Reader // nil when a custom codec was supplied
	closer io.Closer
	policy match.Policy
}

// NewReader creates a Reader that consumes CSV data from r. The underlying
// codec buffers for you.
func NewReader(r io.Reader) *Reader {
	cr := swiftcsv.NewReader(r)
	return &Reader{codec: &swiftRowReader{r: cr}, swift: cr}
}

// NewReaderString creates a Reader for an in-memory string of CSV data.
func NewReaderString(data string) *Reader {
	return NewReader(strings.NewReader(data))
}

// NewReaderCodec creates a Reader on top of an arbitrary row codec. Codec
// configuration methods like Delimiter are no-ops for custom codecs.
func NewReaderCodec(c RowReader) *Reader {
	return &Reader{codec: c}
}

// OpenReader creates a Reader for the CSV file at path. Close releases the
// file once the session is done.
func OpenReader(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

// Close releases the resources owned by the Reader, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Reorder allows the reader to match columns to fields out of order.
//
// By default the headers must match the field names of the record type
// exactly, including the order. When reordering, each field name in declared
// order takes the first unused matching header, so the relative order of
// columns with duplicate names is preserved.
func (r *Reader) Reorder(yes bool) *Reader {
	r.policy.Reorder = yes
	return r
}

// IgnoreUnusedColumns allows headers that match no field name. The data of
// an unused column is discarded on every row.
func (r *Reader) IgnoreUnusedColumns(yes bool) *Reader {
	r.policy.IgnoreUnused = yes
	return r
}

// HeaderEquals installs a custom predicate between a header and a field
// name. Nil restores exact equality.
func (r *Reader) HeaderEquals(eq func(header, field string) bool) *Reader {
	r.policy.HeaderEquals = eq
	return r
}

// IgnoreASCIICase matches headers to field names with an ASCII
// case-insensitive comparison.
func (r *Reader) IgnoreASCIICase(yes bool) *Reader {
	if yes {
		r.policy.HeaderEquals = asciiEqualFold
	} else {
		r.policy.HeaderEquals = nil
	}
	return r
}

// Delimiter sets the field delimiter of the built-in codec. The default is
// ','.
func (r *Reader) Delimiter(b byte) *Reader {
	if r.swift != nil {
		r.swift.Comma = b
	}
	return r
}

// Quote sets the quote character of the built-in codec. The default is '"'.
func (r *Reader) Quote(b byte) *Reader {
	if r.swift != nil {
		r.swift.Quote = b
	}
	return r
}

// Configure applies a loaded configuration to the reader.
func (r *Reader) Configure(cfg *options.Config) *Reader {
	r.Delimiter(cfg.DelimiterByte())
	r.Quote(cfg.QuoteByte())
	r.Reorder(cfg.Reorder)
	r.IgnoreUnusedColumns(cfg.IgnoreUnusedColumns)
	if cfg.IgnoreASCIICase {
		r.IgnoreASCIICase(true)
	}
	return r
}

func asciiEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// Decode begins a decoding session for record type T on r. A Reader carries
// one session: its rows are consumed from the shared codec position.
func Decode[T any](r *Reader) *Rows[T] {
	return &Rows[T]{reader: r}
}

// Rows iterates the decoded records of one session. It owns the session
// state: the header row is read and reconciled once, on first use, and any
// error is terminal — after a failure no further rows are ever produced.
type Rows[T any] struct {
	reader *Reader

	shape      *shape.Shape
	fieldNames []string
	named      []int // leaf index per field name
	mapping    []int // field index per column, or match.NoField
	headers    []string

	headerDone bool
	noRows     bool // empty header row: the input is defined to hold no records
	err        error
}

// prepare consumes the header row and computes the column mapping. It runs
// the reconciliation exactly once per session no matter how often it is
// invoked; afterwards it only replays the terminal state.
func (rows *Rows[T]) prepare() error {
	if rows.err != nil {
		return rows.err
	}
	if rows.headerDone {
		return nil
	}
	rows.headerDone = true

	headers, err := rows.reader.codec.ReadRow()
	if errors.Is(err, io.EOF) {
		// an empty header row means "no data", never zero-width records
		rows.noRows = true
		return nil
	}
	if err != nil {
		return rows.fail(err)
	}
	rows.headers = headers

	s, err := shape.Of(reflect.TypeFor[T]())
	if err != nil {
		return rows.fail(err)
	}
	rows.shape = s
	rows.fieldNames = s.FieldNames()
	rows.named = s.NamedLeaves()

	mapping, err := match.Map(headers, rows.fieldNames, rows.reader.policy)
	if err != nil {
		return rows.fail(err)
	}
	rows.mapping = mapping
	return nil
}

func (rows *Rows[T]) fail(err error) error {
	rows.err = err
	return err
}

// Headers returns the header row, reading it if it has not been read yet.
// It is safe to call repeatedly, before or between reads; the reconciliation
// work is still performed only once.
func (rows *Rows[T]) Headers() ([]string, error) {
	if err := rows.prepare(); err != nil {
		return nil, err
	}
	return rows.headers, nil
}

// Read decodes the next record. It returns io.EOF on a clean end of input.
// Once Read has returned any other error the session is terminal and every
// subsequent call returns the same error.
func (rows *Rows[T]) Read() (T, error) {
	var record T

	if err := rows.prepare(); err != nil {
		return record, err
	}
	if rows.noRows {
		return record, io.EOF
	}

	for {
		raw, err := rows.reader.codec.ReadRow()
		if errors.Is(err, io.EOF) {
			rows.noRows = true
			return record, io.EOF
		}
		if err != nil {
			return record, rows.fail(err)
		}
		if len(raw) == 1 && raw[0] == "" && rows.shape.NumLeaf() > 1 {
			// blank line between records
			continue
		}

		// Reorder columns into leaf positions. Unassigned columns are
		// dropped; leaves no column feeds keep the synthesized empty field.
		fields := make([]string, rows.shape.NumLeaf())
		for col, f := range raw {
			if col >= len(rows.mapping) {
				return record, rows.fail(ErrExtraColumns)
			}
			fi := rows.mapping[col]
			if fi == match.NoField {
				continue
			}
			fields[rows.named[fi]] = f
		}

		rv := reflect.New(reflect.TypeFor[T]()).Elem()
		if err := rows.shape.DecodeRow(fields, rv); err != nil {
			return record, rows.fail(rows.wrapDecode(err))
		}
		return rv.Interface().(T), nil
	}
}

// ReadAll exhausts the session, collecting records until the clean end of
// input. The first failure is returned as-is.
func (rows *Rows[T]) ReadAll() ([]T, error) {
	var records []T
	for {
		record, err := rows.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

func (rows *Rows[T]) wrapDecode(err error) error {
	rtype := reflect.TypeFor[T]()
	var leaf *shape.LeafError
	if errors.As(err, &leaf) {
		return &DecodeError{Type: rtype, Path: leaf.Path, Err: leaf.Err}
	}
	return &DecodeError{Type: rtype, Err: err}
}
