// # typedcsv: typed CSV reading and writing with header checking
//
// typedcsv converts between CSV rows and statically-typed record values. Unlike a
// plain CSV codec, the Reader requires that the header row corresponds to the field
// names of the record type, and the Writer automatically emits a header row derived
// from those field names. Byte-level framing (quoting, escaping, delimiters) is
// delegated to a row codec; the default one is github.com/oleg578/swiftcsv.
//
// # Record shapes
//
// A record type is a struct, or a fixed-size array of record types. Records compose
// through embedding and arrays; each named struct field occupies exactly one column.
// A column holds a scalar (integers, floats, bool, string, time.Time, time.Duration,
// or any encoding.TextMarshaler/TextUnmarshaler type), an optional scalar (a pointer:
// nil encodes to an empty field, an empty field decodes to nil), a single-element
// slice or array of a scalar, or a tagged union (see shape.Union).
//
// Field names come from the `csv` struct tag when present, otherwise from the Go
// field name; `csv:"-"` skips a field. Array positions are anonymous: they widen the
// row but add no header name. A field whose effective name is "_field<i>" for its
// position i is likewise treated as anonymous; avoid that naming pattern.
//
// # Header matching
//
// By default the headers must equal the field names exactly, including order. The
// Reader can instead reorder columns to match headers to field names, ignore columns
// no field name matches, compare case-insensitively, or use an arbitrary predicate.
// Matching happens once per session, when the first row is read; any mismatch is a
// permanent error for that session.
//
// # Optional-field fallback
//
// When a non-empty field fails to parse as an optional leaf's inner type, the leaf
// decodes as absent instead of failing the row. Callers that need strict validation
// should use a non-pointer field.
package typedcsv
