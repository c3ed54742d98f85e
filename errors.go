package typedcsv

import (
	"errors"
	"fmt"
	"reflect"

	"typedcsv/internal/match"
)

// ErrHeaderMismatch reports headers that fail to line up with the record's
// field names under the active matching policy.
var ErrHeaderMismatch = match.ErrHeaderMismatch

// ErrExtraColumns reports a data row carrying more raw fields than the
// header row has columns.
var ErrExtraColumns = errors.New("typedcsv: more data columns than headers")

// HeaderCountError reports a header/field-name count mismatch the active
// policy does not permit.
type HeaderCountError = match.HeaderCountError

// DecodeError reports a row that could not be decoded into the record type.
// Path names the failing leaf when the failure is leaf-level.
type DecodeError struct {
	Type reflect.Type
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("typedcsv: decoding %s: field %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("typedcsv: decoding %s: %v", e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a record that could not be rendered as a row.
type EncodeError struct {
	Type reflect.Type
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("typedcsv: encoding %s: field %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("typedcsv: encoding %s: %v", e.Type, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }
