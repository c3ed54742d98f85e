package match

import (
	"errors"
	"fmt"
)

// NoField marks a column whose data no field consumes.
const NoField = -1

// ErrHeaderMismatch reports headers that fail to line up with the record's
// field names under the active policy.
var ErrHeaderMismatch = errors.New("typedcsv: headers don't match field names")

// HeaderCountError reports a header/field-name count mismatch the active
// policy does not permit.
type HeaderCountError struct {
	FieldCount  int
	HeaderCount int
}

func (e *HeaderCountError) Error() string {
	return fmt.Sprintf("typedcsv: the record type has %d field names, but there are %d headers",
		e.FieldCount, e.HeaderCount)
}

// Policy controls how a header row is reconciled with a record's field
// names. The zero value demands an exact positional match.
type Policy struct {
	// Reorder allows columns to be matched to fields out of positional
	// order. Matching is greedy left to right: each field name in declared
	// order takes the first unused header that matches, which keeps the
	// relative order of duplicate names on both sides.
	Reorder bool
	// IgnoreUnused allows headers that match no field; their columns carry
	// no assignment and their data is discarded every row.
	IgnoreUnused bool
	// HeaderEquals compares a header against a field name. Nil means exact
	// equality.
	HeaderEquals func(header, field string) bool
}

func (p Policy) equals() func(header, field string) bool {
	if p.HeaderEquals != nil {
		return p.HeaderEquals
	}
	return func(header, field string) bool { return header == field }
}

// Map resolves headers against fieldNames under p. The result is indexed by
// column: each entry holds the field index the column feeds, or NoField.
// Every field name is assigned exactly one column, or Map fails.
func Map(headers, fieldNames []string, p Policy) ([]int, error) {
	if len(headers) != len(fieldNames) && !p.IgnoreUnused ||
		len(headers) < len(fieldNames) {
		return nil, &HeaderCountError{FieldCount: len(fieldNames), HeaderCount: len(headers)}
	}

	eq := p.equals()

	switch {
	case !p.Reorder && !p.IgnoreUnused:
		// strict: identity mapping, positional match
		for i := range headers {
			if !eq(headers[i], fieldNames[i]) {
				return nil, ErrHeaderMismatch
			}
		}
		mapping := make([]int, len(headers))
		for i := range mapping {
			mapping[i] = i
		}
		return mapping, nil

	case p.Reorder:
		// greedy bipartite match: first unused matching header per field
		mapping := unassigned(len(headers))
		for fi, field := range fieldNames {
			found := false
			for ci, header := range headers {
				if mapping[ci] != NoField || !eq(header, field) {
					continue
				}
				mapping[ci] = fi
				found = true
				break
			}
			if !found {
				return nil, ErrHeaderMismatch
			}
		}
		return mapping, nil

	default:
		// in-order scan with an advancing cursor; unmatched headers before,
		// between, and after the matches stay unassigned
		mapping := unassigned(len(headers))
		cursor := 0
		for fi, field := range fieldNames {
			ci := cursor
			for ci < len(headers) && !eq(headers[ci], field) {
				ci++
			}
			if ci == len(headers) {
				return nil, ErrHeaderMismatch
			}
			mapping[ci] = fi
			cursor = ci + 1
		}
		return mapping, nil
	}
}

func unassigned(n int) []int {
	mapping := make([]int, n)
	for i := range mapping {
		mapping[i] = NoField
	}
	return mapping
}
