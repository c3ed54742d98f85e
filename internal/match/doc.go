// Package match resolves the correspondence between header columns and
// record leaf fields for one marshalling session.
//
// Key pieces:
//   - Policy: the three independent matching knobs (Reorder, IgnoreUnused,
//     HeaderEquals)
//   - Map: pure function from (headers, field names, policy) to a per-column
//     field assignment
//   - NoField: the assignment of a column no field consumes
package match
