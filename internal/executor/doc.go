// Package executor implements a synchronous, depth-first GraphQL executor
// with explicit runtime hooks for field resolution, abstract-type
// resolution, and leaf serialization.
//
// # Execution Model
//
// ExecuteRequest picks the operation, coerces variables, and executes the
// root selection set against the root type. Field collection merges
// fragments and honors @skip/@include while preserving query order. Each
// field is resolved through Runtime.ResolveField and its result completed
// per the GraphQL specification:
//
//   - Non-Null: complete the inner type; a null completion records a located
//     error and propagates null to the nearest nullable ancestor.
//   - List: complete each element with an index-aware path. A null element
//     for a Non-Null inner type nullifies the whole list value.
//   - Leaf (Scalar/Enum): defer to Runtime.SerializeLeafValue.
//   - Abstract (Interface/Union): defer to Runtime.ResolveType, then
//     complete as the concrete object.
//   - Object: execute the merged sub-selection set against the result.
//
// # Errors and Partial Success
//
// Errors accumulate as located GraphQL errors (message + path) and partial
// data is preserved wherever nullability allows. A resolver error that
// implements ExtendedError contributes its extensions to the located error;
// this is how the rules wrapper surfaces its violation list and code.
//
// # Runtime Contract
//
// The Runtime interface abstracts host integration and is the seam for
// decoration: wrappers hold the original Runtime and compose around it
// rather than mutating shared state. See runtime.go for the method
// contracts and ResolverMap for the standard implementation.
package executor
