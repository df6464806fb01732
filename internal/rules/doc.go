// Package rules is a declarative validation layer over a compiled GraphQL
// schema. Schema authors attach rule directives to arguments, input-object
// fields, and input-object types; the package compiles those occurrences
// once into ordered, depth-addressed chains and validates argument values
// recursively before field resolution.
//
// # Compilation
//
// NewCompiler + Register(Family) + Compile() run once at schema-build time.
// Each family is one directive name with a closed target variant (scalar,
// list, or object). Compile walks every rule-capable location per family,
// appending declarations in SDL order, so chains compose across families
// without erasing each other. Malformed attributes fail compilation with a
// ConfigError. A fixpoint pass then marks which input-object types require
// recursive validation: self-reference alone never forces a mark, while
// genuine requirements propagate through cycles.
//
// # Validation
//
// Wrap decorates an executor.Runtime. Wrapped fields validate every
// argument in declaration order and collect all violations instead of
// stopping at the first. At each node the validator applies the rules that
// match the node's shape: list rules partitioned by nesting depth, object
// rules from both the attachment chain and the type's own metadata, scalar
// rules run independently at leaves. A failed list or object rule
// suppresses descent below that node only; null values short-circuit
// everywhere. Violations carry structural paths like "input.tags[1]" and
// surface as one AggregateError with a fixed machine-readable code.
package rules
