package rules

import (
	"fmt"
	"reflect"

	schema "github.com/hanpama/rulegraph/internal/schema"
)

// ValidateArgument validates one coerced argument value against its declared
// type and compiled chain, returning every violation found. A nil chain is
// fine; descent into input objects is driven by the reachability marks.
func (cd *Compiled) ValidateArgument(value any, ref *schema.TypeRef, chain *Chain, argName string) []Violation {
	return cd.validateValue(value, ref, chain, argName, 0)
}

// validateValue walks a value isomorphically to its static type. depth
// counts list nesting from the chain's attachment point and selects which
// list-targeted rules apply; it resets to 0 when descending into an input
// object field, whose own chain takes over.
func (cd *Compiled) validateValue(value any, ref *schema.TypeRef, chain *Chain, path string, depth int) []Violation {
	// Null or absent values short-circuit; nullability is the engine's job.
	if isNull(value) {
		return nil
	}
	if ref.IsNonNull() {
		ref = ref.Unwrap()
	}

	if ref.Kind == schema.TypeRefKindList {
		if vs := runRules(chain.listRulesAt(depth), value, path); len(vs) > 0 {
			// A failed list rule suppresses item descent at this depth only.
			return vs
		}
		items, ok := value.([]any)
		if !ok {
			return nil
		}
		var vs []Violation
		for i, item := range items {
			vs = append(vs, cd.validateValue(item, ref.OfType, chain, fmt.Sprintf("%s[%d]", path, i), depth+1)...)
		}
		return vs
	}

	named := cd.schema.Types[ref.GetNamedType()]
	if named != nil && named.Kind == schema.TypeKindInputObject {
		meta := cd.inputs[named.Name]
		objectRules := append(chain.objectRules(), meta.ObjectRules.objectRules()...)
		if vs := runRules(objectRules, value, path); len(vs) > 0 {
			// A failed object rule suppresses field descent at this node only.
			return vs
		}
		if !meta.NeedsValidation {
			// Nothing below can violate anything; skip the walk entirely.
			return nil
		}
		fields, ok := value.(map[string]any)
		if !ok {
			return nil
		}
		var vs []Violation
		for _, f := range named.InputFields {
			fieldChain := cd.inputFields[FieldID{Type: named.Name, Field: f.Name}]
			vs = append(vs, cd.validateValue(fields[f.Name], f.Type, fieldChain, path+"."+f.Name, 0)...)
		}
		return vs
	}

	// Scalar or enum leaf: every rule runs, each failure independently.
	return runRules(chain.scalarRules(), value, path)
}

func runRules(decls []*Declaration, value any, path string) []Violation {
	var vs []Violation
	for _, d := range decls {
		if err := d.check(value); err != nil {
			vs = append(vs, Violation{Path: path, Message: err.Error()})
		}
	}
	return vs
}

// isNull reports nil interfaces and typed nils, mirroring the engine's
// nullish handling.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map:
		return rv.IsNil()
	default:
		return false
	}
}
