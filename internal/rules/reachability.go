package rules

import (
	"sort"

	schema "github.com/hanpama/rulegraph/internal/schema"
)

// markReachability decides, for every input-object type, whether values of
// that type require recursive validation. A type needs validation iff it
// carries an object-level rule, any of its fields carries a rule, or any
// field's unwrapped type is itself a type needing validation.
//
// Marks are computed by iterating to a fixpoint, so the result is
// independent of type order and cycles terminate. A type referring to
// itself reads its own current mark (false until proven otherwise), which
// keeps pure self-reference from forcing a mark while still letting a
// genuine requirement elsewhere in a cycle propagate through it.
func (cd *Compiled) markReachability() {
	var names []string
	for name := range cd.inputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for changed := true; changed; {
		changed = false
		for _, name := range names {
			meta := cd.inputs[name]
			if meta.NeedsValidation {
				continue
			}
			if cd.inputRequiresValidation(name) {
				meta.NeedsValidation = true
				changed = true
			}
		}
	}
}

func (cd *Compiled) inputRequiresValidation(name string) bool {
	if !cd.inputs[name].ObjectRules.Empty() {
		return true
	}
	t := cd.schema.Types[name]
	if t == nil || t.Kind != schema.TypeKindInputObject {
		return false
	}
	for _, f := range t.InputFields {
		if !cd.inputFields[FieldID{Type: name, Field: f.Name}].Empty() {
			return true
		}
		if inner := cd.inputs[f.Type.GetNamedType()]; inner != nil && inner.NeedsValidation {
			return true
		}
	}
	return false
}
