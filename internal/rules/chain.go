package rules

import (
	"fmt"

	schema "github.com/hanpama/rulegraph/internal/schema"
)

// Target classifies what shape of value a rule family applies to. The set is
// closed; new families pick one of these variants instead of subclassing.
type Target string

const (
	TargetScalar Target = "SCALAR"
	TargetList   Target = "LIST"
	TargetObject Target = "OBJECT"
)

// Attributes is the decoded argument map of one rule occurrence.
type Attributes map[string]any

func (a Attributes) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Float reads a numeric attribute. SDL integer literals decode as int, so
// both int and float64 are accepted.
func (a Attributes) Float(name string) (float64, bool) {
	switch v := a[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

func (a Attributes) Int(name string) (int, bool) {
	switch v := a[name].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func (a Attributes) String(name string) (string, bool) {
	s, ok := a[name].(string)
	return s, ok
}

func (a Attributes) Bool(name string) (bool, bool) {
	b, ok := a[name].(bool)
	return b, ok
}

func (a Attributes) Strings(name string) ([]string, bool) {
	raw, ok := a[name].([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func (a Attributes) Floats(name string) ([]float64, bool) {
	raw, ok := a[name].([]any)
	if !ok {
		return nil, false
	}
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		switch n := v.(type) {
		case float64:
			out = append(out, n)
		case int:
			out = append(out, float64(n))
		default:
			return nil, false
		}
	}
	return out, true
}

// Predicate checks one rule occurrence against a value. A non-nil error is a
// rule violation; its message becomes the Violation message verbatim.
type Predicate func(value any, attrs Attributes) error

// Family describes one registered rule family (one directive name).
type Family struct {
	Name   string
	Target Target

	// DepthOf extracts the list-nesting level a list-targeted occurrence
	// applies to. Nil means depth 0 for every occurrence.
	DepthOf func(Attributes) int

	// Check validates attribute shapes at compile time. Nil skips the check.
	Check func(Attributes) error

	// CheckFields validates attribute references against the input-object
	// type an object-targeted occurrence is attached to. Nil skips it.
	CheckFields func(Attributes, *schema.Type) error

	Predicate Predicate
}

// Declaration is one compiled rule occurrence. Immutable after compile.
type Declaration struct {
	Rule   string
	Target Target
	Depth  int
	Attrs  Attributes

	predicate Predicate
}

func (d *Declaration) check(value any) error {
	return d.predicate(value, d.Attrs)
}

// Chain is the ordered rule declarations attached to one schema location.
// A nil Chain behaves as an empty one.
type Chain struct {
	decls []*Declaration
}

func (c *Chain) Empty() bool { return c == nil || len(c.decls) == 0 }

func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.decls)
}

// Declarations returns the chain contents in declaration order.
func (c *Chain) Declarations() []*Declaration {
	if c == nil {
		return nil
	}
	return c.decls
}

func (c *Chain) scalarRules() []*Declaration {
	return c.filter(func(d *Declaration) bool { return d.Target == TargetScalar })
}

func (c *Chain) listRulesAt(depth int) []*Declaration {
	return c.filter(func(d *Declaration) bool { return d.Target == TargetList && d.Depth == depth })
}

func (c *Chain) objectRules() []*Declaration {
	return c.filter(func(d *Declaration) bool { return d.Target == TargetObject })
}

func (c *Chain) filter(keep func(*Declaration) bool) []*Declaration {
	if c == nil {
		return nil
	}
	var out []*Declaration
	for _, d := range c.decls {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// ArgumentID identifies one argument of one object-type field.
type ArgumentID struct {
	Type  string
	Field string
	Arg   string
}

func (id ArgumentID) String() string {
	return fmt.Sprintf("%s.%s(%s:)", id.Type, id.Field, id.Arg)
}

// FieldID identifies one field of a named type.
type FieldID struct {
	Type  string
	Field string
}

func (id FieldID) String() string {
	return fmt.Sprintf("%s.%s", id.Type, id.Field)
}

// InputObjectMeta is the schema-lifetime validation metadata of one
// input-object type.
type InputObjectMeta struct {
	// NeedsValidation marks whether values of this type require recursive
	// field validation at all. Computed once by the reachability pass.
	NeedsValidation bool

	// ObjectRules are the rules declared on the type itself. They run
	// against the whole value wherever the type appears.
	ObjectRules *Chain
}
