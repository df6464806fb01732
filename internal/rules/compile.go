package rules

import (
	"fmt"
	"sort"

	schema "github.com/hanpama/rulegraph/internal/schema"
)

// ConfigError reports a malformed rule declaration. These are programmer
// errors in the schema and fail compilation immediately.
type ConfigError struct {
	Location string
	Rule     string
	Message  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rule @%s at %s: %s", e.Rule, e.Location, e.Message)
}

func configErrorf(location, rule, format string, args ...any) error {
	return &ConfigError{Location: location, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// Compiler collects rule families and compiles their occurrences out of a
// schema's directive uses into ordered chains.
type Compiler struct {
	schema   *schema.Schema
	families []*Family
	byName   map[string]*Family
}

func NewCompiler(s *schema.Schema) *Compiler {
	return &Compiler{schema: s, byName: map[string]*Family{}}
}

// Register adds a rule family. Families compile in registration order;
// occurrences of the same family keep their declaration order within a chain.
func (c *Compiler) Register(f Family) error {
	if f.Name == "" || f.Predicate == nil {
		return fmt.Errorf("rule family needs a name and a predicate")
	}
	switch f.Target {
	case TargetScalar, TargetList, TargetObject:
	default:
		return fmt.Errorf("rule family %q: unknown target %q", f.Name, f.Target)
	}
	if _, exists := c.byName[f.Name]; exists {
		return fmt.Errorf("rule family %q registered twice", f.Name)
	}
	fam := f
	c.families = append(c.families, &fam)
	c.byName[f.Name] = &fam
	return nil
}

// Compile walks every input-object type, every input-object field, and every
// argument of every object-type field once per registered family, building
// the side tables of rule chains, then runs the reachability pass and
// precomputes which fields need a validating wrapper.
func (c *Compiler) Compile() (*Compiled, error) {
	cd := &Compiled{
		schema:      c.schema,
		args:        map[ArgumentID]*Chain{},
		inputFields: map[FieldID]*Chain{},
		inputs:      map[string]*InputObjectMeta{},
		wrapped:     map[FieldID][]*argBinding{},
	}

	var names []string
	for name := range c.schema.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if c.schema.Types[name].Kind == schema.TypeKindInputObject {
			cd.inputs[name] = &InputObjectMeta{ObjectRules: &Chain{}}
		}
	}

	for _, fam := range c.families {
		for _, name := range names {
			if err := c.compileType(cd, fam, c.schema.Types[name]); err != nil {
				return nil, err
			}
		}
	}

	cd.markReachability()
	cd.buildWrapTable()
	return cd, nil
}

func (c *Compiler) compileType(cd *Compiled, fam *Family, t *schema.Type) error {
	switch t.Kind {
	case schema.TypeKindInputObject:
		meta := cd.inputs[t.Name]
		for _, use := range t.Directives {
			if use.Name != fam.Name {
				continue
			}
			if fam.Target != TargetObject {
				return configErrorf(t.Name, fam.Name, "only object-targeted rules may be declared on an input object type")
			}
			d, err := c.buildDeclaration(fam, use, t.Name)
			if err != nil {
				return err
			}
			if err := c.checkObjectTarget(fam, d, t, t.Name); err != nil {
				return err
			}
			meta.ObjectRules.decls = append(meta.ObjectRules.decls, d)
		}
		for _, f := range t.InputFields {
			id := FieldID{Type: t.Name, Field: f.Name}
			if err := c.compileInputValue(cd, fam, f, id.String(), func(d *Declaration) {
				ch := cd.inputFields[id]
				if ch == nil {
					ch = &Chain{}
					cd.inputFields[id] = ch
				}
				ch.decls = append(ch.decls, d)
			}); err != nil {
				return err
			}
		}

	case schema.TypeKindObject, schema.TypeKindInterface:
		for _, f := range t.Fields {
			for _, a := range f.Arguments {
				id := ArgumentID{Type: t.Name, Field: f.Name, Arg: a.Name}
				if err := c.compileInputValue(cd, fam, a, id.String(), func(d *Declaration) {
					ch := cd.args[id]
					if ch == nil {
						ch = &Chain{}
						cd.args[id] = ch
					}
					ch.decls = append(ch.decls, d)
				}); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (c *Compiler) compileInputValue(cd *Compiled, fam *Family, v *schema.InputValue, location string, add func(*Declaration)) error {
	for _, use := range v.Directives {
		if use.Name != fam.Name {
			continue
		}
		d, err := c.buildDeclaration(fam, use, location)
		if err != nil {
			return err
		}
		if err := c.checkTargetShape(cd, fam, d, v.Type, location); err != nil {
			return err
		}
		add(d)
	}
	return nil
}

func (c *Compiler) buildDeclaration(fam *Family, use *schema.DirectiveUse, location string) (*Declaration, error) {
	attrs := Attributes(use.Args)
	if fam.Check != nil {
		if err := fam.Check(attrs); err != nil {
			return nil, configErrorf(location, fam.Name, "%v", err)
		}
	}
	depth := 0
	if fam.DepthOf != nil {
		depth = fam.DepthOf(attrs)
		if depth < 0 {
			return nil, configErrorf(location, fam.Name, "depth must not be negative")
		}
	}
	return &Declaration{
		Rule:      fam.Name,
		Target:    fam.Target,
		Depth:     depth,
		Attrs:     attrs,
		predicate: fam.Predicate,
	}, nil
}

// checkTargetShape verifies a declaration makes sense for the declared type
// of the argument or input field it is attached to.
func (c *Compiler) checkTargetShape(cd *Compiled, fam *Family, d *Declaration, ref *schema.TypeRef, location string) error {
	switch fam.Target {
	case TargetList:
		if listNesting(ref) <= d.Depth {
			return configErrorf(location, fam.Name, "depth %d exceeds the list nesting of the declared type", d.Depth)
		}
	case TargetObject:
		named := c.schema.Types[ref.GetNamedType()]
		if named == nil || named.Kind != schema.TypeKindInputObject {
			return configErrorf(location, fam.Name, "object-targeted rules require an input object type")
		}
		return c.checkObjectTarget(fam, d, named, location)
	}
	return nil
}

func (c *Compiler) checkObjectTarget(fam *Family, d *Declaration, t *schema.Type, location string) error {
	if fam.CheckFields == nil {
		return nil
	}
	if err := fam.CheckFields(d.Attrs, t); err != nil {
		return configErrorf(location, fam.Name, "%v", err)
	}
	return nil
}

func listNesting(ref *schema.TypeRef) int {
	n := 0
	for ref != nil {
		if ref.Kind == schema.TypeRefKindList {
			n++
		}
		ref = ref.OfType
	}
	return n
}

// argBinding pairs a declared argument with its compiled chain for the
// validating wrapper. Chains may be empty; the argument then only matters
// for transitive input-object descent.
type argBinding struct {
	name string
	typ  *schema.TypeRef
	ch   *Chain
}

// Compiled is the immutable output of a Compile run: every rule chain keyed
// by stable location identity, input-object metadata, and the wrap table.
type Compiled struct {
	schema      *schema.Schema
	args        map[ArgumentID]*Chain
	inputFields map[FieldID]*Chain
	inputs      map[string]*InputObjectMeta
	wrapped     map[FieldID][]*argBinding
}

// ArgumentChain returns the compiled chain of a field argument, or nil.
func (cd *Compiled) ArgumentChain(typeName, fieldName, argName string) *Chain {
	return cd.args[ArgumentID{Type: typeName, Field: fieldName, Arg: argName}]
}

// InputFieldChain returns the compiled chain of an input-object field, or nil.
func (cd *Compiled) InputFieldChain(typeName, fieldName string) *Chain {
	return cd.inputFields[FieldID{Type: typeName, Field: fieldName}]
}

// InputMeta returns the metadata of an input-object type, or nil.
func (cd *Compiled) InputMeta(typeName string) *InputObjectMeta {
	return cd.inputs[typeName]
}

// NeedsWrapping reports whether a field carries at least one directly or
// transitively validated argument.
func (cd *Compiled) NeedsWrapping(typeName, fieldName string) bool {
	_, ok := cd.wrapped[FieldID{Type: typeName, Field: fieldName}]
	return ok
}

// buildWrapTable records, per object-type field, the ordered argument
// bindings the wrapper must validate. Rules declared on the same argument of
// an implemented interface apply to the object field too, ahead of the
// object's own declarations. Fields with no directly or transitively
// validated argument get no entry and stay untouched.
func (cd *Compiled) buildWrapTable() {
	for name, t := range cd.schema.Types {
		if t.Kind != schema.TypeKindObject {
			continue
		}
		for _, f := range t.Fields {
			bindings := make([]*argBinding, 0, len(f.Arguments))
			validated := false
			for _, a := range f.Arguments {
				ch := cd.resolveArgumentChain(t, f.Name, a.Name)
				if !ch.Empty() {
					validated = true
				} else if meta := cd.inputs[a.Type.GetNamedType()]; meta != nil && meta.NeedsValidation {
					validated = true
				}
				bindings = append(bindings, &argBinding{name: a.Name, typ: a.Type, ch: ch})
			}
			if validated {
				cd.wrapped[FieldID{Type: name, Field: f.Name}] = bindings
			}
		}
	}
}

// resolveArgumentChain combines the chains declared for one argument on the
// object type and on every interface the type implements. Without interface
// declarations the object's own chain is returned as is.
func (cd *Compiled) resolveArgumentChain(t *schema.Type, fieldName, argName string) *Chain {
	own := cd.args[ArgumentID{Type: t.Name, Field: fieldName, Arg: argName}]

	var merged *Chain
	for _, iface := range t.Interfaces {
		ch := cd.args[ArgumentID{Type: iface, Field: fieldName, Arg: argName}]
		if ch.Empty() {
			continue
		}
		if merged == nil {
			merged = &Chain{}
		}
		merged.decls = append(merged.decls, ch.decls...)
	}
	if merged == nil {
		return own
	}
	merged.decls = append(merged.decls, own.Declarations()...)
	return merged
}
