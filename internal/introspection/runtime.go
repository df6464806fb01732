// Package introspection decorates a Runtime and a Schema so that __schema
// and __type queries answer from the compiled schema model. The wrapper
// resolves introspection sources itself and delegates everything else to the
// base runtime, so it composes around the rules wrapper unchanged.
package introspection

import (
	"context"
	"fmt"
	"sort"
	"strings"

	executor "github.com/hanpama/rulegraph/internal/executor"
	schema "github.com/hanpama/rulegraph/internal/schema"
)

// Wrapper bundles the introspection-aware runtime with the extended schema.
// Both must be used together: the runtime resolves the meta-fields the
// extended schema declares.
type Wrapper struct {
	Runtime executor.Runtime
	Schema  *schema.Schema
}

// Wrap extends sch with the introspection type system and returns a runtime
// that serves it on top of base.
func Wrap(base executor.Runtime, sch *schema.Schema) *Wrapper {
	extended := extendSchema(sch)
	return &Wrapper{
		Runtime: &runtime{base: base, schema: extended},
		Schema:  extended,
	}
}

type runtime struct {
	base   executor.Runtime
	schema *schema.Schema
}

func (r *runtime) ResolveField(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error) {
	if objectType == r.schema.QueryType {
		switch field {
		case "__schema":
			return r.schema, nil
		case "__type":
			name, _ := args["name"].(string)
			if t := r.schema.Types[name]; t != nil {
				return t, nil
			}
			return nil, nil
		}
	}

	if strings.HasPrefix(objectType, "__") {
		switch src := source.(type) {
		case *schema.Schema:
			return r.resolveSchemaField(src, field)
		case *schema.Type:
			return r.resolveTypeField(src, field)
		case *schema.TypeRef:
			return r.resolveTypeRefField(src, field)
		case *schema.Field:
			return resolveFieldField(src, field)
		case *schema.InputValue:
			return resolveInputValueField(src, field)
		case *schema.EnumValue:
			return resolveEnumValueField(src, field)
		case *directiveDef:
			return resolveDirectiveField(src, field)
		}
		return nil, fmt.Errorf("cannot resolve %s.%s on %T", objectType, field, source)
	}

	return r.base.ResolveField(ctx, objectType, field, source, args)
}

func (r *runtime) ResolveType(ctx context.Context, abstractType string, value any) (string, error) {
	return r.base.ResolveType(ctx, abstractType, value)
}

func (r *runtime) SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error) {
	return r.base.SerializeLeafValue(ctx, scalarOrEnumTypeName, value)
}

func (r *runtime) resolveSchemaField(sch *schema.Schema, field string) (any, error) {
	switch field {
	case "description":
		if sch.Description == "" {
			return nil, nil
		}
		return sch.Description, nil
	case "types":
		names := make([]string, 0, len(sch.Types))
		for name := range sch.Types {
			names = append(names, name)
		}
		sort.Strings(names)
		out := make([]*schema.Type, len(names))
		for i, name := range names {
			out[i] = sch.Types[name]
		}
		return out, nil
	case "queryType":
		return sch.GetQueryType(), nil
	case "mutationType":
		return sch.GetMutationType(), nil
	case "subscriptionType":
		return sch.GetSubscriptionType(), nil
	case "directives":
		return builtinDirectives(), nil
	}
	return nil, nil
}

func (r *runtime) resolveTypeField(t *schema.Type, field string) (any, error) {
	switch field {
	case "kind":
		return string(t.Kind), nil
	case "name":
		return t.Name, nil
	case "description":
		if t.Description == "" {
			return nil, nil
		}
		return t.Description, nil
	case "fields":
		if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
			return nil, nil
		}
		// Meta-fields on the extended query root stay hidden.
		out := make([]*schema.Field, 0, len(t.Fields))
		for _, f := range t.Fields {
			if strings.HasPrefix(f.Name, "__") {
				continue
			}
			out = append(out, f)
		}
		return out, nil
	case "interfaces":
		if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
			return nil, nil
		}
		out := make([]*schema.Type, 0, len(t.Interfaces))
		for _, name := range t.Interfaces {
			if it := r.schema.Types[name]; it != nil {
				out = append(out, it)
			}
		}
		return out, nil
	case "possibleTypes":
		if t.Kind != schema.TypeKindInterface && t.Kind != schema.TypeKindUnion {
			return nil, nil
		}
		out := make([]*schema.Type, 0, len(t.PossibleTypes))
		for _, name := range t.PossibleTypes {
			if pt := r.schema.Types[name]; pt != nil {
				out = append(out, pt)
			}
		}
		return out, nil
	case "enumValues":
		if t.Kind != schema.TypeKindEnum {
			return nil, nil
		}
		return t.EnumValues, nil
	case "inputFields":
		if t.Kind != schema.TypeKindInputObject {
			return nil, nil
		}
		return t.InputFields, nil
	case "ofType":
		return nil, nil
	}
	return nil, nil
}

// resolveTypeRefField serves __Type selections on a type reference. Wrapping
// refs answer kind and ofType themselves; a bare named ref resolves against
// the named type definition so its kind is the definition's kind, never a
// wrapper kind.
func (r *runtime) resolveTypeRefField(ref *schema.TypeRef, field string) (any, error) {
	switch ref.Kind {
	case schema.TypeRefKindList, schema.TypeRefKindNonNull:
		switch field {
		case "kind":
			return string(ref.Kind), nil
		case "ofType":
			return ref.OfType, nil
		}
		return nil, nil
	default:
		named := r.schema.Types[ref.Named]
		if named == nil {
			return nil, fmt.Errorf("unknown type %q in type reference", ref.Named)
		}
		return r.resolveTypeField(named, field)
	}
}

func resolveFieldField(f *schema.Field, field string) (any, error) {
	switch field {
	case "name":
		return f.Name, nil
	case "description":
		if f.Description == "" {
			return nil, nil
		}
		return f.Description, nil
	case "args":
		return f.Arguments, nil
	case "type":
		return f.Type, nil
	case "isDeprecated":
		return false, nil
	case "deprecationReason":
		return nil, nil
	}
	return nil, nil
}

func resolveInputValueField(v *schema.InputValue, field string) (any, error) {
	switch field {
	case "name":
		return v.Name, nil
	case "description":
		if v.Description == "" {
			return nil, nil
		}
		return v.Description, nil
	case "type":
		return v.Type, nil
	case "defaultValue":
		if v.DefaultValue == nil {
			return nil, nil
		}
		return fmt.Sprintf("%v", v.DefaultValue), nil
	}
	return nil, nil
}

func resolveEnumValueField(v *schema.EnumValue, field string) (any, error) {
	switch field {
	case "name":
		return v.Name, nil
	case "description":
		if v.Description == "" {
			return nil, nil
		}
		return v.Description, nil
	case "isDeprecated":
		return false, nil
	case "deprecationReason":
		return nil, nil
	}
	return nil, nil
}

// directiveDef describes one directive for __Schema.directives. The schema
// model does not carry directive definitions, so the served set is the
// static vocabulary this engine understands: the executor's conditional
// inclusion directives and the builtin rule families.
type directiveDef struct {
	name        string
	description string
	locations   []string
	args        []*schema.InputValue
	repeatable  bool
}

func resolveDirectiveField(d *directiveDef, field string) (any, error) {
	switch field {
	case "name":
		return d.name, nil
	case "description":
		if d.description == "" {
			return nil, nil
		}
		return d.description, nil
	case "locations":
		return d.locations, nil
	case "args":
		return d.args, nil
	case "isRepeatable":
		return d.repeatable, nil
	}
	return nil, nil
}

var ruleLocations = []string{"ARGUMENT_DEFINITION", "INPUT_FIELD_DEFINITION"}

func builtinDirectives() []*directiveDef {
	ifArg := func() []*schema.InputValue {
		return []*schema.InputValue{
			schema.NewInputValue("if", "", schema.NonNullType(schema.NamedType("Boolean"))),
		}
	}
	str := func(name string) *schema.InputValue { return schema.NewInputValue(name, "", schema.NamedType("String")) }
	num := func(name string) *schema.InputValue { return schema.NewInputValue(name, "", schema.NamedType("Float")) }
	intv := func(name string) *schema.InputValue { return schema.NewInputValue(name, "", schema.NamedType("Int")) }
	strs := func(name string) *schema.InputValue {
		return schema.NewInputValue(name, "", schema.ListType(schema.NonNullType(schema.NamedType("String"))))
	}

	return []*directiveDef{
		{
			name:        "include",
			description: "Directs the executor to include this field only when the if argument is true.",
			locations:   []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
			args:        ifArg(),
		},
		{
			name:        "skip",
			description: "Directs the executor to skip this field when the if argument is true.",
			locations:   []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"},
			args:        ifArg(),
		},
		{
			name:        "stringRule",
			description: "String-targeted validation rule.",
			locations:   ruleLocations,
			args: []*schema.InputValue{
				str("format"), intv("maxLength"), intv("minLength"),
				str("startsWith"), str("endsWith"), str("includes"),
				str("regex"), str("flags"), strs("oneOf"),
			},
			repeatable: true,
		},
		{
			name:        "numberRule",
			description: "Numeric-targeted validation rule.",
			locations:   ruleLocations,
			args: []*schema.InputValue{
				num("multipleOf"), num("max"), num("min"),
				num("exclusiveMax"), num("exclusiveMin"),
				schema.NewInputValue("oneOf", "", schema.ListType(schema.NonNullType(schema.NamedType("Float")))),
			},
			repeatable: true,
		},
		{
			name:        "listRule",
			description: "List-targeted validation rule.",
			locations:   ruleLocations,
			args: []*schema.InputValue{
				intv("maxItems"), intv("minItems"),
				schema.NewInputValue("uniqueItems", "", schema.NamedType("Boolean")),
				intv("depth"),
			},
			repeatable: true,
		},
		{
			name:        "objectRule",
			description: "Whole-object validation rule over an input object value.",
			locations:   append(ruleLocations, "INPUT_OBJECT"),
			args:        []*schema.InputValue{strs("equalFields"), strs("nonEqualFields")},
			repeatable:  true,
		},
	}
}
