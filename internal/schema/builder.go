package schema

import (
	"sort"
	"strconv"

	language "github.com/hanpama/rulegraph/internal/language"
)

// BuildFromSDL parses and validates the given SDL sources and converts the
// result into a Schema. The rule-directive definitions are injected as a
// prelude so schema authors never have to declare them.
func BuildFromSDL(sources ...*language.Source) (*Schema, error) {
	all := make([]*language.Source, 0, len(sources)+1)
	all = append(all, language.NewSource("rulegraph/directives.graphql", RuleDirectivesSDL))
	all = append(all, sources...)
	validated, err := language.LoadSchema(all...)
	if err != nil {
		return nil, err
	}
	return buildFromValidated(validated), nil
}

func buildFromValidated(v *language.ValidatedSchema) *Schema {
	s := NewSchema("")
	if v.Query != nil {
		s.SetQueryType(v.Query.Name)
	}
	if v.Mutation != nil {
		s.SetMutationType(v.Mutation.Name)
	}
	if v.Subscription != nil {
		s.SetSubscriptionType(v.Subscription.Name)
	}

	// Sort type names for deterministic construction; introspection types
	// from the prelude are not part of the validated surface.
	var names []string
	for name := range v.Types {
		if len(name) >= 2 && name[:2] == "__" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s.AddType(buildDefinition(v, v.Types[name]))
	}
	return s
}

func buildDefinition(v *language.ValidatedSchema, def *language.Definition) *Type {
	switch def.Kind {
	case language.Object, language.Interface:
		kind := TypeKindObject
		if def.Kind == language.Interface {
			kind = TypeKindInterface
		}
		t := NewType(def.Name, kind, def.Description)
		for _, name := range def.Interfaces {
			t.AddInterface(name)
		}
		if kind == TypeKindInterface {
			var possible []string
			for _, pt := range v.PossibleTypes[def.Name] {
				possible = append(possible, pt.Name)
			}
			sort.Strings(possible)
			for _, name := range possible {
				t.AddPossibleType(name)
			}
		}
		for _, fd := range def.Fields {
			t.AddField(buildField(fd))
		}
		return t

	case language.Union:
		t := NewType(def.Name, TypeKindUnion, def.Description)
		for _, name := range def.Types {
			t.AddPossibleType(name)
		}
		return t

	case language.Enum:
		t := NewType(def.Name, TypeKindEnum, def.Description)
		for _, ev := range def.EnumValues {
			t.AddEnumValue(NewEnumValue(ev.Name, ev.Description))
		}
		return t

	case language.InputObject:
		t := NewType(def.Name, TypeKindInputObject, def.Description)
		for _, d := range buildDirectiveUses(def.Directives) {
			t.AddDirective(d)
		}
		// Input-object fields arrive as field definitions in the AST.
		for _, fd := range def.Fields {
			in := NewInputValue(fd.Name, fd.Description, buildTypeRef(fd.Type)).
				SetDefault(valueToGo(fd.DefaultValue))
			for _, d := range buildDirectiveUses(fd.Directives) {
				in.AddDirective(d)
			}
			t.AddInputField(in)
		}
		return t

	default: // language.Scalar
		return NewType(def.Name, TypeKindScalar, def.Description)
	}
}

func buildField(fd *language.FieldDefinition) *Field {
	f := NewField(fd.Name, fd.Description, buildTypeRef(fd.Type))
	for _, ad := range fd.Arguments {
		in := NewInputValue(ad.Name, ad.Description, buildTypeRef(ad.Type)).
			SetDefault(valueToGo(ad.DefaultValue))
		for _, d := range buildDirectiveUses(ad.Directives) {
			in.AddDirective(d)
		}
		f.AddArgument(in)
	}
	for _, d := range buildDirectiveUses(fd.Directives) {
		f.AddDirective(d)
	}
	return f
}

func buildTypeRef(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(buildTypeRef(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	return ListType(buildTypeRef(t.Elem))
}

func buildDirectiveUses(list language.DirectiveList) []*DirectiveUse {
	if len(list) == 0 {
		return nil
	}
	out := make([]*DirectiveUse, 0, len(list))
	for _, d := range list {
		args := make(map[string]any, len(d.Arguments))
		for _, a := range d.Arguments {
			args[a.Name] = valueToGo(a.Value)
		}
		out = append(out, NewDirectiveUse(d.Name, args))
	}
	return out
}

// valueToGo decodes an SDL value literal to a plain Go value. Variables
// cannot appear in SDL, so every kind decodes directly.
func valueToGo(value *language.Value) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.EnumValue:
		return value.Raw
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = valueToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any, len(value.Children))
		for _, f := range value.Children {
			m[f.Name] = valueToGo(f.Value)
		}
		return m
	default:
		return nil
	}
}
