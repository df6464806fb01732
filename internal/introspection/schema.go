package introspection

import (
	schema "github.com/hanpama/rulegraph/internal/schema"
)

// extendSchema returns a copy of sch carrying the introspection type system
// and the __schema / __type meta-fields on the query root. The input schema
// is never mutated.
func extendSchema(sch *schema.Schema) *schema.Schema {
	out := schema.NewSchema(sch.Description).
		SetQueryType(sch.QueryType).
		SetMutationType(sch.MutationType).
		SetSubscriptionType(sch.SubscriptionType)
	for _, t := range sch.Types {
		out.AddType(t)
	}
	for _, t := range introspectionTypes() {
		out.AddType(t)
	}
	// The introspection surface leans on these scalars even when the user
	// SDL never mentions them.
	for _, name := range []string{"String", "Boolean"} {
		if out.Types[name] == nil {
			out.AddType(schema.NewType(name, schema.TypeKindScalar, ""))
		}
	}

	if q := sch.GetQueryType(); q != nil {
		qc := *q
		qc.Fields = append(append([]*schema.Field{}, q.Fields...),
			schema.NewField("__schema", "Access the current type schema of this server.",
				schema.NonNullType(schema.NamedType("__Schema"))),
			schema.NewField("__type", "Request the type information of a single type.",
				schema.NamedType("__Type")).
				AddArgument(schema.NewInputValue("name", "", schema.NonNullType(schema.NamedType("String")))),
		)
		out.AddType(&qc)
	}
	return out
}

func introspectionTypes() []*schema.Type {
	typeRef := func() *schema.TypeRef { return schema.NamedType("__Type") }
	nonNullList := func(inner *schema.TypeRef) *schema.TypeRef {
		return schema.NonNullType(schema.ListType(schema.NonNullType(inner)))
	}
	includeDeprecated := func() *schema.InputValue {
		return schema.NewInputValue("includeDeprecated", "", schema.NamedType("Boolean")).SetDefault(false)
	}

	schemaType := schema.NewType("__Schema", schema.TypeKindObject,
		"A GraphQL Schema defines the capabilities of a GraphQL server.").
		AddField(schema.NewField("description", "", schema.NamedType("String"))).
		AddField(schema.NewField("types", "A list of all types supported by this server.", nonNullList(typeRef()))).
		AddField(schema.NewField("queryType", "The type that query operations will be rooted at.", schema.NonNullType(typeRef()))).
		AddField(schema.NewField("mutationType", "", typeRef())).
		AddField(schema.NewField("subscriptionType", "", typeRef())).
		AddField(schema.NewField("directives", "A list of all directives supported by this server.",
			nonNullList(schema.NamedType("__Directive"))))

	typeType := schema.NewType("__Type", schema.TypeKindObject,
		"The fundamental unit of the GraphQL type system.").
		AddField(schema.NewField("kind", "", schema.NonNullType(schema.NamedType("__TypeKind")))).
		AddField(schema.NewField("name", "", schema.NamedType("String"))).
		AddField(schema.NewField("description", "", schema.NamedType("String"))).
		AddField(schema.NewField("fields", "", schema.ListType(schema.NonNullType(schema.NamedType("__Field")))).
			AddArgument(includeDeprecated())).
		AddField(schema.NewField("interfaces", "", schema.ListType(schema.NonNullType(typeRef())))).
		AddField(schema.NewField("possibleTypes", "", schema.ListType(schema.NonNullType(typeRef())))).
		AddField(schema.NewField("enumValues", "", schema.ListType(schema.NonNullType(schema.NamedType("__EnumValue")))).
			AddArgument(includeDeprecated())).
		AddField(schema.NewField("inputFields", "", schema.ListType(schema.NonNullType(schema.NamedType("__InputValue"))))).
		AddField(schema.NewField("ofType", "", typeRef()))

	fieldType := schema.NewType("__Field", schema.TypeKindObject,
		"One field of an Object or Interface type.").
		AddField(schema.NewField("name", "", schema.NonNullType(schema.NamedType("String")))).
		AddField(schema.NewField("description", "", schema.NamedType("String"))).
		AddField(schema.NewField("args", "", nonNullList(schema.NamedType("__InputValue")))).
		AddField(schema.NewField("type", "", schema.NonNullType(typeRef()))).
		AddField(schema.NewField("isDeprecated", "", schema.NonNullType(schema.NamedType("Boolean")))).
		AddField(schema.NewField("deprecationReason", "", schema.NamedType("String")))

	inputValueType := schema.NewType("__InputValue", schema.TypeKindObject,
		"An argument or input-object field definition.").
		AddField(schema.NewField("name", "", schema.NonNullType(schema.NamedType("String")))).
		AddField(schema.NewField("description", "", schema.NamedType("String"))).
		AddField(schema.NewField("type", "", schema.NonNullType(typeRef()))).
		AddField(schema.NewField("defaultValue", "", schema.NamedType("String")))

	enumValueType := schema.NewType("__EnumValue", schema.TypeKindObject,
		"One possible value of an Enum type.").
		AddField(schema.NewField("name", "", schema.NonNullType(schema.NamedType("String")))).
		AddField(schema.NewField("description", "", schema.NamedType("String"))).
		AddField(schema.NewField("isDeprecated", "", schema.NonNullType(schema.NamedType("Boolean")))).
		AddField(schema.NewField("deprecationReason", "", schema.NamedType("String")))

	directiveType := schema.NewType("__Directive", schema.TypeKindObject,
		"A directive supported by this server, including the rule directives of the validation layer.").
		AddField(schema.NewField("name", "", schema.NonNullType(schema.NamedType("String")))).
		AddField(schema.NewField("description", "", schema.NamedType("String"))).
		AddField(schema.NewField("locations", "", nonNullList(schema.NamedType("__DirectiveLocation")))).
		AddField(schema.NewField("args", "", nonNullList(schema.NamedType("__InputValue")))).
		AddField(schema.NewField("isRepeatable", "", schema.NonNullType(schema.NamedType("Boolean"))))

	typeKindEnum := schema.NewType("__TypeKind", schema.TypeKindEnum,
		"An enum describing what kind of type a given __Type is.")
	for _, v := range []string{"SCALAR", "OBJECT", "INTERFACE", "UNION", "ENUM", "INPUT_OBJECT", "LIST", "NON_NULL"} {
		typeKindEnum.AddEnumValue(schema.NewEnumValue(v, ""))
	}

	locationEnum := schema.NewType("__DirectiveLocation", schema.TypeKindEnum,
		"A location a directive may appear at.")
	for _, v := range []string{
		"QUERY", "MUTATION", "SUBSCRIPTION", "FIELD", "FRAGMENT_DEFINITION",
		"FRAGMENT_SPREAD", "INLINE_FRAGMENT", "VARIABLE_DEFINITION",
		"SCHEMA", "SCALAR", "OBJECT", "FIELD_DEFINITION", "ARGUMENT_DEFINITION",
		"INTERFACE", "UNION", "ENUM", "ENUM_VALUE", "INPUT_OBJECT", "INPUT_FIELD_DEFINITION",
	} {
		locationEnum.AddEnumValue(schema.NewEnumValue(v, ""))
	}

	return []*schema.Type{
		schemaType, typeType, fieldType, inputValueType,
		enumValueType, directiveType, typeKindEnum, locationEnum,
	}
}
