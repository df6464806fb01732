package executor

import (
	"context"
	"fmt"
)

// Runtime is the field-execution capability the executor delegates to.
//
//   - ResolveField resolves one field synchronously. objectType is the
//     GraphQL type name, field the field name, source the parent value (nil
//     for root fields) and args the already-coerced argument values.
//     Return (nil, nil) to produce a GraphQL null for nullable fields.
//   - ResolveType returns the concrete object type name for a value of an
//     abstract (interface or union) type.
//   - SerializeLeafValue coerces scalars and enums into JSON-safe Go values.
//
// Implementations must be concurrency-safe and must not mutate source or
// args. Decorators (such as the rules wrapper) compose around this
// interface; the executor never mutates resolver state in place.
type Runtime interface {
	ResolveField(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error)
	ResolveType(ctx context.Context, abstractType string, value any) (string, error)
	SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error)
}

// ResolveFunc resolves one field.
type ResolveFunc func(ctx context.Context, source any, args map[string]any) (any, error)

// TypeResolveFunc maps a value of an abstract type to a concrete type name.
type TypeResolveFunc func(ctx context.Context, value any) (string, error)

// ResolverMap is the standard Runtime: explicit per-field resolvers with a
// source-property fallback for plain projection fields.
type ResolverMap struct {
	fields    map[string]ResolveFunc
	abstracts map[string]TypeResolveFunc
}

func NewResolverMap() *ResolverMap {
	return &ResolverMap{
		fields:    map[string]ResolveFunc{},
		abstracts: map[string]TypeResolveFunc{},
	}
}

// Field registers a resolver for objectType.field.
func (m *ResolverMap) Field(objectType, field string, fn ResolveFunc) *ResolverMap {
	m.fields[objectType+"."+field] = fn
	return m
}

// Abstract registers a concrete-type resolver for an interface or union.
func (m *ResolverMap) Abstract(abstractType string, fn TypeResolveFunc) *ResolverMap {
	m.abstracts[abstractType] = fn
	return m
}

func (m *ResolverMap) ResolveField(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error) {
	if fn, ok := m.fields[objectType+"."+field]; ok {
		return fn(ctx, source, args)
	}
	// Fallback: project the field out of a map-shaped source.
	if props, ok := source.(map[string]any); ok {
		return props[field], nil
	}
	return nil, nil
}

func (m *ResolverMap) ResolveType(ctx context.Context, abstractType string, value any) (string, error) {
	if fn, ok := m.abstracts[abstractType]; ok {
		return fn(ctx, value)
	}
	if props, ok := value.(map[string]any); ok {
		if name, ok := props["__typename"].(string); ok {
			return name, nil
		}
	}
	return "", fmt.Errorf("cannot resolve concrete type for %s", abstractType)
}

func (m *ResolverMap) SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error) {
	switch scalarOrEnumTypeName {
	case "Int":
		switch v := value.(type) {
		case int, int32, int64:
			return v, nil
		case float64:
			return int(v), nil
		}
		return nil, fmt.Errorf("cannot serialize %T as Int", value)
	case "Float":
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		}
		return nil, fmt.Errorf("cannot serialize %T as Float", value)
	case "Boolean":
		if v, ok := value.(bool); ok {
			return v, nil
		}
		return nil, fmt.Errorf("cannot serialize %T as Boolean", value)
	case "String", "ID":
		if v, ok := value.(string); ok {
			return v, nil
		}
		return fmt.Sprintf("%v", value), nil
	default:
		// Custom scalars and enums pass through unchanged.
		return value, nil
	}
}
