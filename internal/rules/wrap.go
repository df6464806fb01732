package rules

import (
	"context"
	"time"

	eventbus "github.com/hanpama/rulegraph/internal/eventbus"
	events "github.com/hanpama/rulegraph/internal/events"
	executor "github.com/hanpama/rulegraph/internal/executor"
)

// Wrap decorates a Runtime so that every field with at least one directly or
// transitively validated argument validates its arguments before resolution.
// On any violation the original resolver is never invoked and a single
// AggregateError is returned; everything else delegates unchanged.
func Wrap(next executor.Runtime, compiled *Compiled) executor.Runtime {
	if len(compiled.wrapped) == 0 {
		return next
	}
	return &validatingRuntime{next: next, compiled: compiled}
}

type validatingRuntime struct {
	next     executor.Runtime
	compiled *Compiled
}

func (r *validatingRuntime) ResolveField(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error) {
	bindings, ok := r.compiled.wrapped[FieldID{Type: objectType, Field: field}]
	if !ok {
		return r.next.ResolveField(ctx, objectType, field, source, args)
	}

	start := time.Now()
	var violations []Violation
	for _, b := range bindings {
		violations = append(violations, r.compiled.ValidateArgument(args[b.name], b.typ, b.ch, b.name)...)
	}
	eventbus.Publish(ctx, events.RuleValidation{
		ObjectType: objectType,
		Field:      field,
		Violations: len(violations),
		Duration:   time.Since(start),
	})

	if len(violations) > 0 {
		return nil, NewAggregateError(violations)
	}
	return r.next.ResolveField(ctx, objectType, field, source, args)
}

func (r *validatingRuntime) ResolveType(ctx context.Context, abstractType string, value any) (string, error) {
	return r.next.ResolveType(ctx, abstractType, value)
}

func (r *validatingRuntime) SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error) {
	return r.next.SerializeLeafValue(ctx, scalarOrEnumTypeName, value)
}
