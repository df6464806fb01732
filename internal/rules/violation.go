package rules

import (
	"fmt"
	"strings"
)

// ErrorCode is the machine-readable code carried by every aggregate
// validation error.
const ErrorCode = "ERR_RULE_VIOLATION"

// Violation is one reported rule failure with a structural path into the
// argument value, e.g. "input.tags[1]".
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Path + ": " + v.Message
}

// AggregateError bundles every violation found during one field resolution.
// Exactly one is raised per failed resolution, before the original resolver
// runs.
type AggregateError struct {
	Violations []Violation
}

func NewAggregateError(violations []Violation) *AggregateError {
	return &AggregateError{Violations: violations}
}

func (e *AggregateError) Error() string {
	if len(e.Violations) == 1 {
		return e.Violations[0].String()
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%d rule violations: %s", len(e.Violations), strings.Join(parts, "; "))
}

// Extensions exposes the fixed error code and the ordered violation list so
// the executor can surface them on the resulting GraphQL error.
func (e *AggregateError) Extensions() map[string]any {
	details := make([]map[string]any, len(e.Violations))
	for i, v := range e.Violations {
		details[i] = map[string]any{"path": v.Path, "message": v.Message}
	}
	return map[string]any{
		"code":       ErrorCode,
		"violations": details,
	}
}
