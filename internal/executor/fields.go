package executor

import (
	language "github.com/hanpama/rulegraph/internal/language"
	schema "github.com/hanpama/rulegraph/internal/schema"
)

// collectedFieldMap preserves field order from the original query
type collectedFieldMap struct {
	fields []collectedField
	index  map[string]int
}

type collectedField struct {
	ResponseName string
	Fields       []*language.Field
}

func newCollectedFieldMap() *collectedFieldMap {
	return &collectedFieldMap{index: make(map[string]int)}
}

func (cfm *collectedFieldMap) add(responseName string, field *language.Field) {
	if idx, exists := cfm.index[responseName]; exists {
		cfm.fields[idx].Fields = append(cfm.fields[idx].Fields, field)
		return
	}
	cfm.index[responseName] = len(cfm.fields)
	cfm.fields = append(cfm.fields, collectedField{
		ResponseName: responseName,
		Fields:       []*language.Field{field},
	})
}

func (cfm *collectedFieldMap) orderedFields() []collectedField {
	return cfm.fields
}

// collectFields groups the selections of one object type, expanding
// fragments and honoring @skip/@include.
func collectFields(state *executionState, objectType *schema.Type, selectionSet language.SelectionSet) *collectedFieldMap {
	grouped := newCollectedFieldMap()
	collectFieldsImpl(state, objectType, selectionSet, grouped, make(map[string]bool))
	return grouped
}

func collectFieldsImpl(state *executionState, objectType *schema.Type, selectionSet language.SelectionSet, grouped *collectedFieldMap, visitedFragments map[string]bool) {
	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *language.Field:
			if !shouldIncludeNode(state, sel.Directives) {
				continue
			}
			responseName := sel.Alias
			if responseName == "" {
				responseName = sel.Name
			}
			grouped.add(responseName, sel)

		case *language.InlineFragment:
			if !shouldIncludeNode(state, sel.Directives) {
				continue
			}
			if sel.TypeCondition != "" && !typeConditionMatches(state, sel.TypeCondition, objectType) {
				continue
			}
			collectFieldsImpl(state, objectType, sel.SelectionSet, grouped, visitedFragments)

		case *language.FragmentSpread:
			if !shouldIncludeNode(state, sel.Directives) {
				continue
			}
			if visitedFragments[sel.Name] {
				continue
			}
			visitedFragments[sel.Name] = true

			fragmentDef := state.document.Fragments.ForName(sel.Name)
			if fragmentDef == nil {
				continue
			}
			if fragmentDef.TypeCondition != "" && !typeConditionMatches(state, fragmentDef.TypeCondition, objectType) {
				continue
			}
			collectFieldsImpl(state, objectType, fragmentDef.SelectionSet, grouped, visitedFragments)
		}
	}
}

// typeConditionMatches reports whether a fragment's type condition applies
// to the concrete object type.
func typeConditionMatches(state *executionState, condition string, objectType *schema.Type) bool {
	if condition == objectType.Name {
		return true
	}
	cond := state.schema.Types[condition]
	if cond == nil {
		return false
	}
	switch cond.Kind {
	case schema.TypeKindInterface:
		for _, name := range objectType.Interfaces {
			if name == condition {
				return true
			}
		}
	case schema.TypeKindUnion:
		for _, name := range cond.PossibleTypes {
			if name == objectType.Name {
				return true
			}
		}
	}
	return false
}

// shouldIncludeNode checks @skip and @include on a selection.
func shouldIncludeNode(state *executionState, directives language.DirectiveList) bool {
	if skip := directives.ForName("skip"); skip != nil {
		if v, ok := directiveArgumentValue(state, skip, "if").(bool); ok && v {
			return false
		}
	}
	if include := directives.ForName("include"); include != nil {
		if v, ok := directiveArgumentValue(state, include, "if").(bool); ok && !v {
			return false
		}
	}
	return true
}

func directiveArgumentValue(state *executionState, directive *language.Directive, argName string) any {
	for _, arg := range directive.Arguments {
		if arg.Name == argName {
			return valueFromASTWithVars(arg.Value, state.variableValues)
		}
	}
	return nil
}
