package language

import (
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"
)

// ParseQuery parses an executable GraphQL document.
func ParseQuery(source string) (*QueryDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseSchema parses SDL without validating it against a schema.
func ParseSchema(name, source string) (*SchemaDocument, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadSchema parses and validates one or more SDL sources into a usable
// schema. The gqlparser prelude (builtin scalars, @skip/@include/@deprecated)
// is included automatically.
func LoadSchema(sources ...*Source) (*ValidatedSchema, error) {
	return gqlparser.LoadSchema(sources...)
}

// NewSource wraps SDL text as a named source.
func NewSource(name, input string) *Source {
	return &Source{Name: name, Input: input}
}

// AsGraphQLError converts err into a *Error when possible.
func AsGraphQLError(err error) (*Error, bool) {
	ge, ok := err.(*gqlerror.Error)
	return ge, ok
}
