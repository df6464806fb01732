package executor

import (
	"testing"

	language "github.com/hanpama/rulegraph/internal/language"
	schema "github.com/hanpama/rulegraph/internal/schema"
)

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

// mustBuildSchema builds a schema from SDL and fails the test on error.
func mustBuildSchema(t *testing.T, sdl string) *schema.Schema {
	t.Helper()
	s, err := schema.BuildFromSDL(language.NewSource("test.graphql", sdl))
	if err != nil {
		t.Fatalf("schema error: %v", err)
	}
	return s
}
