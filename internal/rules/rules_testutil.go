package rules

import (
	"testing"

	language "github.com/hanpama/rulegraph/internal/language"
	schema "github.com/hanpama/rulegraph/internal/schema"

	"github.com/stretchr/testify/require"
)

// mustBuildSchema builds a schema from SDL and fails the test on error.
func mustBuildSchema(t *testing.T, sdl string) *schema.Schema {
	t.Helper()
	sch, err := schema.BuildFromSDL(language.NewSource("test.graphql", sdl))
	require.NoError(t, err)
	return sch
}

// mustCompile builds a schema from SDL and compiles the builtin rule
// families against it.
func mustCompile(t *testing.T, sdl string) *Compiled {
	t.Helper()
	cd, err := compileSDL(t, sdl)
	require.NoError(t, err)
	return cd
}

func compileSDL(t *testing.T, sdl string) (*Compiled, error) {
	t.Helper()
	sch := mustBuildSchema(t, sdl)
	c := NewCompiler(sch)
	require.NoError(t, RegisterBuiltins(c))
	return c.Compile()
}

// argRef looks up the declared type of one field argument.
func argRef(t *testing.T, cd *Compiled, typeName, fieldName, argName string) *schema.TypeRef {
	t.Helper()
	typ := cd.schema.Types[typeName]
	require.NotNil(t, typ)
	f := typ.GetField(fieldName)
	require.NotNil(t, f)
	a := f.GetArgument(argName)
	require.NotNil(t, a)
	return a.Type
}
