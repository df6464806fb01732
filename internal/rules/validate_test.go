package rules

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestValidate_FloatMinimum(t *testing.T) {
	cd := mustCompile(t, `
		type Query {
			f(arg: Float @numberRule(min: 10.1)): String
		}
	`)
	ref := argRef(t, cd, "Query", "f", "arg")
	ch := cd.ArgumentChain("Query", "f", "arg")

	got := cd.ValidateArgument(5.0, ref, ch, "arg")
	want := []Violation{{Path: "arg", Message: "Value must not be less than 10.1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}

	require.Empty(t, cd.ValidateArgument(10.1, ref, ch, "arg"))
}

func TestValidate_ScalarRulesRunIndependently(t *testing.T) {
	// Every scalar rule on a leaf runs even after earlier ones fail, and
	// violations keep declaration order.
	cd := mustCompile(t, `
		type Query {
			f(arg: String
				@stringRule(minLength: 5)
				@stringRule(startsWith: "ab")
				@stringRule(includes: "zz")
			): String
		}
	`)
	ref := argRef(t, cd, "Query", "f", "arg")
	ch := cd.ArgumentChain("Query", "f", "arg")

	got := cd.ValidateArgument("xy", ref, ch, "arg")
	want := []Violation{
		{Path: "arg", Message: "Value must be at least 5 characters in length"},
		{Path: "arg", Message: `Value must start with "ab"`},
		{Path: "arg", Message: `Value must include "zz"`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_NullShortCircuits(t *testing.T) {
	cd := mustCompile(t, `
		type Query {
			f(arg: String @stringRule(minLength: 5)): String
		}
	`)
	ref := argRef(t, cd, "Query", "f", "arg")
	ch := cd.ArgumentChain("Query", "f", "arg")

	require.Empty(t, cd.ValidateArgument(nil, ref, ch, "arg"))

	var typedNil []any
	require.Empty(t, cd.ValidateArgument(typedNil, ref, ch, "arg"))
}

func TestValidate_ListItems(t *testing.T) {
	cd := mustCompile(t, `
		type Query {
			f(tags: [String] @stringRule(minLength: 3)): String
		}
	`)
	ref := argRef(t, cd, "Query", "f", "tags")
	ch := cd.ArgumentChain("Query", "f", "tags")

	got := cd.ValidateArgument([]any{"alpha", "x", "beta", "y"}, ref, ch, "tags")
	want := []Violation{
		{Path: "tags[1]", Message: "Value must be at least 3 characters in length"},
		{Path: "tags[3]", Message: "Value must be at least 3 characters in length"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_FailedListRuleSuppressesDescent(t *testing.T) {
	cd := mustCompile(t, `
		type Query {
			f(tags: [String] @listRule(minItems: 3) @stringRule(minLength: 3)): String
		}
	`)
	ref := argRef(t, cd, "Query", "f", "tags")
	ch := cd.ArgumentChain("Query", "f", "tags")

	// The list rule fails, so the item rule never sees "x".
	got := cd.ValidateArgument([]any{"x"}, ref, ch, "tags")
	want := []Violation{{Path: "tags", Message: "List must have at least 3 items"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}

	// With the list rule satisfied, item violations surface.
	got = cd.ValidateArgument([]any{"x", "yy", "zzz"}, ref, ch, "tags")
	want = []Violation{
		{Path: "tags[0]", Message: "Value must be at least 3 characters in length"},
		{Path: "tags[1]", Message: "Value must be at least 3 characters in length"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_NestedListDepth(t *testing.T) {
	// depth selects the nesting level: the depth-1 rule applies to each
	// inner list independently.
	cd := mustCompile(t, `
		type Query {
			f(m: [[Int]] @listRule(minItems: 2, depth: 1)): String
		}
	`)
	ref := argRef(t, cd, "Query", "f", "m")
	ch := cd.ArgumentChain("Query", "f", "m")

	got := cd.ValidateArgument([]any{
		[]any{1},
		[]any{2},
	}, ref, ch, "m")
	want := []Violation{
		{Path: "m[0]", Message: "List must have at least 2 items"},
		{Path: "m[1]", Message: "List must have at least 2 items"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}

	require.Empty(t, cd.ValidateArgument([]any{
		[]any{1, 2},
		[]any{3, 4, 5},
	}, ref, ch, "m"))
}

func TestValidate_ObjectRuleEqualFields(t *testing.T) {
	cd := mustCompile(t, `
		input Credentials @objectRule(equalFields: ["password", "confirm"]) {
			password: String
			confirm: String
		}
		type Query {
			f(c: Credentials): String
		}
	`)
	ref := argRef(t, cd, "Query", "f", "c")
	ch := cd.ArgumentChain("Query", "f", "c")

	got := cd.ValidateArgument(map[string]any{
		"password": "secret",
		"confirm":  "Secret",
	}, ref, ch, "c")
	want := []Violation{{Path: "c", Message: "Fields password, confirm must be equal"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}

	require.Empty(t, cd.ValidateArgument(map[string]any{
		"password": "secret",
		"confirm":  "secret",
	}, ref, ch, "c"))
}

func TestValidate_FailedObjectRuleSuppressesFieldDescent(t *testing.T) {
	cd := mustCompile(t, `
		input Credentials @objectRule(equalFields: ["password", "confirm"]) {
			password: String @stringRule(minLength: 8)
			confirm: String
		}
		type Query {
			f(c: Credentials): String
		}
	`)
	ref := argRef(t, cd, "Query", "f", "c")
	ch := cd.ArgumentChain("Query", "f", "c")

	// Both the object rule and the field rule would fail; only the object
	// rule reports because it suppresses descent at this node.
	got := cd.ValidateArgument(map[string]any{
		"password": "abc",
		"confirm":  "xyz",
	}, ref, ch, "c")
	want := []Violation{{Path: "c", Message: "Fields password, confirm must be equal"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}

	// With the object rule satisfied, the field rule surfaces.
	got = cd.ValidateArgument(map[string]any{
		"password": "abc",
		"confirm":  "abc",
	}, ref, ch, "c")
	want = []Violation{{Path: "c.password", Message: "Value must be at least 8 characters in length"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_NestedPathComposition(t *testing.T) {
	cd := mustCompile(t, `
		input Address {
			zip: String @stringRule(regex: "^[0-9]{5}$")
		}
		input Profile {
			addresses: [Address]
		}
		type Query {
			f(p: Profile): String
		}
	`)
	ref := argRef(t, cd, "Query", "f", "p")
	ch := cd.ArgumentChain("Query", "f", "p")

	got := cd.ValidateArgument(map[string]any{
		"addresses": []any{
			map[string]any{"zip": "12345"},
			map[string]any{"zip": "abc"},
		},
	}, ref, ch, "p")
	want := []Violation{{Path: "p.addresses[1].zip", Message: "Value must match ^[0-9]{5}$"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_UnmarkedInputSkipsDescent(t *testing.T) {
	cd := mustCompile(t, `
		input Plain {
			name: String
		}
		type Query {
			f(p: Plain @objectRule(nonEqualFields: ["name", "name"])): String
		}
	`)

	// Declaring nonEqualFields twice over the same field always fails, which
	// proves the argument-level object rule ran; the type itself stays
	// unmarked so no field walk happens afterwards.
	require.False(t, cd.InputMeta("Plain").NeedsValidation)

	ref := argRef(t, cd, "Query", "f", "p")
	ch := cd.ArgumentChain("Query", "f", "p")
	got := cd.ValidateArgument(map[string]any{"name": "x"}, ref, ch, "p")
	require.Len(t, got, 1)
	require.Equal(t, "p", got[0].Path)
}

func TestValidate_SelfReferentialInputTerminates(t *testing.T) {
	cd := mustCompile(t, `
		input Node {
			next: Node
			label: String @stringRule(minLength: 2)
		}
		type Query {
			f(n: Node): String
		}
	`)
	ref := argRef(t, cd, "Query", "f", "n")
	ch := cd.ArgumentChain("Query", "f", "n")

	got := cd.ValidateArgument(map[string]any{
		"label": "ok",
		"next": map[string]any{
			"label": "x",
			"next":  nil,
		},
	}, ref, ch, "n")
	want := []Violation{{Path: "n.next.label", Message: "Value must be at least 2 characters in length"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_NonNullWrappersAreTransparent(t *testing.T) {
	cd := mustCompile(t, `
		type Query {
			f(tags: [String!]! @listRule(maxItems: 2) @stringRule(minLength: 2)): String
		}
	`)
	ref := argRef(t, cd, "Query", "f", "tags")
	ch := cd.ArgumentChain("Query", "f", "tags")

	got := cd.ValidateArgument([]any{"ok", "x"}, ref, ch, "tags")
	want := []Violation{{Path: "tags[1]", Message: "Value must be at least 2 characters in length"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}
