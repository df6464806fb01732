package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReachability_DirectRules(t *testing.T) {
	cd := mustCompile(t, `
		input Ruled {
			name: String @stringRule(minLength: 1)
		}
		input ObjectRuled @objectRule(nonEqualFields: ["a", "b"]) {
			a: Int
			b: Int
		}
		input Plain {
			name: String
		}
		type Query {
			f(a: Ruled, b: ObjectRuled, c: Plain): String
		}
	`)

	require.True(t, cd.InputMeta("Ruled").NeedsValidation)
	require.True(t, cd.InputMeta("ObjectRuled").NeedsValidation)
	require.False(t, cd.InputMeta("Plain").NeedsValidation)
}

func TestReachability_Transitive(t *testing.T) {
	// Outer carries no rules itself but reaches Inner through two hops.
	cd := mustCompile(t, `
		input Inner {
			name: String @stringRule(minLength: 1)
		}
		input Middle {
			inner: Inner
		}
		input Outer {
			middle: Middle
		}
		type Query {
			f(o: Outer): String
		}
	`)

	require.True(t, cd.InputMeta("Inner").NeedsValidation)
	require.True(t, cd.InputMeta("Middle").NeedsValidation)
	require.True(t, cd.InputMeta("Outer").NeedsValidation)
}

func TestReachability_SelfReferenceAloneDoesNotMark(t *testing.T) {
	cd := mustCompile(t, `
		input Node {
			next: Node
			label: String
		}
		type Query {
			f(n: Node): String
		}
	`)

	require.False(t, cd.InputMeta("Node").NeedsValidation)
}

func TestReachability_CyclePropagates(t *testing.T) {
	// A and B form a cycle; the rule sits on B, and the requirement must
	// flow through the cycle regardless of alphabetical visit order.
	cd := mustCompile(t, `
		input A {
			b: B
		}
		input B {
			a: A
			name: String @stringRule(minLength: 1)
		}
		type Query {
			f(a: A): String
		}
	`)

	require.True(t, cd.InputMeta("A").NeedsValidation)
	require.True(t, cd.InputMeta("B").NeedsValidation)
}

func TestReachability_CycleWithoutRulesStaysUnmarked(t *testing.T) {
	cd := mustCompile(t, `
		input A {
			b: B
		}
		input B {
			a: A
		}
		type Query {
			f(a: A): String
		}
	`)

	require.False(t, cd.InputMeta("A").NeedsValidation)
	require.False(t, cd.InputMeta("B").NeedsValidation)
}

func TestReachability_ThroughListType(t *testing.T) {
	cd := mustCompile(t, `
		input Item {
			sku: String @stringRule(minLength: 1)
		}
		input Order {
			items: [Item!]
		}
		type Query {
			f(o: Order): String
		}
	`)

	require.True(t, cd.InputMeta("Order").NeedsValidation)
}
