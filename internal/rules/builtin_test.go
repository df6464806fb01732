package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringPredicate(t *testing.T) {
	cases := []struct {
		name    string
		attrs   Attributes
		value   any
		wantErr string
	}{
		{"email ok", Attributes{"format": "EMAIL"}, "a@b.co", ""},
		{"email bad", Attributes{"format": "EMAIL"}, "not-an-email", "Value must be a valid email address"},
		{"uuid ok", Attributes{"format": "UUID"}, "123e4567-e89b-12d3-a456-426614174000", ""},
		{"uuid bad", Attributes{"format": "UUID"}, "123", "Value must be a valid UUID"},
		{"minLength counts runes", Attributes{"minLength": 3}, "héé", ""},
		{"minLength short", Attributes{"minLength": 3}, "hé", "Value must be at least 3 characters in length"},
		{"maxLength long", Attributes{"maxLength": 2}, "abc", "Value must not be longer than 2 characters"},
		{"startsWith", Attributes{"startsWith": "ab"}, "xy", `Value must start with "ab"`},
		{"endsWith", Attributes{"endsWith": "yz"}, "ab", `Value must end with "yz"`},
		{"includes", Attributes{"includes": "mid"}, "nope", `Value must include "mid"`},
		{"regex with flags", Attributes{"regex": "^abc$", "flags": "i"}, "ABC", ""},
		{"regex mismatch", Attributes{"regex": "^abc$"}, "abd", "Value must match ^abc$"},
		{"oneOf hit", Attributes{"oneOf": []any{"a", "b"}}, "b", ""},
		{"oneOf miss", Attributes{"oneOf": []any{"a", "b"}}, "c", "Value must be one of: a, b"},
		{"non-string passes through", Attributes{"minLength": 3}, 42, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := stringPredicate(tc.value, tc.attrs)
			if tc.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tc.wantErr)
			}
		})
	}
}

func TestNumberPredicate(t *testing.T) {
	cases := []struct {
		name    string
		attrs   Attributes
		value   any
		wantErr string
	}{
		{"min ok", Attributes{"min": 10.1}, 10.1, ""},
		{"min fail", Attributes{"min": 10.1}, 5.0, "Value must not be less than 10.1"},
		{"min int attr", Attributes{"min": 3}, 2, "Value must not be less than 3"},
		{"max fail", Attributes{"max": 10}, 11, "Value must not be greater than 10"},
		{"exclusiveMin boundary", Attributes{"exclusiveMin": 5}, 5, "Value must be greater than 5"},
		{"exclusiveMax boundary", Attributes{"exclusiveMax": 5}, 5, "Value must be less than 5"},
		{"multipleOf ok", Attributes{"multipleOf": 3}, 9, ""},
		{"multipleOf fail", Attributes{"multipleOf": 3}, 10, "Value must be a multiple of 3"},
		{"oneOf hit", Attributes{"oneOf": []any{1, 2.5}}, 2.5, ""},
		{"oneOf miss", Attributes{"oneOf": []any{1, 2.5}}, 3, "Value must be one of: 1, 2.5"},
		{"non-number passes through", Attributes{"min": 1}, "abc", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := numberPredicate(tc.value, tc.attrs)
			if tc.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tc.wantErr)
			}
		})
	}
}

func TestListPredicate(t *testing.T) {
	cases := []struct {
		name    string
		attrs   Attributes
		value   any
		wantErr string
	}{
		{"minItems fail", Attributes{"minItems": 2}, []any{1}, "List must have at least 2 items"},
		{"maxItems fail", Attributes{"maxItems": 1}, []any{1, 2}, "List must have no more than 1 items"},
		{"uniqueItems ok", Attributes{"uniqueItems": true}, []any{1, 2, 3}, ""},
		{"uniqueItems fail", Attributes{"uniqueItems": true}, []any{1, 2, 1}, "List must have unique items"},
		{"uniqueItems off", Attributes{"uniqueItems": false}, []any{1, 1}, ""},
		{"deep equality", Attributes{"uniqueItems": true}, []any{map[string]any{"a": 1}, map[string]any{"a": 1}}, "List must have unique items"},
		{"non-list passes through", Attributes{"minItems": 2}, "abc", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := listPredicate(tc.value, tc.attrs)
			if tc.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tc.wantErr)
			}
		})
	}
}

func TestObjectPredicate(t *testing.T) {
	cases := []struct {
		name    string
		attrs   Attributes
		value   any
		wantErr string
	}{
		{"equal ok", Attributes{"equalFields": []any{"a", "b"}}, map[string]any{"a": 1, "b": 1}, ""},
		{"equal fail", Attributes{"equalFields": []any{"a", "b"}}, map[string]any{"a": 1, "b": 2}, "Fields a, b must be equal"},
		{"nonEqual ok", Attributes{"nonEqualFields": []any{"a", "b"}}, map[string]any{"a": 1, "b": 2}, ""},
		{"nonEqual fail", Attributes{"nonEqualFields": []any{"a", "b", "c"}}, map[string]any{"a": 1, "b": 2, "c": 1}, "Fields a, b, c must not be equal"},
		{"non-map passes through", Attributes{"equalFields": []any{"a", "b"}}, "abc", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := objectPredicate(tc.value, tc.attrs)
			if tc.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.EqualError(t, err, tc.wantErr)
			}
		})
	}
}

func TestAggregateError(t *testing.T) {
	one := NewAggregateError([]Violation{{Path: "arg", Message: "bad"}})
	require.Equal(t, "arg: bad", one.Error())

	many := NewAggregateError([]Violation{
		{Path: "a", Message: "x"},
		{Path: "b", Message: "y"},
	})
	require.Equal(t, "2 rule violations: a: x; b: y", many.Error())

	ext := many.Extensions()
	require.Equal(t, ErrorCode, ext["code"])
	violations := ext["violations"].([]map[string]any)
	require.Len(t, violations, 2)
	require.Equal(t, "a", violations[0]["path"])
	require.Equal(t, "x", violations[0]["message"])
}
