package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	eventbus "github.com/hanpama/rulegraph/internal/eventbus"
	events "github.com/hanpama/rulegraph/internal/events"
	executor "github.com/hanpama/rulegraph/internal/executor"
	language "github.com/hanpama/rulegraph/internal/language"
	rules "github.com/hanpama/rulegraph/internal/rules"
	schema "github.com/hanpama/rulegraph/internal/schema"

	"github.com/stretchr/testify/require"
)

const testSDL = `
	type Query {
		greet(name: String @stringRule(minLength: 3)): String
	}
`

func newTestHandler(t *testing.T, opts ...Option) *Handler {
	t.Helper()
	sch, err := schema.BuildFromSDL(language.NewSource("test.graphql", testSDL))
	require.NoError(t, err)

	compiler := rules.NewCompiler(sch)
	require.NoError(t, rules.RegisterBuiltins(compiler))
	compiled, err := compiler.Compile()
	require.NoError(t, err)

	rt := executor.NewResolverMap().
		Field("Query", "greet", func(ctx context.Context, source any, args map[string]any) (any, error) {
			name, _ := args["name"].(string)
			return "hello " + name, nil
		})

	return New(rules.Wrap(rt, compiled), sch, opts...)
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_Query(t *testing.T) {
	h := newTestHandler(t)
	rec := postJSON(t, h, `{"query": "{ greet(name: \"ada\") }"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "hello ada", out.Data["greet"])
}

func TestServer_RuleViolationResponse(t *testing.T) {
	h := newTestHandler(t)
	rec := postJSON(t, h, `{"query": "{ greet(name: \"ab\") }"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Data   map[string]any `json:"data"`
		Errors []struct {
			Message    string         `json:"message"`
			Path       []any          `json:"path"`
			Extensions map[string]any `json:"extensions"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Errors, 1)

	e := out.Errors[0]
	require.Equal(t, "name: Value must be at least 3 characters in length", e.Message)
	require.Equal(t, []any{"greet"}, e.Path)
	require.Equal(t, rules.ErrorCode, e.Extensions["code"])

	violations := e.Extensions["violations"].([]any)
	require.Len(t, violations, 1)
	v := violations[0].(map[string]any)
	require.Equal(t, "name", v["path"])
}

func TestServer_MutationSideEffectsSkippedOnViolation(t *testing.T) {
	sch, err := schema.BuildFromSDL(language.NewSource("test.graphql", `
		type Query { ping: String }
		type Mutation {
			rename(name: String @stringRule(minLength: 3)): String
		}
	`))
	require.NoError(t, err)

	compiler := rules.NewCompiler(sch)
	require.NoError(t, rules.RegisterBuiltins(compiler))
	compiled, err := compiler.Compile()
	require.NoError(t, err)

	renamed := false
	rt := executor.NewResolverMap().
		Field("Mutation", "rename", func(ctx context.Context, source any, args map[string]any) (any, error) {
			renamed = true
			return args["name"], nil
		})
	h := New(rules.Wrap(rt, compiled), sch)

	rec := postJSON(t, h, `{"query": "mutation { rename(name: \"ab\") }"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, renamed, "resolver must not run when validation fails")
	require.Contains(t, rec.Body.String(), rules.ErrorCode)
}

func TestServer_PublishesRequestEvents(t *testing.T) {
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)

	var httpFinished []events.HTTPFinish
	var gqlFinished []events.GraphQLFinish
	defer eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
		httpFinished = append(httpFinished, e)
	})()
	defer eventbus.Subscribe(func(ctx context.Context, e events.GraphQLFinish) {
		gqlFinished = append(gqlFinished, e)
	})()

	h := newTestHandler(t)
	rec := postJSON(t, h, `{"query": "{ greet(name: \"ab\") }"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, httpFinished, 1)
	require.Equal(t, http.MethodPost, httpFinished[0].Method)
	require.Equal(t, "/graphql", httpFinished[0].Path)
	require.Equal(t, http.StatusOK, httpFinished[0].Status)

	require.Len(t, gqlFinished, 1)
	require.Equal(t, "query", gqlFinished[0].OperationType)
	require.Equal(t, 1, gqlFinished[0].ErrorCount)
}

func TestServer_GetRequest(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, `/graphql?query={greet(name:"ada")}`, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "hello ada")
}

func TestServer_Batch(t *testing.T) {
	h := newTestHandler(t)
	rec := postJSON(t, h, `[{"query": "{ greet(name: \"ada\") }"}, {"query": "{ greet(name: \"bob\") }"}]`)

	require.Equal(t, http.StatusOK, rec.Code)
	var out []struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 2)
	require.Equal(t, "hello ada", out[0].Data["greet"])
	require.Equal(t, "hello bob", out[1].Data["greet"])
}

func TestServer_BadRequests(t *testing.T) {
	h := newTestHandler(t)

	t.Run("invalid JSON", func(t *testing.T) {
		rec := postJSON(t, h, `{`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing query", func(t *testing.T) {
		rec := postJSON(t, h, `{"operationName": "X"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/graphql", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("unsupported content type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader("query { x }"))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestServer_BodyLimit(t *testing.T) {
	h := newTestHandler(t, WithMaxBodyBytes(16))
	var big bytes.Buffer
	big.WriteString(`{"query": "{ greet(name: \"aaaaaaaaaaaaaaaaaaaaaaaa\") }"}`)
	rec := postJSON(t, h, big.String())
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestServer_CORS(t *testing.T) {
	h := newTestHandler(t, WithCORS("https://app.example"))

	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query": "{ greet(name: \"ada\") }"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/graphql", nil)
	req.Header.Set("Origin", "https://other.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
