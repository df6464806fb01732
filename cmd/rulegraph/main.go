package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hanpama/rulegraph/internal/eventbus"
	"github.com/hanpama/rulegraph/internal/executor"
	"github.com/hanpama/rulegraph/internal/introspection"
	"github.com/hanpama/rulegraph/internal/language"
	"github.com/hanpama/rulegraph/internal/otel"
	"github.com/hanpama/rulegraph/internal/rules"
	"github.com/hanpama/rulegraph/internal/schema"
	"github.com/hanpama/rulegraph/internal/server"
)

const rootUsage = `rulegraph — GraphQL schema rule validation & tools

USAGE:
  rulegraph <command> [flags]

COMMANDS:
  check            Compile rule declarations in an SDL schema and report errors
  serve            Run an HTTP GraphQL endpoint with rule validation enabled
  help             Show help for any command
`

const checkUsage = `check FLAGS:
  -schema <file>    GraphQL SDL schema file (required; repeatable)
  (Exits non-zero when any rule declaration is malformed)
`

const serveUsage = `serve FLAGS:
  -schema <file>            GraphQL SDL schema file (required; repeatable)
  -addr <addr>              HTTP listen address (default: :8080)
  -pretty                   Pretty-print JSON responses
  -timeout <duration>       Per-request timeout, e.g. 10s (default: 10s)
  -introspection            Enable __schema/__type introspection (default: true)
  -otel.endpoint <addr>     OTLP collector endpoint
  -otel.service <name>      OpenTelemetry service name (default: rulegraph)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("rulegraph", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "check":
		return cmdCheck(cmdArgs)
	case "serve":
		return cmdServe(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "check":
		fmt.Print(checkUsage)
	case "serve":
		fmt.Print(serveUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func loadAndCompile(schemaFiles []string) (*schema.Schema, *rules.Compiled, error) {
	var sources []*language.Source
	for _, path := range schemaFiles {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("read schema: %w", err)
		}
		sources = append(sources, language.NewSource(path, string(data)))
	}

	sch, err := schema.BuildFromSDL(sources...)
	if err != nil {
		return nil, nil, fmt.Errorf("build schema: %w", err)
	}

	compiler := rules.NewCompiler(sch)
	if err := rules.RegisterBuiltins(compiler); err != nil {
		return nil, nil, err
	}
	compiled, err := compiler.Compile()
	if err != nil {
		return nil, nil, err
	}
	return sch, compiled, nil
}

func cmdCheck(args []string) error {
	var schemaFiles stringListFlag

	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.Var(&schemaFiles, "schema", "GraphQL SDL schema file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, checkUsage)
		return err
	}
	if len(schemaFiles) == 0 {
		fmt.Fprint(os.Stderr, checkUsage)
		return fmt.Errorf("-schema is required")
	}

	_, _, err := loadAndCompile(schemaFiles)
	var cerr *rules.ConfigError
	if errors.As(err, &cerr) {
		return fmt.Errorf("rule configuration error: %s", cerr.Error())
	}
	if err != nil {
		return err
	}
	fmt.Println("ok")
	return nil
}

func cmdServe(args []string) error {
	addr := ":8080"
	pretty := false
	enableIntrospection := true
	timeout := 10 * time.Second
	otelEndpoint := ""
	otelService := "rulegraph"
	var schemaFiles stringListFlag

	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.Var(&schemaFiles, "schema", "GraphQL SDL schema file")
	fs.StringVar(&addr, "addr", addr, "HTTP listen address")
	fs.BoolVar(&pretty, "pretty", pretty, "Pretty-print JSON responses")
	fs.BoolVar(&enableIntrospection, "introspection", enableIntrospection, "Enable __schema/__type introspection")
	fs.DurationVar(&timeout, "timeout", timeout, "Per-request timeout")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, serveUsage)
		return err
	}
	if len(schemaFiles) == 0 {
		fmt.Fprint(os.Stderr, serveUsage)
		return fmt.Errorf("-schema is required")
	}

	sch, compiled, err := loadAndCompile(schemaFiles)
	if err != nil {
		return err
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	// The dry-run runtime echoes field arguments, which is enough to observe
	// validation behavior without wiring real resolvers.
	runtime := rules.Wrap(executor.NewResolverMap(), compiled)
	if enableIntrospection {
		wrapper := introspection.Wrap(runtime, sch)
		runtime = wrapper.Runtime
		sch = wrapper.Schema
	}

	var sopts []server.Option
	if pretty {
		sopts = append(sopts, server.WithPretty())
	}
	if timeout > 0 {
		sopts = append(sopts, server.WithTimeout(timeout))
	}
	h := server.New(runtime, sch, sopts...)

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)

	log.Printf("GraphQL server listening on %s", addr)
	return http.ListenAndServe(addr, mux)
}
