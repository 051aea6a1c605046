package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hanpama/gqlcore"
	"github.com/hanpama/gqlcore/internal/eventbus"
	"github.com/hanpama/gqlcore/internal/logging"
	"github.com/hanpama/gqlcore/internal/otel"
	"github.com/hanpama/gqlcore/internal/resolver"
	"github.com/hanpama/gqlcore/internal/schema"
	"github.com/hanpama/gqlcore/internal/value"
)

const rootUsage = `gqlcore - GraphQL engine tools

USAGE:
  gqlcore <command> [flags]

COMMANDS:
  validate         Validate a query document against a schema
  exec             Execute a request against a schema and a root value
  print-schema     Print the schema in SDL, introspection types excluded
  help             Show help for any command
`

const validateUsage = `validate FLAGS:
  -schema <path>     Schema SDL file or directory of .graphql files (required)
  -query <file>      Query document (required)
  (Prints validation errors as JSON; exits non-zero when invalid)
`

const execUsage = `exec FLAGS:
  -schema <path>           Schema SDL file or directory of .graphql files (required)
  -request <file>          Request in YAML or JSON: query, operationName, variables, root
  -query <file>            Query document; overrides the request query
  -operation <name>        Operation name; overrides the request operationName
  -vars <json>             Variables as a JSON object; overrides the request variables
  -max-depth <n>           Reject operations nested deeper than n (default: 0, unlimited)
  -concurrency <n>         Max concurrent resolvers per async wave (default: 0, unlimited)
  -timeout <duration>      Execution timeout, e.g. 10s (default: 10s)
  -pretty                  Pretty-print the JSON response
  -log.level <level>       debug, info, warn or error (default: warn)
  -log.format <format>     text or json (default: text)
  -otel.endpoint <addr>    OTLP collector endpoint
  -otel.service <name>     OpenTelemetry service name (default: gqlcore)
`

const printSchemaUsage = `print-schema FLAGS:
  -schema <path>     Schema SDL file or directory of .graphql files (required)
  -out <file>        Write SDL to file (default: stdout)
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	global := flag.NewFlagSet("gqlcore", flag.ContinueOnError)
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
	case "validate":
		return cmdValidate(cmdArgs, stdout)
	case "exec":
		return cmdExec(cmdArgs, stdout)
	case "print-schema":
		return cmdPrintSchema(cmdArgs, stdout)
	case "help":
		return cmdHelp(cmdArgs, stdout)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, rootUsage)
		return nil
	}
	switch args[0] {
	case "validate":
		fmt.Fprint(stdout, validateUsage)
	case "exec":
		fmt.Fprint(stdout, execUsage)
	case "print-schema":
		fmt.Fprint(stdout, printSchemaUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

// loadSchema builds the schema from an SDL file or a directory of them.
func loadSchema(path string) (*gqlcore.Schema, error) {
	sources, err := schema.ReadSources(path)
	if err != nil {
		return nil, err
	}
	sch, err := schema.BuildFromSources(sources...)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	return sch, nil
}

func cmdValidate(args []string, stdout io.Writer) error {
	schemaFile := ""
	queryFile := ""
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "Schema SDL")
	fs.StringVar(&queryFile, "query", queryFile, "Query document")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, validateUsage)
		return err
	}
	if schemaFile == "" || queryFile == "" {
		fmt.Fprint(os.Stderr, validateUsage)
		return fmt.Errorf("-schema and -query are required")
	}

	sch, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	query, err := os.ReadFile(queryFile)
	if err != nil {
		return err
	}
	engine := gqlcore.NewEngine(sch)
	if _, err := engine.Validate(context.Background(), string(query)); err != nil {
		if werr := writeJSON(stdout, map[string]any{"errors": gqlcore.ResponseErrors(err)}, true); werr != nil {
			return werr
		}
		return fmt.Errorf("%s is invalid", queryFile)
	}
	fmt.Fprintln(stdout, "ok")
	return nil
}

// requestFile is the on-disk shape of an exec request. Variables and root
// stay YAML nodes so mapping order survives decoding.
type requestFile struct {
	Query         string    `yaml:"query"`
	OperationName string    `yaml:"operationName"`
	Variables     yaml.Node `yaml:"variables"`
	Root          yaml.Node `yaml:"root"`
}

func loadRequest(path string) (gqlcore.Request, error) {
	var req gqlcore.Request
	if path == "" {
		return req, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return req, err
	}
	var rf requestFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return req, fmt.Errorf("decode request: %w", err)
	}
	req.Query = rf.Query
	req.OperationName = rf.OperationName
	if rf.Variables.Kind != 0 {
		if req.Variables, err = value.VariablesFromNode(&rf.Variables); err != nil {
			return req, err
		}
	}
	if rf.Root.Kind != 0 {
		var root any
		if err := rf.Root.Decode(&root); err != nil {
			return req, fmt.Errorf("decode root: %w", err)
		}
		req.Root = root
	}
	return req, nil
}

func cmdExec(args []string, stdout io.Writer) error {
	schemaFile := ""
	requestPath := ""
	queryFile := ""
	operation := ""
	vars := ""
	maxDepth := 0
	concurrency := 0
	timeout := 10 * time.Second
	pretty := false
	logLevel := "warn"
	logFormat := "text"
	otelEndpoint := ""
	otelService := "gqlcore"

	fs := flag.NewFlagSet("exec", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "Schema SDL")
	fs.StringVar(&requestPath, "request", requestPath, "Request file")
	fs.StringVar(&queryFile, "query", queryFile, "Query document")
	fs.StringVar(&operation, "operation", operation, "Operation name")
	fs.StringVar(&vars, "vars", vars, "Variables as JSON")
	fs.IntVar(&maxDepth, "max-depth", maxDepth, "Maximum selection depth")
	fs.IntVar(&concurrency, "concurrency", concurrency, "Max concurrent resolvers per wave")
	fs.DurationVar(&timeout, "timeout", timeout, "Execution timeout")
	fs.BoolVar(&pretty, "pretty", pretty, "Pretty-print JSON")
	fs.StringVar(&logLevel, "log.level", logLevel, "Log level")
	fs.StringVar(&logFormat, "log.format", logFormat, "Log format")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, execUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, execUsage)
		return fmt.Errorf("-schema is required")
	}

	req, err := loadRequest(requestPath)
	if err != nil {
		return fmt.Errorf("load request: %w", err)
	}
	if queryFile != "" {
		query, err := os.ReadFile(queryFile)
		if err != nil {
			return err
		}
		req.Query = string(query)
	}
	if operation != "" {
		req.OperationName = operation
	}
	if vars != "" {
		if req.Variables, err = value.VariablesFromJSON([]byte(vars)); err != nil {
			return err
		}
	}
	if req.Query == "" {
		fmt.Fprint(os.Stderr, execUsage)
		return fmt.Errorf("a query is required, from -query or -request")
	}

	logger, err := logging.New(logging.Config{Level: logLevel, Format: logFormat})
	if err != nil {
		return err
	}
	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)
	defer logging.Attach(eventbus.Global(), logger)()

	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	sch, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	rt := resolver.New(sch, resolver.WithConcurrency(concurrency))
	engine := gqlcore.NewEngine(sch, gqlcore.WithRuntime(rt), gqlcore.WithMaxDepth(maxDepth))

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return writeJSON(stdout, engine.Do(ctx, req), pretty)
}

func cmdPrintSchema(args []string, stdout io.Writer) error {
	schemaFile := ""
	outFile := ""
	fs := flag.NewFlagSet("print-schema", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&schemaFile, "schema", schemaFile, "Schema SDL")
	fs.StringVar(&outFile, "out", outFile, "Write SDL to file")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, printSchemaUsage)
		return err
	}
	if schemaFile == "" {
		fmt.Fprint(os.Stderr, printSchemaUsage)
		return fmt.Errorf("-schema is required")
	}

	sch, err := loadSchema(schemaFile)
	if err != nil {
		return err
	}
	sdl := schema.Render(sch)
	if outFile == "" {
		fmt.Fprint(stdout, sdl)
		return nil
	}
	return os.WriteFile(outFile, []byte(sdl), 0644)
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
