package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	schemaform "github.com/goliatone/go-schemaform"
	"github.com/goliatone/go-schemaform/internal/server"
	"github.com/goliatone/go-schemaform/pkg/openapi"
	"github.com/goliatone/go-schemaform/pkg/renderers/tui"
	"github.com/goliatone/go-schemaform/pkg/schema"
	"github.com/goliatone/go-schemaform/pkg/service"
	"github.com/goliatone/go-schemaform/pkg/session"
	"github.com/goliatone/go-schemaform/pkg/store"
)

func main() {
	mode := flag.String("mode", "fields", "one of: serve, fields, render, fill")
	source := flag.String("source", "schema.json", "JSON Schema document path (.json, .yaml, .yml)")
	component := flag.String("component", "", "treat source as an OpenAPI document and extract this component schema")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	switch *mode {
	case "serve":
		runServe()
	case "fields":
		runFields(ctx, *source, *component, *output)
	case "render":
		runRender(ctx, *source, *component, *output)
	case "fill":
		runFill(ctx, *source, *component, *output)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func runServe() {
	_ = godotenv.Load()

	cfg, err := server.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	st, err := store.OpenFile(cfg.DataDir, logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	srv, err := server.New(service.New(st), server.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to build server: %v", err)
	}

	logger.Info("server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func runFields(ctx context.Context, source, component, output string) {
	parsed := loadSchema(ctx, source, component)

	fields, err := schemaform.Fields(parsed)
	if err != nil {
		log.Fatalf("Failed to map fields: %v", err)
	}

	encoded, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode fields: %v", err)
	}
	writeOutput(output, append(encoded, '\n'))
}

func runRender(ctx context.Context, source, component, output string) {
	parsed := loadSchema(ctx, source, component)

	markup, err := schemaform.RenderHTML(ctx, parsed)
	if err != nil {
		log.Fatalf("Failed to render form: %v", err)
	}
	writeOutput(output, markup)
}

func runFill(ctx context.Context, source, component, output string) {
	parsed := loadSchema(ctx, source, component)

	svc := service.New(store.NewMemory())
	record, err := svc.CreateSchema(ctx, schemaName(source), parsed.Raw())
	if err != nil {
		log.Fatalf("Failed to register schema: %v", err)
	}

	sess, err := session.New(parsed)
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	values, err := tui.New().Fill(ctx, sess, svc.SubmitFunc(record.ID))
	if err != nil {
		log.Fatalf("Fill failed: %v", err)
	}

	encoded, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode values: %v", err)
	}
	writeOutput(output, append(encoded, '\n'))
}

func loadSchema(ctx context.Context, source, component string) schema.Schema {
	doc, err := schema.Load(ctx, sourceFor(source))
	if err != nil {
		log.Fatalf("Failed to load %s: %v", source, err)
	}

	if component != "" {
		parsed, err := openapi.ExtractParsed(ctx, doc.Raw(), component)
		if err != nil {
			log.Fatalf("Failed to extract component: %v", err)
		}
		return parsed
	}

	parsed, err := schema.ParseDocument(doc)
	if err != nil {
		log.Fatalf("Failed to parse %s: %v", doc.Location(), err)
	}
	return parsed
}

func sourceFor(location string) schema.Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return schema.SourceFromURL(location)
	}
	return schema.SourceFromFile(location)
}

func schemaName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeOutput(output string, data []byte) {
	if output == "" {
		fmt.Print(string(data))
		return
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		log.Fatalf("Failed to write output: %v", err)
	}
	fmt.Printf("Written to %s\n", output)
}
