// generate-catalogs converts the request-body enums of an OpenAPI document
// into a catalog YAML file that the CLI and the HTTP component can load.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-enhancers/pkg/catalog"
)

type catalogFile struct {
	Catalogs map[string]catalog.Catalog `yaml:"catalogs"`
}

func main() {
	var (
		schemaPath = pflag.String("schema", "", "OpenAPI document path")
		outputPath = pflag.String("output", "catalogs.yaml", "output path for the catalog file")
	)
	pflag.Parse()

	if err := run(context.Background(), *schemaPath, *outputPath); err != nil {
		fmt.Fprintf(os.Stderr, "generate-catalogs: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, schemaPath, outputPath string) error {
	if schemaPath == "" {
		return fmt.Errorf("--schema is required")
	}
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return err
	}
	store, err := catalog.FromOpenAPI(ctx, data)
	if err != nil {
		return err
	}

	out := catalogFile{Catalogs: make(map[string]catalog.Catalog)}
	for _, c := range store.All() {
		out.Catalogs[c.ID] = c
	}
	payload, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, payload, 0o644); err != nil {
		return err
	}
	fmt.Printf("%d catalogs written to %s\n", len(out.Catalogs), outputPath)
	return nil
}
