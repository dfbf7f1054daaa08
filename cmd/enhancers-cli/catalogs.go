package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-enhancers/pkg/catalog"
)

// loadCatalogs reads a catalog file, a directory of catalog files, or an
// OpenAPI document when fromOpenAPI is set.
func loadCatalogs(ctx context.Context, path string, fromOpenAPI bool) (*catalog.Store, error) {
	if path == "" {
		return nil, fmt.Errorf("missing --catalogs path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		if fromOpenAPI {
			return nil, fmt.Errorf("--openapi expects a file, %s is a directory", path)
		}
		return catalog.LoadFS(os.DirFS(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if fromOpenAPI {
		return catalog.FromOpenAPI(ctx, data)
	}
	return catalog.Parse(data, path)
}

// selectCatalogs narrows store to ids, keeping store order when ids is empty.
func selectCatalogs(store *catalog.Store, ids []string) ([]catalog.Catalog, error) {
	if len(ids) == 0 {
		return store.All(), nil
	}
	out := make([]catalog.Catalog, 0, len(ids))
	for _, id := range ids {
		c, err := store.Lookup(id)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
