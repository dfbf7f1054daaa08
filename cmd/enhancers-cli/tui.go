package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/spf13/pflag"

	"github.com/goliatone/go-enhancers/pkg/combobox"
	"github.com/goliatone/go-enhancers/pkg/renderers/tui"
)

func runTUI(ctx context.Context, args []string, stdout io.Writer, logger *slog.Logger) error {
	var (
		catalogsPath string
		fromOpenAPI  bool
		ids          []string
	)
	flagSet := pflag.NewFlagSet("tui", pflag.ContinueOnError)
	flagSet.StringVarP(&catalogsPath, "catalogs", "c", "", "catalog file or directory")
	flagSet.BoolVar(&fromOpenAPI, "openapi", false, "read enum catalogs from an OpenAPI document")
	flagSet.StringSliceVar(&ids, "catalog", nil, "catalog ids to offer (default: all)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	store, err := loadCatalogs(ctx, catalogsPath, fromOpenAPI)
	if err != nil {
		return err
	}
	selected, err := selectCatalogs(store, ids)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return tui.ErrNoChoices
	}

	host := tui.New()
	results := make(map[string]string)
	if len(selected) == 1 {
		c := selected[0]
		value, err := host.Run(ctx, label(c.Label, c.ID), c.StaticSource())
		if err != nil {
			return err
		}
		results[c.ID] = value
	} else {
		labels := make([]string, len(selected))
		sources := make([]combobox.Source, len(selected))
		byLabel := make(map[string]string, len(selected))
		for idx, c := range selected {
			labels[idx] = label(c.Label, c.ID)
			sources[idx] = c.StaticSource()
			byLabel[labels[idx]] = c.ID
		}
		chosen, err := host.Session(ctx, labels, sources)
		if err != nil && !errors.Is(err, tui.ErrAborted) {
			return err
		}
		for title, value := range chosen {
			results[byLabel[title]] = value
		}
	}

	keys := make([]string, 0, len(results))
	for id := range results {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	for _, id := range keys {
		fmt.Fprintf(stdout, "%s=%s\n", id, results[id])
	}
	logger.Debug("tui session finished", slog.Int("fields", len(results)))
	return nil
}

func label(text, fallback string) string {
	if text != "" {
		return text
	}
	return fallback
}
