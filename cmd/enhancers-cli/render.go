package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/goliatone/go-enhancers"
	"github.com/goliatone/go-enhancers/pkg/catalog"
	"github.com/goliatone/go-enhancers/pkg/render/template/gotemplate"
)

const pageSkeleton = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ title }}</title>
  {% if stylesheet %}<style>{{ stylesheet|safe }}</style>{% endif %}
</head>
<body>
  <div id="toast-container" aria-live="polite"></div>
  <form>
{{ fields|safe }}
  </form>
</body>
</html>
`

func runRender(ctx context.Context, args []string, stdout io.Writer, logger *slog.Logger) error {
	var (
		catalogsPath string
		fromOpenAPI  bool
		ids          []string
		output       string
		title        string
		inlineCSS    bool
	)
	flagSet := pflag.NewFlagSet("render", pflag.ContinueOnError)
	flagSet.StringVarP(&catalogsPath, "catalogs", "c", "", "catalog file or directory")
	flagSet.BoolVar(&fromOpenAPI, "openapi", false, "read enum catalogs from an OpenAPI document")
	flagSet.StringSliceVar(&ids, "catalog", nil, "catalog ids to render (default: all)")
	flagSet.StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	flagSet.StringVar(&title, "title", "Enhancers", "page title")
	flagSet.BoolVar(&inlineCSS, "inline-css", true, "inline the widget stylesheet")
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

	page, err := renderPage(title, selected, inlineCSS)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := enhancers.EnhanceHTML(ctx, strings.NewReader(page), &out, enhancers.WithLogger(logger)); err != nil {
		return fmt.Errorf("enhance page: %w", err)
	}

	if output == "" {
		_, err := stdout.Write(out.Bytes())
		return err
	}
	if err := os.WriteFile(output, out.Bytes(), 0o644); err != nil {
		return err
	}
	logger.Info("page written", slog.String("output", output), slog.Int("controls", len(selected)))
	return nil
}

func renderPage(title string, catalogs []catalog.Catalog, inlineCSS bool) (string, error) {
	engine, err := gotemplate.New(gotemplate.WithFS(enhancers.EmbeddedTemplates()))
	if err != nil {
		return "", err
	}
	var fields bytes.Buffer
	for _, c := range catalogs {
		if err := c.Render(&fields); err != nil {
			return "", err
		}
		fields.WriteByte('\n')
	}
	stylesheet := ""
	if inlineCSS {
		css, err := fs.ReadFile(enhancers.AssetsFS(), "enhancers.css")
		if err != nil {
			return "", err
		}
		stylesheet = string(css)
	}
	return engine.RenderString(pageSkeleton, map[string]any{
		"title":      title,
		"fields":     fields.String(),
		"stylesheet": stylesheet,
	})
}
