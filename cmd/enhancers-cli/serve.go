package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-enhancers/components/searchselect"
)

func runServe(ctx context.Context, args []string, _ io.Writer, logger *slog.Logger) error {
	var (
		catalogsPath string
		fromOpenAPI  bool
		addr         string
		basePath     string
		routePath    string
		title        string
		flash        string
		maxSessions  int
	)
	flagSet := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flagSet.StringVarP(&catalogsPath, "catalogs", "c", "", "catalog file or directory")
	flagSet.BoolVar(&fromOpenAPI, "openapi", false, "read enum catalogs from an OpenAPI document")
	flagSet.StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	flagSet.StringVar(&basePath, "base-path", "/", "path prefix for the component")
	flagSet.StringVar(&routePath, "route", "/enhancers", "component route under the base path")
	flagSet.StringVar(&title, "title", "Enhancers", "page title")
	flagSet.StringVar(&flash, "flash", "", "success message shown on each new page")
	flagSet.IntVar(&maxSessions, "max-sessions", 256, "sessions kept before the oldest is evicted")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	store, err := loadCatalogs(ctx, catalogsPath, fromOpenAPI)
	if err != nil {
		return err
	}

	component := searchselect.New(
		searchselect.WithCatalogs(store),
		searchselect.WithRoutePath(routePath),
		searchselect.WithTitle(title),
		searchselect.WithFlash(flash),
		searchselect.WithMaxSessions(maxSessions),
		searchselect.WithLogger(logger),
	)
	mux := http.NewServeMux()
	pattern, err := component.RegisterRoutes(mux, basePath)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           gzhttp.GzipHandler(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()
	logger.Info("serving enhancers", slog.String("addr", addr), slog.String("path", pattern))

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	}
}
