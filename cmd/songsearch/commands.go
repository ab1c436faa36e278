package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v3"
	"songsearch/internal/cache"
	"songsearch/internal/config"
	"songsearch/internal/handlers"
	"songsearch/internal/logging"
	"songsearch/internal/search"
	"songsearch/internal/services"
)

const shutdownTimeout = 10 * time.Second

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Start the HTTP API",
		Action: runServe,
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Run one search and print the JSON result",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "term",
				Aliases:  []string{"t"},
				Usage:    "Search term",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "album",
				Usage: "Only keep songs from this album",
			},
			&cli.StringFlag{
				Name:  "genre",
				Usage: "Only keep songs whose genres contain this value",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
			},
		},
		Action: runSearch,
	}
}

// app is everything a command needs once configuration is loaded
type app struct {
	cfg    *config.Config
	cache  cache.Cache
	engine *search.Engine
}

// setup loads configuration, installs the default logger and builds the engine
func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.SetDefault(logging.New(cfg.LogFormat, cfg.LogLevel, os.Stderr))

	responseCache, err := cache.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	providers, err := services.NewProviders(cfg, services.Options{})
	if err != nil {
		_ = responseCache.Close()
		return nil, fmt.Errorf("failed to initialize providers: %w", err)
	}

	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	slog.Info("Search engine ready", "providers", names, "cache_backend", cfg.CacheBackend, "cache_ttl", cfg.CacheTTL)

	return &app{
		cfg:    cfg,
		cache:  responseCache,
		engine: search.NewEngine(services.NewAggregator(providers), responseCache, cfg.CacheTTL),
	}, nil
}

func runServe(ctx context.Context, _ *cli.Command) error {
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.engine.Close()
	cfg := a.cfg

	gin.SetMode(cfg.GinMode)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(a.engine, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go cache.RunJanitor(ctx, a.cache, cfg.CacheCleanupInterval)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.Port, "auth_enabled", cfg.AuthEnabled)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func runSearch(ctx context.Context, cmd *cli.Command) error {
	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.engine.Close()

	req := search.SearchRequest{Term: cmd.String("term")}
	if cmd.IsSet("album") {
		album := cmd.String("album")
		req.Album = &album
	}
	if cmd.IsSet("genre") {
		genre := cmd.String("genre")
		req.Genre = &genre
	}

	payload, err := a.engine.Search(ctx, req)
	if err != nil {
		return err
	}

	if cmd.Bool("pretty") {
		var out bytes.Buffer
		if err := json.Indent(&out, payload, "", "  "); err != nil {
			return fmt.Errorf("failed to format results: %w", err)
		}
		payload = out.Bytes()
	}

	_, err = fmt.Fprintln(os.Stdout, string(payload))
	return err
}
