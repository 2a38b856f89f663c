package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/archscope/archscope/internal/api"
	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/pipeline"
	"github.com/archscope/archscope/pkg/store"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	storeKind string // report store backend: memory or mongo
	mongoURI  string // MongoDB connection string
	cacheKind string // cache backend: file, redis, or none
	redisAddr string // Redis address for the redis cache
}

// newServeCmd creates the serve command.
// It exposes the analysis pipeline over HTTP with a pluggable report
// store and cache backend.
func newServeCmd() *cobra.Command {
	opts := serveOpts{
		addr:      ":8080",
		storeKind: "memory",
		cacheKind: "file",
		mongoURI:  "mongodb://localhost:27017",
		redisAddr: "localhost:6379",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis pipeline over HTTP",
		Long: `Serve starts an HTTP server exposing the analysis pipeline.

Endpoints:
  POST   /api/analyze       Run an analysis (body: {"root": "..."})
  GET    /api/reports       List archived reports
  GET    /api/reports/{id}  Fetch a report
  DELETE /api/reports/{id}  Delete a report
  GET    /healthz           Health check

Examples:
  archscope serve
  archscope serve --addr :9000 --cache redis --redis-addr localhost:6379
  archscope serve --store mongo --mongo-uri mongodb://localhost:27017`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.storeKind, "store", opts.storeKind, "report store backend (memory, mongo)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", opts.mongoURI, "MongoDB connection string")
	cmd.Flags().StringVar(&opts.cacheKind, "cache", opts.cacheKind, "cache backend (file, redis, none)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "Redis address")

	return cmd
}

func runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := serveCache(ctx, opts)
	if err != nil {
		return fmt.Errorf("cache backend: %w", err)
	}

	st, err := serveStore(ctx, opts)
	if err != nil {
		_ = c.Close()
		return fmt.Errorf("store backend: %w", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	runner := pipeline.NewRunner(c, nil, logger)
	defer func() { _ = runner.Close() }()

	server := &http.Server{
		Addr:              opts.addr,
		Handler:           api.NewServer(runner, st, logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	printInfo("Listening on %s", opts.addr)
	printDetail("store: %s · cache: %s", opts.storeKind, opts.cacheKind)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	}
}

// serveCache builds the cache backend selected by --cache.
func serveCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch opts.cacheKind {
	case "none":
		return cache.NewNullCache(), nil
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, err
		}
		return cache.NewFileCache(dir)
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: opts.redisAddr})
	default:
		return nil, fmt.Errorf("unknown cache backend %q (available: file, redis, none)", opts.cacheKind)
	}
}

// serveStore builds the report store selected by --store.
func serveStore(ctx context.Context, opts serveOpts) (store.Store, error) {
	switch opts.storeKind {
	case "memory":
		return store.NewMemoryStore(), nil
	case "mongo":
		return store.NewMongoStore(ctx, store.MongoConfig{URI: opts.mongoURI})
	default:
		return nil, fmt.Errorf("unknown store backend %q (available: memory, mongo)", opts.storeKind)
	}
}
