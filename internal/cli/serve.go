package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/spacelayout/internal/api"
	"github.com/matzehuels/spacelayout/pkg/cache"
	"github.com/matzehuels/spacelayout/pkg/observability"
	"github.com/matzehuels/spacelayout/pkg/pipeline"
)

const (
	defaultAddr = ":8080"

	// cacheConnectTimeout bounds the initial ping of a shared cache.
	cacheConnectTimeout = 10 * time.Second
)

// serveOpts holds the server configuration. Every field has a
// SPACELAYOUT_-prefixed environment variable; flags win over the environment.
type serveOpts struct {
	addr      string
	redisURL  string
	mongoURI  string
	mongoDB   string
	keyPrefix string
	noCache   bool
	backend   backendFlags
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Layouts and artifacts are cached in Redis when a Redis URL is configured,
otherwise in MongoDB when a MongoDB URI is configured, otherwise in the
local cache directory. Analyses are forwarded to the backend when a backend
URL is configured.`,
		Example: `  spacelayout serve --addr :9000
  SPACELAYOUT_REDIS_URL=redis://localhost:6379/0 spacelayout serve
  spacelayout serve --mongo-uri mongodb://localhost:27017 --backend-url https://campus.example.edu`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", envOr("ADDR", defaultAddr), "listen address ($"+envPrefix+"ADDR)")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", envOr("REDIS_URL", ""), "Redis cache URL ($"+envPrefix+"REDIS_URL)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", envOr("MONGO_URI", ""), "MongoDB cache URI ($"+envPrefix+"MONGO_URI)")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", envOr("MONGO_DB", cache.DefaultMongoDatabase), "MongoDB database ($"+envPrefix+"MONGO_DB)")
	cmd.Flags().StringVar(&opts.keyPrefix, "key-prefix", envOr("KEY_PREFIX", ""), "prefix for shared cache keys ($"+envPrefix+"KEY_PREFIX)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	opts.backend.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	store, kind, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}

	var keyer cache.Keyer
	if opts.keyPrefix != "" {
		keyer = cache.NewScopedKeyer(nil, opts.keyPrefix)
	}

	runner := pipeline.NewRunner(store, keyer, c.Logger)
	defer runner.Close()
	if err := c.applyCatalog(runner); err != nil {
		return err
	}
	if client := opts.backend.client(); client != nil {
		runner.Backend = client
	}

	c.Logger.Info("starting server",
		"addr", opts.addr,
		"cache", kind,
		"backend", opts.backend.url != "")

	counters := observability.NewCounters()
	observability.Register(observability.LogHooks(c.Logger), counters.Hooks())

	return api.NewServer(runner, c.Logger).WithCounters(counters).ListenAndServe(ctx, opts.addr)
}

// serverCache picks the cache backend: redis, then mongo, then the file cache.
func (c *CLI) serverCache(ctx context.Context, opts serveOpts) (cache.Cache, string, error) {
	if opts.noCache {
		return cache.NewNullCache(), "none", nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, cacheConnectTimeout)
	defer cancel()

	switch {
	case opts.redisURL != "":
		rc, err := cache.NewRedisCache(connectCtx, opts.redisURL)
		if err != nil {
			return nil, "", fmt.Errorf("connect redis: %w", err)
		}
		return rc, "redis", nil
	case opts.mongoURI != "":
		mc, err := cache.NewMongoCache(connectCtx, opts.mongoURI, opts.mongoDB, "")
		if err != nil {
			return nil, "", fmt.Errorf("connect mongodb: %w", err)
		}
		return mc, "mongodb", nil
	}

	fc, err := newCache(false)
	if err != nil {
		return nil, "", err
	}
	return fc, "file", nil
}
