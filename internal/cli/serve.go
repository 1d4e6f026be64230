package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/isotower/pkg/cache"
	"github.com/matzehuels/isotower/pkg/pipeline"
	"github.com/matzehuels/isotower/pkg/server"
)

// serveOpts holds the flags of the serve command. Each falls back to an
// ISOTOWER_* environment variable.
type serveOpts struct {
	addr     string
	redisURL string
	mongoURI string
	mongoDB  string
	origin   string
	maxBody  int64
	noCache  bool
}

const serverKeyPrefix = "isotower:server:"

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:     envOr("ISOTOWER_ADDR", server.DefaultAddr),
		redisURL: os.Getenv("ISOTOWER_REDIS_URL"),
		mongoURI: os.Getenv("ISOTOWER_MONGO_URI"),
		mongoDB:  envOr("ISOTOWER_MONGO_DB", appName),
		origin:   envOr("ISOTOWER_CORS_ORIGIN", "*"),
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Run an HTTP service that renders configs posted to /render.

Artifacts are cached in Redis when --redis is set, otherwise in MongoDB when
--mongo is set, otherwise in the local cache directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address [ISOTOWER_ADDR]")
	cmd.Flags().StringVar(&opts.redisURL, "redis", opts.redisURL, "redis URL for the shared cache [ISOTOWER_REDIS_URL]")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", opts.mongoURI, "mongodb URI for the shared cache [ISOTOWER_MONGO_URI]")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", opts.mongoDB, "mongodb database [ISOTOWER_MONGO_DB]")
	cmd.Flags().StringVar(&opts.origin, "cors-origin", opts.origin, "Access-Control-Allow-Origin [ISOTOWER_CORS_ORIGIN]")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", server.DefaultMaxBody, "maximum request body in bytes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cc, keyer, err := c.serverCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cc, keyer, c.Logger)
	defer runner.Close()

	srv := server.New(runner,
		server.WithLogger(c.Logger),
		server.WithAllowedOrigin(opts.origin),
		server.WithMaxBody(opts.maxBody),
	)
	printInfo("Serving on %s %s", opts.addr, StyleDim.Render("(ctrl+c to stop)"))
	return srv.ListenAndServe(ctx, opts.addr)
}

// serverCache picks the cache backend. Shared backends get scoped keys so
// they can hold other tenants' data too.
func (c *CLI) serverCache(ctx context.Context, opts serveOpts) (cache.Cache, cache.Keyer, error) {
	scoped := cache.NewScopedKeyer(nil, serverKeyPrefix)
	switch {
	case opts.noCache:
		c.Logger.Info("artifact cache disabled")
		return cache.NewNullCache(), nil, nil
	case opts.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, opts.redisURL)
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Info("caching artifacts in redis")
		return rc, scoped, nil
	case opts.mongoURI != "":
		mc, err := cache.NewMongoCache(ctx, opts.mongoURI, opts.mongoDB, "")
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Info("caching artifacts in mongodb", "database", opts.mongoDB)
		return mc, scoped, nil
	default:
		fc, err := c.newCache(false)
		if err != nil {
			return nil, nil, err
		}
		c.Logger.Info("caching artifacts locally")
		return fc, nil, nil
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
