package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isotower/pkg/cache"
	"github.com/matzehuels/isotower/pkg/core/scene"
	"github.com/matzehuels/isotower/pkg/diagram"
	"github.com/matzehuels/isotower/pkg/observability"
)

// Runner renders configs through a cache.
//
// The Runner holds no per-render state, so multiple goroutines can share
// one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Render validates cfg and renders every requested format, serving what it
// can from the cache. Structural config errors and option errors are
// returned before anything is rendered. Cache failures are logged and
// otherwise ignored.
func (r *Runner) Render(ctx context.Context, cfg *diagram.Config, opts Options) (res *Result, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	cfg = opts.Apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hash := cfg.Hash()
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, hash, opts.Formats)
	start := time.Now()
	defer func() {
		hooks.OnRenderComplete(ctx, hash, opts.Formats, time.Since(start), err)
	}()

	res = &Result{
		ConfigHash: hash,
		Artifacts:  make(map[string][]byte, len(opts.Formats)),
		Keys:       make(map[string]string, len(opts.Formats)),
	}

	composeStart := time.Now()
	s, err := scene.Compose(cfg, scene.WithLogger(opts.Logger))
	if err != nil {
		return nil, err
	}
	res.Stats = sceneStats(s)
	res.Stats.ComposeTime = time.Since(composeStart)
	reportSkips(ctx, hash, s)

	renderStart := time.Now()
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.renderCached(ctx, cfg, key, format, opts)
		if err != nil {
			return nil, err
		}
		res.Artifacts[format] = data
		res.Keys[format] = key
		if hit {
			res.CacheInfo.Hits = append(res.CacheInfo.Hits, format)
		} else {
			res.CacheInfo.Misses = append(res.CacheInfo.Misses, format)
		}
	}
	res.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered diagram",
		"config", hash[:12],
		"formats", opts.Formats,
		"cached", len(res.CacheInfo.Hits),
		"skipped", res.Stats.Skipped,
		"duration", time.Since(start))
	return res, nil
}

func (r *Runner) renderCached(ctx context.Context, cfg *diagram.Config, key, format string, opts Options) ([]byte, bool, error) {
	hooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.Logger.Warn("cache read failed", "format", format, "error", err)
		case hit:
			hooks.OnCacheHit(ctx, format)
			r.Logger.Debug("cache hit", "format", format)
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, format)
	}

	data, err := RenderFormat(cfg, format, opts)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "error", err)
	} else {
		hooks.OnCacheSet(ctx, format, len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func sceneStats(s *scene.Scene) Stats {
	st := Stats{Tiers: len(s.Tiers), Nodes: s.NodeCount(), Skipped: len(s.Skipped), Fits: s.Fits()}
	for _, t := range s.Tiers {
		st.Pillars += len(t.Pillars)
	}
	return st
}

func reportSkips(ctx context.Context, hash string, s *scene.Scene) {
	counts := map[string]int{}
	for _, sk := range s.Skipped {
		counts[sk.Kind]++
	}
	for _, kind := range []string{"node", "pillar"} {
		if n := counts[kind]; n > 0 {
			observability.Render().OnSkipped(ctx, hash, kind, n)
		}
	}
}
