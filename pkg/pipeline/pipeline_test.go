package pipeline

import (
	"bytes"
	"context"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/isotower/pkg/cache"
	"github.com/matzehuels/isotower/pkg/diagram"
	"github.com/matzehuels/isotower/pkg/errors"
	isoio "github.com/matzehuels/isotower/pkg/io"
	"github.com/matzehuels/isotower/pkg/observability"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"live", false},
		{"json", false},
		{"dot", false},
		{"graph", false},
		{"png", false},
		{"pdf", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %g, want %g", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Formats: []string{"svg", "gif"}}, errors.ErrCodeInvalidFormat},
		{"bad theme", Options{Theme: "sepia"}, errors.ErrCodeInvalidTheme},
		{"negative scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
		{"huge scale", Options{Scale: 100}, errors.ErrCodeInvalidInput},
		{"nan scale", Options{Scale: math.NaN()}, errors.ErrCodeInvalidInput},
		{"infinite scale", Options{Scale: math.Inf(1)}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsNormalizeFormats(t *testing.T) {
	opts := Options{Formats: []string{" SVG", "json", "svg"}, Theme: "LIGHT"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if strings.Join(opts.Formats, ",") != "svg,json" {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Theme != "light" {
		t.Errorf("Theme = %q", opts.Theme)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"svg", "dot"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	before := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if strings.Join(before.Formats, ",") != strings.Join(opts.Formats, ",") || before.Scale != opts.Scale {
		t.Error("second call changed options")
	}
}

func TestApplyThemeOverride(t *testing.T) {
	cfg := diagram.Sample()
	opts := Options{Theme: "light"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	got := opts.Apply(cfg)
	if got.Theme != diagram.ThemeLight {
		t.Errorf("Theme = %q, want light", got.Theme)
	}
	if cfg.Theme == diagram.ThemeLight {
		t.Error("Apply modified its input")
	}
	if got.Hash() == cfg.Hash() {
		t.Error("override should change the effective hash")
	}

	none := Options{}
	if none.Apply(cfg) != cfg {
		t.Error("no override should return the input")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{NoGrid: true, Detailed: true, Ops: true, Scale: 3}
	if k := opts.ArtifactKeyOpts(FormatSVG); k.Grid || !k.Labels || k.Detailed || k.Scale != 0 {
		t.Errorf("svg key opts = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); k.Scale != 3 {
		t.Errorf("png key opts = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatDOT); !k.Detailed || k.Grid {
		t.Errorf("dot key opts = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatJSON); !k.Ops {
		t.Errorf("json key opts = %+v", k)
	}
}

func TestExtensionAndContentType(t *testing.T) {
	for _, f := range AllFormats {
		if !strings.HasPrefix(Extension(f), ".") {
			t.Errorf("Extension(%q) = %q", f, Extension(f))
		}
		if ContentType(f) == "application/octet-stream" {
			t.Errorf("ContentType(%q) not mapped", f)
		}
	}
	if Extension(FormatLive) == Extension(FormatSVG) {
		t.Error("live and svg should not share an extension")
	}
}

func TestRenderFormats(t *testing.T) {
	cfg := diagram.Sample()
	tests := []struct {
		format string
		want   string
	}{
		{FormatSVG, `class="iso-diagram"`},
		{FormatLive, `data-step=`},
		{FormatJSON, `"scene"`},
		{FormatDOT, "digraph G {"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			data, err := RenderFormat(cfg, tt.format, Options{})
			if err != nil {
				t.Fatalf("RenderFormat: %v", err)
			}
			if !bytes.Contains(data, []byte(tt.want)) {
				t.Errorf("%s output missing %q", tt.format, tt.want)
			}
		})
	}
}

func TestRenderLiveIsSettled(t *testing.T) {
	data, err := RenderFormat(diagram.Sample(), FormatLive, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte(`class="iso-tier entering"`)) {
		t.Error("live artifact should be in its settled state")
	}
}

func TestRunnerCaches(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()
	cfg := diagram.Sample()
	opts := Options{Formats: []string{"svg", "json"}}

	first, err := r.Render(ctx, cfg, opts)
	if err != nil {
		t.Fatalf("first Render: %v", err)
	}
	if len(first.CacheInfo.Hits) != 0 || len(first.CacheInfo.Misses) != 2 {
		t.Errorf("first CacheInfo = %+v", first.CacheInfo)
	}
	if first.ConfigHash != cfg.Hash() {
		t.Error("ConfigHash should match the config")
	}
	if first.Stats.Tiers != 2 || first.Stats.Nodes != 4 || first.Stats.Pillars != 1 {
		t.Errorf("Stats = %+v", first.Stats)
	}

	second, err := r.Render(ctx, cfg, opts)
	if err != nil {
		t.Fatalf("second Render: %v", err)
	}
	if !second.CacheInfo.AllHit() {
		t.Errorf("second CacheInfo = %+v, want all hits", second.CacheInfo)
	}
	for f, data := range first.Artifacts {
		if !bytes.Equal(data, second.Artifacts[f]) {
			t.Errorf("%s differs between fresh and cached render", f)
		}
	}

	refreshed, err := r.Render(ctx, cfg, Options{Formats: []string{"svg", "json"}, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(refreshed.CacheInfo.Hits) != 0 {
		t.Errorf("Refresh should bypass reads, got %+v", refreshed.CacheInfo)
	}

	noGrid, err := r.Render(ctx, cfg, Options{NoGrid: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(noGrid.CacheInfo.Hits) != 0 {
		t.Error("different options must not share cache entries")
	}
}

func TestRunnerKeepsNonFiniteConfigsApart(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()

	const base = `cornerRadius = nan
[canvas]
width = 800
height = 600
[floorSize]
width = 300
depth = 200
[[tiers]]
name = "Data"
elevation = 0
`
	a, err := isoio.Parse([]byte(base+"[[nodes]]\ntier = 0\nwidth = 40\ndepth = 40\nheight = 20\n"), isoio.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	b, err := isoio.Parse([]byte(base+"[[nodes]]\ntier = 0\nx = 120\nwidth = 60\ndepth = 30\nheight = 50\n"), isoio.FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	if a.Hash() == b.Hash() {
		t.Fatal("distinct configs share a hash")
	}

	opts := Options{Formats: []string{"svg", "json"}}
	if _, err := r.Render(ctx, a, opts); err != nil {
		t.Fatalf("Render(a): %v", err)
	}
	res, err := r.Render(ctx, b, opts)
	if err != nil {
		t.Fatalf("Render(b): %v", err)
	}
	if len(res.CacheInfo.Hits) != 0 {
		t.Errorf("b was served from a's cache entries: %+v", res.CacheInfo)
	}
	direct, err := RenderFormat(b, "svg", opts)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(res.Artifacts["svg"], direct) {
		t.Error("cached render of b differs from a direct render")
	}
}

func TestRunnerRejectsInvalidConfig(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	cfg := diagram.Sample()
	cfg.Tiers = nil
	_, err := r.Render(context.Background(), cfg, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("err = %v, want INVALID_CONFIG", err)
	}

	_, err = r.Render(context.Background(), nil, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("nil config err = %v", err)
	}
}

func TestRunnerReportsHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()
	rh := &countingRenderHooks{}
	ch := &countingCacheHooks{}
	observability.SetRenderHooks(rh)
	observability.SetCacheHooks(ch)

	cfg := diagram.Sample()
	cfg.Nodes = append(cfg.Nodes, diagram.Node{Tier: 9, Width: 10, Depth: 10, Height: 10})
	r := NewRunner(nil, nil, nil)
	if _, err := r.Render(context.Background(), cfg, Options{Formats: []string{"svg", "dot"}}); err != nil {
		t.Fatal(err)
	}

	rh.mu.Lock()
	defer rh.mu.Unlock()
	if rh.starts != 1 || rh.completes != 1 || rh.lastErr != nil {
		t.Errorf("render hooks = %+v", rh)
	}
	if rh.skipped["node"] != 1 {
		t.Errorf("skipped = %v, want one node", rh.skipped)
	}
	// NullCache accepts writes, so sets are reported too.
	if ch.misses != 2 || ch.sets != 2 {
		t.Errorf("cache hooks: misses %d sets %d", ch.misses, ch.sets)
	}
}

type countingRenderHooks struct {
	observability.NoopRenderHooks
	mu        sync.Mutex
	starts    int
	completes int
	lastErr   error
	skipped   map[string]int
}

func (h *countingRenderHooks) OnRenderStart(context.Context, string, []string) {
	h.mu.Lock()
	h.starts++
	h.mu.Unlock()
}

func (h *countingRenderHooks) OnRenderComplete(_ context.Context, _ string, _ []string, _ time.Duration, err error) {
	h.mu.Lock()
	h.completes++
	h.lastErr = err
	h.mu.Unlock()
}

func (h *countingRenderHooks) OnSkipped(_ context.Context, _ string, kind string, n int) {
	h.mu.Lock()
	if h.skipped == nil {
		h.skipped = map[string]int{}
	}
	h.skipped[kind] += n
	h.mu.Unlock()
}

type countingCacheHooks struct {
	observability.NoopCacheHooks
	misses, sets int
}

func (h *countingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *countingCacheHooks) OnCacheSet(context.Context, string, int) { h.sets++ }
