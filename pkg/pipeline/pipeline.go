// Package pipeline renders diagram configs into artifacts with caching.
//
// The CLI, the HTTP service and the terminal preview all go through a
// [Runner], so every entry point validates options, keys the cache and
// reports hooks the same way:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Render(ctx, cfg, pipeline.Options{Formats: []string{"svg", "json"}})
//	if err != nil {
//	    return err
//	}
//	svg := res.Artifacts["svg"]
//
// Formats:
//
//   - svg: static steady-state document
//   - live: interactive document (transitions and pointer hooks) in its
//     settled state
//   - json: config, composed scene and bounds
//   - dot: Graphviz source of the tier/node overview
//   - graph: the overview laid out by Graphviz as SVG
//   - png, pdf: the static document converted by rsvg-convert
package pipeline

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isotower/pkg/cache"
	"github.com/matzehuels/isotower/pkg/diagram"
	"github.com/matzehuels/isotower/pkg/errors"
)

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatLive  = "live"
	FormatJSON  = "json"
	FormatDOT   = "dot"
	FormatGraph = "graph"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
)

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// MaxScale bounds the PNG scale factor.
	MaxScale = 8.0
)

// AllFormats lists every supported format in a stable order.
var AllFormats = []string{FormatSVG, FormatLive, FormatJSON, FormatDOT, FormatGraph, FormatPNG, FormatPDF}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatLive:  true,
	FormatJSON:  true,
	FormatDOT:   true,
	FormatGraph: true,
	FormatPNG:   true,
	FormatPDF:   true,
}

// Extension returns the file extension written for format.
func Extension(format string) string {
	switch format {
	case FormatLive:
		return ".live.svg"
	case FormatGraph:
		return ".graph.svg"
	default:
		return "." + format
	}
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatLive, FormatGraph:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Options configures one render.
type Options struct {
	Formats []string `json:"formats,omitempty"`

	// Theme overrides the config's theme when set.
	Theme string `json:"theme,omitempty"`

	NoGrid   bool    `json:"no_grid,omitempty"`
	NoLabels bool    `json:"no_labels,omitempty"`
	Detailed bool    `json:"detailed,omitempty"` // size and position in dot/graph labels
	Ops      bool    `json:"ops,omitempty"`      // include draw ops in json
	Scale    float64 `json:"scale,omitempty"`    // png only

	// Refresh skips cache reads; fresh artifacts are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of one render.
type Result struct {
	// ConfigHash is the digest of the effective config (after overrides).
	ConfigHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Keys holds the cache key of each artifact. It changes with every
	// option that changes the bytes.
	Keys map[string]string

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats describes the composed scene and timings.
type Stats struct {
	Tiers       int
	Nodes       int
	Pillars     int
	Skipped     int
	Fits        bool
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo lists which formats were served from the cache.
type CacheInfo struct {
	Hits   []string
	Misses []string
}

// AllHit reports whether every artifact came from the cache.
func (c CacheInfo) AllHit() bool { return len(c.Misses) == 0 && len(c.Hits) > 0 }

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(AllFormats, ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Theme != "" {
		t, ok := diagram.ParseTheme(o.Theme)
		if !ok {
			return errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (want dark or light)", o.Theme)
		}
		o.Theme = string(t)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if math.IsNaN(o.Scale) || o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %g], got %g", MaxScale, o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Apply returns cfg with the option overrides applied. cfg is not modified.
func (o *Options) Apply(cfg *diagram.Config) *diagram.Config {
	if o.Theme == "" || cfg == nil || cfg.Theme == diagram.Theme(o.Theme) {
		return cfg
	}
	c := *cfg
	c.Theme = diagram.Theme(o.Theme)
	return &c
}

// ArtifactKeyOpts returns cache key options for one format. Options that
// do not affect a format are left out of its key.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatLive, FormatPDF:
		k.Grid, k.Labels = !o.NoGrid, !o.NoLabels
	case FormatPNG:
		k.Grid, k.Labels, k.Scale = !o.NoGrid, !o.NoLabels, o.Scale
	case FormatDOT, FormatGraph:
		k.Detailed = o.Detailed
	case FormatJSON:
		k.Ops = o.Ops
	}
	return k
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
