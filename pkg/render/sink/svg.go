package sink

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isotower/pkg/core/scene"
	"github.com/matzehuels/isotower/pkg/diagram"
	"github.com/matzehuels/isotower/pkg/render/sceneview"
	"github.com/matzehuels/isotower/pkg/render/vector"
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	logger *log.Logger
	grid   bool
	labels bool
}

// WithLogger sets the logger used while composing.
func WithLogger(l *log.Logger) SVGOption { return func(r *svgRenderer) { r.logger = l } }

// WithGrid toggles the background grid (default on).
func WithGrid(on bool) SVGOption { return func(r *svgRenderer) { r.grid = on } }

// WithLabels toggles tier and node labels (default on).
func WithLabels(on bool) SVGOption { return func(r *svgRenderer) { r.labels = on } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		grid:   true,
		labels: true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if r.logger == nil {
		r.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return r
}

// RenderSVG renders cfg in its steady state. Structural config errors are
// returned; everything else degrades gracefully.
func RenderSVG(cfg *diagram.Config, opts ...SVGOption) ([]byte, error) {
	root, err := Tree(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return root.Bytes(), nil
}

// Tree returns the vector tree [RenderSVG] serializes.
func Tree(cfg *diagram.Config, opts ...SVGOption) (*vector.Element, error) {
	r := newSVGRenderer(opts...)
	s, err := scene.Compose(cfg, scene.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}
	return TreeFor(s, cfg.Hash(), opts...), nil
}

// TreeFor builds the steady-state tree of an already composed scene.
func TreeFor(s *scene.Scene, id string, opts ...SVGOption) *vector.Element {
	r := newSVGRenderer(opts...)
	return sceneview.Document(s, sceneview.Presentation{}, sceneview.Options{
		Grid:   r.grid,
		Labels: r.labels,
		ID:     shortID(id),
	})
}

func shortID(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
