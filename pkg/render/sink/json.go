package sink

import (
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isotower/pkg/core/iso"
	"github.com/matzehuels/isotower/pkg/core/scene"
	"github.com/matzehuels/isotower/pkg/diagram"
	"github.com/matzehuels/isotower/pkg/errors"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	logger *log.Logger
	ops    bool
}

// WithJSONLogger sets the logger used while composing.
func WithJSONLogger(l *log.Logger) JSONOption { return func(r *jsonRenderer) { r.logger = l } }

// WithJSONOps includes the flattened draw sequence in the output.
func WithJSONOps() JSONOption { return func(r *jsonRenderer) { r.ops = true } }

type jsonOutput struct {
	Diagram string       `json:"diagram"`
	Scene   *scene.Scene `json:"scene"`
	Bounds  jsonBounds   `json:"bounds"`
	Ops     []scene.Op   `json:"ops,omitempty"`
}

type jsonBounds struct {
	Min iso.Point `json:"min"`
	Max iso.Point `json:"max"`
}

// RenderJSON exports the composed scene of cfg as pretty-printed JSON: every
// tier with its floor, node boxes and their face paths, plus anything that
// was skipped. It does not modify cfg and is safe to call concurrently.
func RenderJSON(cfg *diagram.Config, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var sopts []scene.Option
	if r.logger != nil {
		sopts = append(sopts, scene.WithLogger(r.logger))
	}
	s, err := scene.Compose(cfg, sopts...)
	if err != nil {
		return nil, err
	}

	lo, hi := s.Bounds()
	out := jsonOutput{
		Diagram: cfg.Hash(),
		Scene:   s,
		Bounds:  jsonBounds{Min: lo, Max: hi},
	}
	if r.ops {
		out.Ops = s.Ops()
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	return data, nil
}
