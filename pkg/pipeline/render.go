package pipeline

import (
	"fmt"

	"github.com/matzehuels/isotower/pkg/diagram"
	"github.com/matzehuels/isotower/pkg/render/live"
	"github.com/matzehuels/isotower/pkg/render/nodelink"
	"github.com/matzehuels/isotower/pkg/render/sink"
)

// RenderFormat renders cfg in one format without touching any cache.
func RenderFormat(cfg *diagram.Config, format string, opts Options) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	cfg = opts.Apply(cfg)

	svgOpts := []sink.SVGOption{
		sink.WithLogger(opts.Logger),
		sink.WithGrid(!opts.NoGrid),
		sink.WithLabels(!opts.NoLabels),
	}

	switch format {
	case FormatSVG:
		return sink.RenderSVG(cfg, svgOpts...)
	case FormatLive:
		return renderLive(cfg, opts)
	case FormatJSON:
		jsonOpts := []sink.JSONOption{sink.WithJSONLogger(opts.Logger)}
		if opts.Ops {
			jsonOpts = append(jsonOpts, sink.WithJSONOps())
		}
		return sink.RenderJSON(cfg, jsonOpts...)
	case FormatDOT:
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return []byte(nodelink.ToDOT(cfg, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatGraph:
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return nodelink.RenderSVG(nodelink.ToDOT(cfg, nodelink.Options{Detailed: opts.Detailed}))
	case FormatPNG:
		return sink.RenderPNG(cfg, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case FormatPDF:
		return sink.RenderPDF(cfg, sink.WithPDFSVGOptions(svgOpts...))
	default:
		return nil, ValidateFormat(format)
	}
}

// renderLive mounts a throwaway interactive diagram and serializes it once
// every tier has entered.
func renderLive(cfg *diagram.Config, opts Options) ([]byte, error) {
	d := live.New(
		live.WithLogger(opts.Logger),
		live.WithGrid(!opts.NoGrid),
		live.WithLabels(!opts.NoLabels),
	)
	if err := d.Mount(cfg); err != nil {
		return nil, err
	}
	defer d.Unmount()
	d.Settle()
	out := d.Markup()
	if out == nil {
		return nil, fmt.Errorf("live diagram produced no markup")
	}
	return out, nil
}
