package nodelink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/isotower/pkg/core/shade"
	"github.com/matzehuels/isotower/pkg/diagram"
	"github.com/matzehuels/isotower/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes size and floor position in node labels.
	// When false, only the node label is shown.
	Detailed bool
}

// ToDOT converts cfg to Graphviz DOT format. Nodes and pillars that
// reference missing tiers are left out, as in the isometric renderers.
func ToDOT(cfg *diagram.Config, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if cfg == nil {
		buf.WriteString("}\n")
		return buf.String()
	}
	mode := shade.Mode(cfg.ThemeOrDefault())

	order := make([]int, len(cfg.Tiers))
	for i := range order {
		order[i] = i
	}
	// Highest tier first so it ends up at the top of a TB layout.
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(cfg.Tiers[b].Elevation, cfg.Tiers[a].Elevation)
	})

	for _, ti := range order {
		t := cfg.Tiers[ti]
		floor := shade.FloorFaces(t.FloorColor, mode)
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", ti)
		fmt.Fprintf(&buf, "    label=%q;\n", tierLabel(t, ti))
		fmt.Fprintf(&buf, "    style=\"rounded,filled\";\n    fillcolor=%q;\n    color=%q;\n",
			floor.Top, shade.Border(t.BorderColor, mode))
		fmt.Fprintf(&buf, "    fontcolor=%q;\n", shade.Label(mode))
		fmt.Fprintf(&buf, "    %q [shape=point, style=invis];\n", anchor(ti))
		for i, n := range cfg.Nodes {
			if n.Tier != ti {
				continue
			}
			faces := shade.FacesFor(n.Color, mode)
			fmt.Fprintf(&buf, "    %q [label=%q, fillcolor=%q, color=%q, fontcolor=%q];\n",
				nodeID(i), nodeLabel(n, i, opts.Detailed), faces.Top, faces.Left, shade.Label(mode))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for k := 1; k < len(order); k++ {
		fmt.Fprintf(&buf, "  %q -> %q [style=invis];\n", anchor(order[k-1]), anchor(order[k]))
	}
	for _, p := range cfg.Pillars {
		if !validTier(cfg, p.FromTier) || !validTier(cfg, p.ToTier) || p.FromTier == p.ToTier {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [ltail=%q, lhead=%q, dir=none, penwidth=2];\n",
			anchor(p.FromTier), anchor(p.ToTier),
			"cluster_"+strconv.Itoa(p.FromTier), "cluster_"+strconv.Itoa(p.ToTier))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func anchor(tier int) string { return "tier" + strconv.Itoa(tier) }
func nodeID(i int) string    { return "node" + strconv.Itoa(i) }

func validTier(cfg *diagram.Config, i int) bool { return i >= 0 && i < len(cfg.Tiers) }

func tierLabel(t diagram.Tier, i int) string {
	if t.Name != "" {
		return t.Name
	}
	return "tier " + strconv.Itoa(i)
}

func nodeLabel(n diagram.Node, i int, detailed bool) string {
	label := n.Label
	if label == "" {
		label = "node " + strconv.Itoa(i)
	}
	if !detailed {
		return label
	}
	return fmt.Sprintf("%s\n%gx%gx%g\nat (%g, %g)", label, n.Width, n.Depth, n.Height, n.X, n.Y)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [render.ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
