// Package nodelink renders a flat overview of a diagram config as a
// Graphviz node-link diagram.
//
// # Overview
//
// Each tier becomes a cluster, stacked top to bottom by descending
// elevation, and each node becomes a filled box inside its tier's cluster.
// Pillars become edges between tier anchors. The overview is useful for
// reviewing large configs where the isometric view gets crowded.
//
// # Usage
//
//	dot := nodelink.ToDOT(cfg, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use the render functions:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Options
//
//   - Detailed: When true, node labels include size and floor position.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
