// Package sink is the static render target.
//
// [RenderSVG] is a pure function from a diagram config to a self-contained
// SVG document: no timers, no hover state, always the fully entered steady
// state. The document carries its filters and grid pattern in inline defs,
// so it can be written to a file or embedded in other markup unmodified.
//
//	svg, err := sink.RenderSVG(cfg, sink.WithGrid(false))
//
// [RenderJSON] exports the composed scene, and [RenderPDF] and [RenderPNG]
// rasterize the SVG through rsvg-convert.
package sink
