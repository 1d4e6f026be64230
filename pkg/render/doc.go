// Package render holds the render targets of isotower and the helpers they
// share.
//
// # Targets
//
// The [sink] subpackage is the static target: a pure function from a
// diagram config to a self-contained SVG document, plus JSON, PDF and PNG
// exports. The [live] subpackage is the interactive target with staggered
// tier entrance and hover emphasis. Both build their documents through
// [sceneview], so the path data they emit for the same config in the steady
// state is identical.
//
// The [nodelink] subpackage renders a flat Graphviz overview of tiers and
// nodes.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg):
//
//	svg, err := sink.RenderSVG(cfg)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [sink]: github.com/matzehuels/isotower/pkg/render/sink
// [live]: github.com/matzehuels/isotower/pkg/render/live
// [sceneview]: github.com/matzehuels/isotower/pkg/render/sceneview
// [nodelink]: github.com/matzehuels/isotower/pkg/render/nodelink
package render
