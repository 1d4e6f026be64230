// Package box builds the vector faces of one isometric box.
//
// # Frame
//
// A box occupies x in [0, Width], y in [0, Depth] and z in [0, Height] in its
// local frame and is translated on screen by (OriginX, OriginY) after
// projection. The viewer faces the (0, 0) vertical edge, so three faces are
// visible:
//
//   - Top: the z = Height plane
//   - Left: the x = 0 plane
//   - Right: the y = 0 plane
//
// Corners are named by the footprint edges they join. Front is y = 0, back
// is y = Depth, left is x = 0 and right is x = Width, so the front-left
// corner is the edge closest to the viewer and the back-right corner is
// hidden.
//
// # Rounded corners
//
// With a positive radius the top face and outline become rounded rectangles
// sampled with [ArcSamples] points per quarter arc, and each vertical edge
// becomes a corner cylinder: [CornerSegments] flat quads swept along the arc,
// each carrying a lighting intensity from [shade.Intensity]. Segments of a
// corner are returned far-to-near so painting them in slice order never lets
// a back-facing sliver cover a front-facing one.
//
// # Robustness
//
// [Build] never fails. Negative or NaN dimensions clamp to zero and the
// radius clamps to min(Width, Depth) / 2, so degenerate boxes still produce
// closed, parseable paths.
//
// [shade.Intensity]: github.com/matzehuels/isotower/pkg/core/shade.Intensity
package box
