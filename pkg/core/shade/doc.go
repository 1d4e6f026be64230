// Package shade maps accent names and a light/dark mode to the three face
// colors of an isometric box, and lights curved corner segments.
//
// Palettes are immutable package data. Lookups never fail: unknown accent
// names resolve to the neutral [Default] accent and malformed hex strings
// parse as black.
//
// Corner cylinders are lit continuously rather than per face. [Intensity]
// converts the outward normal angle of a vertical surface into a brightness
// in [0, 1] relative to a fixed key light, and [Interpolate] blends between
// the left (darkest) and right face colors by that amount.
package shade
