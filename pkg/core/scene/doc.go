// Package scene turns a diagram config into one ordered sequence of draw
// operations.
//
// Every tier gets a floor slab (thicker for the ground tier, which also
// casts a drop shadow), its nodes are lifted just above the slab, and
// pillars connect tiers. Tiers are painted by ascending elevation; within a
// tier nodes are painted by ascending key (x + width) + (y + depth), ties
// in config order.
//
// Node positions are measured from the back corner of the floor, so a larger
// key places a node nearer the viewer and later in the sequence. Painting
// by key is a plain painter's algorithm: deeply interpenetrating footprints
// can still mis-order.
//
// Invalid tier references never fail a composition. The offending node or
// pillar is left out, logged, and recorded in [Scene.Skipped].
package scene
