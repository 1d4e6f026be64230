// Package iso implements the isometric projection used by every isotower
// renderer.
//
// # Projection
//
// A world point (x, y, z) lies on a floor plane spanned by x and y, with z
// measuring elevation. [Project] maps it to screen space:
//
//	screenX = (x - y) * cos(30°)
//	screenY = -(x + y) * sin(30°) - z
//
// Screen y grows downward, as in SVG, so increasing x, y or z moves a point
// up the drawing. All three axes are foreshortened equally and there is no
// perspective divide, which keeps the transform linear:
//
//	Project(a + b) == Project(a) + Project(b)
//
// # Inverse
//
// [UnprojectFloor] solves the same system at z = 0. It exists for pointer
// hit-testing on floor planes and is never used to build geometry.
package iso
