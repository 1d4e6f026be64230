package iso

import "math"

// Axis factors for the 30° isometric projection.
const (
	Cos30 = 0.8660254037844386 // math.Sqrt(3) / 2
	Sin30 = 0.5
)

// Point is a position in 2D screen space.
type Point struct {
	X, Y float64
}

// Add returns the component-wise sum p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Project maps the world point (x, y, z) to screen space.
func Project(x, y, z float64) Point {
	return Point{
		X: (x - y) * Cos30,
		Y: -(x+y)*Sin30 - z,
	}
}

// UnprojectFloor returns the floor coordinates (x, y) at z = 0 that project
// to the screen point (sx, sy).
func UnprojectFloor(sx, sy float64) (x, y float64) {
	diff := sx / Cos30 // x - y
	sum := -sy / Sin30 // x + y
	return (sum + diff) / 2, (sum - diff) / 2
}

// Distance returns the euclidean distance between two screen points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
