package box

// Part identifies one paintable piece of a box.
type Part int

// Parts of a box.
const (
	PartTop Part = iota
	PartLeft
	PartRight
	PartCornerFrontLeft
	PartCornerFrontRight
	PartCornerBackLeft
	PartCornerBackRight
)

// PaintOrder lists the parts of a box back to front. Hidden corners come
// first, then the side faces, then the corner nearest the viewer, and the
// top face last.
var PaintOrder = []Part{
	PartCornerBackRight,
	PartCornerBackLeft,
	PartCornerFrontRight,
	PartLeft,
	PartRight,
	PartCornerFrontLeft,
	PartTop,
}

var partNames = map[Part]string{
	PartTop:              "top",
	PartLeft:             "left",
	PartRight:            "right",
	PartCornerFrontLeft:  "corner-front-left",
	PartCornerFrontRight: "corner-front-right",
	PartCornerBackLeft:   "corner-back-left",
	PartCornerBackRight:  "corner-back-right",
}

func (p Part) String() string { return partNames[p] }

// IsCorner reports whether p is a corner cylinder.
func (p Part) IsCorner() bool { return p >= PartCornerFrontLeft }

// Face returns the flat face path for p, or "" for corner parts.
func (g Geometry) Face(p Part) string {
	switch p {
	case PartTop:
		return g.Top
	case PartLeft:
		return g.Left
	case PartRight:
		return g.Right
	}
	return ""
}

// Corner returns the segments of corner part p, or nil for flat faces.
func (g Geometry) Corner(p Part) []Segment {
	switch p {
	case PartCornerFrontLeft:
		return g.CornerFrontLeft
	case PartCornerFrontRight:
		return g.CornerFrontRight
	case PartCornerBackLeft:
		return g.CornerBackLeft
	case PartCornerBackRight:
		return g.CornerBackRight
	}
	return nil
}

// Corners returns all corner groups in front-left, front-right, back-left,
// back-right order.
func (g Geometry) Corners() [][]Segment {
	return [][]Segment{g.CornerFrontLeft, g.CornerFrontRight, g.CornerBackLeft, g.CornerBackRight}
}

// Segments returns the total number of corner segments.
func (g Geometry) Segments() int {
	n := 0
	for _, c := range g.Corners() {
		n += len(c)
	}
	return n
}
