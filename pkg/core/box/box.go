package box

import (
	"math"
	"slices"

	"github.com/matzehuels/isotower/pkg/core/iso"
	"github.com/matzehuels/isotower/pkg/core/path"
	"github.com/matzehuels/isotower/pkg/core/shade"
)

const (
	// ArcSamples is the number of points sampled along each quarter arc of a
	// rounded top face or outline, endpoints included.
	ArcSamples = 8

	// CornerSegments is the number of lit quads per corner cylinder.
	CornerSegments = 6
)

// Spec describes one box.
type Spec struct {
	Width, Depth, Height float64
	OriginX, OriginY     float64
	Radius               float64
}

// Segment is one lit quad of a corner cylinder.
type Segment struct {
	Path      string  `json:"path"`
	Intensity float64 `json:"intensity"`
	Angle     float64 `json:"angle"` // outward normal at the sweep midpoint, degrees
}

// Geometry holds every face path of a box.
type Geometry struct {
	Top     string `json:"top"`
	Left    string `json:"left"`
	Right   string `json:"right"`
	Outline string `json:"outline"`

	CornerFrontLeft  []Segment `json:"cornerFrontLeft,omitempty"`
	CornerFrontRight []Segment `json:"cornerFrontRight,omitempty"`
	CornerBackLeft   []Segment `json:"cornerBackLeft,omitempty"`
	CornerBackRight  []Segment `json:"cornerBackRight,omitempty"`

	// Radius is the clamped corner radius actually used.
	Radius float64 `json:"radius"`

	// TopCenter is the projected centre of the top face.
	TopCenter iso.Point `json:"topCenter"`

	// Min and Max bound the projected box.
	Min iso.Point `json:"min"`
	Max iso.Point `json:"max"`
}

// corner is the centre of a corner arc in the local frame and the angle,
// in degrees, at which its quarter sweep starts.
type corner struct {
	cx, cy, start float64
}

// Build returns the faces of the box described by s.
func Build(s Spec) Geometry {
	w, d, h := clampDim(s.Width), clampDim(s.Depth), clampDim(s.Height)
	r := clampRadius(s.Radius, w, d)
	o := iso.Point{X: finite(s.OriginX), Y: finite(s.OriginY)}
	pt := func(x, y, z float64) iso.Point { return o.Add(iso.Project(x, y, z)) }

	g := Geometry{
		Radius:    r,
		TopCenter: pt(w/2, d/2, h),
	}
	g.Min, g.Max = bounds(pt(0, 0, 0), pt(w, 0, 0), pt(0, d, 0), pt(w, d, h), pt(0, 0, h), pt(w, 0, h), pt(0, d, h))

	if r <= 0 {
		g.Top = path.Polygon(pt(0, 0, h), pt(w, 0, h), pt(w, d, h), pt(0, d, h))
		g.Left = path.Polygon(pt(0, 0, 0), pt(0, d, 0), pt(0, d, h), pt(0, 0, h))
		g.Right = path.Polygon(pt(0, 0, 0), pt(w, 0, 0), pt(w, 0, h), pt(0, 0, h))
		g.Outline = path.Polygon(pt(0, 0, 0), pt(w, 0, 0), pt(w, d, 0), pt(0, d, 0))
		return g
	}

	fl := corner{r, r, 180}
	fr := corner{w - r, r, 270}
	br := corner{w - r, d - r, 0}
	bl := corner{r, d - r, 90}
	ring := []corner{fl, fr, br, bl}

	g.Top = roundedRect(ring, r, h, pt)
	g.Outline = roundedRect(ring, r, 0, pt)
	g.Left = path.Polygon(pt(0, r, 0), pt(0, d-r, 0), pt(0, d-r, h), pt(0, r, h))
	g.Right = path.Polygon(pt(r, 0, 0), pt(w-r, 0, 0), pt(w-r, 0, h), pt(r, 0, h))

	g.CornerFrontLeft = cylinder(fl, r, h, pt)
	g.CornerFrontRight = cylinder(fr, r, h, pt)
	g.CornerBackLeft = cylinder(bl, r, h, pt)
	g.CornerBackRight = cylinder(br, r, h, pt)
	return g
}

func roundedRect(ring []corner, r, z float64, pt func(x, y, z float64) iso.Point) string {
	pts := make([]iso.Point, 0, len(ring)*ArcSamples)
	for _, c := range ring {
		for i := 0; i < ArcSamples; i++ {
			a := c.start + 90*float64(i)/float64(ArcSamples-1)
			x, y := c.at(r, a)
			pts = append(pts, pt(x, y, z))
		}
	}
	return path.Polygon(pts...)
}

func cylinder(c corner, r, h float64, pt func(x, y, z float64) iso.Point) []Segment {
	const sweep = 90.0 / CornerSegments
	segs := make([]Segment, 0, CornerSegments)
	for i := 0; i < CornerSegments; i++ {
		a0 := c.start + sweep*float64(i)
		a1 := a0 + sweep
		mid := normalizeAngle(a0 + sweep/2)
		x0, y0 := c.at(r, a0)
		x1, y1 := c.at(r, a1)
		segs = append(segs, Segment{
			Path:      path.Polygon(pt(x0, y0, 0), pt(x1, y1, 0), pt(x1, y1, h), pt(x0, y0, h)),
			Intensity: shade.Intensity(mid),
			Angle:     mid,
		})
	}
	// Normals pointing toward +x+y face away from the viewer.
	slices.SortStableFunc(segs, func(a, b Segment) int {
		ka, kb := facing(a.Angle), facing(b.Angle)
		switch {
		case ka > kb:
			return -1
		case ka < kb:
			return 1
		}
		return 0
	})
	return segs
}

func (c corner) at(r, angle float64) (x, y float64) {
	rad := angle * math.Pi / 180
	return c.cx + r*math.Cos(rad), c.cy + r*math.Sin(rad)
}

func facing(angle float64) float64 {
	rad := angle * math.Pi / 180
	return math.Cos(rad) + math.Sin(rad)
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func clampDim(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if math.IsInf(v, 1) {
		return math.MaxFloat32
	}
	return v
}

// ClampRadius returns r limited to [0, min(w, d) / 2].
func ClampRadius(r, w, d float64) float64 {
	return clampRadius(r, clampDim(w), clampDim(d))
}

func clampRadius(r, w, d float64) float64 {
	if math.IsNaN(r) || r <= 0 {
		return 0
	}
	return math.Min(r, math.Min(w, d)/2)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func bounds(pts ...iso.Point) (lo, hi iso.Point) {
	lo, hi = pts[0], pts[0]
	for _, p := range pts[1:] {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	return lo, hi
}
