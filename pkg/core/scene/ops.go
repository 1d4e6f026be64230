package scene

import (
	"math"

	"github.com/matzehuels/isotower/pkg/core/box"
	"github.com/matzehuels/isotower/pkg/core/iso"
	"github.com/matzehuels/isotower/pkg/core/shade"
)

// OpKind classifies a draw operation.
type OpKind int

// Operation kinds.
const (
	OpShadow OpKind = iota
	OpFloor
	OpNode
	OpPillar
	OpTierLabel
	OpNodeLabel
)

var opKindNames = [...]string{"shadow", "floor", "node", "pillar", "tier-label", "node-label"}

func (k OpKind) String() string {
	if int(k) < len(opKindNames) {
		return opKindNames[k]
	}
	return "unknown"
}

// MarshalText encodes k by name.
func (k OpKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// IsLabel reports whether k draws text rather than a path.
func (k OpKind) IsLabel() bool { return k == OpTierLabel || k == OpNodeLabel }

// Op is one draw operation.
type Op struct {
	// Tier is the config index of the tier the op belongs to.
	Tier int    `json:"tier"`
	Kind OpKind `json:"kind"`

	// Element is the config index of the node or pillar, -1 otherwise.
	Element int `json:"element"`

	// Part names the box part ("top", "corner-back-left", ...) for path ops.
	Part      string  `json:"part,omitempty"`
	Path      string  `json:"path,omitempty"`
	Fill      string  `json:"fill,omitempty"`
	Stroke    string  `json:"stroke,omitempty"`
	Opacity   float64 `json:"opacity"`
	Intensity float64 `json:"intensity,omitempty"`

	// Text, X and Y are set for label ops.
	Text string  `json:"text,omitempty"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
}

// Ops returns the global draw sequence: for each tier in paint order its
// shadow, floor and label, then its nodes back to front, then its pillars.
func (s *Scene) Ops() []Op {
	var ops []Op
	for _, t := range s.Tiers {
		ops = append(ops, s.TierOps(t)...)
	}
	return ops
}

// TierOps returns the draw sequence of a single tier.
func (s *Scene) TierOps(t Tier) []Op {
	var ops []Op
	stroke := shade.Stroke(s.Theme)

	if t.Floor.Shadow != "" {
		ops = append(ops, Op{
			Tier: t.Index, Kind: OpShadow, Element: -1, Part: "shadow",
			Path: t.Floor.Shadow, Fill: shade.Shadow(s.Theme), Opacity: 0.35,
		})
	}
	ops = appendBox(ops, Op{Tier: t.Index, Kind: OpFloor, Element: -1, Stroke: t.Floor.Border, Opacity: t.Floor.Opacity},
		t.Floor.Geometry, t.Floor.Faces)
	if t.Label.Text != "" {
		ops = append(ops, Op{
			Tier: t.Index, Kind: OpTierLabel, Element: -1, Fill: shade.Label(s.Theme), Opacity: 1,
			Text: t.Label.Text, X: t.Label.X, Y: t.Label.Y,
		})
	}

	for _, n := range t.Nodes {
		ops = appendBox(ops, Op{Tier: t.Index, Kind: OpNode, Element: n.Index, Stroke: stroke, Opacity: n.Opacity},
			n.Geometry, n.Faces)
		if n.Label.Text != "" {
			ops = append(ops, Op{
				Tier: t.Index, Kind: OpNodeLabel, Element: n.Index, Fill: shade.Label(s.Theme), Opacity: n.Opacity,
				Text: n.Label.Text, X: n.Label.X, Y: n.Label.Y,
			})
		}
	}

	for _, p := range t.Pillars {
		ops = appendBox(ops, Op{Tier: t.Index, Kind: OpPillar, Element: p.Index, Stroke: stroke, Opacity: 1},
			p.Geometry, p.Faces)
	}
	return ops
}

func appendBox(ops []Op, base Op, g box.Geometry, f shade.Faces) []Op {
	for _, part := range box.PaintOrder {
		if part.IsCorner() {
			for _, seg := range g.Corner(part) {
				op := base
				op.Part = part.String()
				op.Path = seg.Path
				op.Fill = shade.SegmentFill(f, seg.Intensity)
				op.Intensity = seg.Intensity
				ops = append(ops, op)
			}
			continue
		}
		op := base
		op.Part = part.String()
		op.Path = g.Face(part)
		switch part {
		case box.PartTop:
			op.Fill = f.Top
		case box.PartLeft:
			op.Fill = f.Left
		case box.PartRight:
			op.Fill = f.Right
		}
		ops = append(ops, op)
	}
	return ops
}

// Bounds returns the screen-space bounding box of all geometry in the scene.
func (s *Scene) Bounds() (lo, hi iso.Point) {
	lo = iso.Point{X: math.Inf(1), Y: math.Inf(1)}
	hi = iso.Point{X: math.Inf(-1), Y: math.Inf(-1)}
	grow := func(g box.Geometry) {
		lo.X, lo.Y = math.Min(lo.X, g.Min.X), math.Min(lo.Y, g.Min.Y)
		hi.X, hi.Y = math.Max(hi.X, g.Max.X), math.Max(hi.Y, g.Max.Y)
	}
	for _, t := range s.Tiers {
		grow(t.Floor.Geometry)
		if t.Floor.Shadow != "" {
			hi.Y = math.Max(hi.Y, t.Floor.Geometry.Max.Y+ShadowOffset)
		}
		for _, n := range t.Nodes {
			grow(n.Geometry)
		}
		for _, p := range t.Pillars {
			grow(p.Geometry)
		}
	}
	if len(s.Tiers) == 0 {
		return iso.Point{}, iso.Point{}
	}
	return lo, hi
}

// Fits reports whether the scene's geometry lies inside the canvas.
func (s *Scene) Fits() bool {
	lo, hi := s.Bounds()
	return lo.X >= 0 && lo.Y >= 0 && hi.X <= s.Width && hi.Y <= s.Height
}

// NodeCount returns the number of composed nodes.
func (s *Scene) NodeCount() int {
	n := 0
	for _, t := range s.Tiers {
		n += len(t.Nodes)
	}
	return n
}

// Tier returns the composed tier with config index i.
func (s *Scene) Tier(i int) (Tier, bool) {
	for _, t := range s.Tiers {
		if t.Index == i {
			return t, true
		}
	}
	return Tier{}, false
}
