package scene

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isotower/pkg/core/box"
	"github.com/matzehuels/isotower/pkg/core/iso"
	"github.com/matzehuels/isotower/pkg/core/shade"
	"github.com/matzehuels/isotower/pkg/diagram"
)

const (
	// FloorThickness is the slab height of every tier but the ground.
	FloorThickness = 4.0

	// GroundThickness is the slab height of the ground tier.
	GroundThickness = 12.0

	// NodeLift raises node boxes above their floor slab.
	NodeLift = 1.0

	// PillarSize is the footprint edge of a pillar.
	PillarSize = 6.0

	// ShadowOffset shifts the ground shadow down on screen.
	ShadowOffset = 10.0
)

// Scene is a composed diagram.
type Scene struct {
	Theme  shade.Mode `json:"theme"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Origin iso.Point  `json:"origin"`

	// FloorWidth and FloorDepth are the shared floor footprint.
	FloorWidth float64 `json:"floorWidth"`
	FloorDepth float64 `json:"floorDepth"`

	// Tiers in paint order.
	Tiers   []Tier `json:"tiers"`
	Skipped []Skip `json:"skipped,omitempty"`
}

// Tier is one composed tier.
type Tier struct {
	Index     int      `json:"index"`
	Name      string   `json:"name"`
	Elevation float64  `json:"elevation"`
	Ground    bool     `json:"ground"`
	Floor     Floor    `json:"floor"`
	Nodes     []Node   `json:"nodes"`
	Pillars   []Pillar `json:"pillars,omitempty"`
	Label     Label    `json:"label"`
}

// Floor is a tier's slab.
type Floor struct {
	Geometry box.Geometry `json:"geometry"`
	Faces    shade.Faces  `json:"faces"`
	Border   string       `json:"border"`
	Opacity  float64      `json:"opacity"`

	// Shadow is the offset footprint drawn under the ground tier.
	Shadow string `json:"shadow,omitempty"`
}

// Node is one composed node box.
type Node struct {
	Index    int          `json:"index"`
	Config   diagram.Node `json:"config"`
	Geometry box.Geometry `json:"geometry"`
	Faces    shade.Faces  `json:"faces"`
	Opacity  float64      `json:"opacity"`
	Label    Label        `json:"label"`
	Key      float64      `json:"key"`
}

// Pillar is one composed pillar.
type Pillar struct {
	Index    int            `json:"index"`
	Config   diagram.Pillar `json:"config"`
	Geometry box.Geometry   `json:"geometry"`
	Faces    shade.Faces    `json:"faces"`
}

// Label is a text anchor in screen space.
type Label struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Skip records an element left out of the scene.
type Skip struct {
	Kind   string `json:"kind"`
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Option configures [Compose].
type Option func(*composer)

// WithLogger sets the logger used to report skipped elements.
func WithLogger(l *log.Logger) Option {
	return func(c *composer) {
		if l != nil {
			c.logger = l
		}
	}
}

type composer struct {
	cfg    *diagram.Config
	logger *log.Logger
	mode   shade.Mode
	origin iso.Point
	fw, fd float64
	radius float64
}

// Compose validates cfg and builds its scene. Structural config problems
// are returned; everything else is absorbed.
func Compose(cfg *diagram.Config, opts ...Option) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &composer{
		cfg:    cfg,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		mode:   shade.Mode(cfg.ThemeOrDefault()),
		origin: iso.Point{X: finite(cfg.Origin.X), Y: finite(cfg.Origin.Y)},
		fw:     cfg.FloorSize.Width,
		fd:     cfg.FloorSize.Depth,
		radius: cfg.CornerRadius,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c.compose(), nil
}

func (c *composer) compose() *Scene {
	s := &Scene{
		Theme:      c.mode,
		Width:      c.cfg.Canvas.Width,
		Height:     c.cfg.Canvas.Height,
		Origin:     c.origin,
		FloorWidth: c.fw,
		FloorDepth: c.fd,
	}

	tiers := make([]Tier, len(c.cfg.Tiers))
	for i, t := range c.cfg.Tiers {
		tiers[i] = c.tier(i, t)
	}

	for i, n := range c.cfg.Nodes {
		if n.Tier < 0 || n.Tier >= len(tiers) {
			s.skip(c.logger, "node", i, fmt.Sprintf("tier %d does not exist", n.Tier))
			continue
		}
		tiers[n.Tier].Nodes = append(tiers[n.Tier].Nodes, c.node(i, n, tiers[n.Tier].Elevation))
	}
	for i := range tiers {
		slices.SortStableFunc(tiers[i].Nodes, func(a, b Node) int {
			return cmp.Compare(a.Key, b.Key)
		})
	}

	for i, p := range c.cfg.Pillars {
		if !c.validTier(p.FromTier) || !c.validTier(p.ToTier) {
			s.skip(c.logger, "pillar", i, fmt.Sprintf("tiers %d->%d out of range", p.FromTier, p.ToTier))
			continue
		}
		if p.FromTier == p.ToTier {
			s.skip(c.logger, "pillar", i, "pillar connects a tier to itself")
			continue
		}
		lo, hi := &tiers[p.FromTier], &tiers[p.ToTier]
		if hi.Elevation < lo.Elevation {
			lo, hi = hi, lo
		}
		lo.Pillars = append(lo.Pillars, c.pillar(i, p, lo.Elevation, hi.Elevation))
	}

	slices.SortStableFunc(tiers, func(a, b Tier) int {
		return cmp.Compare(a.Elevation, b.Elevation)
	})
	s.Tiers = tiers
	return s
}

func (s *Scene) skip(logger *log.Logger, kind string, index int, reason string) {
	logger.Warn("skipping "+kind, kind, index, "reason", reason)
	s.Skipped = append(s.Skipped, Skip{Kind: kind, Index: index, Reason: reason})
}

func (c *composer) validTier(i int) bool { return i >= 0 && i < len(c.cfg.Tiers) }

// at returns the screen origin of a box whose back-measured footprint
// starts at (x, y) with the given size, resting at z.
func (c *composer) at(x, y, w, d, z float64) iso.Point {
	wx := c.fw - x - clamp(w)
	wy := c.fd - y - clamp(d)
	return c.origin.Add(iso.Project(finite(wx), finite(wy), z))
}

func (c *composer) tier(i int, t diagram.Tier) Tier {
	elev := finite(t.Elevation)
	ground := i == 0
	thickness := FloorThickness
	if ground {
		thickness = GroundThickness
	}
	o := c.origin.Add(iso.Project(0, 0, elev-thickness))
	geom := box.Build(box.Spec{
		Width: c.fw, Depth: c.fd, Height: thickness,
		OriginX: o.X, OriginY: o.Y,
		Radius: c.radius,
	})

	floor := Floor{
		Geometry: geom,
		Faces:    shade.FloorFaces(t.FloorColor, c.mode),
		Border:   shade.Border(t.BorderColor, c.mode),
		Opacity:  t.FloorAlpha(),
	}
	if ground {
		shadow := box.Build(box.Spec{
			Width: c.fw, Depth: c.fd,
			OriginX: o.X, OriginY: o.Y + ShadowOffset,
			Radius: c.radius,
		})
		floor.Shadow = shadow.Outline
	}

	anchor := c.origin.Add(iso.Project(0, c.fd, elev))
	return Tier{
		Index:     i,
		Name:      t.Name,
		Elevation: elev,
		Ground:    ground,
		Floor:     floor,
		Label:     Label{Text: t.Name, X: anchor.X, Y: anchor.Y},
	}
}

func (c *composer) node(i int, n diagram.Node, elev float64) Node {
	o := c.at(n.X, n.Y, n.Width, n.Depth, elev+NodeLift)
	geom := box.Build(box.Spec{
		Width: n.Width, Depth: n.Depth, Height: n.Height,
		OriginX: o.X, OriginY: o.Y,
		Radius: c.radius,
	})
	safe := n.Finite()
	return Node{
		Index:    i,
		Config:   safe,
		Geometry: geom,
		Faces:    shade.FacesFor(n.Color, c.mode),
		Opacity:  n.Alpha(),
		Label:    Label{Text: n.Label, X: geom.TopCenter.X, Y: geom.TopCenter.Y},
		Key:      safe.Key(),
	}
}

func (c *composer) pillar(i int, p diagram.Pillar, lo, hi float64) Pillar {
	o := c.at(p.X, p.Y, PillarSize, PillarSize, lo)
	color := p.Color
	if color == "" {
		color = shade.Default
	}
	return Pillar{
		Index:  i,
		Config: p.Finite(),
		Geometry: box.Build(box.Spec{
			Width: PillarSize, Depth: PillarSize, Height: hi - FloorThickness - lo,
			OriginX: o.X, OriginY: o.Y,
		}),
		Faces: shade.FacesFor(color, c.mode),
	}
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
