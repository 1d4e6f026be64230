// Package sceneview turns a composed scene into a vector document.
//
// It is the only place scene operations become elements. The static and
// interactive targets both call [Document]; they differ only in the
// [Presentation] they pass, which layers transform, opacity and filter
// attributes on tier groups without touching path data.
package sceneview

import (
	"strconv"
	"strings"

	"github.com/matzehuels/isotower/pkg/core/path"
	"github.com/matzehuels/isotower/pkg/core/scene"
	"github.com/matzehuels/isotower/pkg/core/shade"
	"github.com/matzehuels/isotower/pkg/fonts"
	"github.com/matzehuels/isotower/pkg/render/vector"
)

// Filter and pattern ids defined in every document.
const (
	ShadowFilterID = "iso-shadow"
	GlowFilterID   = "iso-glow"
	GridPatternID  = "iso-grid"
)

// GridSize is the spacing of the background grid.
const GridSize = 24.0

// TierStyle is the presentation of one tier group.
type TierStyle struct {
	OffsetY float64
	Scale   float64
	Opacity float64
	Glow    bool
	Class   string
}

// Steady is the fully entered, non-hovered style.
var Steady = TierStyle{Scale: 1, Opacity: 1}

// IsSteady reports whether s changes nothing.
func (s TierStyle) IsSteady() bool {
	return s.OffsetY == 0 && s.Scale == 1 && s.Opacity == 1 && !s.Glow && s.Class == ""
}

// Presentation describes how tiers are presented. Tiers without an entry
// use [Steady].
type Presentation struct {
	Tiers map[int]TierStyle

	// Hooks adds pointer hook names to tier groups.
	Hooks bool
}

// Style returns the style of tier i.
func (p Presentation) Style(i int) TierStyle {
	if s, ok := p.Tiers[i]; ok {
		return s
	}
	return Steady
}

// Options controls document chrome.
type Options struct {
	Grid   bool
	Labels bool

	// ID is written as data-diagram on the root element.
	ID string
}

// Document builds the vector tree of s.
func Document(s *scene.Scene, p Presentation, opts Options) *vector.Element {
	w, h := path.Num(s.Width), path.Num(s.Height)
	root := vector.New("svg",
		"xmlns", "http://www.w3.org/2000/svg",
		"viewBox", "0 0 "+w+" "+h,
		"width", w,
		"height", h,
		"class", "iso-diagram",
		"data-theme", string(s.Theme),
	)
	if opts.ID != "" {
		root.Set("data-diagram", opts.ID)
	}

	root.Append(defs(s.Theme))
	root.Append(vector.New("rect", "width", w, "height", h, "fill", shade.Background(s.Theme)))
	if opts.Grid {
		root.Append(vector.New("rect", "class", "iso-grid", "width", w, "height", h, "fill", "url(#"+GridPatternID+")"))
	}

	for _, t := range s.Tiers {
		root.Append(tierGroup(s, t, p, opts))
	}
	return root
}

func defs(mode shade.Mode) *vector.Element {
	shadow := vector.New("filter", "id", ShadowFilterID, "x", "-10%", "y", "-10%", "width", "120%", "height", "130%").
		Append(vector.New("feGaussianBlur", "stdDeviation", "6"))

	glow := vector.New("filter", "id", GlowFilterID, "x", "-20%", "y", "-20%", "width", "140%", "height", "140%").
		Append(
			vector.New("feGaussianBlur", "in", "SourceAlpha", "stdDeviation", "4", "result", "blur"),
			vector.New("feFlood", "flood-color", shade.Label(mode), "flood-opacity", "0.35"),
			vector.New("feComposite", "in2", "blur", "operator", "in", "result", "halo"),
			vector.New("feMerge").Append(
				vector.New("feMergeNode", "in", "halo"),
				vector.New("feMergeNode", "in", "SourceGraphic"),
			),
		)

	g := path.Num(GridSize)
	grid := vector.New("pattern", "id", GridPatternID, "width", g, "height", g, "patternUnits", "userSpaceOnUse").
		Append(vector.New("path", "d", "M"+g+" 0.00 L0.00 0.00 L0.00 "+g,
			"fill", "none", "stroke", shade.Grid(mode), "stroke-width", "0.5"))

	return vector.New("defs").Append(shadow, glow, grid)
}

// TierCenter is the point tiers scale around: the centre of the floor top.
func TierCenter(t scene.Tier) (x, y float64) {
	c := t.Floor.Geometry.TopCenter
	return c.X, c.Y
}

func tierGroup(s *scene.Scene, t scene.Tier, p Presentation, opts Options) *vector.Element {
	idx := strconv.Itoa(t.Index)
	g := vector.New("g", "class", "iso-tier", "data-tier", idx)
	if t.Ground {
		g.Set("data-ground", "true")
	}

	st := p.Style(t.Index)
	if st.Class != "" {
		g.Set("class", "iso-tier "+st.Class)
	}
	if tr := Transform(t, st); tr != "" {
		g.Set("transform", tr)
	}
	if st.Opacity != 1 {
		g.Set("opacity", path.Num(st.Opacity))
	}
	if st.Glow {
		g.Set("filter", "url(#"+GlowFilterID+")")
	}
	if p.Hooks {
		g.Set("data-onenter", "enter:"+idx)
		g.Set("data-onleave", "leave:"+idx)
	}

	var cur *vector.Element
	var curKind scene.OpKind
	curElem := -2
	for _, op := range s.TierOps(t) {
		if op.Kind.IsLabel() {
			if opts.Labels {
				g.Append(label(op))
			}
			continue
		}
		if cur == nil || op.Kind != curKind || op.Element != curElem {
			cur = group(op)
			curKind, curElem = op.Kind, op.Element
			g.Append(cur)
		}
		cur.Append(pathFor(op))
	}
	return g
}

// Transform returns the transform attribute for tier t in style st, or ""
// for the identity.
func Transform(t scene.Tier, st TierStyle) string {
	var tr string
	if st.OffsetY != 0 {
		tr = "translate(0 " + path.Num(st.OffsetY) + ")"
	}
	if st.Scale != 1 && st.Scale > 0 {
		cx, cy := TierCenter(t)
		x, y := path.Num(cx), path.Num(cy)
		if tr != "" {
			tr += " "
		}
		tr += "translate(" + x + " " + y + ") scale(" + strconv.FormatFloat(st.Scale, 'f', -1, 64) +
			") translate(" + path.Num(-cx) + " " + path.Num(-cy) + ")"
	}
	return tr
}

func group(op scene.Op) *vector.Element {
	g := vector.New("g", "class", "iso-"+op.Kind.String())
	if op.Element >= 0 {
		g.Set("data-"+op.Kind.String(), strconv.Itoa(op.Element))
	}
	if op.Kind == scene.OpShadow {
		g.Set("filter", "url(#"+ShadowFilterID+")")
	}
	if op.Opacity != 1 {
		g.Set("opacity", path.Num(op.Opacity))
	}
	return g
}

func pathFor(op scene.Op) *vector.Element {
	e := vector.New("path", "d", op.Path, "fill", op.Fill, "data-part", op.Part)
	switch {
	case op.Kind == scene.OpShadow:
	case strings.HasPrefix(op.Part, "corner-"):
		// Segments are stroked in their own fill so neighbours meet without
		// hairline gaps.
		e.Set("stroke", op.Fill)
		e.Set("stroke-width", "0.5")
	default:
		e.Set("stroke", op.Stroke)
		e.Set("stroke-width", "1")
		e.Set("stroke-linejoin", "round")
	}
	return e
}

func label(op scene.Op) *vector.Element {
	e := vector.New("text",
		"x", path.Num(op.X),
		"y", path.Num(op.Y),
		"fill", op.Fill,
		"font-family", fonts.FallbackFontFamily,
	)
	switch op.Kind {
	case scene.OpTierLabel:
		e.Set("x", path.Num(op.X-10))
		e.Set("text-anchor", "end")
		e.Set("font-size", path.Num(fonts.TierLabelSize))
		e.Set("font-weight", strconv.Itoa(fonts.TierLabelWeight))
		e.Set("class", "iso-tier-label")
	default:
		e.Set("text-anchor", "middle")
		e.Set("dominant-baseline", "middle")
		e.Set("font-size", path.Num(fonts.NodeLabelSize))
		e.Set("font-weight", strconv.Itoa(fonts.NodeLabelWeight))
		e.Set("class", "iso-node-label")
		e.Set("pointer-events", "none")
	}
	if op.Opacity != 1 {
		e.Set("opacity", path.Num(op.Opacity))
	}
	e.Text = op.Text
	return e
}
