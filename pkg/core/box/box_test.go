package box

import (
	"math"
	"regexp"
	"strconv"
	"testing"

	"github.com/matzehuels/isotower/pkg/core/path"
)

var pathRe = regexp.MustCompile(`^M-?\d+\.\d{2} -?\d+\.\d{2}( L-?\d+\.\d{2} -?\d+\.\d{2})* Z$`)

func assertValidPath(t *testing.T, name, d string) {
	t.Helper()
	if !pathRe.MatchString(d) {
		t.Errorf("%s: invalid path data %q", name, d)
	}
}

func TestBuildDeterministic(t *testing.T) {
	specs := []Spec{
		{Width: 80, Depth: 50, Height: 20, OriginX: 400, OriginY: 300},
		{Width: 80, Depth: 50, Height: 20, OriginX: 12.5, OriginY: -3, Radius: 8},
		{Width: 33.3, Depth: 17.1, Height: 9.9, Radius: 100},
	}
	for _, s := range specs {
		a, b := Build(s), Build(s)
		if a.Top != b.Top || a.Left != b.Left || a.Right != b.Right || a.Outline != b.Outline {
			t.Errorf("Build(%+v) flat faces differ between calls", s)
		}
		ca, cb := a.Corners(), b.Corners()
		for i := range ca {
			if len(ca[i]) != len(cb[i]) {
				t.Fatalf("corner %d length differs", i)
			}
			for j := range ca[i] {
				if ca[i][j] != cb[i][j] {
					t.Errorf("corner %d segment %d differs: %+v vs %+v", i, j, ca[i][j], cb[i][j])
				}
			}
		}
	}
}

func TestBuildSharpCorners(t *testing.T) {
	g := Build(Spec{Width: 80, Depth: 50, Height: 20})

	for name, d := range map[string]string{"top": g.Top, "left": g.Left, "right": g.Right, "outline": g.Outline} {
		assertValidPath(t, name, d)
		if n := path.Count(d); n != 4 {
			t.Errorf("%s has %d points, want 4", name, n)
		}
	}
	if n := g.Segments(); n != 0 {
		t.Errorf("sharp box has %d corner segments, want 0", n)
	}
	if g.Radius != 0 {
		t.Errorf("Radius = %v, want 0", g.Radius)
	}
}

func TestBuildRoundedCorners(t *testing.T) {
	g := Build(Spec{Width: 80, Depth: 50, Height: 20, Radius: 8})

	corners := g.Corners()
	if len(corners) != 4 {
		t.Fatalf("got %d corner groups, want 4", len(corners))
	}
	for i, c := range corners {
		if len(c) != CornerSegments {
			t.Errorf("corner %d has %d segments, want %d", i, len(c), CornerSegments)
		}
		for j, s := range c {
			if s.Intensity < 0 || s.Intensity > 1 {
				t.Errorf("corner %d segment %d intensity %v outside [0,1]", i, j, s.Intensity)
			}
			assertValidPath(t, "segment", s.Path)
			if n := path.Count(s.Path); n != 4 {
				t.Errorf("segment has %d points, want 4", n)
			}
		}
	}
	if n := path.Count(g.Top); n != 4*ArcSamples {
		t.Errorf("rounded top has %d points, want %d", n, 4*ArcSamples)
	}
	if n := path.Count(g.Outline); n != 4*ArcSamples {
		t.Errorf("rounded outline has %d points, want %d", n, 4*ArcSamples)
	}
	assertValidPath(t, "left", g.Left)
	assertValidPath(t, "right", g.Right)
}

func TestCornerSegmentsCoverSweep(t *testing.T) {
	g := Build(Spec{Width: 40, Depth: 40, Height: 10, Radius: 10})

	starts := map[string]float64{"fl": 180, "fr": 270, "bl": 90, "br": 0}
	groups := map[string][]Segment{
		"fl": g.CornerFrontLeft, "fr": g.CornerFrontRight,
		"bl": g.CornerBackLeft, "br": g.CornerBackRight,
	}
	for name, segs := range groups {
		seen := map[float64]bool{}
		for _, s := range segs {
			rel := math.Mod(s.Angle-starts[name]+360, 360)
			if rel <= 0 || rel >= 90 {
				t.Errorf("%s segment angle %v outside its quarter", name, s.Angle)
			}
			seen[math.Round(rel*10)/10] = true
		}
		if len(seen) != CornerSegments {
			t.Errorf("%s has %d distinct sweep positions, want %d", name, len(seen), CornerSegments)
		}
	}
}

func TestCornerSegmentsFarToNear(t *testing.T) {
	g := Build(Spec{Width: 40, Depth: 40, Height: 10, Radius: 10})
	for _, segs := range g.Corners() {
		for i := 1; i < len(segs); i++ {
			if facing(segs[i].Angle) > facing(segs[i-1].Angle)+1e-12 {
				t.Errorf("segment %d (angle %v) is farther than segment %d (angle %v)",
					i, segs[i].Angle, i-1, segs[i-1].Angle)
			}
		}
	}
}

func TestRadiusClamping(t *testing.T) {
	tests := []struct {
		w, d, r float64
	}{
		{80, 50, 8},
		{80, 50, 25},
		{80, 50, 26},
		{80, 50, 1000},
		{10, 60, 7},
		{0, 60, 7},
		{math.NaN(), 60, 7},
	}
	for _, tt := range tests {
		g := Build(Spec{Width: tt.w, Depth: tt.d, Height: 5, Radius: tt.r})
		limit := math.Min(clampDim(tt.w), clampDim(tt.d)) / 2
		if g.Radius > limit {
			t.Errorf("Build(w=%v, d=%v, r=%v).Radius = %v exceeds %v", tt.w, tt.d, tt.r, g.Radius, limit)
		}
		if got := ClampRadius(tt.r, tt.w, tt.d); got != g.Radius {
			t.Errorf("ClampRadius = %v, Build used %v", got, g.Radius)
		}
	}
}

func TestClampedRadiusStaysInsideFootprint(t *testing.T) {
	// With the radius clamped to half the depth, the rounded outline must not
	// extend past the sharp outline's screen bounds.
	sharp := Build(Spec{Width: 80, Depth: 50, Height: 0})
	round := Build(Spec{Width: 80, Depth: 50, Height: 0, Radius: 500})

	minX, maxX := extentX(t, sharp.Outline)
	rMinX, rMaxX := extentX(t, round.Outline)
	if rMinX < minX-0.01 || rMaxX > maxX+0.01 {
		t.Errorf("rounded outline x-extent [%v, %v] exceeds sharp [%v, %v]", rMinX, rMaxX, minX, maxX)
	}
}

var numRe = regexp.MustCompile(`[ML](-?\d+\.\d+) (-?\d+\.\d+)`)

func extentX(t *testing.T, d string) (lo, hi float64) {
	t.Helper()
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, m := range numRe.FindAllStringSubmatch(d, -1) {
		x, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			t.Fatalf("parse %q: %v", m[1], err)
		}
		lo, hi = math.Min(lo, x), math.Max(hi, x)
	}
	return lo, hi
}

func TestDegenerateBoxes(t *testing.T) {
	specs := map[string]Spec{
		"zero width":    {Width: 0, Depth: 50, Height: 20, Radius: 8},
		"zero depth":    {Width: 80, Depth: 0, Height: 20, Radius: 8},
		"zero height":   {Width: 80, Depth: 50, Height: 0, Radius: 8},
		"zero radius":   {Width: 80, Depth: 50, Height: 20, Radius: 0},
		"all zero":      {},
		"negative":      {Width: -5, Depth: -5, Height: -5, Radius: -2},
		"nan origin":    {Width: 5, Depth: 5, Height: 5, OriginX: math.NaN()},
		"huge radius":   {Width: 1, Depth: 1, Height: 1, Radius: math.Inf(1)},
		"rounded cube":  {Width: 10, Depth: 10, Height: 10, Radius: 5},
		"infinite size": {Width: math.Inf(1), Depth: 4, Height: 4},
	}
	for name, s := range specs {
		t.Run(name, func(t *testing.T) {
			g := Build(s)
			for face, d := range map[string]string{"top": g.Top, "left": g.Left, "right": g.Right, "outline": g.Outline} {
				assertValidPath(t, face, d)
			}
			for _, c := range g.Corners() {
				for _, seg := range c {
					assertValidPath(t, "segment", seg.Path)
				}
			}
		})
	}
}

func TestTopCenter(t *testing.T) {
	g := Build(Spec{Width: 10, Depth: 10, Height: 4, OriginX: 100, OriginY: 100})
	if math.Abs(g.TopCenter.X-100) > 1e-9 {
		t.Errorf("TopCenter.X = %v, want 100 for a square footprint", g.TopCenter.X)
	}
	if g.TopCenter.Y >= 100 {
		t.Errorf("TopCenter.Y = %v, should be above the origin", g.TopCenter.Y)
	}
	if g.Min.X > g.Max.X || g.Min.Y > g.Max.Y {
		t.Errorf("bounds inverted: %+v %+v", g.Min, g.Max)
	}
}

func TestPaintOrder(t *testing.T) {
	if len(PaintOrder) != 7 {
		t.Fatalf("PaintOrder has %d parts, want 7", len(PaintOrder))
	}
	if PaintOrder[len(PaintOrder)-1] != PartTop {
		t.Error("top must be painted last")
	}
	g := Build(Spec{Width: 20, Depth: 20, Height: 5, Radius: 4})
	for _, p := range PaintOrder {
		if p.IsCorner() {
			if len(g.Corner(p)) != CornerSegments {
				t.Errorf("%s: %d segments", p, len(g.Corner(p)))
			}
			if g.Face(p) != "" {
				t.Errorf("%s: corner returned a face", p)
			}
		} else if g.Face(p) == "" {
			t.Errorf("%s: empty face", p)
		}
		if p.String() == "" {
			t.Errorf("part %d has no name", p)
		}
	}
}
