package sceneview

import (
	"strings"
	"testing"

	"github.com/matzehuels/isotower/pkg/core/scene"
	"github.com/matzehuels/isotower/pkg/diagram"
	"github.com/matzehuels/isotower/pkg/render/vector"
)

func sample(t *testing.T) *scene.Scene {
	t.Helper()
	s, err := scene.Compose(diagram.Sample())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func tierGroups(root *vector.Element) []*vector.Element {
	return root.Find(func(e *vector.Element) bool {
		_, ok := e.Get("data-tier")
		return ok && e.Name == "g"
	})
}

func TestDocumentPathsMatchOps(t *testing.T) {
	s := sample(t)
	root := Document(s, Presentation{}, Options{})

	var want []string
	for _, op := range s.Ops() {
		if !op.Kind.IsLabel() {
			want = append(want, op.Path)
		}
	}

	// The grid pattern path lives in defs; skip it.
	var got []string
	for _, g := range tierGroups(root) {
		got = append(got, vector.PathData(g)...)
	}
	if len(got) != len(want) {
		t.Fatalf("document has %d paths, scene has %d ops", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("path %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPresentationDoesNotChangePaths(t *testing.T) {
	s := sample(t)
	steady := vector.PathData(Document(s, Presentation{}, Options{Labels: true}))
	styled := vector.PathData(Document(s, Presentation{
		Hooks: true,
		Tiers: map[int]TierStyle{
			0: {OffsetY: 24, Scale: 1, Opacity: 0},
			1: {Scale: 1.02, Opacity: 1, Glow: true, OffsetY: -6},
		},
	}, Options{Labels: true, Grid: true}))

	if strings.Join(steady, "\n") != strings.Join(styled, "\n") {
		t.Error("presentation changed path data")
	}
}

func TestSteadyTierGroupsAreBare(t *testing.T) {
	root := Document(sample(t), Presentation{}, Options{})
	for _, g := range tierGroups(root) {
		for _, key := range []string{"transform", "opacity", "filter", "data-onenter"} {
			if v, ok := g.Get(key); ok {
				t.Errorf("steady tier group has %s=%q", key, v)
			}
		}
	}
}

func TestTierStyleAttributes(t *testing.T) {
	s := sample(t)
	root := Document(s, Presentation{
		Hooks: true,
		Tiers: map[int]TierStyle{
			1: {OffsetY: -6, Scale: 1.02, Opacity: 1, Glow: true, Class: "hovered"},
			0: {Scale: 1, Opacity: 0.45},
		},
	}, Options{})

	groups := tierGroups(root)
	if len(groups) != 2 {
		t.Fatalf("tier groups = %d, want 2", len(groups))
	}
	ground, upper := groups[0], groups[1]

	if v, _ := ground.Get("opacity"); v != "0.45" {
		t.Errorf("dimmed opacity = %q", v)
	}
	if v, _ := upper.Get("filter"); v != "url(#"+GlowFilterID+")" {
		t.Errorf("glow filter = %q", v)
	}
	tr, _ := upper.Get("transform")
	if !strings.HasPrefix(tr, "translate(0 -6.00) translate(") || !strings.Contains(tr, "scale(1.02)") {
		t.Errorf("transform = %q", tr)
	}
	if v, _ := upper.Get("class"); v != "iso-tier hovered" {
		t.Errorf("class = %q", v)
	}
	if v, _ := upper.Get("data-onenter"); v != "enter:1" {
		t.Errorf("data-onenter = %q", v)
	}
	if v, _ := upper.Get("data-onleave"); v != "leave:1" {
		t.Errorf("data-onleave = %q", v)
	}
}

func TestLabelsOptional(t *testing.T) {
	s := sample(t)
	count := func(root *vector.Element) int {
		return len(root.Find(func(e *vector.Element) bool { return e.Name == "text" }))
	}
	if n := count(Document(s, Presentation{}, Options{})); n != 0 {
		t.Errorf("labels disabled: %d text elements", n)
	}
	// Two tier names and four node labels.
	if n := count(Document(s, Presentation{}, Options{Labels: true})); n != 6 {
		t.Errorf("labels enabled: %d text elements, want 6", n)
	}
}

func TestDefs(t *testing.T) {
	out := string(Document(sample(t), Presentation{}, Options{Grid: true, ID: "abc"}).Bytes())
	for _, want := range []string{
		`id="` + ShadowFilterID + `"`,
		`id="` + GlowFilterID + `"`,
		`id="` + GridPatternID + `"`,
		`fill="url(#` + GridPatternID + `)"`,
		`data-diagram="abc"`,
		`viewBox="0 0 800.00 600.00"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("document missing %s", want)
		}
	}
}

func TestGroupsPerElement(t *testing.T) {
	root := Document(sample(t), Presentation{}, Options{})
	nodes := root.Find(func(e *vector.Element) bool {
		_, ok := e.Get("data-node")
		return ok
	})
	if len(nodes) != 4 {
		t.Errorf("node groups = %d, want 4", len(nodes))
	}
	pillars := root.Find(func(e *vector.Element) bool {
		_, ok := e.Get("data-pillar")
		return ok
	})
	if len(pillars) != 1 {
		t.Errorf("pillar groups = %d, want 1", len(pillars))
	}
}
