package vector

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"
)

func TestWriteTo(t *testing.T) {
	root := New("svg", "xmlns", "http://www.w3.org/2000/svg", "width", "10")
	root.Append(
		New("path", "d", "M0.00 0.00 L1.00 1.00 Z", "fill", "#fff"),
		&Element{Name: "text", Text: `a < b & "c"`},
		nil,
	)

	var buf bytes.Buffer
	n, err := root.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if int(n) != buf.Len() {
		t.Errorf("WriteTo() = %d, wrote %d", n, buf.Len())
	}

	want := `<svg xmlns="http://www.w3.org/2000/svg" width="10">
  <path d="M0.00 0.00 L1.00 1.00 Z" fill="#fff"/>
  <text>a &lt; b &amp; &#34;c&#34;</text>
</svg>
`
	if got := buf.String(); got != want {
		t.Errorf("WriteTo() =\n%s\nwant\n%s", got, want)
	}
	if !bytes.Equal(root.Bytes(), buf.Bytes()) {
		t.Error("Bytes() and WriteTo() differ")
	}
}

func TestOutputIsWellFormed(t *testing.T) {
	root := New("svg")
	style := &Element{Name: "style", Raw: ".a { x: 1 } ]]> trailing"}
	root.Append(style, New("g", "data-label", `<&>"'`).Append(New("path", "d", "M0 0 Z")))

	dec := xml.NewDecoder(bytes.NewReader(root.Bytes()))
	for {
		_, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("malformed output: %v\n%s", err, root.Bytes())
		}
	}
}

func TestSetGet(t *testing.T) {
	e := New("g", "a", "1", "b", "2")
	e.Set("a", "3").Set("c", "4")
	if v, _ := e.Get("a"); v != "3" {
		t.Errorf("a = %q, want 3", v)
	}
	if len(e.Attrs) != 3 || e.Attrs[0].Key != "a" || e.Attrs[2].Key != "c" {
		t.Errorf("attribute order = %+v", e.Attrs)
	}
	if _, ok := e.Get("missing"); ok {
		t.Error("Get(missing) reported ok")
	}
	if odd := New("g", "dangling"); len(odd.Attrs) != 0 {
		t.Errorf("odd kv produced %+v", odd.Attrs)
	}
}

func TestPathDataDocumentOrder(t *testing.T) {
	root := New("svg").Append(
		New("g").Append(New("path", "d", "A"), New("path", "d", "B")),
		New("path", "d", "C"),
		New("path", "fill", "none"),
		New("g").Append(New("g").Append(New("path", "d", "D"))),
	)
	got := strings.Join(PathData(root), ",")
	if got != "A,B,C,D" {
		t.Errorf("PathData() = %s, want A,B,C,D", got)
	}
}

func TestWalkSkip(t *testing.T) {
	root := New("svg").Append(
		New("defs").Append(New("path", "d", "hidden")),
		New("path", "d", "shown"),
	)
	var seen []string
	root.Walk(func(e *Element) bool {
		if d, ok := e.Get("d"); ok {
			seen = append(seen, d)
		}
		return e.Name != "defs"
	})
	if strings.Join(seen, ",") != "shown" {
		t.Errorf("Walk visited %v", seen)
	}
}

func TestFind(t *testing.T) {
	root := New("svg").Append(New("g", "class", "tier"), New("g", "class", "tier"), New("rect"))
	tiers := root.Find(func(e *Element) bool {
		c, _ := e.Get("class")
		return c == "tier"
	})
	if len(tiers) != 2 {
		t.Errorf("Find() = %d elements, want 2", len(tiers))
	}
}
