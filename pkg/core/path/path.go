// Package path writes SVG path data with a fixed, byte-stable number format.
package path

import (
	"strconv"
	"strings"

	"github.com/matzehuels/isotower/pkg/core/iso"
)

// Precision is the number of decimals written for every coordinate.
const Precision = 2

// Builder accumulates path commands.
type Builder struct {
	sb strings.Builder
}

// MoveTo starts a new subpath at p.
func (b *Builder) MoveTo(p iso.Point) *Builder {
	b.cmd('M', p)
	return b
}

// LineTo draws a straight segment to p.
func (b *Builder) LineTo(p iso.Point) *Builder {
	b.cmd('L', p)
	return b
}

// Close closes the current subpath.
func (b *Builder) Close() *Builder {
	if b.sb.Len() > 0 {
		b.sb.WriteString(" Z")
	}
	return b
}

// String returns the accumulated path data.
func (b *Builder) String() string { return b.sb.String() }

func (b *Builder) cmd(c byte, p iso.Point) {
	if b.sb.Len() > 0 {
		b.sb.WriteByte(' ')
	}
	b.sb.WriteByte(c)
	b.sb.WriteString(Num(p.X))
	b.sb.WriteByte(' ')
	b.sb.WriteString(Num(p.Y))
}

// Polygon returns a closed path through pts. An empty input yields "".
func Polygon(pts ...iso.Point) string {
	if len(pts) == 0 {
		return ""
	}
	var b Builder
	b.MoveTo(pts[0])
	for _, p := range pts[1:] {
		b.LineTo(p)
	}
	return b.Close().String()
}

// Num formats v with [Precision] decimals. Negative zero prints as "0.00"
// and non-finite values print as "0.00".
func Num(v float64) string {
	s := strconv.FormatFloat(v, 'f', Precision, 64)
	switch s {
	case "-0.00", "NaN", "+Inf", "-Inf":
		return "0.00"
	}
	return s
}

// Count returns the number of vertices (M and L commands) in d.
func Count(d string) int {
	return strings.Count(d, "M") + strings.Count(d, "L")
}

// Closed reports whether every subpath in d is closed.
func Closed(d string) bool {
	return d != "" && strings.Count(d, "M") == strings.Count(d, "Z")
}
