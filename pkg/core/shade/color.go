package shade

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Hex formats c as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Parse converts a #rgb or #rrggbb string to channels. The leading '#' is
// optional. Malformed input yields black.
func Parse(s string) RGB {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	switch len(s) {
	case 6:
		r, ok1 := hexByte(s[0], s[1])
		g, ok2 := hexByte(s[2], s[3])
		b, ok3 := hexByte(s[4], s[5])
		if ok1 && ok2 && ok3 {
			return RGB{r, g, b}
		}
	case 3:
		r, ok1 := hexByte(s[0], s[0])
		g, ok2 := hexByte(s[1], s[1])
		b, ok3 := hexByte(s[2], s[2])
		if ok1 && ok2 && ok3 {
			return RGB{r, g, b}
		}
	}
	return RGB{}
}

func hexByte(hi, lo byte) (uint8, bool) {
	h, ok1 := hexNibble(hi)
	l, ok2 := hexNibble(lo)
	return h<<4 | l, ok1 && ok2
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Interpolate blends a toward b channel by channel. t is clamped to [0, 1];
// t = 0 yields a and t = 1 yields b, both normalized to #rrggbb.
func Interpolate(a, b string, t float64) string {
	return Blend(Parse(a), Parse(b), t).Hex()
}

// Blend is [Interpolate] over parsed colors.
func Blend(a, b RGB, t float64) RGB {
	switch {
	case math.IsNaN(t) || t <= 0:
		return a
	case t >= 1:
		return b
	}
	c := a.colorful().BlendRgb(b.colorful(), t).Clamped()
	return RGB{channel(c.R), channel(c.G), channel(c.B)}
}

func channel(v float64) uint8 {
	return uint8(math.Round(v * 255))
}
