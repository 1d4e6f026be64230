// Package diagram defines the declarative description of a tiered 3D box
// diagram.
//
// A [Config] is built once per render by the caller (usually through
// pkg/io) and is treated as read-only by every package that consumes it.
// Only structural problems are reported by [Config.Validate]; out-of-range
// numbers, unknown colors and dangling tier references are absorbed by the
// renderer.
package diagram

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/matzehuels/isotower/pkg/errors"
)

// Theme selects the dark or light palette.
type Theme string

// Supported themes.
const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Size is a 2D extent in output units.
type Size struct {
	Width  float64 `json:"width" toml:"width" yaml:"width"`
	Height float64 `json:"height" toml:"height" yaml:"height"`
}

// Footprint is the floor-plane extent shared by every tier.
type Footprint struct {
	Width float64 `json:"width" toml:"width" yaml:"width"`
	Depth float64 `json:"depth" toml:"depth" yaml:"depth"`
}

// Point is a 2D screen offset.
type Point struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y"`
}

// Tier is one horizontal layer. Tier 0 is the ground tier.
type Tier struct {
	Name         string   `json:"name" toml:"name" yaml:"name"`
	Elevation    float64  `json:"elevation" toml:"elevation" yaml:"elevation"`
	FloorColor   string   `json:"floorColor,omitempty" toml:"floorColor,omitempty" yaml:"floorColor,omitempty"`
	FloorOpacity *float64 `json:"floorOpacity,omitempty" toml:"floorOpacity,omitempty" yaml:"floorOpacity,omitempty"`
	BorderColor  string   `json:"borderColor,omitempty" toml:"borderColor,omitempty" yaml:"borderColor,omitempty"`
}

// Node is one box placed on a tier's floor. X and Y are measured from the
// back corner of the floor.
type Node struct {
	Tier    int      `json:"tier" toml:"tier" yaml:"tier"`
	X       float64  `json:"x" toml:"x" yaml:"x"`
	Y       float64  `json:"y" toml:"y" yaml:"y"`
	Width   float64  `json:"width" toml:"width" yaml:"width"`
	Depth   float64  `json:"depth" toml:"depth" yaml:"depth"`
	Height  float64  `json:"height" toml:"height" yaml:"height"`
	Color   string   `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
	Label   string   `json:"label,omitempty" toml:"label,omitempty" yaml:"label,omitempty"`
	Opacity *float64 `json:"opacity,omitempty" toml:"opacity,omitempty" yaml:"opacity,omitempty"`
}

// Pillar is a vertical connector between two tiers at a floor position.
type Pillar struct {
	FromTier int     `json:"fromTier" toml:"fromTier" yaml:"fromTier"`
	ToTier   int     `json:"toTier" toml:"toTier" yaml:"toTier"`
	X        float64 `json:"x" toml:"x" yaml:"x"`
	Y        float64 `json:"y" toml:"y" yaml:"y"`
	Color    string  `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
}

// Config is a complete diagram description.
type Config struct {
	Theme        Theme      `json:"theme,omitempty" toml:"theme,omitempty" yaml:"theme,omitempty"`
	Canvas       *Size      `json:"canvas" toml:"canvas" yaml:"canvas"`
	Origin       Point      `json:"origin" toml:"origin" yaml:"origin"`
	CornerRadius float64    `json:"cornerRadius,omitempty" toml:"cornerRadius,omitempty" yaml:"cornerRadius,omitempty"`
	FloorSize    *Footprint `json:"floorSize" toml:"floorSize" yaml:"floorSize"`
	Tiers        []Tier     `json:"tiers" toml:"tiers" yaml:"tiers"`
	Nodes        []Node     `json:"nodes,omitempty" toml:"nodes,omitempty" yaml:"nodes,omitempty"`
	Pillars      []Pillar   `json:"pillars,omitempty" toml:"pillars,omitempty" yaml:"pillars,omitempty"`
}

// Validate reports structural problems that make the config unrenderable.
// The returned error has code INVALID_CONFIG or INVALID_THEME.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "config is required")
	}
	if _, ok := ParseTheme(string(c.Theme)); !ok {
		return errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q (want dark or light)", c.Theme)
	}
	if c.Canvas == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas is required")
	}
	if !positive(c.Canvas.Width) || !positive(c.Canvas.Height) {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas must have positive width and height, got %gx%g", c.Canvas.Width, c.Canvas.Height)
	}
	if c.FloorSize == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "floorSize is required")
	}
	if !positive(c.FloorSize.Width) || !positive(c.FloorSize.Depth) {
		return errors.New(errors.ErrCodeInvalidConfig, "floorSize must have positive width and depth, got %gx%g", c.FloorSize.Width, c.FloorSize.Depth)
	}
	if len(c.Tiers) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one tier is required")
	}
	return nil
}

// ThemeOrDefault returns the configured theme, or dark when unset.
func (c *Config) ThemeOrDefault() Theme {
	t, _ := ParseTheme(string(c.Theme))
	return t
}

// Hash returns a stable SHA-256 hex digest of the config. Every field takes
// part, including non-finite numbers: NaN, +Inf and -Inf hash as themselves.
func (c *Config) Hash() string {
	h := sha256.New()
	writeCanonical(h, reflect.ValueOf(c))
	return hex.EncodeToString(h.Sum(nil))
}

// writeCanonical encodes v field by field. Nil and empty slices encode the
// same, so a config survives an export and import round trip unchanged.
func writeCanonical(w io.Writer, v reflect.Value) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			io.WriteString(w, "null")
			return
		}
		writeCanonical(w, v.Elem())
	case reflect.Struct:
		t := v.Type()
		io.WriteString(w, "{")
		for i := range v.NumField() {
			io.WriteString(w, t.Field(i).Name+":")
			writeCanonical(w, v.Field(i))
			io.WriteString(w, ",")
		}
		io.WriteString(w, "}")
	case reflect.Slice:
		io.WriteString(w, "["+strconv.Itoa(v.Len())+"]")
		for i := range v.Len() {
			writeCanonical(w, v.Index(i))
			io.WriteString(w, ",")
		}
	case reflect.String:
		io.WriteString(w, strconv.Quote(v.String()))
	case reflect.Float32, reflect.Float64:
		io.WriteString(w, strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		io.WriteString(w, strconv.FormatInt(v.Int(), 10))
	case reflect.Bool:
		io.WriteString(w, strconv.FormatBool(v.Bool()))
	default:
		io.WriteString(w, v.Kind().String())
	}
}

// ParseTheme normalizes s. Empty input selects dark.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case "", ThemeDark:
		return ThemeDark, true
	case ThemeLight:
		return ThemeLight, true
	}
	return ThemeDark, false
}

// FloorAlpha returns the floor opacity clamped to [0, 1], defaulting to 1.
func (t Tier) FloorAlpha() float64 { return alpha(t.FloorOpacity) }

// Alpha returns the node opacity clamped to [0, 1], defaulting to 1.
func (n Node) Alpha() float64 { return alpha(n.Opacity) }

// Key is the painter's sort key of the node within its tier.
func (n Node) Key() float64 { return (n.X + n.Width) + (n.Y + n.Depth) }

// Finite returns a copy of n with NaN and infinite numbers replaced by 0 and
// the opacity clamped, safe to encode as JSON.
func (n Node) Finite() Node {
	n.X, n.Y = finite(n.X), finite(n.Y)
	n.Width, n.Depth, n.Height = finite(n.Width), finite(n.Depth), finite(n.Height)
	if n.Opacity != nil {
		n.Opacity = Float(n.Alpha())
	}
	return n
}

// Finite returns a copy of p with NaN and infinite coordinates replaced by 0.
func (p Pillar) Finite() Pillar {
	p.X, p.Y = finite(p.X), finite(p.Y)
	return p
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func alpha(p *float64) float64 {
	if p == nil || math.IsNaN(*p) {
		return 1
	}
	return math.Max(0, math.Min(1, *p))
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
