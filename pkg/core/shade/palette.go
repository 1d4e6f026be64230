package shade

import "strings"

// Mode selects the dark or light palette.
type Mode string

// Supported modes.
const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

// ParseMode returns the mode named by s. Empty input selects [Dark].
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Dark, "":
		return Dark, true
	case Light:
		return Light, true
	}
	return Dark, false
}

// Faces holds the fill colors of the three visible faces of a box.
type Faces struct {
	Top   string `json:"top"`
	Right string `json:"right"`
	Left  string `json:"left"`
}

// Default is the neutral accent used for unknown color names.
const Default = "slate"

// floorTint is how far a named floor color pulls the floor palette toward
// its accent.
const floorTint = 0.3

var accents = map[Mode]map[string]Faces{
	Dark: {
		"blue":    {Top: "#3b82f6", Right: "#2563eb", Left: "#1d4ed8"},
		"violet":  {Top: "#8b5cf6", Right: "#7c3aed", Left: "#6d28d9"},
		"cyan":    {Top: "#06b6d4", Right: "#0891b2", Left: "#0e7490"},
		"emerald": {Top: "#10b981", Right: "#059669", Left: "#047857"},
		"amber":   {Top: "#f59e0b", Right: "#d97706", Left: "#b45309"},
		"rose":    {Top: "#f43f5e", Right: "#e11d48", Left: "#be123c"},
		"slate":   {Top: "#64748b", Right: "#475569", Left: "#334155"},
	},
	Light: {
		"blue":    {Top: "#93c5fd", Right: "#60a5fa", Left: "#3b82f6"},
		"violet":  {Top: "#c4b5fd", Right: "#a78bfa", Left: "#8b5cf6"},
		"cyan":    {Top: "#67e8f9", Right: "#22d3ee", Left: "#06b6d4"},
		"emerald": {Top: "#6ee7b7", Right: "#34d399", Left: "#10b981"},
		"amber":   {Top: "#fcd34d", Right: "#fbbf24", Left: "#f59e0b"},
		"rose":    {Top: "#fda4af", Right: "#fb7185", Left: "#f43f5e"},
		"slate":   {Top: "#cbd5e1", Right: "#94a3b8", Left: "#64748b"},
	},
}

var floors = map[Mode]Faces{
	Dark:  {Top: "#1e293b", Right: "#0f172a", Left: "#0b1120"},
	Light: {Top: "#f1f5f9", Right: "#e2e8f0", Left: "#cbd5e1"},
}

type chrome struct {
	stroke, label, background, grid, shadow string
}

var chromes = map[Mode]chrome{
	Dark:  {stroke: "#0f172a", label: "#e2e8f0", background: "#020617", grid: "#1e293b", shadow: "#000000"},
	Light: {stroke: "#475569", label: "#0f172a", background: "#f8fafc", grid: "#e2e8f0", shadow: "#334155"},
}

// Accents returns the supported accent names in a stable order.
func Accents() []string {
	return []string{"blue", "violet", "cyan", "emerald", "amber", "rose", "slate"}
}

// IsAccent reports whether name is a known accent.
func IsAccent(name string) bool {
	_, ok := accents[Dark][normalize(name)]
	return ok
}

// FacesFor returns the face colors for the named accent in mode.
func FacesFor(name string, mode Mode) Faces {
	table := accents[modeOrDark(mode)]
	if f, ok := table[normalize(name)]; ok {
		return f
	}
	return table[Default]
}

// FloorFaces returns the floor slab colors for a tier. An empty name selects
// the plain floor palette; any other name tints it toward that accent.
func FloorFaces(name string, mode Mode) Faces {
	base := floors[modeOrDark(mode)]
	if strings.TrimSpace(name) == "" {
		return base
	}
	accent := FacesFor(name, mode)
	return Faces{
		Top:   Interpolate(base.Top, accent.Top, floorTint),
		Right: Interpolate(base.Right, accent.Right, floorTint),
		Left:  Interpolate(base.Left, accent.Left, floorTint),
	}
}

// Stroke returns the outline color used for box edges.
func Stroke(mode Mode) string { return chromes[modeOrDark(mode)].stroke }

// Label returns the text color for labels.
func Label(mode Mode) string { return chromes[modeOrDark(mode)].label }

// Background returns the canvas fill.
func Background(mode Mode) string { return chromes[modeOrDark(mode)].background }

// Grid returns the background grid line color.
func Grid(mode Mode) string { return chromes[modeOrDark(mode)].grid }

// Shadow returns the ground shadow fill.
func Shadow(mode Mode) string { return chromes[modeOrDark(mode)].shadow }

// Border returns the stroke color for a tier border. Empty names use the
// default stroke.
func Border(name string, mode Mode) string {
	if strings.TrimSpace(name) == "" {
		return Stroke(mode)
	}
	return FacesFor(name, mode).Top
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func modeOrDark(m Mode) Mode {
	if m == Light {
		return Light
	}
	return Dark
}
