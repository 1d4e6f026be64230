package diagram

// Float returns a pointer to v, for the optional opacity fields.
func Float(v float64) *float64 { return &v }

// Sample returns a small two-tier diagram: a ground tier with three services
// and an upper tier with a gateway, joined by a pillar.
func Sample() *Config {
	return &Config{
		Theme:        ThemeDark,
		Canvas:       &Size{Width: 800, Height: 600},
		Origin:       Point{X: 400, Y: 520},
		CornerRadius: 6,
		FloorSize:    &Footprint{Width: 400, Depth: 280},
		Tiers: []Tier{
			{Name: "Data", Elevation: 0},
			{Name: "Edge", Elevation: 90, FloorColor: "violet", FloorOpacity: Float(0.85), BorderColor: "violet"},
		},
		Nodes: []Node{
			{Tier: 0, X: 40, Y: 40, Width: 80, Depth: 50, Height: 30, Color: "blue", Label: "api"},
			{Tier: 0, X: 200, Y: 60, Width: 90, Depth: 60, Height: 40, Color: "emerald", Label: "postgres"},
			{Tier: 0, X: 120, Y: 170, Width: 70, Depth: 50, Height: 24, Color: "amber", Label: "redis"},
			{Tier: 1, X: 150, Y: 100, Width: 100, Depth: 60, Height: 26, Color: "rose", Label: "gateway"},
		},
		Pillars: []Pillar{
			{FromTier: 0, ToTier: 1, X: 60, Y: 240},
		},
	}
}
