package shade

import "math"

// KeyLightAngle is the floor-plane direction, in degrees, the key light
// shines from. Angles follow the box frame: 180° faces the left face's
// normal (-x), 270° the right face's normal (-y).
const KeyLightAngle = 300.0

const (
	leftNormal  = 180.0
	rightNormal = 270.0
)

var (
	intensityLo = lambert(leftNormal)
	intensityHi = lambert(rightNormal)
)

// Intensity returns the brightness in [0, 1] of a vertical surface whose
// outward normal points at angle degrees. The left face normal maps to 0
// and the right face normal to 1, so lit corners meet both flat faces
// without a seam.
func Intensity(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	t := (lambert(angle) - intensityLo) / (intensityHi - intensityLo)
	return math.Max(0, math.Min(1, t))
}

// SegmentFill returns the color of a corner segment lit at intensity.
func SegmentFill(f Faces, intensity float64) string {
	return Interpolate(f.Left, f.Right, intensity)
}

func lambert(angle float64) float64 {
	return math.Cos((angle - KeyLightAngle) * math.Pi / 180)
}
