// Package fonts provides the typography used for diagram labels.
//
// Labels are drawn with system fonts only; nothing is embedded, so output
// documents stay small and render the same in browsers and rsvg-convert.
package fonts

import "fmt"

// FontFamily is the preferred CSS font-family name for labels.
const FontFamily = "Inter"

// FallbackFontFamily is the full font stack written into documents.
const FallbackFontFamily = `Inter, 'Segoe UI', 'Helvetica Neue', Arial, sans-serif`

// Label sizes in output units.
const (
	TierLabelSize = 13.0
	NodeLabelSize = 11.0
)

// Label weights.
const (
	TierLabelWeight = 600
	NodeLabelWeight = 500
)

// CSS returns a style rule applying the font stack to the given class.
func CSS(class string) string {
	return fmt.Sprintf(".%s { font-family: %s; }", class, FallbackFontFamily)
}
