package theme

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	black = colorful.Color{}
	white = colorful.Color{R: 1, G: 1, B: 1}
)

// parse returns the color for a #rrggbb string.
func parse(hex string) (colorful.Color, bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return colorful.Color{}, false
	}
	c, err := colorful.Hex(hex)
	return c, err == nil
}

// scale multiplies each channel by factor and keeps it at or above floor.
// Used to sink a category color into a dark background.
func scale(hex string, factor, floor float64) string {
	c, ok := parse(hex)
	if !ok {
		return hex
	}
	ch := func(v float64) float64 { return math.Max(v*factor, floor) }
	return colorful.Color{R: ch(c.R), G: ch(c.G), B: ch(c.B)}.Clamped().Hex()
}

func darkenColor(hex string) string { return scale(hex, 0.50, 40.0/255) }

// muteColor is darker than darkenColor; it marks schedules that ended.
func muteColor(hex string) string { return scale(hex, 0.30, 30.0/255) }

// alternateShade nudges a row background for the cursor.
func alternateShade(hex string, isLight bool) string {
	c, ok := parse(hex)
	if !ok {
		return hex
	}
	if isLight {
		return c.BlendRgb(black, 0.10).Clamped().Hex()
	}
	return c.BlendRgb(white, 0.30).Clamped().Hex()
}

// blendColors moves a toward b by ratio in RGB space.
func blendColors(a, b string, ratio float64) string {
	ca, okA := parse(a)
	cb, okB := parse(b)
	if !okA || !okB {
		return a
	}
	ratio = math.Min(math.Max(ratio, 0), 1)
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}

// relativeLuminance is the WCAG luminance of a hex color, 0 when invalid.
func relativeLuminance(hex string) float64 {
	c, ok := parse(hex)
	if !ok {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func contrastRatio(a, b string) float64 {
	hi, lo := relativeLuminance(a), relativeLuminance(b)
	if hi < lo {
		hi, lo = lo, hi
	}
	return (hi + 0.05) / (lo + 0.05)
}

// chooseTextColor picks whichever text color reads better on bg.
func chooseTextColor(bg, lightText, darkText string) string {
	if contrastRatio(bg, lightText) >= contrastRatio(bg, darkText) {
		return lightText
	}
	return darkText
}

func isLightTheme(bg string) bool {
	return relativeLuminance(bg) > 0.55
}
