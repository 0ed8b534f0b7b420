// internal/style/color.go
package style

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Color represents an RGBA color. Alpha only matters for transparency detection;
// contrast is always computed on the opaque RGB channels.
type Color struct {
	R, G, B, A uint8
}

var (
	White = Color{255, 255, 255, 255}
	Black = Color{0, 0, 0, 255}
)

// cssColors is the fixed named-color table. Anything else must be given as hex or rgb().
var cssColors = map[string]Color{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"yellow":      {255, 255, 0, 255},
	"cyan":        {0, 255, 255, 255},
	"magenta":     {255, 0, 255, 255},
	"transparent": {0, 0, 0, 0},
}

// IsTransparent reports whether the color has zero alpha.
func (c Color) IsTransparent() bool {
	return c.A == 0
}

// ParseColor converts a CSS color value into a Color. The boolean is false for
// unrecognized syntax and the caller is expected to skip the value.
func ParseColor(value string) (Color, bool) {
	value = strings.TrimSpace(strings.ToLower(value))

	if color, ok := cssColors[value]; ok {
		return color, true
	}

	if strings.HasPrefix(value, "#") {
		return parseHexColor(value)
	}

	if strings.HasPrefix(value, "rgb") {
		return parseRGBColor(value)
	}

	return Color{}, false
}

func parseHexColor(hex string) (Color, bool) {
	hex = strings.TrimPrefix(hex, "#")
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return Color{}, false
		}
	}

	switch len(hex) {
	case 3:
		return Color{
			R: hexDigit(hex[0]) * 17,
			G: hexDigit(hex[1]) * 17,
			B: hexDigit(hex[2]) * 17,
			A: 255,
		}, true
	case 6:
		return Color{
			R: hexDigit(hex[0])<<4 | hexDigit(hex[1]),
			G: hexDigit(hex[2])<<4 | hexDigit(hex[3]),
			B: hexDigit(hex[4])<<4 | hexDigit(hex[5]),
			A: 255,
		}, true
	default:
		return Color{}, false
	}
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func hexDigit(c byte) uint8 {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

var rgbRegex = regexp.MustCompile(`^rgba?\s*\((.*)\)$`)

// parseRGBColor handles rgb(r,g,b) and rgba(r,g,b,a), comma or space separated.
func parseRGBColor(value string) (Color, bool) {
	matches := rgbRegex.FindStringSubmatch(value)
	if len(matches) != 2 {
		return Color{}, false
	}

	parts := strings.FieldsFunc(matches[1], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(parts) < 3 || len(parts) > 4 {
		return Color{}, false
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		v, ok := parseColorComponent(parts[i])
		if !ok {
			return Color{}, false
		}
		channels[i] = v
	}

	a := uint8(255)
	if len(parts) == 4 {
		alpha, ok := parseAlpha(parts[3])
		if !ok {
			return Color{}, false
		}
		a = alpha
	}

	return Color{R: channels[0], G: channels[1], B: channels[2], A: a}, true
}

func parseColorComponent(value string) (uint8, bool) {
	value = strings.TrimSpace(value)

	if strings.HasSuffix(value, "%") {
		percent, err := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		if err != nil {
			return 0, false
		}
		return uint8(clamp(percent/100.0*255.0+0.5, 0, 255)), true
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(val) {
		return 0, false
	}
	return uint8(clamp(val+0.5, 0, 255)), true
}

func parseAlpha(value string) (uint8, bool) {
	value = strings.TrimSpace(value)
	scale := 1.0
	if strings.HasSuffix(value, "%") {
		value = strings.TrimSuffix(value, "%")
		scale = 0.01
	}
	val, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(val) {
		return 0, false
	}
	return uint8(clamp(val*scale*255.0+0.5, 0, 255)), true
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// -- WCAG --

// RelativeLuminance computes the WCAG 2.x relative luminance in [0, 1].
func RelativeLuminance(c Color) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(channel uint8) float64 {
	c := float64(channel) / 255.0
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// ContrastRatio returns the WCAG contrast ratio between two colors, in [1, 21].
// The result does not depend on argument order.
func ContrastRatio(a, b Color) float64 {
	l1, l2 := RelativeLuminance(a), RelativeLuminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}
