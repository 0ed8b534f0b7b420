// internal/style/units.go
package style

import (
	"fmt"
	"strconv"
	"strings"
)

// -- Constants and Configuration --

const (
	BaseFontSize      = 16.0    // Fixed root font size used for em, rem and %.
	DefaultLineHeight = 1.2     // Multiplier for 'line-height: normal'.
	PointToPixel      = 1.33333 // CSS px per pt.
	BoldWeight        = 700
)

// ParseFontSizePx converts a CSS font-size to pixels. Missing or unparseable
// input falls back to BaseFontSize.
func ParseFontSizePx(value string) float64 {
	num, unit, ok := splitLength(value)
	if !ok || num <= 0 {
		return BaseFontSize
	}
	switch unit {
	case "pt":
		return num * PointToPixel
	case "em", "rem":
		return num * BaseFontSize
	case "%":
		return num * BaseFontSize / 100.0
	default:
		// px and unknown units are read as pixels.
		return num
	}
}

// LineHeightRatio resolves a CSS line-height to a unitless multiple of the font
// size. The boolean is false when the value cannot be interpreted.
func LineHeightRatio(value string, fontSizePx float64) (float64, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, false
	}
	if value == "normal" {
		return DefaultLineHeight, true
	}
	if fontSizePx <= 0 {
		fontSizePx = BaseFontSize
	}

	num, unit, ok := splitLength(value)
	if !ok {
		return 0, false
	}
	switch unit {
	case "":
		return num, true
	case "px":
		return num / fontSizePx, true
	case "%":
		return num / 100.0, true
	case "em":
		return num, true
	case "rem":
		return num * BaseFontSize / fontSizePx, true
	case "pt":
		return num * PointToPixel / fontSizePx, true
	default:
		return 0, false
	}
}

// IsBold reports whether a CSS font-weight is bold-equivalent (>= 700).
func IsBold(weight string) bool {
	weight = strings.ToLower(strings.TrimSpace(weight))
	switch weight {
	case "bold", "bolder":
		return true
	case "", "normal", "lighter":
		return false
	}
	if n, err := strconv.ParseFloat(weight, 64); err == nil {
		return n >= BoldWeight
	}
	return false
}

// IsLargeText applies the WCAG large-text rule: 18px and up, or 14px and up when bold.
func IsLargeText(fontSizePx float64, bold bool) bool {
	return fontSizePx >= 18 || (fontSizePx >= 14 && bold)
}

// splitLength separates the leading number of a CSS length from its unit suffix.
func splitLength(value string) (float64, string, bool) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return 0, "", false
	}
	num, rest, err := parseFloat(value)
	if err != nil {
		return 0, "", false
	}
	return num, strings.TrimSpace(rest), true
}

// parseFloat reads the numeric prefix of s and returns the unconsumed suffix.
func parseFloat(s string) (float64, string, error) {
	if len(s) == 0 {
		return 0, "", fmt.Errorf("empty string")
	}
	i := 0
	if s[0] == '-' || s[0] == '+' {
		i++
	}
	digits, decimalPoint := 0, false
	for ; i < len(s); i++ {
		ch := s[i]
		if ch >= '0' && ch <= '9' {
			digits++
		} else if ch == '.' && !decimalPoint {
			decimalPoint = true
		} else {
			break
		}
	}
	if digits == 0 {
		return 0, s, fmt.Errorf("invalid float format: %s", s)
	}
	result, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, s, fmt.Errorf("invalid float format: %s: %w", s, err)
	}
	if result == 0 {
		return 0, s[i:], nil
	}
	return result, s[i:], nil
}
