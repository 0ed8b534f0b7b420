package style

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected Color
		ok       bool
	}{
		// Keywords
		{"red", Color{R: 255, G: 0, B: 0, A: 255}, true},
		{"Magenta", Color{R: 255, G: 0, B: 255, A: 255}, true},
		{"green", Color{R: 0, G: 128, B: 0, A: 255}, true},
		{"transparent", Color{R: 0, G: 0, B: 0, A: 0}, true},
		// Hex
		{"#ff0099", Color{R: 0xff, G: 0x00, B: 0x99, A: 255}, true},
		{"#F09", Color{R: 0xff, G: 0x00, B: 0x99, A: 255}, true},
		// RGB/RGBA
		{"rgb(255, 0, 153)", Color{R: 255, G: 0, B: 153, A: 255}, true},
		{"rgb(170 170 170)", Color{R: 170, G: 170, B: 170, A: 255}, true},
		{"rgba(0, 0, 0, 0.5)", Color{R: 0, G: 0, B: 0, A: 128}, true},
		{"rgba(10, 20, 30, 0)", Color{R: 10, G: 20, B: 30, A: 0}, true},
		{"rgb(100%, 50%, 0%)", Color{R: 255, G: 128, B: 0, A: 255}, true},
		// Invalid
		{"invalidcolor", Color{}, false},
		{"orange", Color{}, false},
		{"#12345", Color{}, false},
		{"#ff009988", Color{}, false},
		{"#gggggg", Color{}, false},
		{"rgb(1, 2)", Color{}, false},
		{"rgb(a, b, c)", Color{}, false},
		{"hsl(0, 0%, 0%)", Color{}, false},
		{"", Color{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			actual, ok := ParseColor(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, actual)
			}
		})
	}
}

func TestContrastRatio(t *testing.T) {
	t.Run("black on white is 21", func(t *testing.T) {
		assert.InDelta(t, 21.0, ContrastRatio(White, Black), 1e-9)
		assert.InDelta(t, 21.0, ContrastRatio(Black, White), 1e-9)
	})

	t.Run("identical colors are 1", func(t *testing.T) {
		for _, c := range []Color{White, Black, {R: 170, G: 170, B: 170, A: 255}, {R: 12, G: 200, B: 99, A: 255}} {
			assert.InDelta(t, 1.0, ContrastRatio(c, c), 1e-12)
		}
	})

	t.Run("known grays", func(t *testing.T) {
		gray170 := Color{R: 170, G: 170, B: 170, A: 255}
		assert.InDelta(t, 2.32, ContrastRatio(gray170, White), 0.01)

		c200 := Color{R: 200, G: 200, B: 200, A: 255}
		c220 := Color{R: 220, G: 220, B: 220, A: 255}
		assert.InDelta(t, 1.22, ContrastRatio(c200, c220), 0.01)
	})

	t.Run("luminance bounds", func(t *testing.T) {
		assert.InDelta(t, 0.0, RelativeLuminance(Black), 1e-12)
		assert.InDelta(t, 1.0, RelativeLuminance(White), 1e-12)
	})
}

func TestParseFontSizePx(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"10px", 10.0},
		{"12pt", 15.99996},
		{"1.5em", 24.0},
		{"2rem", 32.0},
		{"75%", 12.0},
		{"14", 14.0},
		{"", 16.0},
		{"large", 16.0},
		{"-4px", 16.0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParseFontSizePx(tt.input), 1e-6)
		})
	}
}

func TestLineHeightRatio(t *testing.T) {
	tests := []struct {
		input    string
		fontSize float64
		expected float64
		ok       bool
	}{
		{"normal", 16, 1.2, true},
		{"1.5", 16, 1.5, true},
		{"24px", 16, 1.5, true},
		{"120%", 16, 1.2, true},
		{"1.1em", 16, 1.1, true},
		{"2rem", 32, 1.0, true},
		{"", 16, 0, false},
		{"inherit", 16, 0, false},
		{"10furlongs", 16, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			actual, ok := LineHeightRatio(tt.input, tt.fontSize)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, actual, 1e-9)
		})
	}
}

func TestIsBoldAndLargeText(t *testing.T) {
	assert.True(t, IsBold("bold"))
	assert.True(t, IsBold("700"))
	assert.True(t, IsBold("900"))
	assert.False(t, IsBold("600"))
	assert.False(t, IsBold("normal"))
	assert.False(t, IsBold(""))

	assert.True(t, IsLargeText(18, false))
	assert.True(t, IsLargeText(14, true))
	assert.False(t, IsLargeText(14, false))
	assert.False(t, IsLargeText(13.9, true))
}

func TestParseFloatIsExact(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		rest     string
	}{
		{"0.875em", 0.875, "em"},
		{"1.3", 1.3, ""},
		{"-.5px", -0.5, "px"},
		{"+12.25pt", 12.25, "pt"},
		{"5.", 5, ""},
		{"-0", 0, ""},
		{"1.2.3", 1.2, ".3"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, rest, err := parseFloat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.rest, rest)
		})
	}

	for _, bad := range []string{"", ".", "-", "px"} {
		_, _, err := parseFloat(bad)
		assert.Error(t, err, "input %q", bad)
	}

	// Every four-place decimal must round-trip exactly.
	for i := 0; i < 100000; i++ {
		s := fmt.Sprintf("%d.%04d", i/10000, i%10000)
		want, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)
		got, _, err := parseFloat(s)
		require.NoError(t, err)
		if got != want {
			t.Fatalf("parseFloat(%q) = %v, want %v", s, got, want)
		}
	}

	ratio, ok := LineHeightRatio("1.3", 16)
	require.True(t, ok)
	assert.Equal(t, 1.3, ratio)
	assert.Equal(t, 14.0, ParseFontSizePx("0.875em"))
	assert.Equal(t, 12.0, ParseFontSizePx("0.75em"))
}
