package schemas

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Property names a style property the engine understands.
type Property string

const (
	PropColor           Property = "color"
	PropBackgroundColor Property = "background-color"
	PropFontSize        Property = "font-size"
	PropFontWeight      Property = "font-weight"
	PropLineHeight      Property = "line-height"
)

// propertyAliases maps every accepted spelling to its canonical property.
var propertyAliases = map[string]Property{
	"color":            PropColor,
	"backgroundcolor":  PropBackgroundColor,
	"background-color": PropBackgroundColor,
	"background_color": PropBackgroundColor,
	"fontsize":         PropFontSize,
	"font-size":        PropFontSize,
	"font_size":        PropFontSize,
	"fontweight":       PropFontWeight,
	"font-weight":      PropFontWeight,
	"font_weight":      PropFontWeight,
	"lineheight":       PropLineHeight,
	"line-height":      PropLineHeight,
	"line_height":      PropLineHeight,
}

// CanonicalProperty resolves camelCase, kebab-case and snake_case spellings.
func CanonicalProperty(name string) (Property, bool) {
	p, ok := propertyAliases[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// StyleMap holds the computed style values of one element. An empty field means
// the extractor did not provide the property.
type StyleMap struct {
	Color           string `json:"color,omitempty" yaml:"color,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	FontSize        string `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	FontWeight      string `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	LineHeight      string `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
}

// Get returns the value of a property and whether it was set.
func (s StyleMap) Get(p Property) (string, bool) {
	var v string
	switch p {
	case PropColor:
		v = s.Color
	case PropBackgroundColor:
		v = s.BackgroundColor
	case PropFontSize:
		v = s.FontSize
	case PropFontWeight:
		v = s.FontWeight
	case PropLineHeight:
		v = s.LineHeight
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Set assigns a property value. Unknown properties are ignored.
func (s *StyleMap) Set(p Property, value string) {
	switch p {
	case PropColor:
		s.Color = value
	case PropBackgroundColor:
		s.BackgroundColor = value
	case PropFontSize:
		s.FontSize = value
	case PropFontWeight:
		s.FontWeight = value
	case PropLineHeight:
		s.LineHeight = value
	}
}

// IsZero reports whether no property is set.
func (s StyleMap) IsZero() bool {
	return s == StyleMap{}
}

// UnmarshalJSON accepts any spelling of the known properties and numeric values
// (e.g. fontWeight: 700). Unknown keys are dropped.
func (s *StyleMap) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("style map: %w", err)
	}
	*s = styleMapFromRaw(raw)
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (s *StyleMap) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("style map: %w", err)
	}
	*s = styleMapFromRaw(raw)
	return nil
}

// styleMapFromRaw applies keys in a fixed order so that a document carrying
// several spellings of one property always decodes the same way: camelCase
// wins over kebab-case, which wins over snake_case.
func styleMapFromRaw(raw map[string]any) StyleMap {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		ri, rj := spellingRank(keys[i]), spellingRank(keys[j])
		if ri != rj {
			return ri < rj
		}
		return keys[i] < keys[j]
	})

	var sm StyleMap
	seen := make(map[Property]bool, len(keys))
	for _, key := range keys {
		prop, ok := CanonicalProperty(key)
		if !ok || seen[prop] {
			continue
		}
		if str, ok := scalarString(raw[key]); ok {
			sm.Set(prop, str)
			seen[prop] = true
		}
	}
	return sm
}

func spellingRank(key string) int {
	switch {
	case strings.Contains(key, "-"):
		return 1
	case strings.Contains(key, "_"):
		return 2
	default:
		return 0
	}
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// UnmarshalJSON accepts either {"width": w, "height": h} or [w, h].
func (v *Viewport) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		return v.fromPair(pair)
	}
	type plain Viewport
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("viewport: %w", err)
	}
	*v = Viewport(p)
	return nil
}

// UnmarshalYAML accepts a mapping or a two-element sequence.
func (v *Viewport) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var pair []float64
		if err := node.Decode(&pair); err != nil {
			return fmt.Errorf("viewport: %w", err)
		}
		return v.fromPair(pair)
	}
	type plain Viewport
	var p plain
	if err := node.Decode(&p); err != nil {
		return fmt.Errorf("viewport: %w", err)
	}
	*v = Viewport(p)
	return nil
}

func (v *Viewport) fromPair(pair []float64) error {
	if len(pair) != 2 {
		return fmt.Errorf("viewport: expected [width, height], got %d values", len(pair))
	}
	v.Width, v.Height = int(pair[0]), int(pair[1])
	return nil
}

// ParseViewport parses the "WIDTHxHEIGHT" notation used on the command line.
func ParseViewport(s string) (Viewport, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Viewport{}, fmt.Errorf("invalid viewport %q: expected WIDTHxHEIGHT", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return Viewport{}, fmt.Errorf("invalid viewport width in %q", s)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return Viewport{}, fmt.Errorf("invalid viewport height in %q", s)
	}
	return Viewport{Width: width, Height: height}, nil
}
