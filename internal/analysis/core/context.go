// internal/analysis/core/context.go
package core

import (
	"strings"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"go.uber.org/zap"
)

// AnalysisContext carries the read-only input of a single analysis call.
type AnalysisContext struct {
	DOM      string
	Elements []schemas.ElementSnapshot
	Viewport schemas.Viewport
	Styles   *StyleResolver
	Logger   *zap.Logger
}

// NewAnalysisContext builds the context for one call. A nil logger is replaced
// by a no-op logger.
func NewAnalysisContext(dom string, snapshot schemas.StyleSnapshot, viewport schemas.Viewport, logger *zap.Logger) *AnalysisContext {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisContext{
		DOM:      dom,
		Elements: snapshot.Elements,
		Viewport: viewport,
		Styles:   NewStyleResolver(snapshot.ComputedStyles),
		Logger:   logger,
	}
}

// IsMobile reports the mobile classification of the viewport for this call.
func (ac *AnalysisContext) IsMobile() bool {
	return ac.Viewport.IsMobile()
}

// Contributing returns the elements with a drawable box, in input order.
func (ac *AnalysisContext) Contributing() []schemas.ElementSnapshot {
	out := make([]schemas.ElementSnapshot, 0, len(ac.Elements))
	for _, el := range ac.Elements {
		if el.Contributing() {
			out = append(out, el)
		}
	}
	return out
}

// StyleResolver looks up style properties for an element, falling back to the
// selector-keyed computed style table.
type StyleResolver struct {
	computed map[string]schemas.StyleMap
}

// NewStyleResolver wraps a computed style table. A nil table is valid.
func NewStyleResolver(computed map[string]schemas.StyleMap) *StyleResolver {
	return &StyleResolver{computed: computed}
}

// Lookup resolves a property in order: the element's own styles, the table entry
// for its selector, then the table entry for the tag of its last compound.
func (r *StyleResolver) Lookup(el schemas.ElementSnapshot, prop schemas.Property) (string, bool) {
	if v, ok := el.Styles.Get(prop); ok {
		return v, true
	}
	if r == nil || len(r.computed) == 0 {
		return "", false
	}
	if sm, ok := r.computed[el.Selector]; ok {
		if v, ok := sm.Get(prop); ok {
			return v, true
		}
	}
	if tag := TagName(el.Selector); tag != "" && tag != el.Selector {
		if sm, ok := r.computed[tag]; ok {
			if v, ok := sm.Get(prop); ok {
				return v, true
			}
		}
	}
	return "", false
}

// compounds splits a selector into its compound parts, dropping combinators.
func compounds(selector string) []string {
	return strings.FieldsFunc(selector, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '>', '+', '~':
			return true
		}
		return false
	})
}

// compoundTag returns the lowercased type selector of a compound, or "".
func compoundTag(compound string) string {
	if i := strings.IndexAny(compound, ".#[:"); i >= 0 {
		compound = compound[:i]
	}
	if compound == "*" {
		return ""
	}
	return strings.ToLower(compound)
}

// TagName returns the tag of the last compound of a selector ("div.card > h2.title" -> "h2").
func TagName(selector string) string {
	parts := compounds(selector)
	if len(parts) == 0 {
		return ""
	}
	return compoundTag(parts[len(parts)-1])
}
