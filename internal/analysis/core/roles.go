package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
)

// -- Role Definitions --

// Role is the coarse purpose of an element inferred from its selector. Selectors
// are opaque extractor output, so classification is heuristic.
type Role string

const (
	RoleElement   Role = "element"
	RoleButton    Role = "button"
	RoleLink      Role = "link"
	RoleInput     Role = "input field"
	RoleClickable Role = "clickable element"
	RoleHeading   Role = "heading"
	RoleParagraph Role = "paragraph"
	RoleImage     Role = "image"
)

// maxSnippet bounds the text quoted in messages.
const maxSnippet = 40

// Classify maps a selector string to a Role.
func Classify(selector string) Role {
	lower := strings.ToLower(selector)

	switch {
	case strings.Contains(lower, "button") || hasButtonRole(lower):
		return RoleButton
	case strings.Contains(lower, "input"):
		return RoleInput
	case hasTag(lower, "a"):
		return RoleLink
	case strings.Contains(lower, "[onclick"):
		return RoleClickable
	}

	switch tag := TagName(lower); tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return RoleHeading
	case "p":
		return RoleParagraph
	case "img", "svg", "picture":
		return RoleImage
	}
	return RoleElement
}

// IsInteractive reports whether the role accepts taps or clicks.
func (r Role) IsInteractive() bool {
	switch r {
	case RoleButton, RoleLink, RoleInput, RoleClickable:
		return true
	}
	return false
}

// IsInteractive is shorthand for Classify(selector).IsInteractive().
func IsInteractive(selector string) bool {
	return Classify(selector).IsInteractive()
}

func hasButtonRole(lower string) bool {
	return strings.Contains(lower, "role=button") || strings.Contains(lower, `role="button"`) ||
		strings.Contains(lower, "role='button'")
}

// hasTag reports whether any compound of the selector has the given type selector.
func hasTag(lower, tag string) bool {
	for _, c := range compounds(lower) {
		if compoundTag(c) == tag {
			return true
		}
	}
	return false
}

// Describe names an element for user-facing messages by role, quoting a short
// text snippet when the element has one.
func Describe(el schemas.ElementSnapshot) string {
	role := Classify(el.Selector)
	text := strings.Join(strings.Fields(el.Text), " ")
	if text == "" {
		return article(string(role)) + " " + string(role)
	}
	return fmt.Sprintf("the %s %q", role, truncate(text, maxSnippet))
}

func article(word string) string {
	if word != "" && strings.ContainsRune("aeiou", rune(word[0])) {
		return "an"
	}
	return "a"
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "..."
}
