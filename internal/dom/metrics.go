// internal/dom/metrics.go
package dom

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// Metrics summarizes the raw page markup. They are informational only; no
// score depends on them.
type Metrics struct {
	NodeCount       int  `json:"node_count"`
	MaxDepth        int  `json:"max_depth"`
	HeadingCount    int  `json:"heading_count"`
	ImageCount      int  `json:"image_count"`
	FormCount       int  `json:"form_count"`
	HasViewportMeta bool `json:"has_viewport_meta"`
}

const (
	headingsXPath = "//h1|//h2|//h3|//h4|//h5|//h6"
	imagesXPath   = "//img"
	formsXPath    = "//form"
	metaXPath     = "//meta[@name]"
)

// Inspect parses markup and collects Metrics. The parser is lenient, so only an
// empty document is an error.
func Inspect(markup string) (Metrics, error) {
	if strings.TrimSpace(markup) == "" {
		return Metrics{}, fmt.Errorf("empty document")
	}

	doc, err := htmlquery.Parse(strings.NewReader(markup))
	if err != nil {
		return Metrics{}, fmt.Errorf("failed to parse document: %w", err)
	}

	var m Metrics
	m.NodeCount, m.MaxDepth = countElements(doc, 0)

	headings, err := htmlquery.QueryAll(doc, headingsXPath)
	if err != nil {
		return Metrics{}, fmt.Errorf("failed to query headings: %w", err)
	}
	m.HeadingCount = len(headings)

	images, err := htmlquery.QueryAll(doc, imagesXPath)
	if err != nil {
		return Metrics{}, fmt.Errorf("failed to query images: %w", err)
	}
	m.ImageCount = len(images)

	forms, err := htmlquery.QueryAll(doc, formsXPath)
	if err != nil {
		return Metrics{}, fmt.Errorf("failed to query forms: %w", err)
	}
	m.FormCount = len(forms)

	metas, err := htmlquery.QueryAll(doc, metaXPath)
	if err != nil {
		return Metrics{}, fmt.Errorf("failed to query meta tags: %w", err)
	}
	for _, meta := range metas {
		if strings.EqualFold(htmlquery.SelectAttr(meta, "name"), "viewport") {
			m.HasViewportMeta = true
			break
		}
	}

	return m, nil
}

// countElements returns the number of element nodes under n and the deepest
// element nesting level. The parser's implied html element sits at depth 1.
func countElements(n *html.Node, depth int) (count, maxDepth int) {
	if n.Type == html.ElementNode {
		count = 1
		maxDepth = depth
	}
	childDepth := depth
	if n.Type == html.ElementNode {
		childDepth = depth + 1
	} else if n.Type == html.DocumentNode {
		childDepth = 1
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cc, cd := countElements(c, childDepth)
		count += cc
		if cd > maxDepth {
			maxDepth = cd
		}
	}
	return count, maxDepth
}
