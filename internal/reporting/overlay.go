// internal/reporting/overlay.go
package reporting

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/results"
)

// MaxOverlaySize caps both dimensions of a rendered overlay in pixels.
const MaxOverlaySize = 8000

var (
	severityColors = map[schemas.Severity]color.RGBA{
		schemas.SeverityHigh:   {R: 220, G: 38, B: 38, A: 255},
		schemas.SeverityMedium: {R: 234, G: 140, B: 0, A: 255},
		schemas.SeverityLow:    {R: 37, G: 99, B: 235, A: 255},
	}
	backgroundColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	foldColor       = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	labelColor      = color.RGBA{R: 255, G: 255, B: 255, A: 255}

	fileNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)
)

// OverlayWriter renders the issue boxes of each audit into a PNG file.
type OverlayWriter struct {
	dir    string
	logger *zap.Logger
	seq    atomic.Int64
}

// NewOverlayWriter creates the output directory if needed.
func NewOverlayWriter(dir string, logger *zap.Logger) (*OverlayWriter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create overlay directory %s: %w", dir, err)
	}
	return &OverlayWriter{dir: dir, logger: logger.Named("overlay")}, nil
}

// Write renders one audit and returns the path of the written file. Audits
// without a report are skipped and return an empty path.
func (w *OverlayWriter) Write(audit *results.Audit) (string, error) {
	if audit.Report == nil {
		return "", nil
	}
	viewport := schemas.Viewport{
		Width:  featureInt(audit.Report.Features, schemas.FeatureViewportWidth),
		Height: featureInt(audit.Report.Features, schemas.FeatureViewportHeight),
	}
	img := RenderOverlay(audit.Report.Issues, viewport)

	n := w.seq.Add(1)
	path := filepath.Join(w.dir, fmt.Sprintf("%03d-%s.png", n, overlayName(audit.Source)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create overlay %s: %w", path, err)
	}
	encodeErr := png.Encode(f, img)
	closeErr := f.Close()
	if encodeErr != nil {
		return "", fmt.Errorf("failed to encode overlay %s: %w", path, encodeErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close overlay %s: %w", path, closeErr)
	}

	w.logger.Debug("Wrote issue overlay", zap.String("path", path), zap.Int("issues", len(audit.Report.Issues)))
	return path, nil
}

// RenderOverlay draws every issue box on a blank page the width of the
// viewport, tall enough for the lowest box. The fold is marked with a grey line.
func RenderOverlay(issues []schemas.Issue, viewport schemas.Viewport) *image.RGBA {
	width := viewport.Width
	height := viewport.Height
	for _, issue := range issues {
		width = max(width, ceilPx(issue.BBox.Right()))
		height = max(height, ceilPx(issue.BBox.Bottom()))
	}
	width = min(max(width, 1), MaxOverlaySize)
	height = min(max(height, 1), MaxOverlaySize)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: backgroundColor}, image.Point{}, draw.Src)

	if viewport.Height > 0 && viewport.Height < height {
		for x := 0; x < width; x += 2 {
			img.Set(x, viewport.Height, foldColor)
		}
	}

	// Least severe first so severe boxes end up on top.
	for i := len(issues) - 1; i >= 0; i-- {
		drawIssue(img, issues[i])
	}
	return img
}

func drawIssue(img *image.RGBA, issue schemas.Issue) {
	c, ok := severityColors[issue.Severity]
	if !ok {
		c = severityColors[schemas.SeverityHigh]
	}
	x1, y1 := int(math.Floor(issue.BBox.X)), int(math.Floor(issue.BBox.Y))
	x2, y2 := ceilPx(issue.BBox.Right()), ceilPx(issue.BBox.Bottom())

	// Two pixel outline.
	drawRectangle(img, x1, y1, x2, y2, c)
	drawRectangle(img, x1+1, y1+1, x2-1, y2-1, c)

	label := string(issue.Type)
	// basicfont.Face7x13 glyphs are 7 pixels wide and 13 tall.
	tag := image.Rect(x1, y1-14, x1+len(label)*7+4, y1)
	if tag.Min.Y < 0 {
		tag = tag.Add(image.Pt(0, 14))
	}
	draw.Draw(img, tag.Intersect(img.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(tag.Min.X+2, tag.Max.Y-3),
	}
	d.DrawString(label)
}

// drawRectangle draws a rectangle outline clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	x1, y1 = max(x1, bounds.Min.X), max(y1, bounds.Min.Y)
	x2, y2 = min(x2, bounds.Max.X), min(y2, bounds.Max.Y)
	if x2 <= x1 || y2 <= y1 {
		return // Empty rectangle
	}
	for x := x1; x < x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2-1, c)
	}
	for y := y1; y < y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2-1, y, c)
	}
}

func ceilPx(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v > MaxOverlaySize {
		return MaxOverlaySize
	}
	return int(math.Ceil(v))
}

func featureInt(features map[string]any, key string) int {
	switch v := features[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func overlayName(source string) string {
	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	name = strings.Trim(fileNameSanitizer.ReplaceAllString(name, "_"), "_.")
	if name == "" || name == "-" {
		return "audit"
	}
	return name
}
