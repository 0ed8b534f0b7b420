// File: cmd/cmd_test.go
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xkilldash9x/clarity-cli/api/schemas"
	"github.com/xkilldash9x/clarity-cli/internal/config"
)

// lowContrastPage has one paragraph of #999 on white (2.85:1, a high severity
// contrast issue) and one heading that passes everything.
const lowContrastPage = `{
  "dom": "<html><head><meta name=\"viewport\" content=\"width=device-width\"></head><body><h1>Title</h1><p>Muted</p></body></html>",
  "style_snapshot": {
    "computed_styles": {"h1": {"fontSize": "32px", "lineHeight": "1.4"}},
    "elements": [
      {"selector": "h1", "text": "Title", "styles": {"color": "#000000", "backgroundColor": "#ffffff", "lineHeight": "1.4"}, "bbox": {"x": 0, "y": 0, "width": 600, "height": 40}},
      {"selector": "p.muted", "text": "Muted", "styles": {"color": "#999999", "backgroundColor": "#ffffff", "fontSize": "16px", "lineHeight": "1.5"}, "bbox": {"x": 0, "y": 60, "width": 600, "height": 24}}
    ]
  },
  "viewport": {"width": 1280, "height": 800}
}`

// newTestRoot returns a pristine command tree that never picks up a config file
// from the working directory.
func newTestRoot(t *testing.T, args ...string) (*bytes.Buffer, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(lowContrastPage))
	cfgPath := filepath.Join(t.TempDir(), "clarity.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logger:\n  level: error\n"), 0o600))
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	return &out, root.ExecuteContext(context.Background())
}

func writePage(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func decodeEnvelope(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func TestRootCmd_VersionFlag(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "clarity version "+Version+"\n", out.String())
}

func TestVersionCmd(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "clarity "+Version+" (go"))
}

func TestAuditCmd_JSONReport(t *testing.T) {
	dir := t.TempDir()
	page := writePage(t, dir, "home.json", lowContrastPage)
	output := filepath.Join(dir, "report.json")
	overlays := filepath.Join(dir, "overlays")

	_, err := newTestRoot(t, "audit", "--format", "json", "--output", output, "--overlay-dir", overlays, page)
	require.NoError(t, err)

	env := decodeEnvelope(t, output)
	assert.NotEmpty(t, env["run_id"])
	audits := env["audits"].([]interface{})
	require.Len(t, audits, 1)

	audit := audits[0].(map[string]interface{})
	assert.Equal(t, page, audit["source"])
	issues := audit["issues"].([]interface{})
	require.Len(t, issues, 1)
	issue := issues[0].(map[string]interface{})
	assert.Equal(t, "contrast", issue["type"])
	assert.Equal(t, "high", issue["severity"])
	assert.Equal(t, "p.muted", issue["selector"])
	assert.NotEmpty(t, issue["suggestion"])

	report := audit["report"].(map[string]interface{})
	features := report["features"].(map[string]interface{})
	assert.Equal(t, 85.0, features["contrast_score"])
	assert.Equal(t, "FAIL", features["wcag_level"])
	// 100 - 0.25 * 15
	assert.Equal(t, 96.0, report["score"])

	pngs, err := filepath.Glob(filepath.Join(overlays, "*.png"))
	require.NoError(t, err)
	assert.Len(t, pngs, 1)
}

func TestAuditCmd_StdinAndViewportOverride(t *testing.T) {
	output := filepath.Join(t.TempDir(), "report.yaml")
	_, err := newTestRoot(t, "audit", "-f", "json", "-o", output, "--viewport", "375x667")
	require.NoError(t, err)

	env := decodeEnvelope(t, output)
	audit := env["audits"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "stdin", audit["source"])
	features := audit["report"].(map[string]interface{})["features"].(map[string]interface{})
	assert.Equal(t, true, features["is_mobile"])
	assert.Equal(t, 375.0, features["viewport_width"])
}

func TestAuditCmd_MinSeverityFilter(t *testing.T) {
	dir := t.TempDir()
	page := writePage(t, dir, "home.json", lowContrastPage)
	output := filepath.Join(dir, "report.json")

	_, err := newTestRoot(t, "audit", "--format", "json", "--output", output, "--min-severity", "high", page)
	require.NoError(t, err)

	audit := decodeEnvelope(t, output)["audits"].([]interface{})[0].(map[string]interface{})
	assert.Len(t, audit["issues"].([]interface{}), 1)
}

func TestAuditCmd_Failures(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing input still reports the others", func(t *testing.T) {
		page := writePage(t, dir, "ok.json", lowContrastPage)
		output := filepath.Join(dir, "partial.json")

		_, err := newTestRoot(t, "audit", "--format", "json", "--output", output, filepath.Join(dir, "missing.json"), page)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAuditFailures)

		audits := decodeEnvelope(t, output)["audits"].([]interface{})
		require.Len(t, audits, 2)
		assert.NotEmpty(t, audits[0].(map[string]interface{})["error"])
		assert.NotContains(t, audits[1].(map[string]interface{}), "error")
	})

	t.Run("bad viewport", func(t *testing.T) {
		_, err := newTestRoot(t, "audit", "--viewport", "wide")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid viewport")
	})

	t.Run("bad format fails config validation", func(t *testing.T) {
		_, err := newTestRoot(t, "audit", "--format", "html")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "format must be one of")
	})
}

func TestRunAudit_Timeout(t *testing.T) {
	dir := t.TempDir()
	page := writePage(t, dir, "home.json", lowContrastPage)
	output := filepath.Join(dir, "report.txt")

	cfg := config.NewDefaultConfig()
	cfg.SetReportOutput(output)
	cfg.SetAuditTimeout(time.Nanosecond)

	// A nanosecond budget may or may not be beaten; either way the run must
	// finish and the text report must be complete.
	err := runAudit(context.Background(), cfg, []string{page}, nil, nil, zap.NewNop())
	if err != nil {
		assert.ErrorIs(t, err, ErrAuditFailures)
	}
	data, readErr := os.ReadFile(output)
	require.NoError(t, readErr)
	assert.Contains(t, string(data), "1 audit(s)")
}

func TestRunAudit_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	page := writePage(t, dir, "home.json", lowContrastPage)

	cfg := config.NewDefaultConfig()
	cfg.SetReportOutput(filepath.Join(dir, "report.txt"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := runAudit(ctx, cfg, []string{page}, &schemas.Viewport{Width: 800, Height: 600}, nil, zap.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
}
