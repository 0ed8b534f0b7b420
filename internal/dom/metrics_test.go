package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	t.Parallel()

	t.Run("should count structural elements", func(t *testing.T) {
		t.Parallel()
		markup := `<!DOCTYPE html>
<html>
  <head><meta name="Viewport" content="width=device-width"><title>x</title></head>
  <body>
    <h1>Title</h1>
    <section><h2>Sub</h2><p><img src="a.png"><img src="b.png"></p></section>
    <form><input name="q"><button>Go</button></form>
  </body>
</html>`
		m, err := Inspect(markup)
		require.NoError(t, err)
		assert.Equal(t, 2, m.HeadingCount)
		assert.Equal(t, 2, m.ImageCount)
		assert.Equal(t, 1, m.FormCount)
		assert.True(t, m.HasViewportMeta)
		// html, head, meta, title, body, h1, section, h2, p, img, img, form, input, button
		assert.Equal(t, 14, m.NodeCount)
		// html > body > section > p > img
		assert.Equal(t, 5, m.MaxDepth)
	})

	t.Run("should accept fragments", func(t *testing.T) {
		t.Parallel()
		m, err := Inspect(`<div><span>hi</span></div>`)
		require.NoError(t, err)
		// html, head, body, div, span
		assert.Equal(t, 5, m.NodeCount)
		assert.False(t, m.HasViewportMeta)
	})

	t.Run("should reject empty documents", func(t *testing.T) {
		t.Parallel()
		_, err := Inspect("   ")
		assert.Error(t, err)
	})
}
