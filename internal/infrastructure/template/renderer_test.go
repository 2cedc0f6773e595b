package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) (*HTMLRenderer, string) {
	t.Helper()
	dir := t.TempDir()
	renderer, err := NewHTMLRenderer(dir)
	require.NoError(t, err)
	return renderer, dir
}

func writeTemplate(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestNewHTMLRenderer(t *testing.T) {
	t.Run("requires a base directory", func(t *testing.T) {
		_, err := NewHTMLRenderer("")
		assert.Error(t, err)
	})
}

func TestHTMLRenderer_Render(t *testing.T) {
	t.Run("substitutes model values", func(t *testing.T) {
		renderer, dir := newTestRenderer(t)
		writeTemplate(t, dir, "welcome.html", `<p>Welcome {{.CompanyName}}</p>`)

		out, err := renderer.Render("welcome.html", map[string]string{"CompanyName": "Acme Foods"})

		require.NoError(t, err)
		assert.Equal(t, "<p>Welcome Acme Foods</p>", out)
	})

	t.Run("escapes HTML in model values", func(t *testing.T) {
		renderer, dir := newTestRenderer(t)
		writeTemplate(t, dir, "welcome.html", `{{.Name}}`)

		out, err := renderer.Render("welcome.html", map[string]string{"Name": "<script>"})

		require.NoError(t, err)
		assert.NotContains(t, out, "<script>")
	})

	t.Run("fails on a missing template", func(t *testing.T) {
		renderer, _ := newTestRenderer(t)

		_, err := renderer.Render("missing.html", nil)
		assert.Error(t, err)
	})

	t.Run("rejects traversal outside the base directory", func(t *testing.T) {
		renderer, _ := newTestRenderer(t)

		_, err := renderer.Render("../../etc/passwd", nil)
		assert.Error(t, err)
	})

	t.Run("requires a template name", func(t *testing.T) {
		renderer, _ := newTestRenderer(t)

		_, err := renderer.Render("", nil)
		assert.Error(t, err)
	})
}
