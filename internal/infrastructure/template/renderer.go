// Package template renders HTML email bodies from on-disk templates.
package template

import (
	"errors"
	"fmt"
	"html/template"
	"path/filepath"
	"strings"

	notificationapp "github.com/bizgrid/backend/internal/application/notification"
)

var _ notificationapp.TemplateRenderer = (*HTMLRenderer)(nil)

// HTMLRenderer resolves template names against a base directory and
// executes them with a string model. Names must stay inside the base
// directory; traversal outside it is rejected.
type HTMLRenderer struct {
	baseDir string
}

// NewHTMLRenderer creates a renderer rooted at the given directory
func NewHTMLRenderer(baseDir string) (*HTMLRenderer, error) {
	if baseDir == "" {
		return nil, errors.New("template base directory is required")
	}
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve template directory: %w", err)
	}
	return &HTMLRenderer{baseDir: abs}, nil
}

// Render parses and executes the named template with the given model
func (r *HTMLRenderer) Render(name string, model map[string]string) (string, error) {
	if name == "" {
		return "", errors.New("template name is required")
	}

	path := filepath.Join(r.baseDir, filepath.Clean("/"+name))
	if !strings.HasPrefix(path, r.baseDir) {
		return "", fmt.Errorf("template %q escapes the template directory", name)
	}

	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %q: %w", name, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, model); err != nil {
		return "", fmt.Errorf("failed to execute template %q: %w", name, err)
	}
	return sb.String(), nil
}
