// Package html renders post previews as sanitized HTML using the embedded
// pongo2 templates.
package html

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-postformat/pkg/clipboard"
	"github.com/goliatone/go-postformat/pkg/render"
	"github.com/goliatone/go-postformat/pkg/render/template"
	"github.com/goliatone/go-postformat/pkg/render/template/gotemplate"
)

const (
	templateFragment = "preview"
	templatePage     = "page"
)

// Option configures the Renderer.
type Option func(*Renderer)

// WithTemplatesFS overrides the embedded template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.templates = files
		}
	}
}

// WithTemplateRenderer injects a pre-built engine.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTheme applies theme CSS variables to full page output.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.theme = cfg
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer produces HTML previews.
type Renderer struct {
	templates fs.FS
	engine    template.TemplateRenderer
	theme     *theme.RendererConfig
	logger    *zap.Logger
}

// New constructs an HTML renderer backed by the embedded templates.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		templates: TemplatesFS(),
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(r.templates))
		if err != nil {
			return nil, fmt.Errorf("html: init template renderer: %w", err)
		}
		r.engine = engine
	}

	err := r.engine.GlobalContext(map[string]any{
		"labels": map[string]any{
			"copy":   clipboard.LabelCopy,
			"copied": clipboard.LabelCopied,
		},
		"theme": buildThemeContext(r.theme),
	})
	if err != nil {
		return nil, fmt.Errorf("html: seed template globals: %w", err)
	}
	return r, nil
}

// Fragment renders preview as a sanitized HTML fragment.
func (r *Renderer) Fragment(preview render.Preview, copied bool) (string, error) {
	out, err := r.engine.RenderTemplate(templateFragment, map[string]any{
		"empty":   preview.Empty(),
		"preview": preview,
		"copied":  copied,
	})
	if err != nil {
		r.logger.Error("preview template failed", zap.String("contentType", preview.ContentType), zap.Error(err))
		return "", fmt.Errorf("html: render preview: %w", err)
	}
	return Sanitize(out), nil
}

// Page renders preview as a standalone document carrying the theme CSS
// variables.
func (r *Renderer) Page(preview render.Preview, copied bool) (string, error) {
	body, err := r.Fragment(preview, copied)
	if err != nil {
		return "", err
	}
	title := preview.Title
	if title == "" {
		title = "Post Preview"
	}
	out, err := r.engine.RenderTemplate(templatePage, map[string]any{
		"title": title,
		"body":  body,
	})
	if err != nil {
		return "", fmt.Errorf("html: render page: %w", err)
	}
	return out, nil
}

func buildThemeContext(cfg *theme.RendererConfig) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	return map[string]any{
		"Variant":      cfg.Variant,
		"CSSVarsStyle": cssVarsStyle(cfg.CSSVars),
	}
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
