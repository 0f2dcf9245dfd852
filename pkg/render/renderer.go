package render

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-postformat/pkg/contenttype"
	"github.com/goliatone/go-postformat/pkg/render/template"
	"github.com/goliatone/go-postformat/pkg/render/template/gotemplate"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithRegistry overrides the content-type registry. Defaults to
// contenttype.Default().
func WithRegistry(registry *contenttype.Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithTemplateRenderer overrides the engine used to execute block snippets.
func WithTemplateRenderer(engine template.TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithLogger sets the logger used to report snippet failures.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer turns content-type ids plus field values into canonical text and
// preview blocks. It is safe for concurrent use.
type Renderer struct {
	registry *contenttype.Registry
	engine   template.TemplateRenderer
	logger   *zap.Logger
}

// New constructs a Renderer using the built-in registry and a string-only
// pongo2 engine unless overridden.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		registry: contenttype.Default(),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		engine, err := gotemplate.New()
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}
	return r, nil
}

// Registry exposes the registry the renderer resolves ids against.
func (r *Renderer) Registry() *contenttype.Registry {
	return r.registry
}

// Canonical renders the clipboard text for contentType. It never fails: an
// unknown id yields "", missing fields render empty and a snippet that fails
// to execute is logged and contributes nothing.
func (r *Renderer) Canonical(contentType string, text, previews map[string]string) string {
	def, err := r.registry.Lookup(contentType)
	if err != nil {
		return ""
	}

	data := textContext(def, text, func(contenttype.FieldDescriptor) string { return "" })

	var b strings.Builder
	for i, block := range def.Layout.Blocks {
		b.WriteString(def.Layout.SeparatorBefore(i))
		switch block.Kind {
		case contenttype.BlockHeading, contenttype.BlockParagraph:
			b.WriteString(r.snippet(def.ID, block.Text, data))
		case contenttype.BlockLines:
			b.WriteString(text[block.Field])
		case contenttype.BlockMedia:
			if previews[block.Field] == "" {
				continue
			}
			if field, ok := def.Field(block.Field); ok {
				b.WriteString(field.Marker)
			}
		}
	}
	return b.String()
}

// Preview renders display blocks for contentType. Unknown ids yield an empty
// Preview.
func (r *Renderer) Preview(contentType string, text, previews map[string]string) Preview {
	def, err := r.registry.Lookup(contentType)
	if err != nil {
		return Preview{}
	}

	data := textContext(def, text, func(field contenttype.FieldDescriptor) string {
		return field.PreviewLabel
	})

	out := Preview{
		ContentType: def.ID,
		Title:       def.Title,
		Blocks:      make([]PreviewBlock, 0, len(def.Layout.Blocks)),
	}
	// separators of media blocks without a preview carry over to the next
	// visible block so PlainText keeps the canonical spacing
	pending := ""
	for i, block := range def.Layout.Blocks {
		item := PreviewBlock{
			Kind:      block.Kind,
			Field:     block.Field,
			Separator: pending + def.Layout.SeparatorBefore(i),
		}
		pending = ""
		switch block.Kind {
		case contenttype.BlockHeading, contenttype.BlockParagraph:
			item.Text = r.snippet(def.ID, block.Text, data)
		case contenttype.BlockLines:
			value := text[block.Field]
			if value == "" {
				if field, ok := def.Field(block.Field); ok {
					value = field.PreviewLabel
				}
			}
			item.Lines = decorateLines(block.Bullet, value)
		case contenttype.BlockMedia:
			uri := previews[block.Field]
			if uri == "" {
				pending = item.Separator
				continue
			}
			item.MediaURI = uri
			item.MediaKind = DetectMediaKind(block.Field, uri)
			if field, ok := def.Field(block.Field); ok {
				item.Text = field.Marker
				item.Label = field.Label
			}
		}
		out.Blocks = append(out.Blocks, item)
	}
	out.Tail = pending
	return out
}

func (r *Renderer) snippet(contentType, snippet string, data map[string]any) string {
	out, err := r.engine.RenderString(snippet, data)
	if err != nil {
		r.logger.Warn("layout snippet failed",
			zap.String("contentType", contentType),
			zap.String("snippet", snippet),
			zap.Error(err),
		)
		return ""
	}
	return out
}

// textContext maps every text field of def to its value, substituting
// fallback(field) when the value is missing or empty.
func textContext(def contenttype.Definition, text map[string]string, fallback func(contenttype.FieldDescriptor) string) map[string]any {
	data := make(map[string]any, len(def.Fields))
	for _, field := range def.Fields {
		if field.IsMedia() {
			continue
		}
		if value := text[field.Name]; value != "" {
			data[field.Name] = value
			continue
		}
		data[field.Name] = fallback(field)
	}
	return data
}

func decorateLines(bullet, value string) []string {
	lines := strings.Split(strings.ReplaceAll(value, "\r\n", "\n"), "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = bullet + line
	}
	return out
}

var (
	defaultOnce     sync.Once
	defaultRenderer *Renderer
	defaultErr      error
)

// Default returns a shared Renderer over contenttype.Default().
func Default() (*Renderer, error) {
	defaultOnce.Do(func() {
		defaultRenderer, defaultErr = New()
	})
	return defaultRenderer, defaultErr
}

// Canonical renders clipboard text with the default renderer.
func Canonical(contentType string, text, previews map[string]string) string {
	r, err := Default()
	if err != nil {
		return ""
	}
	return r.Canonical(contentType, text, previews)
}

// PreviewOf renders preview blocks with the default renderer.
func PreviewOf(contentType string, text, previews map[string]string) Preview {
	r, err := Default()
	if err != nil {
		return Preview{}
	}
	return r.Preview(contentType, text, previews)
}
