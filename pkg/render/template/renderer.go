package template

import (
	"io"
)

// TemplateRenderer is the engine contract used by the layout and HTML
// renderers. RenderTemplate resolves a named template from the engine's
// filesystem; RenderString executes inline content such as layout snippets.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
