// Package terminal draws post previews for ANSI terminals with lipgloss.
package terminal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-postformat/pkg/clipboard"
	"github.com/goliatone/go-postformat/pkg/contenttype"
	"github.com/goliatone/go-postformat/pkg/render"
)

// EmptyMessage is shown when no content type is selected.
const EmptyMessage = "Select a content type to start."

// Option configures the Renderer.
type Option func(*Renderer)

// WithStyles overrides DefaultStyles.
func WithStyles(styles Styles) Option {
	return func(r *Renderer) {
		r.styles = styles
	}
}

// WithWidth wraps the preview card to width columns.
func WithWidth(width int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// Renderer turns a render.Preview into styled terminal text.
type Renderer struct {
	styles Styles
	width  int
}

// New creates a terminal renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{
		styles: DefaultStyles(),
		width:  72,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Render draws preview as a card followed by the copy control. copied selects
// the acknowledgement label.
func (r *Renderer) Render(preview render.Preview, copied bool) string {
	if preview.Empty() {
		return r.styles.Empty.Render(EmptyMessage)
	}

	sections := []string{r.styles.Title.Render(preview.Title)}
	for _, block := range preview.Blocks {
		sections = append(sections, r.renderBlock(block))
	}
	card := r.styles.Frame.Width(r.width).Render(strings.Join(sections, "\n\n"))

	label := clipboard.LabelCopy
	button := r.styles.Copy
	if copied {
		label = clipboard.LabelCopied
		button = r.styles.Copied
	}
	return lipgloss.JoinVertical(lipgloss.Left, card, button.Render(label))
}

func (r *Renderer) renderBlock(block render.PreviewBlock) string {
	style := r.styles.ForBlock(block.Kind)
	switch block.Kind {
	case contenttype.BlockLines:
		lines := make([]string, len(block.Lines))
		for i, line := range block.Lines {
			lines[i] = style.Render(line)
		}
		return strings.Join(lines, "\n")
	case contenttype.BlockMedia:
		return style.Render(fmt.Sprintf("[%s: %s]", block.MediaKind, block.Label))
	default:
		return style.Render(block.Text)
	}
}
