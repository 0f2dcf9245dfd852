package render

import (
	"strings"

	"github.com/goliatone/go-postformat/pkg/contenttype"
)

// MediaKind tells preview surfaces which element displays a media field.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Preview is the display form of a post.
type Preview struct {
	ContentType string         `json:"contentType"`
	Title       string         `json:"title"`
	Blocks      []PreviewBlock `json:"blocks"`
	Tail        string         `json:"-"`
}

// PreviewBlock is one rendered layout block. Heading and paragraph blocks use
// Text, lines blocks use Lines (already decorated) and media blocks carry the
// decoded data URI.
type PreviewBlock struct {
	Kind      contenttype.BlockKind `json:"kind"`
	Field     string                `json:"field,omitempty"`
	Text      string                `json:"text,omitempty"`
	Lines     []string              `json:"lines,omitempty"`
	Label     string                `json:"label,omitempty"`
	MediaURI  string                `json:"mediaUri,omitempty"`
	MediaKind MediaKind             `json:"mediaKind,omitempty"`
	Separator string                `json:"-"`
}

// Empty reports whether the preview has nothing to show, which is the case
// for unknown content types.
func (p Preview) Empty() bool {
	return p.ContentType == "" && len(p.Blocks) == 0
}

// PlainText flattens the preview using the same separators as the canonical
// output. Media blocks contribute their marker and lines blocks one line each.
func (p Preview) PlainText() string {
	var b strings.Builder
	for _, block := range p.Blocks {
		b.WriteString(block.Separator)
		switch block.Kind {
		case contenttype.BlockLines:
			b.WriteString(strings.Join(block.Lines, "\n"))
		default:
			b.WriteString(block.Text)
		}
	}
	b.WriteString(p.Tail)
	return b.String()
}

// DetectMediaKind inspects the data URI MIME type and falls back to the field
// name when the URI carries no usable type.
func DetectMediaKind(field, uri string) MediaKind {
	lower := strings.ToLower(uri)
	switch {
	case strings.HasPrefix(lower, "data:video/"):
		return MediaVideo
	case strings.HasPrefix(lower, "data:image/"):
		return MediaImage
	case strings.Contains(strings.ToLower(field), "video"):
		return MediaVideo
	default:
		return MediaImage
	}
}
