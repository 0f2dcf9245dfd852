package contenttype

import "strings"

// FieldKind enumerates the editable control kinds a field can use.
type FieldKind string

const (
	FieldShortText FieldKind = "short-text"
	FieldLongText  FieldKind = "long-text"
	FieldMedia     FieldKind = "media"
)

// Valid reports whether k is one of the known kinds.
func (k FieldKind) Valid() bool {
	switch k {
	case FieldShortText, FieldLongText, FieldMedia:
		return true
	default:
		return false
	}
}

// FieldDescriptor describes one form input. PreviewLabel is the text the
// preview shows when the field is empty; Marker is the literal appended to
// canonical output when a media field has a decoded preview.
type FieldDescriptor struct {
	Name         string    `json:"name" yaml:"name"`
	Label        string    `json:"label" yaml:"label"`
	Kind         FieldKind `json:"kind" yaml:"kind"`
	Placeholder  string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Accept       string    `json:"accept,omitempty" yaml:"accept,omitempty"`
	PreviewLabel string    `json:"previewLabel,omitempty" yaml:"previewLabel,omitempty"`
	Marker       string    `json:"marker,omitempty" yaml:"marker,omitempty"`
}

// IsMedia reports whether the descriptor is a file/media input.
func (f FieldDescriptor) IsMedia() bool {
	return f.Kind == FieldMedia
}

// BlockKind identifies how a layout block renders.
type BlockKind string

const (
	// BlockHeading and BlockParagraph interpolate text fields into Text.
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	// BlockLines renders a multi-line field; the preview splits it per line.
	BlockLines BlockKind = "lines"
	// BlockMedia renders the marker (canonical) or the media itself (preview).
	BlockMedia BlockKind = "media"
)

// Block is one entry of a layout. Text is a pongo2 snippet used by heading and
// paragraph blocks; Field names the backing field for lines and media blocks.
// Separator, when set, replaces the layout separator emitted before the block.
type Block struct {
	Kind      BlockKind `json:"kind" yaml:"kind"`
	Text      string    `json:"text,omitempty" yaml:"text,omitempty"`
	Field     string    `json:"field,omitempty" yaml:"field,omitempty"`
	Bullet    string    `json:"bullet,omitempty" yaml:"bullet,omitempty"`
	Separator string    `json:"separator,omitempty" yaml:"separator,omitempty"`
}

// Layout is the ordered block list shared by the canonical and preview
// renderers, so both always agree on order and connective text.
type Layout struct {
	Separator string  `json:"separator,omitempty" yaml:"separator,omitempty"`
	Blocks    []Block `json:"blocks" yaml:"blocks"`
}

// DefaultSeparator joins blocks when a layout does not override it.
const DefaultSeparator = "\n\n"

// SeparatorBefore returns the separator emitted before block i.
func (l Layout) SeparatorBefore(i int) string {
	if i <= 0 || i >= len(l.Blocks) {
		return ""
	}
	if sep := l.Blocks[i].Separator; sep != "" {
		return sep
	}
	if l.Separator != "" {
		return l.Separator
	}
	return DefaultSeparator
}

// Definition is a single content type: its fields in render order and the
// layout used to assemble output.
type Definition struct {
	ID     string            `json:"id" yaml:"id"`
	Title  string            `json:"title" yaml:"title"`
	Fields []FieldDescriptor `json:"fields" yaml:"fields"`
	Layout Layout            `json:"layout" yaml:"layout"`
}

// Field returns the descriptor with the supplied name.
func (d Definition) Field(name string) (FieldDescriptor, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldDescriptor{}, false
}

// TextFields returns the names of the non-media fields in render order.
func (d Definition) TextFields() []string {
	out := make([]string, 0, len(d.Fields))
	for _, field := range d.Fields {
		if !field.IsMedia() {
			out = append(out, field.Name)
		}
	}
	return out
}

// MediaFields returns the names of the media fields in render order.
func (d Definition) MediaFields() []string {
	var out []string
	for _, field := range d.Fields {
		if field.IsMedia() {
			out = append(out, field.Name)
		}
	}
	return out
}

func cloneDefinition(def Definition) Definition {
	out := def
	out.Fields = append([]FieldDescriptor(nil), def.Fields...)
	out.Layout.Blocks = append([]Block(nil), def.Layout.Blocks...)
	return out
}

func normaliseID(id string) string {
	return strings.TrimSpace(id)
}
