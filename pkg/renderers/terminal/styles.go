package terminal

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-postformat/pkg/contenttype"
)

// Styles groups the lipgloss styles used by the preview surface.
type Styles struct {
	Frame     lipgloss.Style
	Title     lipgloss.Style
	Heading   lipgloss.Style
	Paragraph lipgloss.Style
	Line      lipgloss.Style
	Media     lipgloss.Style
	Copy      lipgloss.Style
	Copied    lipgloss.Style
	Empty     lipgloss.Style
}

// DefaultStyles mirrors the preview card: bold heading, muted media badges
// and a green acknowledgement.
func DefaultStyles() Styles {
	return Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")),
		Paragraph: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Line:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Media: lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")).
			Italic(true),
		Copy: lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1),
		Copied: lipgloss.NewStyle().
			Background(lipgloss.Color("42")).
			Foreground(lipgloss.Color("0")).
			Bold(true).
			Padding(0, 1),
		Empty: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// ForBlock returns the style for a block kind.
func (s Styles) ForBlock(kind contenttype.BlockKind) lipgloss.Style {
	switch kind {
	case contenttype.BlockHeading:
		return s.Heading
	case contenttype.BlockLines:
		return s.Line
	case contenttype.BlockMedia:
		return s.Media
	default:
		return s.Paragraph
	}
}
