package contenttype

import "sync"

// Built-in content-type identifiers.
const (
	News     = "news"
	Video    = "video"
	HowTo    = "howto"
	Tools    = "tools"
	Industry = "industry"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry with the built-in post templates. It is
// built once and must be treated as read-only.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg := &Registry{definitions: make(map[string]Definition)}
		for _, def := range Builtins() {
			reg.MustRegister(def)
		}
		defaultRegistry = reg
	})
	return defaultRegistry
}

// Builtins returns fresh copies of the built-in definitions.
func Builtins() []Definition {
	return []Definition{
		{
			ID:    News,
			Title: "Real-Time News Post",
			Fields: []FieldDescriptor{
				{Name: "headline", Label: "Headline", Kind: FieldShortText, Placeholder: "Breaking: AI Revolutionizes Content Creation!", PreviewLabel: "Your Headline"},
				{Name: "source", Label: "Source", Kind: FieldShortText, Placeholder: "TechCrunch", PreviewLabel: "[Source]"},
				{Name: "summary", Label: "News Summary", Kind: FieldLongText, Placeholder: "Brief summary of the news...", PreviewLabel: "[News Summary]"},
				{Name: "commentary", Label: "Your Commentary", Kind: FieldLongText, Placeholder: "Add your thoughts or analysis...", PreviewLabel: "[Your Commentary]"},
				{Name: "question", Label: "Engagement Question", Kind: FieldShortText, Placeholder: "How do you see this impacting content creators?", PreviewLabel: "[Engagement Question]"},
				{Name: "newsImage", Label: "Screenshot of News Article", Kind: FieldMedia, Accept: "image/*", Marker: "[News Screenshot Attached]"},
			},
			Layout: Layout{Blocks: []Block{
				{Kind: BlockHeading, Text: "{{ headline|safe }}"},
				{Kind: BlockParagraph, Text: "According to {{ source|safe }}, {{ summary|safe }}"},
				{Kind: BlockParagraph, Text: "{{ commentary|safe }}"},
				{Kind: BlockParagraph, Text: "{{ question|safe }}"},
				{Kind: BlockMedia, Field: "newsImage"},
			}},
		},
		{
			ID:    Video,
			Title: "Screenshot + Video Commentary",
			Fields: []FieldDescriptor{
				{Name: "context", Label: "Context", Kind: FieldLongText, Placeholder: "Here's my quick reaction to OpenAI's new GPT update!", PreviewLabel: "[Video Context]"},
				{Name: "videoContent", Label: "Video Content", Kind: FieldMedia, Accept: "video/*", Marker: "[Video Content Attached]"},
				{Name: "screenshot", Label: "Screenshot", Kind: FieldMedia, Accept: "image/*", Marker: "[Screenshot Attached]"},
				{Name: "reaction", Label: "Your Reaction", Kind: FieldLongText, Placeholder: "Share your thoughts on this development...", PreviewLabel: "[Your Reaction]"},
				{Name: "cta", Label: "Call to Action", Kind: FieldShortText, Placeholder: "Share your thoughts in the comments!", PreviewLabel: "[Call to Action]"},
			},
			Layout: Layout{Blocks: []Block{
				{Kind: BlockParagraph, Text: "{{ context|safe }}"},
				{Kind: BlockMedia, Field: "videoContent"},
				{Kind: BlockMedia, Field: "screenshot", Separator: "\n"},
				{Kind: BlockParagraph, Text: "Reaction: {{ reaction|safe }}"},
				{Kind: BlockParagraph, Text: "{{ cta|safe }}"},
			}},
		},
		{
			ID:    HowTo,
			Title: "How-To Post",
			Fields: []FieldDescriptor{
				{Name: "title", Label: "Title", Kind: FieldShortText, Placeholder: "How to Create AI-Powered Content in 5 Steps!", PreviewLabel: "Your How-To Title"},
				{Name: "steps", Label: "Steps (One per line)", Kind: FieldLongText, Placeholder: "1. Choose your topic\n2. Create visuals\n3. Write content", PreviewLabel: "[Steps]"},
				{Name: "closing", Label: "Closing Message", Kind: FieldLongText, Placeholder: "Add a call to action or final thoughts...", PreviewLabel: "[Closing Message]"},
				{Name: "tutorialImages", Label: "Tutorial Images", Kind: FieldMedia, Accept: "image/*", Marker: "[Tutorial Images Attached]"},
			},
			Layout: Layout{Blocks: []Block{
				{Kind: BlockHeading, Text: "{{ title|safe }}"},
				{Kind: BlockLines, Field: "steps", Bullet: "📍 "},
				{Kind: BlockParagraph, Text: "{{ closing|safe }}"},
				{Kind: BlockMedia, Field: "tutorialImages"},
			}},
		},
		{
			ID:    Tools,
			Title: "Top Tools List",
			Fields: []FieldDescriptor{
				{Name: "title", Label: "Title", Kind: FieldShortText, Placeholder: "Top 5 AI Tools for Content Creation", PreviewLabel: "Your Tools List"},
				{Name: "tools", Label: "Tools (One per line)", Kind: FieldLongText, Placeholder: "1. Tool Name - Description\n2. Tool Name - Description", PreviewLabel: "[Tools]"},
				{Name: "cta", Label: "Call to Action", Kind: FieldShortText, Placeholder: "Which tool is your favorite? Let me know below!", PreviewLabel: "[Call to Action]"},
				{Name: "toolScreenshots", Label: "Tool Screenshots", Kind: FieldMedia, Accept: "image/*", Marker: "[Tool Screenshots Attached]"},
			},
			Layout: Layout{Blocks: []Block{
				{Kind: BlockHeading, Text: "{{ title|safe }}"},
				{Kind: BlockLines, Field: "tools", Bullet: "🔧 "},
				{Kind: BlockParagraph, Text: "{{ cta|safe }}"},
				{Kind: BlockMedia, Field: "toolScreenshots"},
			}},
		},
		{
			ID:    Industry,
			Title: "Industry News or Insights",
			Fields: []FieldDescriptor{
				{Name: "headline", Label: "Headline", Kind: FieldShortText, Placeholder: "AI Market to Reach $300 Billion by 2030", PreviewLabel: "Your Industry News Headline"},
				{Name: "source", Label: "Source", Kind: FieldShortText, Placeholder: "Market Research Firm", PreviewLabel: "[Source]"},
				{Name: "summary", Label: "Summary", Kind: FieldLongText, Placeholder: "According to [Source], the AI market is expected to grow...", PreviewLabel: "[Summary]"},
				{Name: "insight", Label: "Your Insight", Kind: FieldLongText, Placeholder: "This highlights the growing demand for...", PreviewLabel: "[Your Insight]"},
				{Name: "dataVisual", Label: "Graph or Infographic", Kind: FieldMedia, Accept: "image/*", Marker: "[Data Visualization/Graph Attached]"},
			},
			Layout: Layout{Blocks: []Block{
				{Kind: BlockHeading, Text: "{{ headline|safe }}"},
				{Kind: BlockParagraph, Text: "According to {{ source|safe }}, {{ summary|safe }}"},
				{Kind: BlockParagraph, Text: "Our Insight: {{ insight|safe }}"},
				{Kind: BlockMedia, Field: "dataVisual"},
			}},
		},
	}
}
