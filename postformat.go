// Package postformat assembles social posts from typed form fields. It ties
// the content-type registry, the per-session form state, the canonical and
// preview renderers and the copy action together behind one Session value.
package postformat

import (
	"context"
	"fmt"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-postformat/pkg/clipboard"
	"github.com/goliatone/go-postformat/pkg/contenttype"
	"github.com/goliatone/go-postformat/pkg/render"
	"github.com/goliatone/go-postformat/pkg/renderers/html"
	"github.com/goliatone/go-postformat/pkg/session"
)

// Definition aliases contenttype.Definition for callers that only import the
// root package.
type Definition = contenttype.Definition

// Preview aliases render.Preview.
type Preview = render.Preview

// File aliases session.File.
type File = session.File

// ErrUnknownContentType is returned when selecting an unregistered type.
var ErrUnknownContentType = contenttype.ErrUnknownContentType

type config struct {
	registry *contenttype.Registry
	writer   clipboard.Writer
	decoder  session.MediaDecoder
	ackDelay time.Duration
	theme    *theme.RendererConfig
	logger   *zap.Logger
	onChange func(session.Event)
}

// Option configures a Session.
type Option func(*config)

// WithRegistry overrides contenttype.Default().
func WithRegistry(registry *contenttype.Registry) Option {
	return func(c *config) {
		if registry != nil {
			c.registry = registry
		}
	}
}

// WithClipboard overrides the system clipboard writer.
func WithClipboard(writer clipboard.Writer) Option {
	return func(c *config) {
		if writer != nil {
			c.writer = writer
		}
	}
}

// WithDecoder overrides the media decoder.
func WithDecoder(decoder session.MediaDecoder) Option {
	return func(c *config) {
		if decoder != nil {
			c.decoder = decoder
		}
	}
}

// WithAckDelay overrides how long the copied acknowledgement lasts.
func WithAckDelay(d time.Duration) Option {
	return func(c *config) {
		c.ackDelay = d
	}
}

// WithTheme applies theme CSS variables to PreviewPage output.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOnChange registers a hook fired after each form state change.
func WithOnChange(fn func(session.Event)) Option {
	return func(c *config) {
		c.onChange = fn
	}
}

// Session is one user's editing session.
type Session struct {
	state    *session.State
	renderer *render.Renderer
	html     *html.Renderer
	copier   *clipboard.Copier
}

// NewSession builds a session with nothing selected.
func NewSession(options ...Option) (*Session, error) {
	cfg := &config{
		registry: contenttype.Default(),
		writer:   clipboard.SystemWriter{},
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	renderer, err := render.New(render.WithRegistry(cfg.registry), render.WithLogger(cfg.logger))
	if err != nil {
		return nil, fmt.Errorf("postformat: init renderer: %w", err)
	}
	htmlRenderer, err := html.New(html.WithTheme(cfg.theme), html.WithLogger(cfg.logger))
	if err != nil {
		return nil, fmt.Errorf("postformat: init html renderer: %w", err)
	}

	stateOpts := []session.Option{
		session.WithRegistry(cfg.registry),
		session.WithLogger(cfg.logger),
		session.WithOnChange(cfg.onChange),
	}
	if cfg.decoder != nil {
		stateOpts = append(stateOpts, session.WithDecoder(cfg.decoder))
	}

	return &Session{
		state:    session.New(stateOpts...),
		renderer: renderer,
		html:     htmlRenderer,
		copier: clipboard.NewCopier(cfg.writer,
			clipboard.WithAckDelay(cfg.ackDelay),
			clipboard.WithLogger(cfg.logger),
		),
	}, nil
}

// State exposes the underlying form state.
func (s *Session) State() *session.State {
	return s.state
}

// Registry returns the registry the session resolves types against.
func (s *Session) Registry() *contenttype.Registry {
	return s.renderer.Registry()
}

// Canonical renders the clipboard text for the current state.
func (s *Session) Canonical() string {
	snap := s.state.Snapshot()
	return s.renderer.Canonical(snap.ContentType, snap.Text, snap.Previews)
}

// Preview renders display blocks for the current state.
func (s *Session) Preview() Preview {
	snap := s.state.Snapshot()
	return s.renderer.Preview(snap.ContentType, snap.Text, snap.Previews)
}

// PreviewHTML renders the current preview as a sanitized HTML fragment.
func (s *Session) PreviewHTML() (string, error) {
	return s.html.Fragment(s.Preview(), s.copier.Copied())
}

// PreviewPage renders the current preview as a themed HTML document.
func (s *Session) PreviewPage() (string, error) {
	return s.html.Page(s.Preview(), s.copier.Copied())
}

// Copy places the canonical text on the clipboard.
func (s *Session) Copy(ctx context.Context) error {
	return s.copier.Copy(ctx, s.Canonical())
}

// Copied reports whether the copy acknowledgement is showing.
func (s *Session) Copied() bool {
	return s.copier.Copied()
}

// CopyLabel returns the copy control label for the current acknowledgement
// state.
func (s *Session) CopyLabel() string {
	return s.copier.Label()
}

// Close cancels pending timers.
func (s *Session) Close() {
	s.copier.Close()
}

// Format renders the canonical text for a content type with the default
// registry. It is the simplest entry point for callers that already hold
// field values.
func Format(contentType string, text, previews map[string]string) string {
	return render.Canonical(contentType, text, previews)
}
