package session

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-postformat/pkg/contenttype"
)

// Option configures a State.
type Option func(*State)

// WithRegistry overrides the registry used to resolve content types.
func WithRegistry(registry *contenttype.Registry) Option {
	return func(s *State) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithDecoder overrides the media decoder.
func WithDecoder(decoder MediaDecoder) Option {
	return func(s *State) {
		if decoder != nil {
			s.decoder = decoder
		}
	}
}

// WithLogger sets the logger used for decode diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOnChange registers a hook invoked after every state change. Decode
// events are delivered from background goroutines.
func WithOnChange(fn func(Event)) Option {
	return func(s *State) {
		s.onChange = fn
	}
}
