package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-postformat/pkg/contenttype"
	"github.com/goliatone/go-postformat/pkg/session"
)

// DefaultMaxMediaBytes bounds multipart uploads.
const DefaultMaxMediaBytes = session.DefaultMaxMediaBytes

// GuardFunc can reject a request before it reaches a handler. Returning an
// HTTPError selects the status code.
type GuardFunc func(r *http.Request) error

type Options struct {
	Registry       *contenttype.Registry
	Decoder        session.MediaDecoder
	MaxMediaBytes  int64
	AllowedOrigins []string
	Guard          GuardFunc
	Logger         *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Registry:       contenttype.Default(),
		MaxMediaBytes:  DefaultMaxMediaBytes,
		AllowedOrigins: []string{"*"},
		Logger:         zap.NewNop(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Registry == nil {
		opts.Registry = contenttype.Default()
	}
	if opts.MaxMediaBytes <= 0 {
		opts.MaxMediaBytes = DefaultMaxMediaBytes
	}
	if opts.Decoder == nil {
		opts.Decoder = session.NewDataURIDecoder(int(opts.MaxMediaBytes))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.AllowedOrigins != nil {
		opts.AllowedOrigins = append([]string{}, opts.AllowedOrigins...)
	}
	return opts
}

func WithRegistry(registry *contenttype.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = registry
	}
}

func WithDecoder(decoder session.MediaDecoder) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Decoder = decoder
	}
}

func WithMaxMediaBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxMediaBytes = limit
	}
}

func WithAllowedOrigins(origins []string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.AllowedOrigins = append([]string{}, origins...)
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
