package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/goliatone/go-postformat/pkg/render"
	"github.com/goliatone/go-postformat/pkg/renderers/html"
)

// Mux is the minimal interface required to mount the API. It is satisfied by
// chi.Router.
type Mux interface {
	Mount(pattern string, handler http.Handler)
}

// Component wraps the API handler, its configuration, and routing helpers.
type Component struct {
	opts    Options
	preview *render.Renderer
	html    *html.Renderer
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)

	preview, err := render.New(render.WithRegistry(opts.Registry), render.WithLogger(opts.Logger))
	if err != nil {
		return nil, fmt.Errorf("httpapi: init renderer: %w", err)
	}
	htmlRenderer, err := html.New(html.WithLogger(opts.Logger))
	if err != nil {
		return nil, fmt.Errorf("httpapi: init html renderer: %w", err)
	}
	return &Component{opts: opts, preview: preview, html: htmlRenderer}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the routed API.
func (c *Component) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(RequestLogger(c.opts.Logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: c.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	router.Use(guard(c.opts.Guard))

	router.Get("/content-types", c.listContentTypes)
	router.Get("/content-types/{id}", c.getContentType)
	router.Post("/render", c.render)
	router.Post("/media/{id}/{field}", c.uploadMedia)
	return router
}

// RegisterRoutes mounts the API under basePath and returns the mount path.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("httpapi: missing mux")
	}
	pattern := MountPath(basePath)
	mux.Mount(pattern, c.Handler())
	return pattern, nil
}

// MountPath normalises basePath into a mount pattern.
func MountPath(basePath string) string {
	basePath = strings.Trim(strings.TrimSpace(basePath), "/")
	if basePath == "" {
		return "/"
	}
	return "/" + basePath
}
