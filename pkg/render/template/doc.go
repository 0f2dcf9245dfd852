// Package template defines the template engine seam the renderers use to
// execute layout snippets and preview pages. The gotemplate subpackage
// provides the pongo2-backed implementation.
package template
