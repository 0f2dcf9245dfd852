// Package contenttype holds the declarative content-type model: the field
// descriptors each post template exposes and the ordered layout blocks the
// renderers walk to assemble canonical and preview output. The built-in
// registry returned by Default carries the five social post templates and is
// read-only once initialised. Additional definitions can be loaded from YAML
// or JSON documents and merged over a base registry.
package contenttype
