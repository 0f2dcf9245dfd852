// Package httpapi exposes the content-type registry and both renderers over a
// small stateless JSON API. Nothing is stored between requests: clients send
// the full form state to /render and upload media to /media to obtain data
// URIs they keep themselves.
//
// Routes, relative to the mount path:
//
//	GET  /content-types
//	GET  /content-types/{id}
//	POST /render
//	POST /media/{id}/{field}
package httpapi
