// Package session holds the mutable form state of one editing session: the
// selected content type, text values, attached media handles and their
// decoded previews.
//
// All mutations are synchronous except media decoding, which runs in the
// background. Each SetMedia call is tagged with a sequence number and a
// decode only commits when it is still the latest request for its field in
// the current content-type selection; superseded or reset requests are
// discarded. A failed decode leaves the field without media and records the
// error for MediaError.
package session
