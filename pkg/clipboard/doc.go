// Package clipboard implements the copy action: writing canonical text to a
// clipboard and holding a short-lived "copied" acknowledgement.
package clipboard
