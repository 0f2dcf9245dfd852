package session

import (
	"errors"

	"github.com/goliatone/go-postformat/pkg/contenttype"
)

var (
	// ErrUnknownContentType aliases the registry error so callers can match it
	// without importing contenttype.
	ErrUnknownContentType = contenttype.ErrUnknownContentType
	// ErrMediaDecode wraps every failure to turn a file into a preview.
	ErrMediaDecode = errors.New("session: media decode failed")
	// ErrEmptyMedia is returned for files without content.
	ErrEmptyMedia = errors.New("session: media file is empty")
	// ErrMediaTooLarge is returned when a file exceeds the decoder limit.
	ErrMediaTooLarge = errors.New("session: media file too large")
	// ErrUnsupportedMedia is returned when the file type does not satisfy the
	// field accept pattern.
	ErrUnsupportedMedia = errors.New("session: unsupported media type")
)
