package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxMediaBytes caps decoded uploads.
const DefaultMaxMediaBytes = 25 << 20

// MediaDecoder turns a media handle into a directly displayable
// representation. accept is the field's accept pattern and may be empty.
type MediaDecoder interface {
	Decode(ctx context.Context, file File, accept string) (string, error)
}

// DecoderFunc adapts a function to MediaDecoder.
type DecoderFunc func(ctx context.Context, file File, accept string) (string, error)

// Decode calls fn.
func (fn DecoderFunc) Decode(ctx context.Context, file File, accept string) (string, error) {
	return fn(ctx, file, accept)
}

// DataURIDecoder encodes files as base64 data URIs after checking size and
// accept pattern.
type DataURIDecoder struct {
	MaxBytes int
}

// NewDataURIDecoder returns a decoder with the supplied size cap; zero or
// negative values use DefaultMaxMediaBytes.
func NewDataURIDecoder(maxBytes int) *DataURIDecoder {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxMediaBytes
	}
	return &DataURIDecoder{MaxBytes: maxBytes}
}

// Decode implements MediaDecoder.
func (d *DataURIDecoder) Decode(ctx context.Context, file File, accept string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(file.Data) == 0 {
		return "", fmt.Errorf("%w: %s", ErrEmptyMedia, file.Name)
	}
	if d != nil && d.MaxBytes > 0 && len(file.Data) > d.MaxBytes {
		return "", fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrMediaTooLarge, file.Name, len(file.Data), d.MaxBytes)
	}

	mediaType := ResolveMIMEType(file)
	if !AcceptMatches(accept, mediaType, file.Name) {
		return "", fmt.Errorf("%w: %s (%s) does not match %q", ErrUnsupportedMedia, file.Name, mediaType, accept)
	}

	var b strings.Builder
	b.Grow(len(mediaType) + 13 + base64.StdEncoding.EncodedLen(len(file.Data)))
	b.WriteString("data:")
	b.WriteString(mediaType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(file.Data))
	return b.String(), nil
}

// ResolveMIMEType returns the declared media type when it parses and is more
// specific than application/octet-stream, otherwise the type sniffed from the
// payload. Parameters are dropped.
func ResolveMIMEType(file File) string {
	if declared := strings.TrimSpace(file.MIMEType); declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != "application/octet-stream" {
			return mediaType
		}
	}
	detected := mimetype.Detect(file.Data).String()
	if mediaType, _, err := mime.ParseMediaType(detected); err == nil {
		return mediaType
	}
	return "application/octet-stream"
}

// AcceptMatches evaluates an HTML-style accept list ("image/*", "video/mp4",
// ".png") against a media type and file name. An empty list accepts anything.
func AcceptMatches(accept, mediaType, name string) bool {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return true
	}
	mediaType = strings.ToLower(mediaType)
	for _, part := range strings.Split(accept, ",") {
		pattern := strings.ToLower(strings.TrimSpace(part))
		switch {
		case pattern == "":
			continue
		case pattern == "*" || pattern == "*/*":
			return true
		case strings.HasPrefix(pattern, "."):
			if strings.EqualFold(filepath.Ext(name), pattern) {
				return true
			}
		case strings.HasSuffix(pattern, "/*"):
			if strings.HasPrefix(mediaType, strings.TrimSuffix(pattern, "*")) {
				return true
			}
		default:
			if pattern == mediaType {
				return true
			}
		}
	}
	return false
}
