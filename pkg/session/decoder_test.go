package session_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-postformat/pkg/session"
	"github.com/goliatone/go-postformat/pkg/testsupport"
)

func TestDataURIDecoder_SniffsPNG(t *testing.T) {
	decoder := session.NewDataURIDecoder(0)

	uri, err := decoder.Decode(context.Background(), session.File{Name: "shot", Data: testsupport.PNGBytes()}, "image/*")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Fatalf("unexpected uri %q", uri)
	}
}

func TestDataURIDecoder_PrefersDeclaredType(t *testing.T) {
	decoder := session.NewDataURIDecoder(0)

	uri, err := decoder.Decode(context.Background(), session.File{
		Name:     "clip.mp4",
		MIMEType: "video/mp4; codecs=avc1",
		Data:     []byte("not really a video"),
	}, "video/*")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(uri, "data:video/mp4;base64,") {
		t.Fatalf("unexpected uri %q", uri)
	}
}

func TestDataURIDecoder_Errors(t *testing.T) {
	tests := []struct {
		name   string
		file   session.File
		accept string
		max    int
		want   error
	}{
		{name: "empty", file: session.File{Name: "a.png"}, accept: "image/*", want: session.ErrEmptyMedia},
		{name: "too large", file: session.File{Name: "a.png", Data: testsupport.PNGBytes()}, accept: "image/*", max: 4, want: session.ErrMediaTooLarge},
		{name: "accept mismatch", file: session.File{Name: "a.txt", Data: testsupport.TextBytes()}, accept: "image/*", want: session.ErrUnsupportedMedia},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoder := session.NewDataURIDecoder(tt.max)
			_, err := decoder.Decode(context.Background(), tt.file, tt.accept)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDataURIDecoder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := session.NewDataURIDecoder(0).Decode(ctx, session.File{Name: "a.png", Data: testsupport.PNGBytes()}, "")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAcceptMatches(t *testing.T) {
	tests := []struct {
		accept, mediaType, name string
		want                    bool
	}{
		{"", "text/plain", "a.txt", true},
		{"*/*", "text/plain", "a.txt", true},
		{"image/*", "image/png", "a.png", true},
		{"image/*", "video/mp4", "a.mp4", false},
		{"video/mp4, video/webm", "video/webm", "a.webm", true},
		{".png,.jpg", "application/octet-stream", "A.PNG", true},
		{".png", "image/jpeg", "a.jpg", false},
	}

	for _, tt := range tests {
		if got := session.AcceptMatches(tt.accept, tt.mediaType, tt.name); got != tt.want {
			t.Errorf("AcceptMatches(%q, %q, %q) = %v, want %v", tt.accept, tt.mediaType, tt.name, got, tt.want)
		}
	}
}

func TestOpenFile(t *testing.T) {
	path := testsupport.WriteTempFile(t, "shot.png", testsupport.PNGBytes())

	file, err := session.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if file.Name != "shot.png" || file.Size() != len(testsupport.PNGBytes()) {
		t.Fatalf("unexpected file %+v", file)
	}

	_, err = session.OpenFile(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
