package postformat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-postformat/pkg/clipboard"
	"github.com/goliatone/go-postformat/pkg/contenttype"
	"github.com/goliatone/go-postformat/pkg/testsupport"
)

func TestSession_NewsCopyFlow(t *testing.T) {
	writer := &clipboard.MemoryWriter{}
	s, err := NewSession(WithClipboard(writer), WithAckDelay(time.Hour))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	defer s.Close()

	if got := s.Canonical(); got != "" {
		t.Fatalf("expected empty canonical before selection, got %q", got)
	}
	if !s.Preview().Empty() {
		t.Fatalf("expected empty preview before selection")
	}

	state := s.State()
	if err := state.SelectType(contenttype.News); err != nil {
		t.Fatalf("select: %v", err)
	}
	state.SetText("headline", "X")
	state.SetText("source", "Y")
	state.SetText("summary", "Z")

	if err := s.Copy(context.Background()); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if writer.Text() != "X\n\nAccording to Y, Z\n\n\n\n\n\n" {
		t.Fatalf("unexpected clipboard text %q", writer.Text())
	}
	if !s.Copied() || s.CopyLabel() != clipboard.LabelCopied {
		t.Fatalf("expected acknowledgement after copy")
	}

	fragment, err := s.PreviewHTML()
	if err != nil {
		t.Fatalf("preview html: %v", err)
	}
	if !strings.Contains(fragment, "Copied!") {
		t.Fatalf("expected acknowledgement in html: %s", fragment)
	}
}

func TestSession_MediaMarker(t *testing.T) {
	s, err := NewSession(WithClipboard(&clipboard.MemoryWriter{}))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	state := s.State()
	_ = state.SelectType(contenttype.Industry)
	state.SetMedia(context.Background(), "dataVisual", &File{Name: "chart.png", Data: testsupport.PNGBytes()})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := state.Wait(ctx); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if !strings.HasSuffix(s.Canonical(), "[Data Visualization/Graph Attached]") {
		t.Fatalf("expected marker, got %q", s.Canonical())
	}

	page, err := s.PreviewPage()
	if err != nil {
		t.Fatalf("preview page: %v", err)
	}
	if !strings.Contains(page, `src="data:image/png;base64,`) {
		t.Fatalf("expected image in page: %s", page)
	}
}

func TestSession_UnknownType(t *testing.T) {
	s, err := NewSession(WithClipboard(&clipboard.MemoryWriter{}))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := s.State().SelectType("podcast"); !errors.Is(err, ErrUnknownContentType) {
		t.Fatalf("expected ErrUnknownContentType, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	got := Format(contenttype.Video, map[string]string{"reaction": "Wow"}, nil)
	if got != "\n\n\n\n\nReaction: Wow\n\n" {
		t.Fatalf("unexpected video text %q", got)
	}
	if Format("unknown", nil, nil) != "" {
		t.Fatalf("expected empty output for unknown type")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := EmbeddedTemplates().Open("preview.tpl"); err != nil {
		t.Fatalf("expected preview template: %v", err)
	}
}
