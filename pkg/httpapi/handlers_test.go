package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-postformat/pkg/contenttype"
	"github.com/goliatone/go-postformat/pkg/testsupport"
)

func newHandler(t *testing.T, fns ...OptionFn) http.Handler {
	t.Helper()
	component, err := New(fns...)
	if err != nil {
		t.Fatalf("new component: %v", err)
	}
	return component.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func upload(t *testing.T, h http.Handler, path, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = part.Write(data)
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestListContentTypes(t *testing.T) {
	rec := doJSON(t, newHandler(t), http.MethodGet, "/content-types", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp contentTypesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var ids []string
	for _, def := range resp.Data {
		ids = append(ids, def.ID)
	}
	want := []string{contenttype.News, contenttype.Video, contenttype.HowTo, contenttype.Tools, contenttype.Industry}
	if strings.Join(ids, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestGetContentType(t *testing.T) {
	h := newHandler(t)

	rec := doJSON(t, h, http.MethodGet, "/content-types/howto", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var def contenttype.Definition
	if err := json.Unmarshal(rec.Body.Bytes(), &def); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if def.Title != "How-To Post" || len(def.Fields) != 4 {
		t.Fatalf("unexpected definition %+v", def)
	}

	rec = doJSON(t, h, http.MethodGet, "/content-types/podcast", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRender_NewsEndToEnd(t *testing.T) {
	rec := doJSON(t, newHandler(t), http.MethodPost, "/render", RenderRequest{
		ContentType: contenttype.News,
		Text:        map[string]string{"headline": "X", "source": "Y", "summary": "Z"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp RenderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Canonical != "X\n\nAccording to Y, Z\n\n\n\n\n\n" {
		t.Fatalf("unexpected canonical %q", resp.Canonical)
	}
	if len(resp.Preview.Blocks) == 0 || resp.Preview.Blocks[0].Text != "X" {
		t.Fatalf("unexpected preview %+v", resp.Preview)
	}
	if !strings.Contains(resp.HTML, "[Your Commentary]") {
		t.Fatalf("expected placeholder in html: %s", resp.HTML)
	}
}

func TestRender_Errors(t *testing.T) {
	h := newHandler(t)

	rec := doJSON(t, h, http.MethodPost, "/render", RenderRequest{ContentType: "podcast"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown type, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader("{"))
	bad := httptest.NewRecorder()
	h.ServeHTTP(bad, req)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", bad.Code)
	}
}

func TestRender_OversizedBody(t *testing.T) {
	h := newHandler(t, WithMaxMediaBytes(16))

	rec := doJSON(t, h, http.MethodPost, "/render", RenderRequest{
		ContentType: "news",
		Text:        map[string]string{"summary": strings.Repeat("z", 256)},
	})
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for oversized body, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "request body too large") {
		t.Fatalf("unexpected error body %s", rec.Body.String())
	}
}

func TestUploadMedia(t *testing.T) {
	h := newHandler(t)

	rec := upload(t, h, "/media/news/newsImage", "shot.png", testsupport.PNGBytes())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp MediaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Name != "shot.png" || !strings.HasPrefix(resp.DataURI, "data:image/png;base64,") {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestUploadMedia_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts []OptionFn
		path string
		data []byte
		want int
	}{
		{name: "unknown type", path: "/media/podcast/cover", data: testsupport.PNGBytes(), want: http.StatusNotFound},
		{name: "text field", path: "/media/news/headline", data: testsupport.PNGBytes(), want: http.StatusNotFound},
		{name: "wrong kind", path: "/media/video/videoContent", data: testsupport.PNGBytes(), want: http.StatusUnsupportedMediaType},
		{name: "empty", path: "/media/news/newsImage", data: nil, want: http.StatusBadRequest},
		{name: "too large", opts: []OptionFn{WithMaxMediaBytes(8)}, path: "/media/news/newsImage", data: testsupport.PNGBytes(), want: http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := upload(t, newHandler(t, tt.opts...), tt.path, "file.png", tt.data)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGuardAndLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := newHandler(t,
		WithLogger(zap.New(core)),
		WithGuard(func(r *http.Request) error {
			if r.Header.Get("X-Token") == "" {
				return StatusError{Code: http.StatusUnauthorized, Err: errors.New("missing token")}
			}
			return nil
		}),
	)

	rec := doJSON(t, h, http.MethodGet, "/content-types", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	entries := logs.FilterMessage("http request").All()
	if len(entries) != 1 || entries[0].ContextMap()["status"] != int64(http.StatusUnauthorized) {
		t.Fatalf("unexpected log entries %+v", entries)
	}
}

func TestRegisterRoutes(t *testing.T) {
	component, err := New()
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	router := chi.NewRouter()
	pattern, err := component.RegisterRoutes(router, "/api/postformat/")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if pattern != "/api/postformat" {
		t.Fatalf("unexpected pattern %q", pattern)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/postformat/content-types/news", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 through mount, got %d", rec.Code)
	}
	if _, err := component.RegisterRoutes(nil, "/x"); err == nil {
		t.Fatalf("expected error for nil mux")
	}
}
