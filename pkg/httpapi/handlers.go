package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goliatone/go-postformat/pkg/contenttype"
	"github.com/goliatone/go-postformat/pkg/render"
	"github.com/goliatone/go-postformat/pkg/session"
)

const uploadField = "file"

type contentTypesResponse struct {
	Data []contenttype.Definition `json:"data"`
}

// RenderRequest is the full form state of a client session.
type RenderRequest struct {
	ContentType string            `json:"contentType"`
	Text        map[string]string `json:"text"`
	Media       map[string]string `json:"media"`
	Copied      bool              `json:"copied"`
}

// RenderResponse carries both rendering contracts for a form state.
type RenderResponse struct {
	Canonical string         `json:"canonical"`
	Preview   render.Preview `json:"preview"`
	HTML      string         `json:"html"`
}

// MediaResponse describes a decoded upload.
type MediaResponse struct {
	Field   string `json:"field"`
	Name    string `json:"name"`
	Size    int    `json:"size"`
	DataURI string `json:"dataUri"`
}

func (c *Component) listContentTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, contentTypesResponse{Data: c.opts.Registry.List()})
}

func (c *Component) getContentType(w http.ResponseWriter, r *http.Request) {
	def, err := c.opts.Registry.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (c *Component) render(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	// media travels as base64 data URIs, a third larger than the payload
	r.Body = http.MaxBytesReader(w, r.Body, c.opts.MaxMediaBytes*2)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, fmt.Errorf("%w: %v", ErrRequestTooLarge, err))
			return
		}
		writeError(w, fmt.Errorf("%w: decode render request: %v", ErrBadRequest, err))
		return
	}
	if _, err := c.opts.Registry.Lookup(req.ContentType); err != nil {
		writeError(w, err)
		return
	}

	preview := c.preview.Preview(req.ContentType, req.Text, req.Media)
	fragment, err := c.html.Fragment(preview, req.Copied)
	if err != nil {
		c.opts.Logger.Error("render preview html", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, RenderResponse{
		Canonical: c.preview.Canonical(req.ContentType, req.Text, req.Media),
		Preview:   preview,
		HTML:      fragment,
	})
}

func (c *Component) uploadMedia(w http.ResponseWriter, r *http.Request) {
	def, err := c.opts.Registry.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	name := chi.URLParam(r, "field")
	field, ok := def.Field(name)
	if !ok || !field.IsMedia() {
		writeError(w, fmt.Errorf("%w: %s.%s", ErrUnknownField, def.ID, name))
		return
	}

	file, err := c.readUpload(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	uri, err := c.opts.Decoder.Decode(r.Context(), file, field.Accept)
	if err != nil {
		c.opts.Logger.Warn("media upload rejected",
			zap.String("contentType", def.ID),
			zap.String("field", name),
			zap.Error(err),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MediaResponse{
		Field:   name,
		Name:    file.Name,
		Size:    file.Size(),
		DataURI: uri,
	})
}

func (c *Component) readUpload(w http.ResponseWriter, r *http.Request) (session.File, error) {
	// multipart overhead on top of the payload limit
	r.Body = http.MaxBytesReader(w, r.Body, c.opts.MaxMediaBytes+1<<20)
	if err := r.ParseMultipartForm(c.opts.MaxMediaBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return session.File{}, fmt.Errorf("%w: %v", session.ErrMediaTooLarge, err)
		}
		return session.File{}, fmt.Errorf("%w: parse upload: %v", ErrBadRequest, err)
	}

	part, header, err := r.FormFile(uploadField)
	if err != nil {
		return session.File{}, fmt.Errorf("%w: missing %q part: %v", ErrBadRequest, uploadField, err)
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		return session.File{}, fmt.Errorf("%w: read upload: %v", ErrBadRequest, err)
	}
	return session.File{
		Name:     header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}
