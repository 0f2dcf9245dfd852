package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goliatone/go-postformat/pkg/contenttype"
	"github.com/goliatone/go-postformat/pkg/session"
)

var (
	// ErrUnknownField is returned when a media upload targets a field the
	// content type does not declare as media.
	ErrUnknownField = errors.New("httpapi: unknown media field")
	// ErrBadRequest wraps malformed payloads.
	ErrBadRequest = errors.New("httpapi: bad request")
	// ErrRequestTooLarge is returned when a request body exceeds its limit.
	ErrRequestTooLarge = errors.New("httpapi: request body too large")
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	case errors.Is(err, contenttype.ErrUnknownContentType), errors.Is(err, ErrUnknownField):
		return http.StatusNotFound
	case errors.Is(err, session.ErrUnsupportedMedia):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, session.ErrMediaTooLarge), errors.Is(err, ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, session.ErrEmptyMedia), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = http.StatusText(code)
	}
	writeJSON(w, code, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}
