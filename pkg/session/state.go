package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-postformat/pkg/contenttype"
)

// EventKind labels state changes reported to the OnChange hook.
type EventKind string

const (
	EventTypeSelected  EventKind = "type-selected"
	EventTextChanged   EventKind = "text-changed"
	EventMediaAttached EventKind = "media-attached"
	EventMediaRemoved  EventKind = "media-removed"
	EventPreviewReady  EventKind = "preview-ready"
	EventMediaFailed   EventKind = "media-failed"
)

// Event describes a single state change.
type Event struct {
	Kind  EventKind
	Field string
	Err   error
}

// Snapshot is an immutable copy of the state, suitable for rendering.
type Snapshot struct {
	ContentType string               `json:"contentType"`
	Text        map[string]string    `json:"text"`
	Previews    map[string]string    `json:"previews"`
	Media       map[string]MediaInfo `json:"media"`
}

// State is the form state of one editing session. It is safe for concurrent
// use; background decodes synchronise through the same lock.
type State struct {
	mu sync.Mutex

	registry *contenttype.Registry
	decoder  MediaDecoder
	logger   *zap.Logger
	onChange func(Event)

	selected string
	text     map[string]string
	handles  map[string]File
	previews map[string]string
	failures map[string]error

	// latest holds the sequence number of the newest media request per
	// field; a decode whose number no longer matches is stale.
	latest map[string]uint64
	seq    uint64

	// inflight counts running decodes; idle is closed and cleared when it
	// drops back to zero, so each busy period gets a fresh channel.
	inflight int
	idle     chan struct{}
}

// New creates an empty state with no content type selected.
func New(options ...Option) *State {
	s := &State{
		registry: contenttype.Default(),
		decoder:  NewDataURIDecoder(DefaultMaxMediaBytes),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.resetLocked()
	return s
}

// SelectType switches the session to the content type id. Unknown ids return
// an error wrapping ErrUnknownContentType and leave the state untouched.
// Selecting the current type again is a no-op; any other switch discards all
// field values, media and in-flight decodes.
func (s *State) SelectType(id string) error {
	def, err := s.registry.Lookup(id)
	if err != nil {
		return fmt.Errorf("session: select type: %w", err)
	}

	s.mu.Lock()
	if s.selected == def.ID {
		s.mu.Unlock()
		return nil
	}
	s.selected = def.ID
	s.resetLocked()
	s.mu.Unlock()

	s.emit(Event{Kind: EventTypeSelected})
	return nil
}

// SelectedType returns the current content type id, or "" when none is
// selected.
func (s *State) SelectedType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Definition returns the definition of the selected content type.
func (s *State) Definition() (contenttype.Definition, bool) {
	selected := s.SelectedType()
	if selected == "" {
		return contenttype.Definition{}, false
	}
	def, err := s.registry.Lookup(selected)
	if err != nil {
		return contenttype.Definition{}, false
	}
	return def, true
}

// SetText stores value for field. Any string, including "", is accepted and
// the last write wins.
func (s *State) SetText(field, value string) {
	s.mu.Lock()
	s.text[field] = value
	s.mu.Unlock()

	s.emit(Event{Kind: EventTextChanged, Field: field})
}

// Text returns the stored value for field.
func (s *State) Text(field string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.text[field]
	return value, ok
}

// SetMedia attaches file to field and decodes it in the background; it
// returns before the preview exists. A nil file removes both the handle and
// any preview for field and cancels interest in pending decodes.
func (s *State) SetMedia(ctx context.Context, field string, file *File) {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	s.seq++
	token := s.seq
	s.latest[field] = token
	delete(s.failures, field)

	if file == nil {
		delete(s.handles, field)
		delete(s.previews, field)
		s.mu.Unlock()
		s.emit(Event{Kind: EventMediaRemoved, Field: field})
		return
	}

	handle := File{
		Name:     file.Name,
		MIMEType: file.MIMEType,
		Data:     append([]byte(nil), file.Data...),
	}
	s.handles[field] = handle
	accept := s.acceptLocked(field)
	s.inflight++
	if s.idle == nil {
		s.idle = make(chan struct{})
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventMediaAttached, Field: field})
	go s.decode(ctx, field, token, handle, accept)
}

func (s *State) decode(ctx context.Context, field string, token uint64, file File, accept string) {
	uri, err := s.decoder.Decode(ctx, file, accept)

	s.mu.Lock()
	s.settleLocked()
	if s.latest[field] != token {
		s.mu.Unlock()
		s.logger.Debug("discarding stale media decode",
			zap.String("field", field),
			zap.Uint64("seq", token),
		)
		return
	}
	if err != nil {
		wrapped := fmt.Errorf("%w: field %q: %w", ErrMediaDecode, field, err)
		delete(s.handles, field)
		delete(s.previews, field)
		s.failures[field] = wrapped
		s.mu.Unlock()

		s.logger.Warn("media decode failed",
			zap.String("field", field),
			zap.String("file", file.Name),
			zap.Error(err),
		)
		s.emit(Event{Kind: EventMediaFailed, Field: field, Err: wrapped})
		return
	}
	s.previews[field] = uri
	s.mu.Unlock()

	s.emit(Event{Kind: EventPreviewReady, Field: field})
}

// Media returns the handle attached to field.
func (s *State) Media(field string) (File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, ok := s.handles[field]
	return file, ok
}

// MediaPreview returns the decoded preview for field once available.
func (s *State) MediaPreview(field string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uri, ok := s.previews[field]
	return uri, ok
}

// MediaError returns the error of the latest failed decode for field.
func (s *State) MediaError(field string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures[field]
}

// Wait blocks until every decode started before the call has settled, or
// ctx is done. Decodes started while waiting may extend the wait.
func (s *State) Wait(ctx context.Context) error {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()
	if idle == nil {
		return nil
	}
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *State) settleLocked() {
	s.inflight--
	if s.inflight == 0 && s.idle != nil {
		close(s.idle)
		s.idle = nil
	}
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ContentType: s.selected,
		Text:        make(map[string]string, len(s.text)),
		Previews:    make(map[string]string, len(s.previews)),
		Media:       make(map[string]MediaInfo, len(s.handles)),
	}
	for k, v := range s.text {
		snap.Text[k] = v
	}
	for k, v := range s.previews {
		snap.Previews[k] = v
	}
	for k, f := range s.handles {
		snap.Media[k] = MediaInfo{Name: f.Name, MIMEType: f.MIMEType, Size: f.Size()}
	}
	return snap
}

func (s *State) resetLocked() {
	s.text = make(map[string]string)
	s.handles = make(map[string]File)
	s.previews = make(map[string]string)
	s.failures = make(map[string]error)
	s.latest = make(map[string]uint64)
}

func (s *State) acceptLocked(field string) string {
	if s.selected == "" {
		return ""
	}
	def, err := s.registry.Lookup(s.selected)
	if err != nil {
		return ""
	}
	if descriptor, ok := def.Field(field); ok {
		return descriptor.Accept
	}
	return ""
}

func (s *State) emit(evt Event) {
	if s.onChange != nil {
		s.onChange(evt)
	}
}
