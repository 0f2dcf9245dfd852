package contenttype

import "errors"

var (
	// ErrUnknownContentType is returned when a lookup references an id that is
	// not registered. Callers treat it as "no type selected".
	ErrUnknownContentType = errors.New("contenttype: unknown content type")
	// ErrInvalidDefinition wraps validation failures raised while registering.
	ErrInvalidDefinition = errors.New("contenttype: invalid definition")
)
