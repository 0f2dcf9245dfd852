package clipboard

import "errors"

// ErrWriteFailed wraps every clipboard write failure.
var ErrWriteFailed = errors.New("clipboard: write failed")
