package request

import "errors"

// ErrInternalServer is the generic error for an unexpected server failure.
var ErrInternalServer = errors.New("internal server error")
