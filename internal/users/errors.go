package users

import "errors"

// ErrInvalidInput marks a request the service refused before touching the
// database.
var ErrInvalidInput = errors.New("invalid input")
