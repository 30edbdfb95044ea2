package storage

import "errors"

// ErrInvalidInput indicates that the input parameters are invalid.
var ErrInvalidInput = errors.New("invalid input")
