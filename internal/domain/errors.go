package domain

import "errors"

// ErrInvalidInput is returned by constructors when a value breaks a model invariant.
var ErrInvalidInput = errors.New("invalid input")
