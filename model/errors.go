package model

import "github.com/pkg/errors"

// ErrOutOfBounds is returned when a coordinate falls outside [0, size).
var ErrOutOfBounds = errors.New("coordinate out of bounds")
