package model

import "github.com/pkg/errors"

var (
	// ErrInvalidDimension is returned when a grid is built with a non-positive width or height
	ErrInvalidDimension = errors.New("invalid grid dimension")

	// ErrOutOfBounds is returned when an accessor is called with coordinates outside the grid
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)
