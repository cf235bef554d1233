package model

import "github.com/pkg/errors"

var (
	// ErrInvalidDimensions is returned when a grid is built with a non-positive width or height
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrOutOfBounds is returned when a point lies outside the grid
	ErrOutOfBounds = errors.New("point out of bounds")
)
