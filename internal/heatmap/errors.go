package heatmap

import "errors"

var (
	// ErrInvalidAxisSelection reports identical or unknown sweep axes.
	ErrInvalidAxisSelection = errors.New("invalid axis selection")

	// ErrInvalidResolution reports a grid resolution outside [2, max].
	ErrInvalidResolution = errors.New("invalid resolution")
)
