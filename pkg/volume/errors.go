package volume

import "errors"

// Sentinel errors for volume construction and access.
var (
	// ErrEmptyGrid indicates a grid was requested with a non-positive dimension.
	ErrEmptyGrid = errors.New("volume: grid dimensions must be positive")
	// ErrBadDataLength indicates a backing slice whose length does not match
	// the requested dimensions (and channel count, for vector grids).
	ErrBadDataLength = errors.New("volume: data length does not match dimensions")
	// ErrBadChannelCount indicates a vector grid with fewer than one channel.
	ErrBadChannelCount = errors.New("volume: vector grids need at least one channel")
	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("volume: coordinate out of bounds")
	// ErrDimensionMismatch indicates two grids or masks that were expected to
	// share dimensions but do not.
	ErrDimensionMismatch = errors.New("volume: dimension mismatch")
)
