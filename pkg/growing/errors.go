package growing

import "errors"

// Sentinel errors for grower construction and iteration.
var (
	// ErrNoSeeds indicates an empty seed list.
	ErrNoSeeds = errors.New("growing: at least one seed is required")
	// ErrInvalidSeed indicates a seed coordinate outside the grid.
	ErrInvalidSeed = errors.New("growing: seed out of grid bounds")
	// ErrInvalidBounds indicates a threshold interval with lower > upper.
	ErrInvalidBounds = errors.New("growing: lower bound exceeds upper bound")
	// ErrInvalidMultiplier indicates a confidence multiplier <= 0.
	ErrInvalidMultiplier = errors.New("growing: multiplier must be positive")
	// ErrInvalidIterations indicates a negative iteration count.
	ErrInvalidIterations = errors.New("growing: iteration count must be non-negative")
	// ErrInvalidRadius indicates a negative initial neighborhood radius.
	ErrInvalidRadius = errors.New("growing: initial neighborhood radius must be non-negative")
	// ErrDegenerateStatistics indicates an iterative grower whose region
	// statistics collapsed (empty or single-voxel mask) and can no longer
	// refine the admission bounds. The grower returns the last good mask
	// alongside this error.
	ErrDegenerateStatistics = errors.New("growing: region statistics cannot refine admission bounds")
)
