package regionstats

import "errors"

// Sentinel errors for statistics estimation.
var (
	// ErrInsufficientSamples indicates variance or covariance was requested
	// over a set of one voxel or fewer.
	ErrInsufficientSamples = errors.New("regionstats: not enough samples for variance estimation")
	// ErrSingularCovariance indicates the sample covariance matrix is not
	// positive definite, so the Mahalanobis metric is undefined.
	ErrSingularCovariance = errors.New("regionstats: covariance matrix is singular")
)
