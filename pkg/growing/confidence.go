package growing

import (
	"errors"
	"fmt"

	"regiongrow3d/pkg/regionstats"
	"regiongrow3d/pkg/volume"
)

// Params configures the two confidence-connected growers.
type Params struct {
	// Multiplier is the confidence multiplier c: the scalar grower admits
	// voxels within mean ± c*stddev, the vector grower admits voxels whose
	// Mahalanobis distance from the region mean is strictly below c. Must be
	// positive.
	Multiplier float64

	// Iterations is the number of statistics refinement rounds after the
	// initial seed-neighborhood growth. Zero means a single growth from the
	// seed statistics.
	Iterations int

	// InitialRadius is the Chebyshev radius of the cube sampled around each
	// seed for the initial statistics. Radius 0 samples the seed voxels
	// alone. The vector grower ignores this and always uses radius 0.
	InitialRadius int

	// ReplaceValue is the cosmetic label value callers pass to Mask.Render;
	// it has no influence on the segmentation itself.
	ReplaceValue float64

	// StrictSeedStats turns degenerate initial statistics (single-voxel
	// neighborhood, or zero variance across it) into an
	// ErrDegenerateStatistics failure. The default keeps the permissive
	// policy: degenerate statistics collapse the admission test to exact
	// match and growth proceeds.
	StrictSeedStats bool

	// Progress, when non-nil, is called after every completed iteration.
	Progress Progress
}

func (p Params) validate() error {
	if p.Multiplier <= 0 {
		return ErrInvalidMultiplier
	}
	if p.Iterations < 0 {
		return ErrInvalidIterations
	}
	if p.InitialRadius < 0 {
		return ErrInvalidRadius
	}
	return nil
}

// ConfidenceConnected segments a scalar grid by iteratively adapting a
// threshold interval to the statistics of the growing region.
//
// Iteration 0 estimates mean and variance over the Chebyshev neighborhood of
// the seeds, derives the interval [mean - c*stddev, mean + c*stddev], and
// flood-fills from the seeds. Each subsequent iteration re-estimates the
// statistics from the voxels of the previous mask and re-grows from the
// original seeds over the full grid; iterations never extend the prior mask
// incrementally. The returned mask is the last iteration's.
//
// If an iteration's statistics collapse (empty or single-voxel mask), the
// grower stops and returns the previous mask together with
// ErrDegenerateStatistics, leaving the accept-partial-result decision to the
// caller. Zero-variance bounds with two or more samples are not an error:
// the interval degenerates to [mean, mean] and the fill admits exact matches
// only.
func ConfidenceConnected(g *volume.Grid, seeds []volume.Coordinate, p Params) (*volume.Mask, error) {
	if err := validateSeeds(g, seeds); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	st, err := regionstats.ScalarFromSeedNeighborhood(g, seeds, p.InitialRadius)
	if err != nil {
		return nil, fmt.Errorf("growing: seed statistics: %w", err)
	}
	if p.StrictSeedStats && st.Degenerate() {
		return nil, fmt.Errorf("growing: seed neighborhood of %d voxel(s) with variance %g: %w",
			st.Count, st.Variance, ErrDegenerateStatistics)
	}

	mask := growScalar(g, seeds, st, p.Multiplier)
	p.Progress.report(0, mask.Count())

	for it := 1; it <= p.Iterations; it++ {
		st, err = regionstats.ScalarFromMask(g, mask)
		if err != nil {
			if errors.Is(err, regionstats.ErrInsufficientSamples) {
				err = fmt.Errorf("growing: iteration %d: %w: %w", it, ErrDegenerateStatistics, err)
			} else {
				err = fmt.Errorf("growing: iteration %d: %w", it, err)
			}
			return mask, err
		}
		mask = growScalar(g, seeds, st, p.Multiplier)
		p.Progress.report(it, mask.Count())
	}
	return mask, nil
}

func growScalar(g *volume.Grid, seeds []volume.Coordinate, st regionstats.ScalarStats, multiplier float64) *volume.Mask {
	lower, upper := st.Bounds(multiplier)
	m := volume.MaskLike(g)
	floodFill(m, seeds, func(idx int) bool {
		v := g.At(idx)
		return v >= lower && v <= upper
	})
	return m
}
