package growing

import (
	"errors"
	"fmt"

	"regiongrow3d/pkg/regionstats"
	"regiongrow3d/pkg/volume"
)

// VectorConfidenceConnected segments a vector-valued grid the way
// ConfidenceConnected segments a scalar one, with the interval test replaced
// by a Mahalanobis distance test: a voxel with value vector x is admitted iff
// sqrt((x-mean)' * inv(cov) * (x-mean)) < multiplier, strictly.
//
// Iteration 0 estimates mean and covariance from the seed voxels alone
// (Params.InitialRadius is ignored; this variant has no configurable initial
// neighborhood). Later iterations re-estimate from the previous mask and
// re-grow from the original seeds. Covariance inversion goes through a
// Cholesky factorization; if it fails mid-iteration the grower returns the
// previous mask together with regionstats.ErrSingularCovariance, and if it
// fails at iteration 0 the returned mask is empty.
func VectorConfidenceConnected(g *volume.VectorGrid, seeds []volume.Coordinate, p Params) (*volume.Mask, error) {
	if err := validateSeeds(g, seeds); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	st, err := regionstats.VectorFromSeedNeighborhood(g, seeds, 0)
	if err != nil {
		return volume.MaskLikeVector(g), fmt.Errorf("growing: seed statistics: %w", err)
	}
	if p.StrictSeedStats && st.Degenerate() {
		return nil, fmt.Errorf("growing: %d seed sample(s) with degenerate covariance: %w",
			st.Count, ErrDegenerateStatistics)
	}

	mask := growVector(g, seeds, st, p.Multiplier)
	p.Progress.report(0, mask.Count())

	for it := 1; it <= p.Iterations; it++ {
		st, err = regionstats.VectorFromMask(g, mask)
		if err != nil {
			if errors.Is(err, regionstats.ErrInsufficientSamples) {
				err = fmt.Errorf("growing: iteration %d: %w: %w", it, ErrDegenerateStatistics, err)
			} else {
				err = fmt.Errorf("growing: iteration %d: %w", it, err)
			}
			return mask, err
		}
		mask = growVector(g, seeds, st, p.Multiplier)
		p.Progress.report(it, mask.Count())
	}
	return mask, nil
}

func growVector(g *volume.VectorGrid, seeds []volume.Coordinate, st *regionstats.VectorStats, multiplier float64) *volume.Mask {
	m := volume.MaskLikeVector(g)
	floodFill(m, seeds, func(idx int) bool {
		return st.Mahalanobis(g.Vector(idx)) < multiplier
	})
	return m
}
