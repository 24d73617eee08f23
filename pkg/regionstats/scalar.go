package regionstats

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"regiongrow3d/pkg/volume"
)

// ScalarStats holds Gaussian statistics over a set of scalar voxels.
type ScalarStats struct {
	Count    int
	Mean     float64
	Variance float64
}

// StdDev returns the sample standard deviation.
func (s ScalarStats) StdDev() float64 { return math.Sqrt(s.Variance) }

// Bounds returns the confidence interval [mean - c*stddev, mean + c*stddev]
// used as the admission window by the confidence-connected grower. With zero
// variance the interval collapses to [mean, mean], an exact-match test.
func (s ScalarStats) Bounds(multiplier float64) (lower, upper float64) {
	spread := multiplier * s.StdDev()
	return s.Mean - spread, s.Mean + spread
}

// Degenerate reports whether the statistics cannot discriminate: one sample
// or a zero-variance set.
func (s ScalarStats) Degenerate() bool { return s.Count < 2 || s.Variance == 0 }

// ScalarFromSeedNeighborhood estimates statistics over the union of Chebyshev
// cubes of the given radius around the seeds. Radius 0 uses the seed voxels
// alone; a resulting single-voxel set gets variance 0 rather than an error,
// so the derived bounds degrade to exact match.
func ScalarFromSeedNeighborhood(g *volume.Grid, seeds []volume.Coordinate, radius int) (ScalarStats, error) {
	indices, err := seedNeighborhoodIndices(g, seeds, radius)
	if err != nil {
		return ScalarStats{}, err
	}
	return scalarFromIndices(g, indices, false)
}

// ScalarFromMask estimates statistics over every labeled voxel of the mask.
// Fails with ErrInsufficientSamples when the mask holds one voxel or fewer,
// since the iterative grower cannot refine its bounds from such a set.
func ScalarFromMask(g *volume.Grid, m *volume.Mask) (ScalarStats, error) {
	indices, err := maskIndices(g, m)
	if err != nil {
		return ScalarStats{}, err
	}
	return scalarFromIndices(g, indices, true)
}

func scalarFromIndices(g *volume.Grid, indices []int, needVariance bool) (ScalarStats, error) {
	n := len(indices)
	if n == 0 || (needVariance && n < 2) {
		return ScalarStats{}, ErrInsufficientSamples
	}
	samples := make([]float64, n)
	for i, idx := range indices {
		samples[i] = g.At(idx)
	}
	s := ScalarStats{Count: n, Mean: stat.Mean(samples, nil)}
	if n > 1 {
		s.Variance = stat.Variance(samples, nil)
	}
	return s, nil
}
