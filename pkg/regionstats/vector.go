package regionstats

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"regiongrow3d/pkg/volume"
)

// VectorStats holds Gaussian statistics over a set of vector voxels: the mean
// vector, the sample covariance matrix, and its Cholesky factorization for
// Mahalanobis distance evaluation.
//
// A single-sample set carries the zero covariance matrix and no
// factorization; Mahalanobis then degrades to an exact-match test (distance 0
// for the mean itself, +Inf for anything else). A multi-sample set whose
// covariance cannot be factorized is an error, not a degenerate policy.
type VectorStats struct {
	Count      int
	Mean       []float64
	Covariance *mat.SymDense

	chol *mat.Cholesky
}

// Degenerate reports whether the statistics carry no usable covariance and
// the distance test has collapsed to exact match.
func (s *VectorStats) Degenerate() bool { return s.chol == nil }

// Mahalanobis returns the covariance-normalized distance of x from the mean.
// x must have the same length as the mean vector.
func (s *VectorStats) Mahalanobis(x []float64) float64 {
	if s.chol == nil {
		for i, v := range x {
			if v != s.Mean[i] {
				return math.Inf(1)
			}
		}
		return 0
	}
	d := len(s.Mean)
	return stat.Mahalanobis(mat.NewVecDense(d, x), mat.NewVecDense(d, s.Mean), s.chol)
}

// VectorFromSeedNeighborhood estimates statistics over the union of Chebyshev
// cubes of the given radius around the seeds. The vector confidence grower
// always calls this with radius 0 (seed voxels only).
func VectorFromSeedNeighborhood(g *volume.VectorGrid, seeds []volume.Coordinate, radius int) (*VectorStats, error) {
	indices, err := seedNeighborhoodIndices(g, seeds, radius)
	if err != nil {
		return nil, err
	}
	return vectorFromIndices(g, indices, false)
}

// VectorFromMask estimates statistics over every labeled voxel of the mask.
// Fails with ErrInsufficientSamples when the mask holds one voxel or fewer.
func VectorFromMask(g *volume.VectorGrid, m *volume.Mask) (*VectorStats, error) {
	indices, err := maskIndices(g, m)
	if err != nil {
		return nil, err
	}
	return vectorFromIndices(g, indices, true)
}

func vectorFromIndices(g *volume.VectorGrid, indices []int, needCovariance bool) (*VectorStats, error) {
	n, d := len(indices), g.Channels()
	if n == 0 || (needCovariance && n < 2) {
		return nil, ErrInsufficientSamples
	}

	samples := mat.NewDense(n, d, nil)
	for i, idx := range indices {
		samples.SetRow(i, g.Vector(idx))
	}

	mean := make([]float64, d)
	for j := 0; j < d; j++ {
		mean[j] = stat.Mean(mat.Col(nil, j, samples), nil)
	}

	s := &VectorStats{Count: n, Mean: mean, Covariance: mat.NewSymDense(d, nil)}
	if n < 2 {
		// zero covariance, exact-match distance
		return s, nil
	}
	stat.CovarianceMatrix(s.Covariance, samples, nil)

	var chol mat.Cholesky
	if !chol.Factorize(s.Covariance) {
		if needCovariance || !isZeroSym(s.Covariance) {
			return nil, ErrSingularCovariance
		}
		// all seed samples identical: same degenerate policy as one sample
		return s, nil
	}
	s.chol = &chol
	return s, nil
}

func isZeroSym(m *mat.SymDense) bool {
	d := m.SymmetricDim()
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			if m.At(i, j) != 0 {
				return false
			}
		}
	}
	return true
}
