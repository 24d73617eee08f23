// Package regionstats estimates Gaussian statistics over voxel sets: mean and
// variance for scalar grids, mean vector and covariance matrix for vector
// grids. The confidence-connected growers rebuild these statistics from
// scratch each iteration, either from the Chebyshev-cube neighborhood of the
// seed points or from the voxels of the current mask; nothing here keeps
// running state between calls.
//
// Variance and covariance use the sample (n-1) estimators from gonum/stat. A
// single-sample set yields zero variance (or the zero covariance matrix), and
// the derived admission tests degrade to exact-match; callers that want that
// condition treated as an error check Count themselves.
package regionstats

import (
	"fmt"

	"regiongrow3d/pkg/volume"
)

// shape is the subset of grid behavior sample collection needs, satisfied by
// both *volume.Grid and *volume.VectorGrid.
type shape interface {
	Dims() (int, int, int)
	Len() int
	Contains(volume.Coordinate) bool
	Index(volume.Coordinate) int
}

// seedNeighborhoodIndices returns the flat indices of the union of Chebyshev
// cubes of the given radius around each seed, clipped to the grid. Radius 0
// collects just the seed voxels. Overlapping cubes contribute each voxel
// once; the union is deduplicated with a flat marker array over the grid.
func seedNeighborhoodIndices(g shape, seeds []volume.Coordinate, radius int) ([]int, error) {
	if radius < 0 {
		return nil, fmt.Errorf("regionstats: negative neighborhood radius %d", radius)
	}
	nx, ny, nz := g.Dims()
	taken := make([]bool, g.Len())
	var out []int
	for _, s := range seeds {
		if !g.Contains(s) {
			return nil, fmt.Errorf("regionstats: seed (%d,%d,%d): %w", s.I, s.J, s.K, volume.ErrOutOfBounds)
		}
		i0, i1 := max(s.I-radius, 0), min(s.I+radius, nx-1)
		j0, j1 := max(s.J-radius, 0), min(s.J+radius, ny-1)
		k0, k1 := max(s.K-radius, 0), min(s.K+radius, nz-1)
		for k := k0; k <= k1; k++ {
			for j := j0; j <= j1; j++ {
				for i := i0; i <= i1; i++ {
					idx := g.Index(volume.Coordinate{I: i, J: j, K: k})
					if !taken[idx] {
						taken[idx] = true
						out = append(out, idx)
					}
				}
			}
		}
	}
	return out, nil
}

// maskIndices returns the flat indices of every labeled voxel, in ascending
// order. Fails with volume.ErrDimensionMismatch if mask and grid disagree.
func maskIndices(g shape, m *volume.Mask) ([]int, error) {
	gx, gy, gz := g.Dims()
	mx, my, mz := m.Dims()
	if gx != mx || gy != my || gz != mz {
		return nil, fmt.Errorf("regionstats: grid %dx%dx%d vs mask %dx%dx%d: %w",
			gx, gy, gz, mx, my, mz, volume.ErrDimensionMismatch)
	}
	var out []int
	for idx := 0; idx < m.Len(); idx++ {
		if m.GetIndex(idx) {
			out = append(out, idx)
		}
	}
	return out, nil
}
