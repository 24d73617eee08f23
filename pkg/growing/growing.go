// Package growing implements seeded region growing over 3D voxel grids:
// fixed-threshold connectivity, statistically adaptive connectivity on scalar
// images, and Mahalanobis-distance connectivity on vector-valued images.
//
// All three growers share one breadth-first flood fill with 6-connectivity
// (face neighbors only). The frontier is an explicit FIFO backed by a slice,
// and visited state is a flat boolean array keyed by row-major voxel index;
// there is no pointer-graph structure anywhere. Growth is single-threaded,
// which keeps the output bit-identical across runs regardless of scheduling.
package growing

import (
	"fmt"

	"regiongrow3d/pkg/volume"
)

// Progress is an optional callback reporting segmentation progress: the
// iteration that just completed (0 is the initial seed-statistics growth) and
// the size of its mask in voxels.
type Progress func(iteration, maskVoxels int)

func (p Progress) report(iteration, maskVoxels int) {
	if p != nil {
		p(iteration, maskVoxels)
	}
}

// bounded is the grid surface seed validation needs, satisfied by both
// *volume.Grid and *volume.VectorGrid.
type bounded interface {
	Contains(volume.Coordinate) bool
}

func validateSeeds(g bounded, seeds []volume.Coordinate) error {
	if len(seeds) == 0 {
		return ErrNoSeeds
	}
	for _, s := range seeds {
		if !g.Contains(s) {
			return fmt.Errorf("seed (%d,%d,%d): %w", s.I, s.J, s.K, ErrInvalidSeed)
		}
	}
	return nil
}

// floodFill grows the mask from the seeds, admitting any unvisited voxel for
// which admit returns true. Seeds are subject to the same admission test as
// every other voxel: a seed that fails it contributes nothing. The mask ends
// up true exactly at the admitted voxels, the unique maximal 6-connected
// superset of the passing seeds under the admission predicate.
func floodFill(m *volume.Mask, seeds []volume.Coordinate, admit func(idx int) bool) {
	visited := make([]bool, m.Len())
	queue := make([]volume.Coordinate, 0, len(seeds))
	for _, s := range seeds {
		idx := m.Index(s)
		if visited[idx] {
			continue
		}
		visited[idx] = true
		if admit(idx) {
			m.SetIndex(idx, true)
			queue = append(queue, s)
		}
	}

	var nbuf []volume.Coordinate
	for head := 0; head < len(queue); head++ {
		nbuf = m.AppendNeighbors6(nbuf[:0], queue[head])
		for _, n := range nbuf {
			idx := m.Index(n)
			if visited[idx] {
				continue
			}
			visited[idx] = true
			if admit(idx) {
				m.SetIndex(idx, true)
				queue = append(queue, n)
			}
		}
	}
}
