package growing

import (
	"regiongrow3d/pkg/volume"
)

// ConnectedThreshold segments the maximal 6-connected region containing the
// seeds whose voxel values lie within [lower, upper], both ends inclusive.
// The result does not depend on traversal order, so repeated runs with the
// same inputs produce bit-identical masks.
//
// Fails with ErrInvalidSeed before any growth if a seed lies outside the
// grid, and with ErrInvalidBounds if lower > upper.
func ConnectedThreshold(g *volume.Grid, seeds []volume.Coordinate, lower, upper float64) (*volume.Mask, error) {
	if err := validateSeeds(g, seeds); err != nil {
		return nil, err
	}
	if lower > upper {
		return nil, ErrInvalidBounds
	}
	m := volume.MaskLike(g)
	floodFill(m, seeds, func(idx int) bool {
		v := g.At(idx)
		return v >= lower && v <= upper
	})
	return m, nil
}
